package artpack

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDeriveOutput(t *testing.T) {
	base := BuildSettings{
		DevHost:     "http://localhost/",
		DevPort:     3000,
		Version:     "1.2.3",
		WorkDir:     "/work/app",
		PublicPaths: map[string]string{"prod": "https://cdn.example.com/app/", "test": "https://test.example.com/"},
	}

	tests := []struct {
		name   string
		mutate func(*BuildSettings)
		want   OutputDescriptor
	}{
		{
			name: "development ignores hash flag",
			mutate: func(s *BuildSettings) {
				s.Mode = ModeDevelopment
				s.Tier = "dev"
				s.EnableBundleHashName = true
			},
			want: OutputDescriptor{
				Filename:      "[name]/bundle.js",
				ChunkFilename: "[id].[chunkhash].js",
				Path:          filepath.Join("/work/app", "debug"),
				PublicPath:    "http://localhost:3000/public/",
			},
		},
		{
			name: "production versioned",
			mutate: func(s *BuildSettings) {
				s.Mode = ModeProduction
				s.Tier = "prod"
			},
			want: OutputDescriptor{
				Filename:      "[name]/bundle.js?1.2.3",
				ChunkFilename: "[id].[chunkhash].js",
				Path:          filepath.Join("/work/app", "public"),
				PublicPath:    "https://cdn.example.com/app/",
			},
		},
		{
			name: "production hashed",
			mutate: func(s *BuildSettings) {
				s.Mode = ModeProduction
				s.Tier = "prod"
				s.EnableBundleHashName = true
			},
			want: OutputDescriptor{
				Filename:      "[name]/bundle[chunkhash].js",
				ChunkFilename: "[id].[chunkhash].js",
				Path:          filepath.Join("/work/app", "public"),
				PublicPath:    "https://cdn.example.com/app/",
			},
		},
		{
			name: "production non prod tier writes debug",
			mutate: func(s *BuildSettings) {
				s.Mode = ModeProduction
				s.Tier = "test"
			},
			want: OutputDescriptor{
				Filename:      "[name]/bundle.js?1.2.3",
				ChunkFilename: "[id].[chunkhash].js",
				Path:          filepath.Join("/work/app", "debug"),
				PublicPath:    "https://test.example.com/",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base
			tt.mutate(&s)
			got, err := DeriveOutput(s)
			if err != nil {
				t.Fatalf("DeriveOutput() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DeriveOutput() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDeriveOutput_MissingPublicPath(t *testing.T) {
	_, err := DeriveOutput(BuildSettings{Mode: ModeProduction, Tier: "staging"})
	if !errors.Is(err, ErrMissingPublicPath) {
		t.Errorf("DeriveOutput() error = %v, want ErrMissingPublicPath", err)
	}
}

func TestDeriveOutput_DefaultWorkDir(t *testing.T) {
	got, err := DeriveOutput(BuildSettings{DevHost: "http://0.0.0.0", DevPort: 8080})
	if err != nil {
		t.Fatalf("DeriveOutput() error = %v", err)
	}
	if got.Path != "debug" {
		t.Errorf("Path = %q, want debug", got.Path)
	}
	if got.PublicPath != "http://0.0.0.0:8080/public/" {
		t.Errorf("PublicPath = %q", got.PublicPath)
	}
}

func TestBundleFilename_Suffix(t *testing.T) {
	prod := BuildSettings{Mode: ModeProduction, Version: "2.0.0"}
	if got := BundleFilename(prod, ".css"); got != "bundle.css?2.0.0" {
		t.Errorf("BundleFilename(.css) = %q", got)
	}
	if got := BundleFilename(prod, ""); got != "bundle.js?2.0.0" {
		t.Errorf("BundleFilename(\"\") = %q", got)
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{
		"production":   ModeProduction,
		" Production ": ModeProduction,
		"development":  ModeDevelopment,
		"test":         ModeDevelopment,
		"":             ModeDevelopment,
	} {
		if got := ParseMode(in); got != want {
			t.Errorf("ParseMode(%q) = %q, want %q", in, got, want)
		}
	}
}
