package artpack

import (
	"reflect"
	"testing"
)

func TestResolveEntries_Defaults(t *testing.T) {
	entries, err := ResolveEntries(homeAboutManifest(t), nil)
	if err != nil {
		t.Fatalf("ResolveEntries() error = %v", err)
	}

	if got, want := entries.Names(), []string{"home", "about"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	files, _ := entries.Files("home")
	if want := []string{DefaultPolyfillPath, "client/pages/home/index.tsx"}; !reflect.DeepEqual(files, want) {
		t.Errorf("Files(home) = %v, want %v", files, want)
	}
}

func TestResolveEntries_OptionsOverrideDefaults(t *testing.T) {
	entries, err := ResolveEntries(homeAboutManifest(t), []string{"pages/about"},
		WithPolyfillPath(testPolyfill), WithKeepQuery(true))
	if err != nil {
		t.Fatalf("ResolveEntries() error = %v", err)
	}
	want := []entryPair{{Name: "about?tab=1", Files: []string{testPolyfill, "client/pages/about/index.tsx"}}}
	if got := entryPairs(entries); !reflect.DeepEqual(got, want) {
		t.Errorf("entries = %+v, want %+v", got, want)
	}
}

func TestResolveEntries_InvalidOption(t *testing.T) {
	if _, err := ResolveEntries(nil, nil, WithPatternCacheSize(-1)); err == nil {
		t.Error("ResolveEntries() expected error for negative cache size")
	}
}

func TestResolveDevEntries(t *testing.T) {
	tests := []struct {
		name     string
		mode     Mode
		wantHead []string
	}{
		{
			name:     "development attaches scripts",
			mode:     ModeDevelopment,
			wantHead: []string{"webpack-dev-server/client?http://localhost:3000/", HotDevServerScript, testPolyfill},
		},
		{
			name:     "production leaves entries alone",
			mode:     ModeProduction,
			wantHead: []string{testPolyfill},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := BuildSettings{Mode: tt.mode, DevHost: "http://localhost", DevPort: 3000}
			entries, err := ResolveDevEntries(homeAboutManifest(t), []string{"pages/home"}, s,
				WithPolyfillPath(testPolyfill))
			if err != nil {
				t.Fatalf("ResolveDevEntries() error = %v", err)
			}
			files, ok := entries.Files("home")
			if !ok {
				t.Fatal("home entry missing")
			}
			if len(files) != len(tt.wantHead)+1 {
				t.Fatalf("Files(home) = %v", files)
			}
			if got := files[:len(tt.wantHead)]; !reflect.DeepEqual(got, tt.wantHead) {
				t.Errorf("head = %v, want %v", got, tt.wantHead)
			}
		})
	}
}
