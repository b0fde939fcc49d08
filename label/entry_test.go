package label

import (
	"testing"
)

func TestParseEntryKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantName string
		wantErr  bool
	}{
		{"simple", "home", "home", false},
		{"nested", "pages/home", "pages/home", false},
		{"with query", "about?title=About", "about", false},
		{"empty query", "about?", "about", false},
		{"scoped segment", "@mobile/pages/home", "@mobile/pages/home", false},
		{"dots and dashes", "m.v2/home-page_x", "m.v2/home-page_x", false},
		{"empty", "", "", true},
		{"query only", "?title=x", "", true},
		{"leading slash", "/home", "", true},
		{"trailing slash", "home/", "", true},
		{"double slash", "a//b", "", true},
		{"dot dot", "a/../b", "", true},
		{"dot", "./a", "", true},
		{"space", "my page", "", true},
		{"bad query escape", "a?title=%zz", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := ParseEntryKey(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseEntryKey(%q) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseEntryKey(%q) unexpected error: %v", tt.input, err)
			}
			if k.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", k.Name(), tt.wantName)
			}
			if k.String() != tt.input {
				t.Errorf("String() = %q, want %q", k.String(), tt.input)
			}
		})
	}
}

func TestEntryKey_QueryParams(t *testing.T) {
	tests := []struct {
		input        string
		wantTemplate string
		wantTitle    string
		wantCDN      bool
		wantHasQuery bool
	}{
		{"home", "", "", true, false},
		{"about?title=About%20Us&template=about.html", "about.html", "About Us", true, true},
		{"a?cdn=0", "", "", false, true},
		{"a?cdn=false", "", "", false, true},
		{"a?cdn=1", "", "", true, true},
		{"a?cdn=no", "", "", true, true},
		{"a?title=x&title=y", "", "x", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			k := MustEntryKey(tt.input)
			if got := k.Template(); got != tt.wantTemplate {
				t.Errorf("Template() = %q, want %q", got, tt.wantTemplate)
			}
			if got := k.Title(); got != tt.wantTitle {
				t.Errorf("Title() = %q, want %q", got, tt.wantTitle)
			}
			if got := k.CDNEnabled(); got != tt.wantCDN {
				t.Errorf("CDNEnabled() = %v, want %v", got, tt.wantCDN)
			}
			if got := k.HasQuery(); got != tt.wantHasQuery {
				t.Errorf("HasQuery() = %v, want %v", got, tt.wantHasQuery)
			}
		})
	}
}

func TestEntryKey_Dir(t *testing.T) {
	tests := []struct {
		key         string
		virtualPath string
		want        string
	}{
		{"pages/home", "", "pages/home"},
		{"mobile/pages/home?title=x", "mobile", "pages/home"},
		{"mobile/pages/home", "mobile/", "pages/home"},
		{"pages/mobile/home", "mobile", "pages/home"},
		{"pages/home", "desktop", "pages/home"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got := MustEntryKey(tt.key).Dir(tt.virtualPath)
			if got != tt.want {
				t.Errorf("Dir(%q) = %q, want %q", tt.virtualPath, got, tt.want)
			}
		})
	}
}

func TestMustEntryKey(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustEntryKey(\"\") should panic")
		}
	}()
	MustEntryKey("")
}

func TestEntryKey_ZeroValue(t *testing.T) {
	var k EntryKey
	if !k.IsEmpty() {
		t.Error("zero EntryKey should be empty")
	}
	if !k.CDNEnabled() {
		t.Error("zero EntryKey should default to CDN enabled")
	}
}
