package artpack

import (
	"reflect"
	"testing"
)

func TestDiffEntries_NilInputs(t *testing.T) {
	tests := []struct {
		name string
		old  *EntryMap
		new  *EntryMap
	}{
		{"both nil", nil, nil},
		{"old nil", nil, NewEntryMap(nil, nil)},
		{"new nil", NewEntryMap(nil, nil), nil},
		{"both empty", NewEntryMap(nil, nil), NewEntryMap(nil, nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff := DiffEntries(tt.old, tt.new)
			if diff == nil {
				t.Fatal("DiffEntries returned nil")
			}
			if !diff.IsEmpty() {
				t.Errorf("expected empty diff, got %+v", diff)
			}
		})
	}
}

func TestDiffEntries_Identical(t *testing.T) {
	names := []string{"home", "about"}
	files := [][]string{{"p", "client/home/index.js"}, {"p", "client/about/index.js"}}

	diff := DiffEntries(NewEntryMap(names, files), NewEntryMap(names, files))

	if !diff.IsEmpty() {
		t.Errorf("Expected empty diff for identical maps, got %+v", diff)
	}
	if diff.TotalChanges() != 0 {
		t.Errorf("TotalChanges() = %d, want 0", diff.TotalChanges())
	}
}

func TestDiffEntries_Added(t *testing.T) {
	old := NewEntryMap([]string{"home"}, [][]string{{"a.js"}})
	new := NewEntryMap(
		[]string{"home", "zeta", "about"},
		[][]string{{"a.js"}, {"z.js"}, {"b.js"}},
	)

	diff := DiffEntries(old, new)

	want := []EntryChange{
		{Name: "about", Files: []string{"b.js"}},
		{Name: "zeta", Files: []string{"z.js"}},
	}
	if !reflect.DeepEqual(diff.Added, want) {
		t.Errorf("Added = %+v, want %+v", diff.Added, want)
	}
	if len(diff.Removed) != 0 || len(diff.Changed) != 0 {
		t.Errorf("unexpected removals or changes: %+v", diff)
	}
}

func TestDiffEntries_Removed(t *testing.T) {
	old := NewEntryMap([]string{"home", "about"}, [][]string{{"a.js"}, {"b.js"}})
	new := NewEntryMap([]string{"home"}, [][]string{{"a.js"}})

	diff := DiffEntries(old, new)

	want := []EntryChange{{Name: "about", Files: []string{"b.js"}}}
	if !reflect.DeepEqual(diff.Removed, want) {
		t.Errorf("Removed = %+v, want %+v", diff.Removed, want)
	}
}

func TestDiffEntries_Changed(t *testing.T) {
	tests := []struct {
		name     string
		oldFiles []string
		newFiles []string
	}{
		{"file added", []string{"a.js"}, []string{"a.js", "b.js"}},
		{"file removed", []string{"a.js", "b.js"}, []string{"a.js"}},
		{"reordered", []string{"a.js", "b.js"}, []string{"b.js", "a.js"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff := DiffEntries(
				NewEntryMap([]string{"home"}, [][]string{tt.oldFiles}),
				NewEntryMap([]string{"home"}, [][]string{tt.newFiles}),
			)
			want := []EntryUpdate{{Name: "home", OldFiles: tt.oldFiles, NewFiles: tt.newFiles}}
			if !reflect.DeepEqual(diff.Changed, want) {
				t.Errorf("Changed = %+v, want %+v", diff.Changed, want)
			}
			if diff.TotalChanges() != 1 {
				t.Errorf("TotalChanges() = %d, want 1", diff.TotalChanges())
			}
		})
	}
}

func TestDiffEntries_MixedChanges(t *testing.T) {
	old := NewEntryMap(
		[]string{"keep", "drop", "edit"},
		[][]string{{"k.js"}, {"d.js"}, {"e.js"}},
	)
	new := NewEntryMap(
		[]string{"edit", "keep", "new"},
		[][]string{{"e.js", "e2.js"}, {"k.js"}, {"n.js"}},
	)

	diff := DiffEntries(old, new)

	if len(diff.Added) != 1 || diff.Added[0].Name != "new" {
		t.Errorf("Added = %+v", diff.Added)
	}
	if len(diff.Removed) != 1 || diff.Removed[0].Name != "drop" {
		t.Errorf("Removed = %+v", diff.Removed)
	}
	if len(diff.Changed) != 1 || diff.Changed[0].Name != "edit" {
		t.Errorf("Changed = %+v", diff.Changed)
	}
	if diff.TotalChanges() != 3 {
		t.Errorf("TotalChanges() = %d, want 3", diff.TotalChanges())
	}
}

func TestDiffEntries_AfterResolve(t *testing.T) {
	r := newTestResolver(t)
	before := mustManifest(t, ManifestEntry{Key: "home", Paths: []string{"client/pages/home"}})
	after := mustManifest(t,
		ManifestEntry{Key: "home", Paths: []string{"client/pages/home", "client/pages/home/extra.ts"}},
		ManifestEntry{Key: "about", Paths: []string{"client/pages/about"}},
	)

	diff := DiffEntries(r.Resolve(before, nil), r.Resolve(after, nil))

	if len(diff.Added) != 1 || diff.Added[0].Name != "about" {
		t.Errorf("Added = %+v", diff.Added)
	}
	if len(diff.Changed) != 1 {
		t.Fatalf("Changed = %+v", diff.Changed)
	}
	wantNew := []string{testPolyfill, "client/pages/home/index.js", "client/pages/home/extra.ts"}
	if !reflect.DeepEqual(diff.Changed[0].NewFiles, wantNew) {
		t.Errorf("NewFiles = %v, want %v", diff.Changed[0].NewFiles, wantNew)
	}
}

func BenchmarkDiffEntries(b *testing.B) {
	names := make([]string, 200)
	files := make([][]string, 200)
	for i := range names {
		names[i] = "entry" + string(rune('a'+i%26)) + string(rune('a'+i/26))
		files[i] = []string{"p", names[i] + ".js"}
	}
	old := NewEntryMap(names, files)
	new := NewEntryMap(names[50:], files[50:])

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = DiffEntries(old, new)
	}
}
