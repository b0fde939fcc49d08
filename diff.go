package artpack

import (
	"slices"
	"sort"
)

// EntryChange represents an added or removed entry in an entry diff.
type EntryChange struct {
	// Name is the entry name.
	Name string `json:"name"`

	// Files is the entry's file list.
	Files []string `json:"files"`
}

// EntryUpdate represents an entry whose file list changed.
type EntryUpdate struct {
	// Name is the entry name.
	Name string `json:"name"`

	// OldFiles is the file list in the old resolution.
	OldFiles []string `json:"old_files"`

	// NewFiles is the file list in the new resolution.
	NewFiles []string `json:"new_files"`
}

// EntryDiff describes the differences between two entry resolutions.
//
// The watch command prints one after every manifest edit:
//
//	before := resolver.Resolve(oldManifest, filters)
//	after := resolver.Resolve(newManifest, filters)
//	if d := DiffEntries(before, after); !d.IsEmpty() {
//	    fmt.Printf("%d added, %d removed, %d changed\n",
//	        len(d.Added), len(d.Removed), len(d.Changed))
//	}
type EntryDiff struct {
	// Added contains entries present in new but not in old.
	Added []EntryChange `json:"added,omitempty"`

	// Removed contains entries present in old but not in new.
	Removed []EntryChange `json:"removed,omitempty"`

	// Changed contains entries whose file lists differ.
	Changed []EntryUpdate `json:"changed,omitempty"`
}

// IsEmpty returns true if there are no differences between the resolutions.
func (d *EntryDiff) IsEmpty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// TotalChanges returns the total number of changes (added + removed + changed).
func (d *EntryDiff) TotalChanges() int {
	return len(d.Added) + len(d.Removed) + len(d.Changed)
}

// DiffEntries computes the difference between two entry maps.
// A nil map is treated as empty. Results are sorted by entry name.
func DiffEntries(old, new *EntryMap) *EntryDiff {
	diff := &EntryDiff{}

	for _, name := range new.Names() {
		newFiles, _ := new.Files(name)
		oldFiles, existedBefore := old.Files(name)
		switch {
		case !existedBefore:
			diff.Added = append(diff.Added, EntryChange{Name: name, Files: newFiles})
		case !slices.Equal(oldFiles, newFiles):
			diff.Changed = append(diff.Changed, EntryUpdate{
				Name:     name,
				OldFiles: oldFiles,
				NewFiles: newFiles,
			})
		}
	}

	for _, name := range old.Names() {
		if !new.Has(name) {
			files, _ := old.Files(name)
			diff.Removed = append(diff.Removed, EntryChange{Name: name, Files: files})
		}
	}

	sortEntryChanges(diff.Added)
	sortEntryChanges(diff.Removed)
	sort.Slice(diff.Changed, func(i, j int) bool {
		return diff.Changed[i].Name < diff.Changed[j].Name
	})

	return diff
}

func sortEntryChanges(changes []EntryChange) {
	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Name < changes[j].Name
	})
}
