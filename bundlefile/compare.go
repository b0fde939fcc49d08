package bundlefile

import (
	"sort"

	artpack "github.com/albertocavalcante/go-artpack"
)

// Diff describes the differences between two plans.
type Diff struct {
	// Entries is the entry-level difference.
	Entries *artpack.EntryDiff

	// OutputChanged is set when the output sections differ.
	OutputChanged bool

	// PagesAdded and PagesRemoved list page filenames.
	PagesAdded   []string
	PagesRemoved []string

	// SourcesChanged lists configuration files added, removed or rehashed.
	SourcesChanged []string
}

// IsEmpty returns true if there are no differences.
func (d *Diff) IsEmpty() bool {
	return d.Entries.IsEmpty() && !d.OutputChanged &&
		len(d.PagesAdded) == 0 && len(d.PagesRemoved) == 0 &&
		len(d.SourcesChanged) == 0
}

// Compare compares two plans and returns the differences.
func Compare(old, new *Plan) *Diff {
	diff := &Diff{
		Entries:       artpack.DiffEntries(old.Entries, new.Entries),
		OutputChanged: !sameOutput(old.Output, new.Output),
	}

	oldPages := make(map[string]bool, len(old.Pages))
	for _, pg := range old.Pages {
		oldPages[pg.Filename] = true
	}
	for _, pg := range new.Pages {
		if oldPages[pg.Filename] {
			delete(oldPages, pg.Filename)
		} else {
			diff.PagesAdded = append(diff.PagesAdded, pg.Filename)
		}
	}
	for f := range oldPages {
		diff.PagesRemoved = append(diff.PagesRemoved, f)
	}

	for path, oldHash := range old.Sources {
		if new.Sources[path] != oldHash {
			diff.SourcesChanged = append(diff.SourcesChanged, path)
		}
	}
	for path := range new.Sources {
		if _, ok := old.Sources[path]; !ok {
			diff.SourcesChanged = append(diff.SourcesChanged, path)
		}
	}

	// Sort for deterministic output
	sort.Strings(diff.PagesAdded)
	sort.Strings(diff.PagesRemoved)
	sort.Strings(diff.SourcesChanged)

	return diff
}

func sameOutput(a, b *artpack.OutputDescriptor) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
