package graph

import (
	"fmt"
	"path"
	"sort"
	"strings"
)

// Entry returns the node for a manifest key, or for a resolved entry name
// when no key matches. Nil if neither exists.
func (g *Graph) Entry(nameOrKey string) *EntryNode {
	for _, n := range g.Entries {
		if n.Key == nameOrKey {
			return n
		}
	}
	for _, n := range g.Entries {
		if n.Name == nameOrKey {
			return n
		}
	}
	return nil
}

// Contains returns true if the manifest declares the entry.
func (g *Graph) Contains(nameOrKey string) bool {
	return g.Entry(nameOrKey) != nil
}

// Selected returns the selected entries in manifest order.
func (g *Graph) Selected() []*EntryNode {
	var out []*EntryNode
	for _, n := range g.Entries {
		if n.Selected {
			out = append(out, n)
		}
	}
	return out
}

// EntriesFor returns the manifest keys whose selected entries bundle file.
// The file path is normalized the way manifest paths are: a leading "./"
// is dropped and the path is cleaned.
func (g *Graph) EntriesFor(file string) []string {
	f := g.Files[normalizeFile(file)]
	if f == nil {
		return nil
	}
	return append([]string(nil), f.Entries...)
}

// SharedFiles returns files bundled by more than one entry, sorted.
func (g *Graph) SharedFiles() []string {
	var out []string
	for p, f := range g.Files {
		if len(f.Entries) > 1 {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

// Collisions returns the other manifest keys that resolve to the same
// entry name as nameOrKey.
func (g *Graph) Collisions(nameOrKey string) []string {
	n := g.Entry(nameOrKey)
	if n == nil {
		return nil
	}
	var out []string
	for _, other := range g.Entries {
		if other != n && other.Name == n.Name && other.Selected {
			out = append(out, other.Key)
		}
	}
	return out
}

// Explain returns why an entry was or was not selected.
func (g *Graph) Explain(nameOrKey string) (*Explanation, error) {
	n := g.Entry(nameOrKey)
	if n == nil {
		return nil, fmt.Errorf("%w: %q", ErrEntryNotFound, nameOrKey)
	}

	exp := &Explanation{Entry: n, Collisions: g.Collisions(nameOrKey)}
	switch {
	case len(n.Paths) == 0:
		exp.Reason = fmt.Sprintf("%s declares no paths", n.Key)
	case !n.Selected:
		exp.Reason = fmt.Sprintf("%s: none of %d paths matched filters %s",
			n.Key, len(n.Paths), g.filterList())
	default:
		matched := len(n.Files())
		exp.Reason = fmt.Sprintf("%s: %d of %d paths matched filters %s",
			n.Key, matched, len(n.Paths), g.filterList())
	}
	return exp, nil
}

// Stats returns statistics about the graph.
func (g *Graph) Stats() Stats {
	s := Stats{
		ManifestEntries: len(g.Entries),
		Files:           len(g.Files),
	}
	for _, n := range g.Entries {
		if !n.Selected {
			continue
		}
		s.SelectedEntries++
		for _, p := range n.Paths {
			if len(p.Filters) == 0 {
				s.UnmatchedPaths++
			}
		}
	}
	for _, f := range g.Files {
		if len(f.Entries) > 1 {
			s.SharedFiles++
		}
	}
	return s
}

func (g *Graph) filterList() string {
	names := make([]string, len(g.Filters))
	for i, f := range g.Filters {
		names[i] = fmt.Sprintf("%q", f.Filter)
	}
	return "[" + strings.Join(names, ", ") + "]"
}

func normalizeFile(p string) string {
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return path.Clean(p)
}
