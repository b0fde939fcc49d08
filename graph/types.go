package graph

import (
	"errors"

	artpack "github.com/albertocavalcante/go-artpack"
)

// ErrEntryNotFound is returned by queries naming an entry the manifest
// does not declare.
var ErrEntryNotFound = errors.New("entry not found in graph")

// Graph is the entry/file graph of one resolution.
type Graph struct {
	// Polyfill is the file prepended to every selected entry. It is not a
	// file node.
	Polyfill string

	// Filters are the compiled module filters the graph was built with.
	Filters []artpack.CompiledPattern

	// Entries holds one node per manifest entry, in manifest order.
	Entries []*EntryNode

	// Files contains every matched path of a selected entry, keyed by the
	// cleaned path so "./a.js" and "a.js" share a node.
	Files map[string]*FileNode
}

// EntryNode is a manifest entry in the graph.
type EntryNode struct {
	// Key is the manifest key.
	Key string

	// Name is the resolved entry name.
	Name string

	// Selected is true if at least one path matched a filter.
	Selected bool

	// Paths are the entry's normalized paths with the filters they matched.
	Paths []artpack.PathMatch
}

// Files returns the paths that matched at least one filter.
func (n *EntryNode) Files() []string {
	var out []string
	for _, p := range n.Paths {
		if len(p.Filters) > 0 {
			out = append(out, p.Path)
		}
	}
	return out
}

// FileNode is a source file of at least one selected entry.
type FileNode struct {
	// Path is the normalized path.
	Path string

	// Entries are the manifest keys whose selected entries bundle the file.
	Entries []string

	// Filters is the union of the filters that matched the file.
	Filters []string
}

// Explanation tells why an entry was or was not selected.
type Explanation struct {
	// Entry is the entry being explained.
	Entry *EntryNode

	// Collisions lists other manifest keys that resolve to the same entry name.
	Collisions []string

	// Reason is a one-line summary.
	Reason string
}

// Stats provides statistics about the graph.
type Stats struct {
	// ManifestEntries is the number of manifest entries.
	ManifestEntries int

	// SelectedEntries is the number of entries the filters selected.
	SelectedEntries int

	// Files is the number of distinct files of selected entries.
	Files int

	// SharedFiles is the number of files bundled by more than one entry.
	SharedFiles int

	// UnmatchedPaths counts paths of selected entries that matched no filter.
	UnmatchedPaths int
}
