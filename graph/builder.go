package graph

import (
	"slices"

	artpack "github.com/albertocavalcante/go-artpack"
)

// Build resolves manifest with filters and records every match.
//
// The graph agrees with r.Resolve: an entry is selected exactly when
// Resolve would emit it, and a selected entry's file nodes are the files
// Resolve lists after the polyfill.
func Build(r *artpack.Resolver, manifest artpack.Manifest, filters []string) *Graph {
	patterns := r.Compile(filters)
	g := &Graph{
		Polyfill: r.PolyfillPath(),
		Filters:  patterns,
		Entries:  make([]*EntryNode, 0, len(manifest)),
		Files:    make(map[string]*FileNode),
	}

	for _, e := range manifest {
		node := &EntryNode{
			Key:   e.Key,
			Name:  r.EntryName(e.Key),
			Paths: r.MatchEntry(e, patterns),
		}
		for _, p := range node.Paths {
			if len(p.Filters) > 0 {
				node.Selected = true
				break
			}
		}
		g.Entries = append(g.Entries, node)

		if !node.Selected {
			continue
		}
		for _, p := range node.Paths {
			if len(p.Filters) == 0 {
				continue
			}
			g.addEdge(node.Key, p)
		}
	}

	return g
}

func (g *Graph) addEdge(key string, p artpack.PathMatch) {
	file := normalizeFile(p.Path)
	f, ok := g.Files[file]
	if !ok {
		f = &FileNode{Path: file}
		g.Files[file] = f
	}
	if !slices.Contains(f.Entries, key) {
		f.Entries = append(f.Entries, key)
	}
	for _, filter := range p.Filters {
		if !slices.Contains(f.Filters, filter) {
			f.Filters = append(f.Filters, filter)
		}
	}
}
