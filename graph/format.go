package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	artpack "github.com/albertocavalcante/go-artpack"
)

const separatorWidth = 60 // Width of separator lines in text output

// JSONGraph is the JSON form of a Graph.
type JSONGraph struct {
	Polyfill string      `json:"polyfill"`
	Filters  []string    `json:"filters"`
	Entries  []JSONEntry `json:"entries"`
	Files    []JSONFile  `json:"files"`
}

// JSONEntry is an entry in JSONGraph.
type JSONEntry struct {
	Key       string   `json:"key"`
	Name      string   `json:"name"`
	Selected  bool     `json:"selected"`
	Files     []string `json:"files,omitempty"`
	Unmatched []string `json:"unmatched,omitempty"`
}

// JSONFile is a file in JSONGraph.
type JSONFile struct {
	Path    string   `json:"path"`
	Entries []string `json:"entries"`
	Filters []string `json:"filters"`
}

// ToJSON outputs the graph as indented JSON. Entries keep manifest order;
// files are sorted by path.
func (g *Graph) ToJSON() ([]byte, error) {
	return json.MarshalIndent(g.toJSONGraph(), "", "  ")
}

func (g *Graph) toJSONGraph() *JSONGraph {
	out := &JSONGraph{
		Polyfill: g.Polyfill,
		Filters:  make([]string, len(g.Filters)),
		Entries:  make([]JSONEntry, 0, len(g.Entries)),
		Files:    make([]JSONFile, 0, len(g.Files)),
	}
	for i, f := range g.Filters {
		out.Filters[i] = f.Filter
	}
	for _, n := range g.Entries {
		e := JSONEntry{Key: n.Key, Name: n.Name, Selected: n.Selected}
		for _, p := range n.Paths {
			if len(p.Filters) > 0 {
				e.Files = append(e.Files, p.Path)
			} else {
				e.Unmatched = append(e.Unmatched, p.Path)
			}
		}
		out.Entries = append(out.Entries, e)
	}
	for _, p := range g.sortedFiles() {
		f := g.Files[p]
		out.Files = append(out.Files, JSONFile{Path: f.Path, Entries: f.Entries, Filters: f.Filters})
	}
	return out
}

// ToDOT outputs the graph in Graphviz DOT format. Selected entries are
// bold boxes, unselected ones dashed; files are ellipses.
func (g *Graph) ToDOT() string {
	var buf bytes.Buffer

	buf.WriteString("digraph entries {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box];\n\n")

	for _, n := range g.Entries {
		style := "bold"
		if !n.Selected {
			style = "dashed"
		}
		fmt.Fprintf(&buf, "  %q [label=%q, style=%s];\n", "entry:"+n.Key, n.Key, style)
	}
	for _, p := range g.sortedFiles() {
		fmt.Fprintf(&buf, "  %q [label=%q, shape=ellipse];\n", "file:"+p, p)
	}

	buf.WriteString("\n")

	for _, n := range g.Entries {
		if !n.Selected {
			continue
		}
		for _, p := range n.Paths {
			if len(p.Filters) == 0 {
				continue
			}
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n",
				"entry:"+n.Key, "file:"+normalizeFile(p.Path), strings.Join(p.Filters, ","))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ToText outputs a human-readable text representation of the graph.
func (g *Graph) ToText() string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Entry Graph (filters: %s)\n", g.filterList())
	buf.WriteString(strings.Repeat("=", separatorWidth) + "\n\n")

	stats := g.Stats()
	fmt.Fprintf(&buf, "Manifest entries: %d\n", stats.ManifestEntries)
	fmt.Fprintf(&buf, "Selected entries: %d\n", stats.SelectedEntries)
	fmt.Fprintf(&buf, "Files: %d\n", stats.Files)
	if stats.SharedFiles > 0 {
		fmt.Fprintf(&buf, "Shared files: %d\n", stats.SharedFiles)
	}
	buf.WriteString("\n")

	buf.WriteString("Entries:\n")
	for _, n := range g.Entries {
		if !n.Selected {
			continue
		}
		buf.WriteString(n.Key)
		if n.Name != n.Key {
			fmt.Fprintf(&buf, " -> %s", n.Name)
		}
		buf.WriteString("\n")

		files := []string{g.Polyfill}
		for _, f := range n.Files() {
			files = append(files, normalizeFile(f))
		}
		for i, f := range files {
			connector := "├── "
			if i == len(files)-1 {
				connector = "└── "
			}
			buf.WriteString(connector + f)
			if i == 0 {
				buf.WriteString(" (polyfill)")
			} else if owners := g.Files[f]; owners != nil && len(owners.Entries) > 1 {
				buf.WriteString(" (shared)")
			}
			buf.WriteString("\n")
		}
	}

	var skipped []string
	for _, n := range g.Entries {
		if !n.Selected {
			skipped = append(skipped, n.Key)
		}
	}
	if len(skipped) > 0 {
		fmt.Fprintf(&buf, "\nNot selected: %s\n", strings.Join(skipped, ", "))
	}

	return buf.String()
}

// ToExplainText outputs a human-readable explanation for one entry.
func (g *Graph) ToExplainText(nameOrKey string) (string, error) {
	exp, err := g.Explain(nameOrKey)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Explanation for: %s\n", exp.Entry.Key)
	buf.WriteString(strings.Repeat("=", separatorWidth) + "\n\n")

	status := "not selected"
	if exp.Entry.Selected {
		status = "selected as " + exp.Entry.Name
	}
	fmt.Fprintf(&buf, "Status: %s\n", status)
	fmt.Fprintf(&buf, "Reason: %s\n", exp.Reason)

	if len(exp.Entry.Paths) > 0 {
		buf.WriteString("\nPaths:\n")
		for _, p := range exp.Entry.Paths {
			mark := "  "
			matched := "no filter"
			if !artpack.HasSourceExtension(p.Path) {
				matched = "not a source file"
			}
			if len(p.Filters) > 0 {
				mark = "✓ "
				matched = strings.Join(p.Filters, ", ")
			}
			fmt.Fprintf(&buf, "  %s%s - %s\n", mark, p.Path, matched)
		}
	}

	if len(exp.Collisions) > 0 {
		fmt.Fprintf(&buf, "\nMerged with: %s\n", strings.Join(exp.Collisions, ", "))
	}

	return buf.String(), nil
}

func (g *Graph) sortedFiles() []string {
	paths := make([]string, 0, len(g.Files))
	for p := range g.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
