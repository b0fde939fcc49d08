// Package graph provides an entry/file graph of a resolution and query
// capabilities over it.
//
// The graph is bipartite: manifest entries on one side, normalized source
// files on the other, with an edge wherever a file is part of a selected
// entry. It answers questions such as:
//
//   - Why was an entry selected (or not) by the current module filters?
//   - Which entries bundle a given source file?
//   - Which files are shared between entries?
//
// # Building a Graph
//
//	r, _ := artpack.NewResolver()
//	g := graph.Build(r, manifest, filters)
//
// # Querying the Graph
//
//	owners := g.EntriesFor("client/lib/util.ts")
//	explanation, _ := g.Explain("pages/home")
//	shared := g.SharedFiles()
//
// # Output Formats
//
//	jsonBytes, _ := g.ToJSON()
//	dotString := g.ToDOT()
//	textString := g.ToText()
package graph
