package artpack

import (
	"path"
	"strings"
)

// ClientDir is the project directory all module filters are rooted at.
const ClientDir = "client"

// CatchAllFilter is the filter used when none is given.
const CatchAllFilter = "**"

// sourceGlob matches any entry file below a directory.
const sourceGlob = "**/*.{js,jsx,ts,tsx}"

// CompiledPattern is a module filter turned into a glob over manifest paths.
type CompiledPattern struct {
	// Filter is the filter as given on the command line.
	Filter string `json:"filter"`

	// Root is the directory below ClientDir the filter selects.
	// It is empty when the filter selects all of ClientDir.
	Root string `json:"root,omitempty"`

	// Glob is the pattern manifest paths are matched against.
	Glob string `json:"glob"`
}

// CatchAll reports whether the pattern selects every entry file, including
// those outside ClientDir. Only CatchAllFilter compiles to such a pattern.
func (p CompiledPattern) CatchAll() bool {
	return p.Glob == sourceGlob
}

// CompilePattern turns a module filter such as "pages/home", "client/pages/*"
// or "**" into a glob over manifest paths:
//
//	"pages/home"     -> "./client/pages/home/**/*.{js,jsx,ts,tsx}"
//	"client/pages/*" -> "./client/pages/**/*.{js,jsx,ts,tsx}"
//	"client", "*"    -> "./client/**/*.{js,jsx,ts,tsx}"
//	"**"             -> "**/*.{js,jsx,ts,tsx}"
//
// The default filter (CatchAllFilter, or an empty one) selects every entry
// file wherever it lives. Every other filter stays inside ClientDir.
func CompilePattern(filter string) CompiledPattern {
	root := strings.TrimSpace(filter)
	if root == "" || root == CatchAllFilter {
		return CompiledPattern{Filter: filter, Glob: sourceGlob}
	}
	root = stripDotSlash(root)
	root = stripClientSegment(root)
	root = stripTrailingWildcards(root)

	if root == "" {
		return CompiledPattern{Filter: filter, Glob: "./" + path.Join(ClientDir, sourceGlob)}
	}
	root = path.Clean(root)
	return CompiledPattern{
		Filter: filter,
		Root:   root,
		Glob:   "./" + path.Join(ClientDir, root, sourceGlob),
	}
}

// CompilePatterns compiles each filter, defaulting to CatchAllFilter.
func CompilePatterns(filters []string) []CompiledPattern {
	if len(filters) == 0 {
		filters = []string{CatchAllFilter}
	}
	out := make([]CompiledPattern, len(filters))
	for i, f := range filters {
		out[i] = CompilePattern(f)
	}
	return out
}

func stripDotSlash(s string) string {
	for strings.HasPrefix(s, "./") {
		s = s[2:]
	}
	return strings.TrimLeft(s, "/")
}

// stripClientSegment removes a leading "client" path segment; "clientele"
// is left alone.
func stripClientSegment(s string) string {
	if s == ClientDir {
		return ""
	}
	if rest, ok := strings.CutPrefix(s, ClientDir+"/"); ok {
		return rest
	}
	return s
}

// stripTrailingWildcards removes trailing '*' runs and the separators
// between them, so "pages/**", "pages/*/" and "pages" agree.
func stripTrailingWildcards(s string) string {
	return strings.TrimRight(s, "*/")
}
