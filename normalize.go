package artpack

import "path"

// SourceExtensions are the file extensions an entry file may carry.
var SourceExtensions = []string{".js", ".jsx", ".ts", ".tsx"}

// IndexFile is appended to manifest paths that name a directory.
const IndexFile = "index.js"

// HasSourceExtension reports whether p ends in one of SourceExtensions.
func HasSourceExtension(p string) bool {
	ext := path.Ext(p)
	for _, e := range SourceExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// NormalizeExtensions returns a copy of paths in which every path without an
// extension is replaced by its index.js. Paths with any extension, source or
// asset, are kept as written; only those with a source extension can later
// match a compiled pattern. The result keeps input order and normalizing it
// again changes nothing.
func NormalizeExtensions(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		if path.Ext(p) != "" {
			out[i] = p
			continue
		}
		out[i] = path.Join(p, IndexFile)
	}
	return out
}
