package artpack

import (
	"fmt"
	"slices"
)

// Resolver turns a Manifest and a set of module filters into an EntryMap.
//
// Resolution proceeds in three phases:
//  1. Filter compilation: every module filter becomes a glob rooted at the
//     client directory (see CompilePattern). No filters means "**".
//  2. Matching: the paths of every manifest entry are normalized with
//     NormalizeExtensions and tested against every glob. An entry is
//     selected when at least one of its paths matches at least one glob.
//  3. Emission: each selected entry contributes the polyfill followed by its
//     matching paths, in manifest order.
//
// Filters that are not valid globs match nothing. Resolution never fails;
// a missing or empty manifest yields an empty EntryMap.
//
// When query suffixes are stripped and two keys collapse to the same entry
// name (e.g. "about?tab=1" and "about?tab=2"), the later key's files are
// appended to the earlier ones, skipping files already present.
//
// A Resolver is safe for concurrent use.
type Resolver struct {
	cfg     *resolverConfig
	matcher *Matcher
}

// NewResolver creates a resolver configured by opts.
func NewResolver(opts ...Option) (*Resolver, error) {
	cfg, err := newResolverConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("configure resolver: %w", err)
	}
	m := cfg.matcher
	if m == nil {
		m = NewMatcher(cfg.patternCacheSize)
	}
	return &Resolver{cfg: cfg, matcher: m}, nil
}

// PolyfillPath returns the file prepended to every entry.
func (r *Resolver) PolyfillPath() string {
	return r.cfg.polyfillPath
}

// Compile compiles filters and drops the ones that are not valid globs.
func (r *Resolver) Compile(filters []string) []CompiledPattern {
	log := r.cfg.log()
	compiled := CompilePatterns(filters)
	valid := make([]CompiledPattern, 0, len(compiled))
	for _, p := range compiled {
		if !r.matcher.Valid(p.Glob) {
			log.Warn("module filter matches nothing",
				"filter", p.Filter,
				"glob", p.Glob,
				"error", ErrInvalidFilter)
			continue
		}
		log.Debug("compiled module filter", "filter", p.Filter, "glob", p.Glob)
		valid = append(valid, p)
	}
	return valid
}

// Resolve selects the manifest entries matched by filters.
func (r *Resolver) Resolve(manifest Manifest, filters []string) *EntryMap {
	log := r.cfg.log()
	patterns := r.Compile(filters)
	entries := newEntryMap(len(manifest))

	for _, e := range manifest {
		matched := r.matchPaths(NormalizeExtensions(e.Paths), patterns)
		if len(matched) == 0 {
			continue
		}

		name := r.EntryName(e.Key)

		if existing, ok := entries.files[name]; ok {
			log.Warn("manifest keys collapse to one entry; merging files",
				"entry", name,
				"key", e.Key)
			entries.files[name] = mergeFiles(existing, matched)
			continue
		}

		files := make([]string, 0, len(matched)+1)
		files = append(files, r.cfg.polyfillPath)
		files = append(files, matched...)
		entries.set(name, files)
	}

	log.Debug("resolved entries",
		"manifest", len(manifest),
		"filters", len(patterns),
		"entries", entries.Len())
	return entries
}

// EntryName returns the entry name a manifest key resolves to.
func (r *Resolver) EntryName(key string) string {
	if r.cfg.keepQuery {
		return key
	}
	return StripQuery(key)
}

// PathMatch records the filters a normalized manifest path matched.
type PathMatch struct {
	Path    string   `json:"path"`
	Filters []string `json:"filters"`
}

// MatchEntry tests every normalized path of entry against patterns.
// Paths that matched nothing have an empty Filters slice.
func (r *Resolver) MatchEntry(entry ManifestEntry, patterns []CompiledPattern) []PathMatch {
	paths := NormalizeExtensions(entry.Paths)
	out := make([]PathMatch, 0, len(paths))
	for _, p := range paths {
		hits := []string{}
		for _, cp := range patterns {
			if r.matcher.Match(cp.Glob, p) {
				hits = append(hits, cp.Filter)
			}
		}
		out = append(out, PathMatch{Path: p, Filters: hits})
	}
	return out
}

// Explain returns, for every normalized path of the manifest entry, the
// filters it matched. Paths that matched nothing map to an empty slice.
func (r *Resolver) Explain(entry ManifestEntry, filters []string) map[string][]string {
	out := make(map[string][]string)
	for _, m := range r.MatchEntry(entry, r.Compile(filters)) {
		out[m.Path] = m.Filters
	}
	return out
}

// matchPaths returns the paths matched by any pattern, keeping path order.
func (r *Resolver) matchPaths(paths []string, patterns []CompiledPattern) []string {
	var matched []string
	for _, p := range paths {
		for _, cp := range patterns {
			if r.matcher.Match(cp.Glob, p) {
				matched = append(matched, p)
				break
			}
		}
	}
	return matched
}

func mergeFiles(existing, extra []string) []string {
	out := slices.Clone(existing)
	for _, f := range extra {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}
