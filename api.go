// Package artpack resolves a front-end project's entry manifest into the
// entry graph and output settings handed to the bundler.
//
// # Overview
//
// The package provides four main components:
//
//   - Resolver: selects manifest entries with module filters and builds an EntryMap
//   - Matcher: glob matching with match-base semantics
//   - AttachDevServerScripts: prepends dev server bootstrap scripts to every entry
//   - DeriveOutput: computes filename patterns, output directory and public path
//
// # Quick Start
//
//	manifest, _ := artpack.NewManifest(
//	    artpack.ManifestEntry{Key: "home", Paths: []string{"client/pages/home/index.tsx"}},
//	    artpack.ManifestEntry{Key: "about?title=About", Paths: []string{"client/pages/about"}},
//	)
//
//	// Build everything ("**")
//	entries, err := artpack.ResolveEntries(manifest, nil)
//
//	// Build only modules under client/pages/home
//	entries, err := artpack.ResolveEntries(manifest, []string{"pages/home"})
//
//	// Development builds get the dev server scripts
//	entries = artpack.AttachDevServerScripts(entries, "http://localhost", 3000)
//
//	output, err := artpack.DeriveOutput(settings)
//
// Configuration is loaded by package config; entries and output are written
// for the bundler by package bundlefile.
//
// # Thread Safety
//
// All public types in this package are safe for concurrent use. EntryMap
// values are never modified after they are returned.
package artpack

// ResolveEntries resolves manifest with filters.
//
// An empty filter list selects everything. Options default to
// DefaultOptions.
func ResolveEntries(manifest Manifest, filters []string, opts ...Option) (*EntryMap, error) {
	r, err := NewResolver(append(DefaultOptions(), opts...)...)
	if err != nil {
		return nil, err
	}
	return r.Resolve(manifest, filters), nil
}

// ResolveDevEntries resolves manifest and, for development builds,
// attaches the dev server scripts for the configured host and port.
func ResolveDevEntries(manifest Manifest, filters []string, s BuildSettings, opts ...Option) (*EntryMap, error) {
	entries, err := ResolveEntries(manifest, filters, opts...)
	if err != nil {
		return nil, err
	}
	if s.Mode.IsProduction() {
		return entries, nil
	}
	return AttachDevServerScripts(entries, s.DevHost, s.DevPort), nil
}
