// Package bundlefile reads and writes art.plan.json, the build plan handed
// to the bundler.
//
// A plan captures one resolution of the project: the selected entries with
// their ordered file lists, the output section and the HTML pages, together
// with SHA-256 hashes of the configuration files it was derived from. The
// hashes let a later run tell whether the plan is stale.
//
// # Plan Structure
//
// A plan contains:
//   - planVersion: schema version for format compatibility
//   - mode, tier: the NODE_ENV and BUILD_ENV the plan was built for
//   - filters: the module filters given on the command line
//   - polyfill: the file prepended to every entry
//   - entries: entry name to file list, in manifest order
//   - output: filename, chunkFilename, path and publicPath
//   - pages: one HTML page per entry
//   - sources: configuration file path to content hash
//
// # Usage
//
// Write a plan:
//
//	plan := bundlefile.New()
//	plan.Entries = entries
//	plan.Output = &output
//	if err := plan.RecordSources(cfg.Sources()...); err != nil {
//	    log.Fatal(err)
//	}
//	if err := plan.WriteFile(bundlefile.DefaultPath(cfg.WorkDir)); err != nil {
//	    log.Fatal(err)
//	}
//
// Read it back:
//
//	plan, err := bundlefile.ReadFile("art.plan.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	stale, err := plan.Stale()
package bundlefile
