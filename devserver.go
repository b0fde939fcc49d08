package artpack

import (
	"fmt"
	"slices"
	"strings"
)

// HotDevServerScript is the hot-module-replacement runtime entry.
const HotDevServerScript = "webpack/hot/dev-server"

// DevServerClientScript returns the dev server client entry for host:port.
// A trailing slash on host is dropped.
func DevServerClientScript(host string, port int) string {
	return fmt.Sprintf("webpack-dev-server/client?%s:%d/", trimSlash(host), port)
}

// DevServerScripts returns the two bootstrap entries prepended to every
// entry in development builds.
func DevServerScripts(host string, port int) []string {
	return []string{DevServerClientScript(host, port), HotDevServerScript}
}

// AttachDevServerScripts returns a new EntryMap whose file lists start with
// the dev server bootstrap scripts. The input is not modified.
//
// The transform is not idempotent: call it once per build, in development
// only.
func AttachDevServerScripts(entries *EntryMap, host string, port int) *EntryMap {
	scripts := DevServerScripts(host, port)
	out := newEntryMap(entries.Len())
	for _, name := range entries.Names() {
		files, _ := entries.Files(name)
		out.set(name, slices.Concat(scripts, files))
	}
	return out
}

// StripPolyfill returns a new EntryMap with a leading polyfill removed from
// every entry. Chunk naming wants the raw module files only.
func StripPolyfill(entries *EntryMap, polyfill string) *EntryMap {
	out := newEntryMap(entries.Len())
	for _, name := range entries.Names() {
		files, _ := entries.Files(name)
		if len(files) > 0 && files[0] == polyfill {
			files = files[1:]
		}
		out.set(name, files)
	}
	return out
}

// LabelPolyfill returns a new EntryMap in which a leading polyfill is shown
// as label. It is used when listing entries for confirmation.
func LabelPolyfill(entries *EntryMap, polyfill, label string) *EntryMap {
	out := newEntryMap(entries.Len())
	for _, name := range entries.Names() {
		files, _ := entries.Files(name)
		if len(files) > 0 && files[0] == polyfill {
			files[0] = label
		}
		out.set(name, files)
	}
	return out
}

func trimSlash(host string) string {
	return strings.TrimRight(strings.TrimSpace(host), "/")
}
