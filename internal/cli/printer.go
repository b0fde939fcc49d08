package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"

	artpack "github.com/albertocavalcante/go-artpack"
	"github.com/albertocavalcante/go-artpack/bundlefile"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warnColor    = color.New(color.FgYellow)
	noticeColor  = color.New(color.FgCyan, color.Bold)
	keyColor     = color.New(color.FgGreen, color.Bold)
	fileColor    = color.New(color.FgWhite)
	polyColor    = color.New(color.FgMagenta)
	boldColor    = color.New(color.Bold)
	commandColor = color.New(color.FgCyan)
	addedColor   = color.New(color.FgGreen)
	removedColor = color.New(color.FgRed)
	changedColor = color.New(color.FgYellow)
)

// noModulesMessage is printed when no manifest entry survives the filters.
const noModulesMessage = "No available modules here, please check `--modules`!"

// polyfillLabel replaces the polyfill path in entry listings.
const polyfillLabel = "polyfills"

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printEntries lists entries as an indented, colored JSON-like object.
func printEntries(w io.Writer, entries *artpack.EntryMap, label string) {
	fmt.Fprintln(w, "{")
	names := entries.Names()
	for i, name := range names {
		files, _ := entries.Files(name)
		fmt.Fprintf(w, "  %s: [\n", keyColor.Sprintf("%q", name))
		for j, f := range files {
			c := fileColor
			if f == label {
				c = polyColor
			}
			sep := ","
			if j == len(files)-1 {
				sep = ""
			}
			fmt.Fprintf(w, "    %s%s\n", c.Sprintf("%q", f), sep)
		}
		sep := ","
		if i == len(names)-1 {
			sep = ""
		}
		fmt.Fprintf(w, "  ]%s\n", sep)
	}
	fmt.Fprintln(w, "}")
}

func printDiff(w io.Writer, d *artpack.EntryDiff) {
	if d.IsEmpty() {
		fmt.Fprintln(w, "entries unchanged")
		return
	}
	for _, e := range d.Added {
		addedColor.Fprintf(w, "+ %s (%s)\n", e.Name, strings.Join(e.Files, ", "))
	}
	for _, e := range d.Removed {
		removedColor.Fprintf(w, "- %s\n", e.Name)
	}
	for _, e := range d.Changed {
		changedColor.Fprintf(w, "~ %s (%d -> %d files)\n", e.Name, len(e.OldFiles), len(e.NewFiles))
	}
}

// printPlanDiff prints the changed plan sources followed by the differences
// between the old and the fresh plan.
func printPlanDiff(w io.Writer, d *bundlefile.Diff, stale []string) {
	sources := slices.Concat(stale, d.SourcesChanged)
	slices.Sort(sources)
	for _, src := range slices.Compact(sources) {
		changedColor.Fprintf(w, "~ source %s\n", src)
	}
	if d.OutputChanged {
		changedColor.Fprintln(w, "~ output")
	}
	for _, f := range d.PagesAdded {
		addedColor.Fprintf(w, "+ page %s\n", f)
	}
	for _, f := range d.PagesRemoved {
		removedColor.Fprintf(w, "- page %s\n", f)
	}
	printDiff(w, d.Entries)
}
