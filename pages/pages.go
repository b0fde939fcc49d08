// Package pages plans the HTML page emitted for every resolved entry.
//
// Each entry needs an index.template.ejs in its module directory under
// client/. Page options come from the entry key's query: ?template= names
// the output file, ?title= the page title and ?cdn=0 disables the CDN
// path for the page.
package pages

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	artpack "github.com/albertocavalcante/go-artpack"
	"github.com/albertocavalcante/go-artpack/label"
)

// TemplateFile is the per-module page template.
const TemplateFile = "index.template.ejs"

// DefaultPageFile is the output file name when the key has no ?template=.
const DefaultPageFile = "index.html"

// Page is the plan for one HTML page.
type Page struct {
	// Entry is the chunk the page loads: the entry key without its query.
	Entry string `json:"entry"`

	// Key is the full manifest key.
	Key string `json:"key"`

	// Template is the absolute path of the page template.
	Template string `json:"template"`

	// Filename is the page path relative to the output directory.
	Filename string `json:"filename"`

	Title      string `json:"title"`
	BuildEnv   string `json:"buildEnv"`
	PublicPath string `json:"publicPath"`

	// CDNPath is PublicPath for production pages that allow the CDN,
	// otherwise empty.
	CDNPath string `json:"cdnPath"`

	// Minify is set for production builds.
	Minify bool `json:"minify"`

	// ManifestPath is the module directory the chunk manifest is written to.
	ManifestPath string `json:"manifestPath"`
}

// Planner builds page plans for a project.
type Planner struct {
	// WorkDir is the project root containing client/.
	WorkDir string

	// ProjectVirtualPath is removed from entry names to find module directories.
	ProjectVirtualPath string

	// Settings is the build environment.
	Settings artpack.BuildSettings
}

// Plan returns one Page per entry key, in order. Keys are expected to keep
// their query suffix (resolve with artpack.WithKeepQuery(true)).
//
// Every entry without a template is reported; the returned error wraps
// artpack.ErrMissingTemplate once per missing file.
func (p Planner) Plan(keys []string) ([]Page, error) {
	publicPath, _ := p.Settings.PublicPath()
	prod := p.Settings.Mode.IsProduction()

	pages := make([]Page, 0, len(keys))
	var errs []error
	for _, raw := range keys {
		key, err := label.ParseEntryKey(raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		moduleDir := filepath.Join(p.WorkDir, artpack.ClientDir, filepath.FromSlash(key.Dir(p.ProjectVirtualPath)))
		tmpl := filepath.Join(moduleDir, TemplateFile)
		if info, err := os.Stat(tmpl); err != nil || info.IsDir() {
			errs = append(errs, fmt.Errorf("%w: entry %q needs %s", artpack.ErrMissingTemplate, key.Name(), tmpl))
			continue
		}

		pageFile := key.Template()
		if pageFile == "" {
			pageFile = DefaultPageFile
		}

		page := Page{
			Entry:        key.Name(),
			Key:          key.String(),
			Template:     tmpl,
			Filename:     path.Join(key.Name(), pageFile),
			Title:        key.Title(),
			BuildEnv:     p.Settings.Tier,
			PublicPath:   publicPath,
			Minify:       prod,
			ManifestPath: moduleDir,
		}
		if prod && key.CDNEnabled() {
			page.CDNPath = publicPath
		}
		pages = append(pages, page)
	}

	if len(errs) > 0 {
		return pages, errors.Join(errs...)
	}
	return pages, nil
}
