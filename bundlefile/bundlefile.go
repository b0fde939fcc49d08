package bundlefile

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sort"

	artpack "github.com/albertocavalcante/go-artpack"
	"github.com/albertocavalcante/go-artpack/pages"
)

// CurrentVersion is the plan schema version written by this package.
const CurrentVersion = 1

// Plan is the resolved build plan of a project.
type Plan struct {
	// Version is the schema version.
	Version int `json:"planVersion"`

	// Mode is the build mode the plan was resolved for.
	Mode artpack.Mode `json:"mode"`

	// Tier is the deployment tier (BUILD_ENV).
	Tier string `json:"tier"`

	// Filters are the module filters, as given.
	Filters []string `json:"filters"`

	// Polyfill is the file prepended to every entry.
	Polyfill string `json:"polyfill"`

	// Entries are the selected entries in manifest order.
	Entries *artpack.EntryMap `json:"entries"`

	// Output is the bundler output section. Nil when it could not be derived.
	Output *artpack.OutputDescriptor `json:"output,omitempty"`

	// Pages are the HTML pages of the entries.
	Pages []pages.Page `json:"pages,omitempty"`

	// Sources maps configuration files to their content hash.
	Sources map[string]string `json:"sources"`
}

// New creates an empty plan with the current schema version.
func New() *Plan {
	return &Plan{
		Version: CurrentVersion,
		Filters: []string{},
		Entries: artpack.NewEntryMap(nil, nil),
		Sources: make(map[string]string),
	}
}

// IsCompatible reports whether the plan was written with the current schema.
func (p *Plan) IsCompatible() bool {
	return p.Version == CurrentVersion
}

// SetSourceHash records the content hash of a configuration file.
func (p *Plan) SetSourceHash(path, hash string) {
	p.Sources[path] = hash
}

// RecordSources hashes each file and records it as a plan source.
func (p *Plan) RecordSources(paths ...string) error {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("hash plan source: %w", err)
		}
		p.SetSourceHash(path, HashContent(data))
	}
	return nil
}

// Stale reports the recorded sources whose content changed or which no
// longer exist, sorted by path. An empty result means the plan is current.
func (p *Plan) Stale() ([]string, error) {
	var stale []string
	for path, want := range p.Sources {
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			stale = append(stale, path)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("check plan source: %w", err)
		}
		if !VerifyHash(data, want) {
			stale = append(stale, path)
		}
	}
	sort.Strings(stale)
	return stale, nil
}

// HashContent computes the SHA256 hash of content.
// Returns the hash in the format "sha256:<hex>".
func HashContent(content []byte) string {
	h := sha256.Sum256(content)
	return "sha256:" + hex.EncodeToString(h[:])
}

// VerifyHash checks if content matches the expected hash.
func VerifyHash(content []byte, expectedHash string) bool {
	return HashContent(content) == expectedHash
}
