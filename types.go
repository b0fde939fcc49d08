package artpack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ManifestEntry is one logical module of the entry manifest.
type ManifestEntry struct {
	// Key is the logical module name. It may carry a query suffix after '?'
	// (e.g. "about?title=About&cdn=0") that is stripped for matching.
	Key string `json:"key"`

	// Paths are the source files of the module, in declaration order.
	// A path without a source extension names a directory whose index.js
	// is the module's entry file.
	Paths []string `json:"paths"`
}

// BaseKey returns Key without its query suffix.
func (e ManifestEntry) BaseKey() string {
	return StripQuery(e.Key)
}

// Manifest is the ordered mapping of logical module keys to source paths,
// as declared under art:webpack:entry in the project configuration.
type Manifest []ManifestEntry

// NewManifest builds a Manifest and verifies that keys are unique.
func NewManifest(entries ...ManifestEntry) (Manifest, error) {
	seen := make(map[string]struct{}, len(entries))
	m := make(Manifest, 0, len(entries))
	for _, e := range entries {
		if e.Key == "" {
			return nil, fmt.Errorf("manifest entry with %d paths has an empty key", len(e.Paths))
		}
		if _, dup := seen[e.Key]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, e.Key)
		}
		seen[e.Key] = struct{}{}
		m = append(m, ManifestEntry{Key: e.Key, Paths: append([]string(nil), e.Paths...)})
	}
	return m, nil
}

// Keys returns the manifest keys in declaration order.
func (m Manifest) Keys() []string {
	keys := make([]string, len(m))
	for i, e := range m {
		keys[i] = e.Key
	}
	return keys
}

// Lookup returns the entry with the given key.
func (m Manifest) Lookup(key string) (ManifestEntry, bool) {
	for _, e := range m {
		if e.Key == key {
			return e, true
		}
	}
	return ManifestEntry{}, false
}

// StripQuery removes everything from the first '?' onwards.
func StripQuery(key string) string {
	if i := strings.IndexByte(key, '?'); i >= 0 {
		return key[:i]
	}
	return key
}

// EntryMap maps resolved bundle entry names to their ordered file lists.
//
// An EntryMap is never mutated after it is returned. Files returns copies,
// and every transform (AttachDevServerScripts, StripPolyfill) builds a new map.
type EntryMap struct {
	names []string
	files map[string][]string
}

func newEntryMap(capacity int) *EntryMap {
	return &EntryMap{
		names: make([]string, 0, capacity),
		files: make(map[string][]string, capacity),
	}
}

// NewEntryMap builds an EntryMap from parallel name/file-list pairs,
// preserving the order of names. Later duplicates replace earlier ones.
func NewEntryMap(names []string, files [][]string) *EntryMap {
	em := newEntryMap(len(names))
	for i, name := range names {
		var list []string
		if i < len(files) {
			list = files[i]
		}
		em.set(name, append([]string(nil), list...))
	}
	return em
}

func (m *EntryMap) set(name string, files []string) {
	if _, ok := m.files[name]; !ok {
		m.names = append(m.names, name)
	}
	m.files[name] = files
}

// Len returns the number of entries.
func (m *EntryMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.names)
}

// Names returns entry names in resolution order.
func (m *EntryMap) Names() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.names...)
}

// Files returns a copy of the file list of the named entry.
func (m *EntryMap) Files(name string) ([]string, bool) {
	if m == nil {
		return nil, false
	}
	files, ok := m.files[name]
	if !ok {
		return nil, false
	}
	return append([]string(nil), files...), true
}

// Has reports whether the named entry exists.
func (m *EntryMap) Has(name string) bool {
	if m == nil {
		return false
	}
	_, ok := m.files[name]
	return ok
}

// Map returns a plain map copy, as consumed by bundler configuration schemas.
func (m *EntryMap) Map() map[string][]string {
	out := make(map[string][]string, m.Len())
	for _, name := range m.Names() {
		out[name], _ = m.Files(name)
	}
	return out
}

// MarshalJSON encodes the map as a JSON object whose keys keep resolution order.
func (m *EntryMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range m.Names() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		files, _ := m.Files(name)
		if files == nil {
			files = []string{}
		}
		val, err := json.Marshal(files)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping the key order of the document.
func (m *EntryMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("entry map: expected JSON object, got %v", tok)
	}
	out := newEntryMap(0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("entry map: expected string key, got %v", tok)
		}
		var files []string
		if err := dec.Decode(&files); err != nil {
			return fmt.Errorf("entry map: entry %q: %w", name, err)
		}
		out.set(name, files)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*m = *out
	return nil
}

// OutputDescriptor is the bundler's output section.
type OutputDescriptor struct {
	// Filename is the bundle filename pattern, e.g. "[name]/bundle.js".
	Filename string `json:"filename"`

	// ChunkFilename is the pattern for split chunks.
	ChunkFilename string `json:"chunkFilename"`

	// Path is the absolute output directory.
	Path string `json:"path"`

	// PublicPath is the URL prefix the bundles are served from.
	PublicPath string `json:"publicPath"`
}

// Mode is the process-wide build mode, read from NODE_ENV.
type Mode string

const (
	// ModeDevelopment is any non-production build (serve/watch).
	ModeDevelopment Mode = "development"

	// ModeProduction is an optimized release build.
	ModeProduction Mode = "production"
)

// ParseMode maps a NODE_ENV value to a Mode. Anything other than
// "production" is treated as development.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), string(ModeProduction)) {
		return ModeProduction
	}
	return ModeDevelopment
}

// IsProduction reports whether m is ModeProduction.
func (m Mode) IsProduction() bool {
	return m == ModeProduction
}

// TierProd is the deployment tier whose bundles are written to ./public/.
const TierProd = "prod"

// BuildSettings is the read-only build environment consumed by DeriveOutput
// and AttachDevServerScripts. It is normally produced once per process by
// config.Config.BuildSettings.
type BuildSettings struct {
	// Mode is development or production (NODE_ENV).
	Mode Mode

	// Tier is the named deployment sub-environment (BUILD_ENV), e.g. "prod" or "test".
	Tier string

	// DevHost is the dev server host including scheme, e.g. "http://localhost".
	DevHost string

	// DevPort is the dev server port.
	DevPort int

	// Version is appended as a cache-busting query to bundle names when
	// hashed names are disabled.
	Version string

	// EnableBundleHashName switches production bundle names to content hashes.
	EnableBundleHashName bool

	// PublicPaths maps a tier to its production public path URL
	// (art:webpack:output:<tier>PublicPath).
	PublicPaths map[string]string

	// WorkDir is the project root that output directories are resolved against.
	WorkDir string
}

// PublicPath returns the configured production public path for the tier.
func (s BuildSettings) PublicPath() (string, bool) {
	p, ok := s.PublicPaths[s.Tier]
	return p, ok && p != ""
}
