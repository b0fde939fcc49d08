package bundlefile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	artpack "github.com/albertocavalcante/go-artpack"
	"github.com/albertocavalcante/go-artpack/pages"
)

// FileName is the plan file name in the project root.
const FileName = "art.plan.json"

// planPermissions is the file permission mode for plans. Bundlers and CI
// jobs running as other users read the file.
const planPermissions = 0o644

// ReadFile reads and parses a plan from the given path.
func ReadFile(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}
	return Parse(data)
}

// Parse parses plan JSON data.
func Parse(data []byte) (*Plan, error) {
	var p Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse plan JSON: %w", err)
	}

	// Initialize nil fields for consistency
	if p.Filters == nil {
		p.Filters = []string{}
	}
	if p.Entries == nil {
		p.Entries = artpack.NewEntryMap(nil, nil)
	}
	if p.Sources == nil {
		p.Sources = make(map[string]string)
	}

	return &p, nil
}

// WriteFile writes the plan to the given path with deterministic formatting.
func (p *Plan) WriteFile(path string) error {
	data, err := p.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, planPermissions)
}

// WriteTo writes the plan to the given writer.
func (p *Plan) WriteTo(w io.Writer) (int64, error) {
	data, err := p.Marshal()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// Marshal serializes the plan to indented JSON. Entries keep manifest
// order and sources are sorted, so equal plans produce equal bytes.
func (p *Plan) Marshal() ([]byte, error) {
	ordered := orderedPlan{
		Version:  p.Version,
		Mode:     p.Mode,
		Tier:     p.Tier,
		Filters:  p.Filters,
		Polyfill: p.Polyfill,
		Entries:  p.Entries,
		Output:   p.Output,
		Pages:    p.Pages,
		Sources:  sortedStringMap(p.Sources),
	}
	if ordered.Filters == nil {
		ordered.Filters = []string{}
	}
	if ordered.Entries == nil {
		ordered.Entries = artpack.NewEntryMap(nil, nil)
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(ordered); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// orderedPlan is used for deterministic JSON output.
type orderedPlan struct {
	Version  int                       `json:"planVersion"`
	Mode     artpack.Mode              `json:"mode"`
	Tier     string                    `json:"tier"`
	Filters  []string                  `json:"filters"`
	Polyfill string                    `json:"polyfill"`
	Entries  *artpack.EntryMap         `json:"entries"`
	Output   *artpack.OutputDescriptor `json:"output,omitempty"`
	Pages    []pages.Page              `json:"pages,omitempty"`
	Sources  orderedStringMap          `json:"sources"`
}

// orderedStringMap maintains key order for JSON marshaling.
type orderedStringMap struct {
	keys   []string
	values map[string]string
}

func sortedStringMap(m map[string]string) orderedStringMap {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return orderedStringMap{keys: keys, values: m}
}

func (o orderedStringMap) MarshalJSON() ([]byte, error) {
	if len(o.keys) == 0 {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, _ := json.Marshal(k)
		valJSON, _ := json.Marshal(o.values[k])
		buf.Write(keyJSON)
		buf.WriteByte(':')
		buf.Write(valJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Exists returns true if a plan exists at the given path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// DefaultPath returns the default plan path for a project root.
func DefaultPath(workDir string) string {
	if workDir == "" {
		return FileName
	}
	return filepath.Join(workDir, FileName)
}
