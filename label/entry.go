// Package label provides a validated, immutable entry key type.
//
// An entry key names a logical module in the manifest and may carry page
// options as a URL query suffix:
//
//	pages/about?title=About&template=about.html&cdn=0
//
// Zero values are invalid; use ParseEntryKey or MustEntryKey.
//
// # Validation Patterns
//
// Entry names are '/'-separated segments matching [A-Za-z0-9_.@-]+.
// Segments "." and ".." are rejected, as are leading and trailing slashes.
package label

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
)

// Query parameters understood in entry keys.
const (
	ParamTemplate = "template"
	ParamTitle    = "title"
	ParamCDN      = "cdn"
)

// EntryKey is a parsed manifest key.
type EntryKey struct {
	raw   string
	name  string
	query url.Values
}

var entrySegmentRegex = regexp.MustCompile(`^[A-Za-z0-9_.@-]+$`)

// ParseEntryKey parses and validates a manifest key.
func ParseEntryKey(s string) (EntryKey, error) {
	if s == "" {
		return EntryKey{}, fmt.Errorf("entry key cannot be empty")
	}

	name, rawQuery, _ := strings.Cut(s, "?")
	if name == "" {
		return EntryKey{}, fmt.Errorf("invalid entry key %q: missing name before '?'", s)
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == "" || seg == "." || seg == ".." || !entrySegmentRegex.MatchString(seg) {
			return EntryKey{}, fmt.Errorf("invalid entry key %q: bad segment %q", s, seg)
		}
	}

	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return EntryKey{}, fmt.Errorf("invalid entry key %q: query: %w", s, err)
	}

	return EntryKey{raw: s, name: name, query: query}, nil
}

// MustEntryKey parses an EntryKey or panics. Use only for constants/tests.
func MustEntryKey(s string) EntryKey {
	k, err := ParseEntryKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

// String returns the key as written, query included.
func (k EntryKey) String() string {
	return k.raw
}

// Name returns the key without its query.
func (k EntryKey) Name() string {
	return k.name
}

// IsEmpty returns true if this is a zero-value EntryKey.
func (k EntryKey) IsEmpty() bool {
	return k.raw == ""
}

// HasQuery reports whether the key carries a query suffix.
func (k EntryKey) HasQuery() bool {
	return len(k.query) > 0
}

// Param returns the first value of a query parameter.
func (k EntryKey) Param(name string) string {
	return k.query.Get(name)
}

// Template returns the page file name from ?template=, or "".
func (k EntryKey) Template() string {
	return k.Param(ParamTemplate)
}

// Title returns the page title from ?title=, or "".
func (k EntryKey) Title() string {
	return k.Param(ParamTitle)
}

// CDNEnabled reports whether the page may load assets from the CDN.
// Only cdn=0 and cdn=false turn it off.
func (k EntryKey) CDNEnabled() bool {
	switch k.Param(ParamCDN) {
	case "0", "false":
		return false
	}
	return true
}

// Dir returns the module directory below client/ for this entry: the name
// with the first occurrence of virtualPath removed.
func (k EntryKey) Dir(virtualPath string) string {
	dir := k.name
	if virtualPath != "" {
		dir = strings.Replace(dir, virtualPath, "", 1)
	}
	return strings.Trim(path.Clean("/"+dir), "/")
}
