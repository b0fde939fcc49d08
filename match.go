package artpack

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Matcher decides whether a source path matches a glob pattern.
//
// Patterns use doublestar semantics: '*' matches within one path segment,
// '**' matches any number of segments and '{a,b}' is an alternation. A
// pattern without a '/' is matched against the last path segment only
// (match-base). Invalid patterns match nothing.
//
// Pattern validity is cached, so a Matcher is worth reusing across
// resolutions. A Matcher is safe for concurrent use.
type Matcher struct {
	valid *lru.Cache[string, bool]
}

// NewMatcher creates a Matcher whose validity cache holds up to size patterns.
// A size <= 0 disables the cache.
func NewMatcher(size int) *Matcher {
	m := &Matcher{}
	if size > 0 {
		// lru.New only fails for non-positive sizes.
		m.valid, _ = lru.New[string, bool](size)
	}
	return m
}

// Valid reports whether pattern is a well-formed glob.
func (m *Matcher) Valid(pattern string) bool {
	pattern = cleanPattern(pattern)
	if m == nil || m.valid == nil {
		return doublestar.ValidatePattern(pattern)
	}
	if ok, hit := m.valid.Get(pattern); hit {
		return ok
	}
	ok := doublestar.ValidatePattern(pattern)
	m.valid.Add(pattern, ok)
	return ok
}

// Match reports whether p matches pattern.
func (m *Matcher) Match(pattern, p string) bool {
	if !m.Valid(pattern) {
		return false
	}
	pattern = cleanPattern(pattern)
	p = cleanPath(p, strings.HasPrefix(pattern, "/"))
	if !strings.Contains(pattern, "/") {
		p = path.Base(p)
	}
	ok, err := doublestar.Match(pattern, p)
	return err == nil && ok
}

// Filter returns the paths that match pattern, in input order.
func (m *Matcher) Filter(pattern string, paths []string) []string {
	var out []string
	for _, p := range paths {
		if m.Match(pattern, p) {
			out = append(out, p)
		}
	}
	return out
}

// cleanPattern drops a leading "./" so "./client/**" and "client/**" agree.
func cleanPattern(pattern string) string {
	for strings.HasPrefix(pattern, "./") {
		pattern = pattern[2:]
	}
	return pattern
}

// cleanPath normalizes a candidate path for matching. Relative patterns
// see absolute paths without their leading '/'.
func cleanPath(p string, absolutePattern bool) string {
	p = path.Clean(p)
	if !absolutePattern {
		p = strings.TrimLeft(p, "/")
	}
	return p
}
