package config

import (
	"strings"

	"github.com/albertocavalcante/go-artpack/internal/buildutil"
)

// KeySeparator delimits the segments of a configuration key path,
// e.g. "art:webpack:entry".
const KeySeparator = ":"

// EnvSeparator replaces KeySeparator in environment variable names, so
// "devPort__development" sets "devPort:development".
const EnvSeparator = "__"

// Object is a configuration object whose keys keep the order of the
// source document. Values are string, int64, float64, bool, nil, []any
// or *Object.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Keys returns the object's keys in document order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return append([]string(nil), o.keys...)
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Get returns the value stored directly under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Set stores value under key. A new key is appended to the key order.
func (o *Object) Set(key string, value any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Lookup walks a colon-delimited key path.
func (o *Object) Lookup(path string) (any, bool) {
	var cur any = o
	for _, seg := range strings.Split(path, KeySeparator) {
		obj, ok := cur.(*Object)
		if !ok {
			return nil, false
		}
		if cur, ok = obj.Get(seg); !ok {
			return nil, false
		}
	}
	return cur, true
}

// SetPath stores value at a colon-delimited key path, creating
// intermediate objects. A non-object on the way is replaced.
func (o *Object) SetPath(path string, value any) {
	segs := strings.Split(path, KeySeparator)
	cur := o
	for _, seg := range segs[:len(segs)-1] {
		next, ok := cur.values[seg].(*Object)
		if !ok {
			next = NewObject()
			cur.Set(seg, next)
		}
		cur = next
	}
	cur.Set(segs[len(segs)-1], value)
}

// fromDict converts a Starlark dict, recursively, to an Object.
func fromDict(d buildutil.Dict) *Object {
	o := NewObject()
	for _, kv := range d {
		o.Set(kv.Key, fromStarlark(kv.Value))
	}
	return o
}

func fromStarlark(v any) any {
	switch t := v.(type) {
	case buildutil.Dict:
		return fromDict(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = fromStarlark(item)
		}
		return out
	default:
		return v
	}
}
