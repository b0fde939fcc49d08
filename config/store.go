package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Store is the layered configuration view. A key resolves against, in
// order: the process environment, the .env file, the project config file
// and finally the built-in defaults.
//
// Environment layers are flat string maps. A key path such as
// "devPort:development" is looked up there by its exact name first and then
// with EnvSeparator in place of KeySeparator ("devPort__development").
type Store struct {
	env      map[string]string
	dotenv   map[string]string
	file     *Object
	defaults *Object
}

// NewStore builds a store from its layers. Any layer may be nil.
func NewStore(env, dotenv map[string]string, file, defaults *Object) *Store {
	return &Store{env: env, dotenv: dotenv, file: file, defaults: defaults}
}

// Lookup returns the value of key from the highest layer that sets it.
func (s *Store) Lookup(key string) (any, bool) {
	envKey := strings.ReplaceAll(key, KeySeparator, EnvSeparator)
	for _, layer := range []map[string]string{s.env, s.dotenv} {
		if v, ok := layer[key]; ok {
			return v, true
		}
		if v, ok := layer[envKey]; ok {
			return v, true
		}
	}
	for _, layer := range []*Object{s.file, s.defaults} {
		if layer == nil {
			continue
		}
		if v, ok := layer.Lookup(key); ok {
			return v, true
		}
	}
	return nil, false
}

// String returns key as a string. Numbers and booleans are formatted.
// A nil value reads as unset.
func (s *Store) String(key string) (string, bool, error) {
	v, ok := s.Lookup(key)
	if !ok || v == nil {
		return "", false, nil
	}
	switch t := v.(type) {
	case string:
		return t, true, nil
	case int64:
		return strconv.FormatInt(t, 10), true, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true, nil
	case bool:
		return strconv.FormatBool(t), true, nil
	}
	return "", false, &Error{Key: key, Err: fmt.Errorf("%w: want string, got %T", ErrInvalidValue, v)}
}

// Int returns key as an integer. Strings are parsed.
func (s *Store) Int(key string) (int, bool, error) {
	v, ok := s.Lookup(key)
	if !ok || v == nil {
		return 0, false, nil
	}
	switch t := v.(type) {
	case int64:
		return int(t), true, nil
	case float64:
		if t == math.Trunc(t) {
			return int(t), true, nil
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n, true, nil
		}
	}
	return 0, false, &Error{Key: key, Err: fmt.Errorf("%w: want integer, got %v", ErrInvalidValue, v)}
}

// Bool returns key as a boolean. Strings accept the strconv.ParseBool
// spellings; an empty string is false.
func (s *Store) Bool(key string) (bool, error) {
	v, ok := s.Lookup(key)
	if !ok || v == nil {
		return false, nil
	}
	switch t := v.(type) {
	case bool:
		return t, nil
	case int64:
		return t != 0, nil
	case string:
		if strings.TrimSpace(t) == "" {
			return false, nil
		}
		if b, err := strconv.ParseBool(strings.TrimSpace(t)); err == nil {
			return b, nil
		}
	}
	return false, &Error{Key: key, Err: fmt.Errorf("%w: want boolean, got %v", ErrInvalidValue, v)}
}

// Object returns key as an object, or nil when unset. Environment layers
// cannot hold objects.
func (s *Store) Object(key string) (*Object, error) {
	v, ok := s.Lookup(key)
	if !ok || v == nil {
		return nil, nil
	}
	obj, isObj := v.(*Object)
	if !isObj {
		return nil, &Error{Key: key, Err: fmt.Errorf("%w: want object, got %T", ErrInvalidValue, v)}
	}
	return obj, nil
}
