package config

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ModulesKey is the environment key carrying the CLI module filters as a
// JSON array, e.g. ART_MODULES='["pages/home"]'.
const ModulesKey = "ART_MODULES"

// ParseModules decodes the module filter list. The value may be a list,
// a JSON array string, or a JSON string that itself holds a JSON array
// (the CLI forwards it encoded twice). Empty input yields no filters.
func ParseModules(v any) ([]string, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, &Error{Key: ModulesKey, Err: fmt.Errorf("%w: filter %v is not a string", ErrInvalidValue, item)}
			}
			out = append(out, s)
		}
		return out, nil
	case []string:
		return append([]string(nil), t...), nil
	case string:
		if strings.TrimSpace(t) == "" {
			return nil, nil
		}
		var decoded any
		if err := json.Unmarshal([]byte(t), &decoded); err != nil {
			return nil, &Error{Key: ModulesKey, Err: fmt.Errorf("%w: %v", ErrInvalidValue, err)}
		}
		if s, ok := decoded.(string); ok {
			if err := json.Unmarshal([]byte(s), &decoded); err != nil {
				return nil, &Error{Key: ModulesKey, Err: fmt.Errorf("%w: %v", ErrInvalidValue, err)}
			}
		}
		if _, ok := decoded.(string); ok {
			return nil, &Error{Key: ModulesKey, Err: fmt.Errorf("%w: want JSON array", ErrInvalidValue)}
		}
		return ParseModules(decoded)
	default:
		return nil, &Error{Key: ModulesKey, Err: fmt.Errorf("%w: want JSON array, got %T", ErrInvalidValue, v)}
	}
}

// EncodeModules is the inverse of ParseModules for a single encoding.
func EncodeModules(filters []string) string {
	if filters == nil {
		filters = []string{}
	}
	data, _ := json.Marshal(filters)
	return string(data)
}
