package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/bazelbuild/buildtools/build"
	"gopkg.in/yaml.v3"

	"github.com/albertocavalcante/go-artpack/internal/buildutil"
)

// ConfigFileNames are the project config files Load looks for, in order.
var ConfigFileNames = []string{
	"art.config.json",
	"art.config.yaml",
	"art.config.yml",
	"art.config.bzl",
}

// Decode parses a project config file. The format is chosen by extension:
// .json, .yaml/.yml or .bzl (Starlark assignments such as `art = {...}`).
func Decode(filename string, data []byte) (*Object, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return decodeJSON(filename, data)
	case ".yaml", ".yml":
		return decodeYAML(filename, data)
	case ".bzl", ".star":
		return decodeStarlark(filename, data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, filename)
	}
}

func decodeJSON(filename string, data []byte) (*Object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, jsonParseError(filename, data, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &ParseError{Pos: Position{Filename: filename}, Message: "trailing data after top-level object"}
	}
	obj, ok := v.(*Object)
	if !ok {
		return nil, &ParseError{Pos: Position{Filename: filename}, Message: fmt.Sprintf("top level must be an object, got %T", v)}
	}
	return obj, nil
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key must be a string, got %v", keyTok)
				}
				if _, dup := obj.Get(key); dup {
					return nil, fmt.Errorf("duplicate key %q", key)
				}
				v, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, v)
			}
			_, err := dec.Token()
			return obj, err
		case '[':
			list := []any{}
			for dec.More() {
				v, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				list = append(list, v)
			}
			_, err := dec.Token()
			return list, err
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, nil
		}
		return t.Float64()
	default:
		return t, nil
	}
}

func jsonParseError(filename string, data []byte, err error) error {
	pe := &ParseError{Pos: Position{Filename: filename}, Message: err.Error(), Wrapped: err}
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		pe.Pos.Line, pe.Pos.Column = lineColumn(data, syn.Offset)
	}
	return pe
}

// lineColumn converts a byte offset to a 1-based line and column.
func lineColumn(data []byte, offset int64) (int, int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	head := data[:offset]
	line := bytes.Count(head, []byte("\n")) + 1
	col := int(offset) - bytes.LastIndexByte(head, '\n')
	return line, col
}

func decodeYAML(filename string, data []byte) (*Object, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Pos: Position{Filename: filename}, Message: err.Error(), Wrapped: err}
	}
	if doc.Kind == 0 {
		return NewObject(), nil
	}
	v, err := fromYAML(&doc)
	if err != nil {
		return nil, &ParseError{Pos: Position{Filename: filename}, Message: err.Error(), Wrapped: err}
	}
	obj, ok := v.(*Object)
	if !ok {
		return nil, &ParseError{
			Pos:     Position{Filename: filename, Line: doc.Line, Column: doc.Column},
			Message: fmt.Sprintf("top level must be a mapping, got %T", v),
		}
	}
	return obj, nil
}

func fromYAML(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return NewObject(), nil
		}
		return fromYAML(n.Content[0])
	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping key must be a scalar", k.Line)
			}
			if _, dup := obj.Get(k.Value); dup {
				return nil, fmt.Errorf("line %d: duplicate key %q", k.Line, k.Value)
			}
			val, err := fromYAML(v)
			if err != nil {
				return nil, err
			}
			obj.Set(k.Value, val)
		}
		return obj, nil
	case yaml.SequenceNode:
		list := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			val, err := fromYAML(item)
			if err != nil {
				return nil, err
			}
			list = append(list, val)
		}
		return list, nil
	case yaml.AliasNode:
		return fromYAML(n.Alias)
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		if i, ok := v.(int); ok {
			return int64(i), nil
		}
		return v, nil
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
}

func decodeStarlark(filename string, data []byte) (*Object, error) {
	f, err := build.ParseBzl(filename, data)
	if err != nil {
		return nil, &ParseError{
			Pos:     Position{Filename: filename},
			Message: fmt.Sprintf("syntax error: %v", err),
			Wrapped: err,
		}
	}

	obj := NewObject()
	for _, stmt := range f.Stmt {
		switch stmt.(type) {
		case *build.CommentBlock, *build.LoadStmt:
			continue
		}
		name, rhs, ok := buildutil.Assignment(stmt)
		if !ok {
			return nil, &ParseError{
				Pos:     Position{Filename: filename, Line: buildutil.Line(stmt), Column: 1},
				Message: "only top-level assignments are allowed in a config file",
			}
		}
		v, err := buildutil.ExtractValue(rhs)
		if err != nil {
			pe := &ParseError{Pos: Position{Filename: filename}, Message: err.Error(), Wrapped: err}
			var ue *buildutil.UnsupportedError
			if errors.As(err, &ue) {
				pe.Pos.Line, pe.Pos.Column = ue.Line, ue.Column
				pe.Message = "unsupported expression " + ue.Kind
			}
			return nil, pe
		}
		obj.Set(name, fromStarlark(v))
	}
	return obj, nil
}
