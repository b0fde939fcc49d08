// Package buildutil converts buildtools Starlark AST nodes into plain Go
// values.
//
// It backs the art.config.bzl loader in package config: a Starlark config
// file is a sequence of top-level assignments whose right-hand sides are
// literals (strings, numbers, booleans, None, lists, tuples and dicts).
package buildutil

import (
	"fmt"
	"strconv"

	"github.com/bazelbuild/buildtools/build"
)

// KeyValue is one entry of a Dict.
type KeyValue struct {
	Key   string
	Value any
}

// Dict is a Starlark dict literal with its key order preserved.
type Dict []KeyValue

// Get returns the value stored under key.
func (d Dict) Get(key string) (any, bool) {
	for _, kv := range d {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return nil, false
}

// UnsupportedError reports an expression that is not a literal.
type UnsupportedError struct {
	Line   int
	Column int
	Kind   string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%d:%d: unsupported expression %s in config literal", e.Line, e.Column, e.Kind)
}

// ExtractValue converts a literal expression to a Go value:
// string, int64, float64, bool, nil, []any or Dict.
func ExtractValue(expr build.Expr) (any, error) {
	switch e := expr.(type) {
	case *build.StringExpr:
		return e.Value, nil
	case *build.LiteralExpr:
		return parseNumber(e)
	case *build.UnaryExpr:
		if e.Op != "-" {
			return nil, unsupported(expr)
		}
		lit, ok := e.X.(*build.LiteralExpr)
		if !ok {
			return nil, unsupported(expr)
		}
		v, err := parseNumber(lit)
		if err != nil {
			return nil, err
		}
		switch n := v.(type) {
		case int64:
			return -n, nil
		case float64:
			return -n, nil
		}
		return nil, unsupported(expr)
	case *build.Ident:
		switch e.Name {
		case "True":
			return true, nil
		case "False":
			return false, nil
		case "None":
			return nil, nil
		}
		return nil, unsupported(expr)
	case *build.ListExpr:
		return extractList(e.List)
	case *build.TupleExpr:
		return extractList(e.List)
	case *build.DictExpr:
		d := make(Dict, 0, len(e.List))
		for _, kv := range e.List {
			key, ok := kv.Key.(*build.StringExpr)
			if !ok {
				return nil, unsupported(kv.Key)
			}
			v, err := ExtractValue(kv.Value)
			if err != nil {
				return nil, err
			}
			d = append(d, KeyValue{Key: key.Value, Value: v})
		}
		return d, nil
	default:
		return nil, unsupported(expr)
	}
}

func extractList(items []build.Expr) ([]any, error) {
	out := make([]any, 0, len(items))
	for _, item := range items {
		v, err := ExtractValue(item)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func parseNumber(lit *build.LiteralExpr) (any, error) {
	if n, err := strconv.ParseInt(lit.Token, 0, 64); err == nil {
		return n, nil
	}
	if f, err := strconv.ParseFloat(lit.Token, 64); err == nil {
		return f, nil
	}
	return nil, unsupported(lit)
}

func unsupported(expr build.Expr) error {
	start, _ := expr.Span()
	return &UnsupportedError{Line: start.Line, Column: start.LineRune, Kind: fmt.Sprintf("%T", expr)}
}

// Assignment returns the target name and value of a simple top-level
// assignment such as `art = {...}`. Other statements report ok == false.
func Assignment(stmt build.Expr) (name string, rhs build.Expr, ok bool) {
	assign, isAssign := stmt.(*build.AssignExpr)
	if !isAssign || assign.Op != "=" {
		return "", nil, false
	}
	ident, isIdent := assign.LHS.(*build.Ident)
	if !isIdent {
		return "", nil, false
	}
	return ident.Name, assign.RHS, true
}

// Line returns the 1-based line an expression starts on.
func Line(expr build.Expr) int {
	start, _ := expr.Span()
	return start.Line
}
