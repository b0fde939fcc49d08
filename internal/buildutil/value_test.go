package buildutil

import (
	"errors"
	"testing"

	"github.com/bazelbuild/buildtools/build"
	"github.com/google/go-cmp/cmp"
)

func parseRHS(t *testing.T, content string) build.Expr {
	t.Helper()
	f, err := build.ParseBzl("art.config.bzl", []byte(content))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(f.Stmt) == 0 {
		t.Fatal("no statements parsed")
	}
	name, rhs, ok := Assignment(f.Stmt[0])
	if !ok {
		t.Fatalf("expected assignment, got %T", f.Stmt[0])
	}
	if name != "x" {
		t.Fatalf("assignment target = %q, want x", name)
	}
	return rhs
}

func TestExtractValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  any
	}{
		{"string", `x = "hello"`, "hello"},
		{"int", `x = 3000`, int64(3000)},
		{"negative int", `x = -1`, int64(-1)},
		{"float", `x = 1.5`, 1.5},
		{"true", `x = True`, true},
		{"false", `x = False`, false},
		{"none", `x = None`, nil},
		{"list", `x = ["a", 1]`, []any{"a", int64(1)}},
		{"tuple", `x = ("a", "b")`, []any{"a", "b"}},
		{
			name:  "dict keeps order",
			input: `x = {"zeta": ["client/z"], "alpha": {"b": 2, "a": 1}}`,
			want: Dict{
				{Key: "zeta", Value: []any{"client/z"}},
				{Key: "alpha", Value: Dict{{Key: "b", Value: int64(2)}, {Key: "a", Value: int64(1)}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractValue(parseRHS(t, tt.input))
			if err != nil {
				t.Fatalf("ExtractValue() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ExtractValue() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractValue_Unsupported(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"identifier", `x = other`},
		{"call", `x = glob(["*.js"])`},
		{"non string key", `x = {1: "a"}`},
		{"nested call", `x = {"a": [select({})]}`},
		{"binary", `x = "a" + "b"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractValue(parseRHS(t, tt.input))
			var ue *UnsupportedError
			if !errors.As(err, &ue) {
				t.Fatalf("ExtractValue() error = %v, want *UnsupportedError", err)
			}
			if ue.Line != 1 {
				t.Errorf("Line = %d, want 1", ue.Line)
			}
		})
	}
}

func TestAssignment(t *testing.T) {
	f, err := build.ParseBzl("art.config.bzl", []byte("load(\":x.bzl\", \"y\")\nart = {}\nart += {}\nx.y = 1\n"))
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, stmt := range f.Stmt {
		if name, _, ok := Assignment(stmt); ok {
			names = append(names, name)
		}
	}
	if diff := cmp.Diff([]string{"art"}, names); diff != "" {
		t.Errorf("assignments mismatch (-want +got):\n%s", diff)
	}
}

func TestDict_Get(t *testing.T) {
	d := Dict{{Key: "a", Value: 1}, {Key: "b", Value: nil}}
	if v, ok := d.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %v, %v", v, ok)
	}
	if _, ok := d.Get("b"); !ok {
		t.Error("Get(b) should find a None value")
	}
	if _, ok := d.Get("c"); ok {
		t.Error("Get(c) found a missing key")
	}
}
