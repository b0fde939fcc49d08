//go:build tools

// Package lint pins the linters run over go-artpack.
// It is a separate module so the art binary never depends on them.
//
// The Makefile at the project root runs them:
//
//	make lint         # golangci-lint over every package, e2e included
//	make staticcheck
//	make check        # both linters, then go test ./...
//
// Both resolve through -modfile=tools/lint/go.mod, so the versions used
// are the ones required here.
package lint
