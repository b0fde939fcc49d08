package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonConfig = `{
  "art": {
    "version": "1.2.3",
    "webpack": {
      "entry": {
        "zeta": ["client/pages/zeta"],
        "alpha?title=Alpha": "client/pages/alpha/index.tsx"
      },
      "output": {"prodPublicPath": "https://cdn.example.com/"}
    }
  },
  "devPort": {"development": 4000}
}`

const yamlConfig = `
art:
  version: 1.2.3
  webpack:
    entry:
      zeta: [client/pages/zeta]
      alpha?title=Alpha: client/pages/alpha/index.tsx
    output:
      prodPublicPath: https://cdn.example.com/
devPort:
  development: 4000
`

const starlarkConfig = `# art project
load(":shared.bzl", "x")

art = {
    "version": "1.2.3",
    "webpack": {
        "entry": {
            "zeta": ["client/pages/zeta"],
            "alpha?title=Alpha": "client/pages/alpha/index.tsx",
        },
        "output": {"prodPublicPath": "https://cdn.example.com/"},
    },
}

devPort = {"development": 4000}
`

func TestDecode_Formats(t *testing.T) {
	tests := []struct {
		filename string
		content  string
	}{
		{"art.config.json", jsonConfig},
		{"art.config.yaml", yamlConfig},
		{"art.config.yml", yamlConfig},
		{"art.config.bzl", starlarkConfig},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			obj, err := Decode(tt.filename, []byte(tt.content))
			require.NoError(t, err)

			entry, ok := obj.Lookup("art:webpack:entry")
			require.True(t, ok)
			require.IsType(t, &Object{}, entry)
			assert.Equal(t, []string{"zeta", "alpha?title=Alpha"}, entry.(*Object).Keys())

			v, ok := obj.Lookup("art:version")
			require.True(t, ok)
			assert.Equal(t, "1.2.3", v)

			port, ok := obj.Lookup("devPort:development")
			require.True(t, ok)
			assert.Equal(t, int64(4000), port)

			pp, ok := obj.Lookup("art:webpack:output:prodPublicPath")
			require.True(t, ok)
			assert.Equal(t, "https://cdn.example.com/", pp)
		})
	}
}

func TestDecode_UnknownFormat(t *testing.T) {
	_, err := Decode("art.config.toml", []byte(""))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestDecode_JSONSyntaxErrorPosition(t *testing.T) {
	_, err := Decode("art.config.json", []byte("{\n  \"art\": {\n    \"version\": ,\n  }\n}"))
	var pe *ParseError
	require.True(t, errors.As(err, &pe), "error = %v", err)
	assert.Equal(t, "art.config.json", pe.Pos.Filename)
	assert.Equal(t, 3, pe.Pos.Line)
	assert.Contains(t, pe.Error(), "art.config.json:3:")
}

func TestDecode_TopLevelMustBeObject(t *testing.T) {
	for name, content := range map[string]string{
		"art.config.json": `["a"]`,
		"art.config.yaml": "- a\n- b\n",
	} {
		_, err := Decode(name, []byte(content))
		var pe *ParseError
		assert.True(t, errors.As(err, &pe), "%s: error = %v", name, err)
	}
}

func TestDecode_EmptyYAML(t *testing.T) {
	obj, err := Decode("art.config.yaml", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, obj.Len())
}

func TestDecode_StarlarkErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantLine int
	}{
		{"call statement", "art = {}\nprint(\"x\")\n", 2},
		{"non literal", "art = {\n    \"version\": VERSION,\n}\n", 2},
		{"syntax", "art = {\n", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode("art.config.bzl", []byte(tt.content))
			var pe *ParseError
			require.True(t, errors.As(err, &pe), "error = %v", err)
			if tt.wantLine > 0 {
				assert.Equal(t, tt.wantLine, pe.Pos.Line)
			}
		})
	}
}

func TestLineColumn(t *testing.T) {
	data := []byte("ab\ncd\nef")
	line, col := lineColumn(data, 4)
	assert.Equal(t, 2, line)
	assert.Equal(t, 2, col)

	line, col = lineColumn(data, 0)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)
}
