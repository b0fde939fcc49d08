package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModules(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    []string
		wantErr bool
	}{
		{name: "unset", input: nil, want: nil},
		{name: "empty string", input: "", want: nil},
		{name: "empty array", input: "[]", want: []string{}},
		{name: "json array", input: `["pages/home","pages/about"]`, want: []string{"pages/home", "pages/about"}},
		{name: "double encoded", input: `"[\"pages/home\"]"`, want: []string{"pages/home"}},
		{name: "json null", input: "null", want: nil},
		{name: "list value", input: []any{"a", "b"}, want: []string{"a", "b"}},
		{name: "string slice", input: []string{"a"}, want: []string{"a"}},
		{name: "bare word", input: "pages/home", wantErr: true},
		{name: "triple encoded", input: `"\"[]\""`, wantErr: true},
		{name: "number element", input: `[1]`, wantErr: true},
		{name: "object", input: `{"a":1}`, wantErr: true},
		{name: "integer value", input: int64(3), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseModules(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeModules_RoundTrip(t *testing.T) {
	for _, filters := range [][]string{nil, {"pages/home"}, {"a", "client/b/**"}} {
		got, err := ParseModules(EncodeModules(filters))
		require.NoError(t, err)
		if len(filters) == 0 {
			assert.Empty(t, got)
			continue
		}
		assert.Equal(t, filters, got)
	}
	assert.Equal(t, "[]", EncodeModules(nil))
}
