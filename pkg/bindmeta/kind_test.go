package bindmeta

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindingKind_String(t *testing.T) {
	tests := []struct {
		kind     BindingKind
		expected string
	}{
		{KindRequest, "request"},
		{KindResponse, "response"},
		{KindParam, "param"},
		{KindQuery, "query"},
		{KindHeader, "header"},
		{KindCookie, "cookie"},
		{KindBody, "body"},
		{KindBodyParam, "body-param"},
		{KindUploadedFile, "file"},
		{KindUploadedFiles, "files"},
		{kindInvalid, "unknown"},
		{BindingKind(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.String())
		})
	}
}

func TestParseBindingKind(t *testing.T) {
	for _, kind := range Kinds() {
		parsed, err := ParseBindingKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}

	_, err := ParseBindingKind("session")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown binding kind: session")
}

func TestKindsAreDistinct(t *testing.T) {
	kinds := Kinds()
	assert.Len(t, kinds, 10)

	seen := make(map[BindingKind]bool)
	for _, k := range kinds {
		assert.True(t, k.Valid())
		assert.False(t, seen[k], "duplicate kind %s", k)
		seen[k] = true
	}
	assert.False(t, kindInvalid.Valid())
}

func TestKindRules(t *testing.T) {
	tests := []struct {
		kind             BindingKind
		nameRequired     bool
		acceptsName      bool
		acceptsParseJSON bool
		acceptsRequired  bool
	}{
		{KindRequest, false, false, false, false},
		{KindResponse, false, false, false, false},
		{KindParam, true, true, true, true},
		{KindQuery, true, true, true, true},
		{KindHeader, true, true, true, true},
		{KindCookie, true, true, true, true},
		{KindBody, false, false, false, true},
		{KindBodyParam, true, true, true, true},
		{KindUploadedFile, false, true, false, true},
		{KindUploadedFiles, false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.nameRequired, tt.kind.NameRequired())
			assert.Equal(t, tt.acceptsName, tt.kind.AcceptsName())
			assert.Equal(t, tt.acceptsParseJSON, tt.kind.AcceptsParseJSON())
			assert.Equal(t, tt.acceptsRequired, tt.kind.AcceptsRequired())
		})
	}
}

func TestBindingKind_JSON(t *testing.T) {
	data, err := json.Marshal(map[string]BindingKind{"kind": KindBodyParam})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"body-param"}`, string(data))

	var decoded struct {
		Kind BindingKind `json:"kind"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"cookie"}`), &decoded))
	assert.Equal(t, KindCookie, decoded.Kind)

	assert.Error(t, json.Unmarshal([]byte(`{"kind":"nope"}`), &decoded))

	_, err = kindInvalid.MarshalText()
	assert.Error(t, err)
}
