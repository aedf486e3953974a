package annotations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaSet(t *testing.T) {
	set, err := NewSchemaSet(SchemaFor(QueryAnnotation), SchemaFor(BodyAnnotation))
	require.NoError(t, err)
	assert.Equal(t, []AnnotationType{QueryAnnotation, BodyAnnotation}, set.ListTypes())

	got, err := set.GetSchema(QueryAnnotation)
	require.NoError(t, err)
	assert.Equal(t, QueryAnnotation, got.Type)

	_, err = set.GetSchema(HeaderAnnotation)
	assert.ErrorContains(t, err, "no schema for annotation kind header")
}

func TestNewSchemaSetErrors(t *testing.T) {
	tests := []struct {
		name     string
		schemas  []AnnotationSchema
		contains string
	}{
		{
			name:     "kind given twice",
			schemas:  []AnnotationSchema{SchemaFor(BodyAnnotation), SchemaFor(BodyAnnotation)},
			contains: "already registered",
		},
		{
			name: "empty flag name",
			schemas: []AnnotationSchema{{
				Type:       BodyAnnotation,
				Parameters: map[string]ParameterSpec{"": {Type: BoolType}},
			}},
			contains: "flag name cannot be empty",
		},
		{
			name: "default of wrong type",
			schemas: []AnnotationSchema{{
				Type:       BodyAnnotation,
				Parameters: map[string]ParameterSpec{"Required": {Type: BoolType, DefaultValue: "yes"}},
			}},
			contains: "default of -Required must be bool, got string",
		},
		{
			name: "unknown flag type",
			schemas: []AnnotationSchema{{
				Type:       BodyAnnotation,
				Parameters: map[string]ParameterSpec{"Required": {Type: ParameterType(9)}},
			}},
			contains: "unknown type 9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSchemaSet(tt.schemas...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)

			var regErr *RegistrationError
			require.ErrorAs(t, err, &regErr)
			assert.Equal(t, RegistrationErrorCode, regErr.Code())
		})
	}
}

func TestDefaultSchemasHoldEveryKind(t *testing.T) {
	set := DefaultSchemas()
	assert.Same(t, set, DefaultSchemas())
	assert.Equal(t, AnnotationTypes(), set.ListTypes())
}

func TestBuiltinSchemasFollowKindRules(t *testing.T) {
	tests := []struct {
		typ   AnnotationType
		flags []string
	}{
		{ReqAnnotation, nil},
		{ResAnnotation, nil},
		{ParamAnnotation, []string{ParseJSONFlag, RequiredFlag}},
		{QueryAnnotation, []string{ParseJSONFlag, RequiredFlag}},
		{HeaderAnnotation, []string{ParseJSONFlag, RequiredFlag}},
		{CookieAnnotation, []string{ParseJSONFlag, RequiredFlag}},
		{BodyAnnotation, []string{RequiredFlag}},
		{BodyParamAnnotation, []string{ParseJSONFlag, RequiredFlag}},
		{FileAnnotation, []string{RequiredFlag}},
		{FilesAnnotation, []string{RequiredFlag}},
	}

	parser := NewParticipleParser(nil)
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			schema := SchemaFor(tt.typ)
			assert.Len(t, schema.Parameters, len(tt.flags))
			for _, flag := range tt.flags {
				assert.Contains(t, schema.Parameters, flag)
			}
			assert.NotEmpty(t, schema.Description)

			require.NotEmpty(t, schema.Examples)
			for _, example := range schema.Examples {
				_, err := parser.ParseAnnotation(example, SourceLocation{File: "example.go", Line: 1, Column: 1})
				assert.NoError(t, err, example)
			}
		})
	}
}
