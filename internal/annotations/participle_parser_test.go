package annotations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParticipleParserBasic(t *testing.T) {
	parser := NewParticipleParser(nil)
	location := SourceLocation{File: "test.go", Line: 1, Column: 1}

	tests := []struct {
		name     string
		input    string
		expected *ParsedAnnotation
	}{
		{
			name:  "request",
			input: "//bind::req r",
			expected: &ParsedAnnotation{
				Type:       ReqAnnotation,
				Target:     "r",
				Parameters: map[string]interface{}{},
			},
		},
		{
			name:  "route param defaults name to parameter",
			input: "//bind::param id",
			expected: &ParsedAnnotation{
				Type:       ParamAnnotation,
				Target:     "id",
				Name:       "id",
				Parameters: map[string]interface{}{},
			},
		},
		{
			name:  "query with name and flags",
			input: "//bind::query filter f -ParseJSON -Required=false",
			expected: &ParsedAnnotation{
				Type:       QueryAnnotation,
				Target:     "filter",
				Name:       "f",
				Parameters: map[string]interface{}{"ParseJSON": true, "Required": false},
			},
		},
		{
			name:  "header with dashes",
			input: "//bind::header traceID X-Trace-Id -Required",
			expected: &ParsedAnnotation{
				Type:       HeaderAnnotation,
				Target:     "traceID",
				Name:       "X-Trace-Id",
				Parameters: map[string]interface{}{"Required": true},
			},
		},
		{
			name:  "unicode parameter and name",
			input: "// bind::query café tarifa_ñ -Required",
			expected: &ParsedAnnotation{
				Type:       QueryAnnotation,
				Target:     "café",
				Name:       "tarifa_ñ",
				Parameters: map[string]interface{}{"Required": true},
			},
		},
		{
			name:  "body field with both flags",
			input: "//bind::body_param name -ParseJSON=true -Required=yes",
			expected: &ParsedAnnotation{
				Type:       BodyParamAnnotation,
				Target:     "name",
				Name:       "name",
				Parameters: map[string]interface{}{"ParseJSON": true, "Required": true},
			},
		},
		{
			name:  "quoted file name",
			input: `//bind::file avatar "profile picture"`,
			expected: &ParsedAnnotation{
				Type:       FileAnnotation,
				Target:     "avatar",
				Name:       "profile picture",
				Parameters: map[string]interface{}{},
			},
		},
		{
			name:  "file without name",
			input: "//bind::file avatar",
			expected: &ParsedAnnotation{
				Type:       FileAnnotation,
				Target:     "avatar",
				Parameters: map[string]interface{}{},
			},
		},
		{
			name:  "uploaded files",
			input: "//bind::files uploads -Required",
			expected: &ParsedAnnotation{
				Type:       FilesAnnotation,
				Target:     "uploads",
				Parameters: map[string]interface{}{"Required": true},
			},
		},
		{
			name:  "space after comment marker",
			input: "  // bind::body input -Required",
			expected: &ParsedAnnotation{
				Type:       BodyAnnotation,
				Target:     "input",
				Parameters: map[string]interface{}{"Required": true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parser.ParseAnnotation(tt.input, location)
			require.NoError(t, err)

			assert.Equal(t, tt.expected.Type, result.Type)
			assert.Equal(t, tt.expected.Target, result.Target)
			assert.Equal(t, tt.expected.Name, result.Name)
			assert.Equal(t, tt.expected.Parameters, result.Parameters)
			assert.Equal(t, location, result.Location)
		})
	}
}

func TestParticipleParserErrors(t *testing.T) {
	parser := NewParticipleParser(nil)
	location := SourceLocation{File: "users.go", Line: 12, Column: 2}

	tests := []struct {
		name     string
		input    string
		code     ErrorCode
		contains string
	}{
		{"not a bind annotation", "//api::route GET /users", SyntaxErrorCode, ""},
		{"unknown kind", "//bind::session s", SchemaErrorCode, "unknown annotation kind 'session'"},
		{"missing parameter", "//bind::param", SyntaxErrorCode, "missing the parameter"},
		{"name on body", "//bind::body input payload", ValidationErrorCode, "does not take a name"},
		{"name on files", "//bind::files all uploads", ValidationErrorCode, "does not take a name"},
		{"required on request", "//bind::req r -Required", ValidationErrorCode, "unknown flag '-Required'"},
		{"parse json on file", "//bind::file f -ParseJSON", ValidationErrorCode, "accepts: -Required"},
		{"wrong case", "//bind::param id -required", ValidationErrorCode, "use -Required"},
		{"bad bool", "//bind::param id -Required=maybe", ValidationErrorCode, "expected bool"},
		{"repeated flag", "//bind::param id -Required -Required", ValidationErrorCode, "-Required repeated"},
		{"bad header", `//bind::header h "bad header"`, SchemaErrorCode, "invalid header name"},
		{"route syntax in param", `//bind::param id "{id}"`, SchemaErrorCode, "must not contain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parser.ParseAnnotation(tt.input, location)
			require.Error(t, err)
			assert.Nil(t, result)

			annotationErr := firstAnnotationError(t, err)
			assert.Equal(t, tt.code, annotationErr.Code(), err.Error())
			assert.Equal(t, "users.go", annotationErr.Location().File)
			assert.Equal(t, 12, annotationErr.Location().Line)
			assert.NotEmpty(t, annotationErr.Suggestion())
			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
		})
	}
}

func TestParticipleParserErrorColumn(t *testing.T) {
	parser := NewParticipleParser(nil)

	_, err := parser.ParseAnnotation("//bind::param id -Required -Required", SourceLocation{File: "a.go", Line: 3, Column: 5})
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Greater(t, validationErr.Location().Column, 5)
}

func TestIsAnnotation(t *testing.T) {
	assert.True(t, IsAnnotation("//bind::param id"))
	assert.True(t, IsAnnotation("  // bind::req r"))
	assert.False(t, IsAnnotation("// Show returns one user"))
	assert.False(t, IsAnnotation("//api::route GET /"))
	assert.False(t, IsAnnotation("bind::param id"))
	assert.False(t, IsAnnotation("/* bind::param id */"))
}

func firstAnnotationError(t *testing.T, err error) AnnotationError {
	t.Helper()
	if multi, ok := err.(*MultipleValidationErrors); ok {
		require.NotEmpty(t, multi.Errors)
		err = multi.Errors[0]
	}
	annotationErr, ok := err.(AnnotationError)
	require.True(t, ok, "expected an AnnotationError, got %T", err)
	return annotationErr
}
