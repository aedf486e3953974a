package annotations

import (
	"fmt"
	"regexp"
	"strings"
)

// Flag names accepted by the built-in schemas
const (
	ParseJSONFlag = "ParseJSON"
	RequiredFlag  = "Required"
)

// ParseJSONParameterSpec returns the -ParseJSON flag specification
func ParseJSONParameterSpec() ParameterSpec {
	return ParameterSpec{
		Type:         BoolType,
		DefaultValue: true,
		Description:  "Decode the raw value as JSON before injecting it",
	}
}

// RequiredParameterSpec returns the -Required flag specification
func RequiredParameterSpec() ParameterSpec {
	return ParameterSpec{
		Type:         BoolType,
		DefaultValue: true,
		Description:  "Treat a missing value as an error",
	}
}

var descriptions = map[AnnotationType]string{
	ReqAnnotation:       "Binds the request object",
	ResAnnotation:       "Binds the response object",
	ParamAnnotation:     "Binds a route parameter",
	QueryAnnotation:     "Binds a query parameter",
	HeaderAnnotation:    "Binds a request header",
	CookieAnnotation:    "Binds a cookie",
	BodyAnnotation:      "Binds the whole request body",
	BodyParamAnnotation: "Binds one field of the request body",
	FileAnnotation:      "Binds one uploaded file",
	FilesAnnotation:     "Binds every uploaded file",
}

// SchemaFor builds the schema of an annotation type from the binding rules
// of its kind
func SchemaFor(t AnnotationType) AnnotationSchema {
	kind := t.BindingKind()
	schema := AnnotationSchema{
		Type:        t,
		Description: descriptions[t],
		Parameters:  make(map[string]ParameterSpec),
	}
	if kind.AcceptsParseJSON() {
		schema.Parameters[ParseJSONFlag] = ParseJSONParameterSpec()
	}
	if kind.AcceptsRequired() {
		schema.Parameters[RequiredFlag] = RequiredParameterSpec()
	}

	keyword := "//bind::" + t.String()
	switch {
	case kind.NameRequired():
		schema.Examples = []string{
			keyword + " id",
			keyword + " id userId",
			keyword + " filter -ParseJSON -Required",
		}
	case kind.AcceptsName():
		schema.Examples = []string{keyword + " avatar", keyword + " avatar \"profile-picture\" -Required"}
	case kind.AcceptsRequired():
		schema.Examples = []string{keyword + " input", keyword + " input -Required"}
	default:
		schema.Examples = []string{keyword + " r"}
	}

	if t == HeaderAnnotation {
		schema.Validators = append(schema.Validators, ValidateHeaderName)
	}
	if t == ParamAnnotation {
		schema.Validators = append(schema.Validators, ValidateRouteParamName)
	}
	return schema
}

// BuiltinSchemas returns the schema of every annotation type
func BuiltinSchemas() []AnnotationSchema {
	schemas := make([]AnnotationSchema, 0, len(annotationKeywords))
	for _, t := range AnnotationTypes() {
		schemas = append(schemas, SchemaFor(t))
	}
	return schemas
}

// RFC 7230 token characters
var headerToken = regexp.MustCompile("^[!#$%&'*+\\-.^_`|~0-9A-Za-z]+$")

// ValidateHeaderName rejects header names that cannot appear on the wire
func ValidateHeaderName(annotation *ParsedAnnotation) error {
	if annotation.Name != "" && !headerToken.MatchString(annotation.Name) {
		return fmt.Errorf("invalid header name '%s'", annotation.Name)
	}
	return nil
}

// ValidateRouteParamName rejects route parameter names containing path syntax
func ValidateRouteParamName(annotation *ParsedAnnotation) error {
	if strings.ContainsAny(annotation.Name, "/{}:") {
		return fmt.Errorf("route parameter name '%s' must not contain '/', '{', '}' or ':'", annotation.Name)
	}
	return nil
}
