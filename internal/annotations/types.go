package annotations

import (
	"fmt"

	"github.com/toyz/bindmeta/pkg/bindmeta"
)

// AnnotationType represents the kind keyword of a //bind:: annotation
type AnnotationType int

const (
	ReqAnnotation AnnotationType = iota
	ResAnnotation
	ParamAnnotation
	QueryAnnotation
	HeaderAnnotation
	CookieAnnotation
	BodyAnnotation
	BodyParamAnnotation
	FileAnnotation
	FilesAnnotation
)

var annotationKeywords = []string{
	ReqAnnotation:       "req",
	ResAnnotation:       "res",
	ParamAnnotation:     "param",
	QueryAnnotation:     "query",
	HeaderAnnotation:    "header",
	CookieAnnotation:    "cookie",
	BodyAnnotation:      "body",
	BodyParamAnnotation: "body_param",
	FileAnnotation:      "file",
	FilesAnnotation:     "files",
}

var bindingKinds = []bindmeta.BindingKind{
	ReqAnnotation:       bindmeta.KindRequest,
	ResAnnotation:       bindmeta.KindResponse,
	ParamAnnotation:     bindmeta.KindParam,
	QueryAnnotation:     bindmeta.KindQuery,
	HeaderAnnotation:    bindmeta.KindHeader,
	CookieAnnotation:    bindmeta.KindCookie,
	BodyAnnotation:      bindmeta.KindBody,
	BodyParamAnnotation: bindmeta.KindBodyParam,
	FileAnnotation:      bindmeta.KindUploadedFile,
	FilesAnnotation:     bindmeta.KindUploadedFiles,
}

// AnnotationTypes returns every annotation type in declaration order
func AnnotationTypes() []AnnotationType {
	types := make([]AnnotationType, len(annotationKeywords))
	for i := range annotationKeywords {
		types[i] = AnnotationType(i)
	}
	return types
}

// String returns the keyword used in source, e.g. "body_param"
func (a AnnotationType) String() string {
	if a < 0 || int(a) >= len(annotationKeywords) {
		return "unknown"
	}
	return annotationKeywords[a]
}

// BindingKind returns the runtime binding kind the annotation registers
func (a AnnotationType) BindingKind() bindmeta.BindingKind {
	if a < 0 || int(a) >= len(bindingKinds) {
		return 0
	}
	return bindingKinds[a]
}

// ParseAnnotationType converts a keyword to AnnotationType
func ParseAnnotationType(s string) (AnnotationType, error) {
	for i, keyword := range annotationKeywords {
		if keyword == s {
			return AnnotationType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown annotation type: %s", s)
}

// SourceLocation represents the location of an annotation in source code
type SourceLocation struct {
	File   string // File path
	Line   int    // Line number (1-based)
	Column int    // Column number (1-based)
}

func (l SourceLocation) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// ParsedAnnotation represents one parsed //bind:: line
type ParsedAnnotation struct {
	Type       AnnotationType         // Annotation type enum
	Target     string                 // Go parameter the annotation binds
	Name       string                 // Binding name, empty when absent
	Parameters map[string]interface{} // Typed flag values
	Location   SourceLocation         // Source location
	Raw        string                 // Original annotation text
}

// GetBool returns a boolean parameter value with optional default
func (p *ParsedAnnotation) GetBool(paramName string, defaultValue ...bool) bool {
	if value, exists := p.Parameters[paramName]; exists {
		if boolValue, ok := value.(bool); ok {
			return boolValue
		}
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return false
}

// HasParameter checks if a parameter exists
func (p *ParsedAnnotation) HasParameter(paramName string) bool {
	_, exists := p.Parameters[paramName]
	return exists
}

// ParseJSON reports the value of the -ParseJSON flag
func (p *ParsedAnnotation) ParseJSON() bool {
	return p.GetBool(ParseJSONFlag)
}

// Required reports the value of the -Required flag
func (p *ParsedAnnotation) Required() bool {
	return p.GetBool(RequiredFlag)
}

// ParameterType represents the type of a flag value
type ParameterType int

const (
	StringType ParameterType = iota
	BoolType
)

// String returns the string representation of the parameter type
func (p ParameterType) String() string {
	switch p {
	case StringType:
		return "string"
	case BoolType:
		return "bool"
	default:
		return "unknown"
	}
}

// ParameterSpec defines the specification for an annotation flag
type ParameterSpec struct {
	Type         ParameterType           // Parameter type
	DefaultValue interface{}             // Value of a bare -Flag
	Description  string                  // Parameter description
	Validator    func(interface{}) error // Custom validator function
}

// CustomValidator represents a custom validation function for annotations
type CustomValidator func(*ParsedAnnotation) error

// AnnotationSchema defines the schema for an annotation type
type AnnotationSchema struct {
	Type        AnnotationType           // Annotation type enum
	Description string                   // Human-readable description
	Parameters  map[string]ParameterSpec // Accepted flags
	Validators  []CustomValidator        // Custom validation functions
	Examples    []string                 // Usage examples
}

// ConvertToBool converts flag values to boolean
func ConvertToBool(value interface{}) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return parseBoolString(v)
	case int:
		return v != 0, nil
	default:
		return false, fmt.Errorf("cannot convert %T to bool", value)
	}
}

func parseBoolString(s string) (bool, error) {
	switch s {
	case "true", "True", "TRUE", "1", "yes", "Yes", "YES", "on", "On", "ON":
		return true, nil
	case "false", "False", "FALSE", "0", "no", "No", "NO", "off", "Off", "OFF":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s", s)
	}
}
