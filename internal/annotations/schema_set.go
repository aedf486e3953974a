package annotations

import (
	"fmt"
	"sort"
	"sync"
)

// SchemaSource looks up the schema of an annotation kind
type SchemaSource interface {
	GetSchema(annotationType AnnotationType) (AnnotationSchema, error)
	ListTypes() []AnnotationType
}

// SchemaSet is a fixed set of schemas, checked once when it is built
type SchemaSet struct {
	byType map[AnnotationType]AnnotationSchema
}

// NewSchemaSet builds a set from schemas. Each annotation type may appear once.
func NewSchemaSet(schemas ...AnnotationSchema) (*SchemaSet, error) {
	set := &SchemaSet{byType: make(map[AnnotationType]AnnotationSchema, len(schemas))}
	for _, schema := range schemas {
		if _, dup := set.byType[schema.Type]; dup {
			return nil, &RegistrationError{
				Msg:  fmt.Sprintf("annotation type %s is already registered", schema.Type),
				Hint: "Each annotation type can only have one schema",
			}
		}
		if err := checkDefaults(schema); err != nil {
			return nil, &RegistrationError{
				Msg:  fmt.Sprintf("invalid schema for %s: %v", schema.Type, err),
				Hint: "Check the flag specifications of the schema",
			}
		}
		set.byType[schema.Type] = schema
	}
	return set, nil
}

var builtinSchemas = sync.OnceValue(func() *SchemaSet {
	set, err := NewSchemaSet(BuiltinSchemas()...)
	if err != nil {
		panic(err)
	}
	return set
})

// DefaultSchemas returns the set holding every built-in //bind:: kind
func DefaultSchemas() *SchemaSet {
	return builtinSchemas()
}

// GetSchema returns the schema of annotationType
func (s *SchemaSet) GetSchema(annotationType AnnotationType) (AnnotationSchema, error) {
	schema, ok := s.byType[annotationType]
	if !ok {
		return AnnotationSchema{}, fmt.Errorf("no schema for annotation kind %s", annotationType)
	}
	return schema, nil
}

// ListTypes returns the kinds in the set, in keyword order
func (s *SchemaSet) ListTypes() []AnnotationType {
	types := make([]AnnotationType, 0, len(s.byType))
	for t := range s.byType {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

func checkDefaults(schema AnnotationSchema) error {
	for flag, spec := range schema.Parameters {
		if flag == "" {
			return fmt.Errorf("flag name cannot be empty")
		}
		var ok bool
		switch spec.Type {
		case BoolType:
			_, ok = spec.DefaultValue.(bool)
		case StringType:
			_, ok = spec.DefaultValue.(string)
		default:
			return fmt.Errorf("flag %s has unknown type %d", flag, spec.Type)
		}
		if spec.DefaultValue != nil && !ok {
			return fmt.Errorf("default of -%s must be %s, got %T", flag, spec.Type, spec.DefaultValue)
		}
	}
	return nil
}
