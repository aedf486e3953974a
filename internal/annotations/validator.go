package annotations

import (
	"fmt"
)

// SchemaValidator defines the interface for validating annotations against their schemas
type SchemaValidator interface {
	// Validate annotation against its schema
	Validate(annotation *ParsedAnnotation, schema AnnotationSchema) error

	// ApplyDefaults fills in the binding name for kinds that require one
	ApplyDefaults(annotation *ParsedAnnotation, schema AnnotationSchema) error

	// TransformParameters converts raw flag values to their schema types
	TransformParameters(annotation *ParsedAnnotation, schema AnnotationSchema) error
}

// validator is the concrete implementation of SchemaValidator
type validator struct{}

// NewValidator creates a new schema validator
func NewValidator() SchemaValidator {
	return &validator{}
}

// Validate validates an annotation against its schema
func (v *validator) Validate(annotation *ParsedAnnotation, schema AnnotationSchema) error {
	var errors []error
	kind := schema.Type.BindingKind()

	switch {
	case kind.NameRequired() && annotation.Name == "":
		errors = append(errors, &ValidationError{
			Parameter: "name",
			Expected:  "binding name",
			Actual:    "missing",
			Loc:       annotation.Location,
			Hint:      fmt.Sprintf("Use //bind::%s <param> <name>", schema.Type),
		})
	case !kind.AcceptsName() && annotation.Name != "":
		errors = append(errors, &ValidationError{
			Parameter: "name",
			Expected:  "no binding name",
			Actual:    fmt.Sprintf("'%s'", annotation.Name),
			Loc:       annotation.Location,
			Hint:      fmt.Sprintf("Remove '%s', //bind::%s does not take a name", annotation.Name, schema.Type),
		})
	}

	for paramName, paramValue := range annotation.Parameters {
		paramSpec, exists := schema.Parameters[paramName]
		if !exists {
			errors = append(errors, &ValidationError{
				Parameter: paramName,
				Expected:  "known flag",
				Actual:    fmt.Sprintf("unknown flag '-%s'", paramName),
				Loc:       annotation.Location,
				Hint:      suggestFlag(paramName, schema),
			})
			continue
		}

		if err := v.validateParameterType(paramName, paramSpec.Type, paramValue, annotation.Location); err != nil {
			errors = append(errors, err)
			continue
		}

		if paramSpec.Validator != nil {
			if err := paramSpec.Validator(paramValue); err != nil {
				errors = append(errors, &ValidationError{
					Parameter: paramName,
					Expected:  "valid value",
					Actual:    fmt.Sprintf("%v", paramValue),
					Loc:       annotation.Location,
					Hint:      err.Error(),
				})
			}
		}
	}

	for _, customValidator := range schema.Validators {
		if err := customValidator(annotation); err != nil {
			errors = append(errors, &SchemaError{
				Msg:  err.Error(),
				Loc:  annotation.Location,
				Hint: "Quote the name or fix its spelling",
			})
		}
	}

	if len(errors) > 0 {
		return &MultipleValidationErrors{Errors: errors}
	}

	return nil
}

// ApplyDefaults uses the Go parameter name as binding name when none is given
func (v *validator) ApplyDefaults(annotation *ParsedAnnotation, schema AnnotationSchema) error {
	if annotation.Parameters == nil {
		annotation.Parameters = make(map[string]interface{})
	}
	if schema.Type.BindingKind().NameRequired() && annotation.Name == "" {
		annotation.Name = annotation.Target
	}
	return nil
}

// TransformParameters converts string flag values to the types their specs declare
func (v *validator) TransformParameters(annotation *ParsedAnnotation, schema AnnotationSchema) error {
	for paramName, paramValue := range annotation.Parameters {
		paramSpec, exists := schema.Parameters[paramName]
		if !exists {
			continue
		}

		switch paramSpec.Type {
		case BoolType:
			converted, err := ConvertToBool(paramValue)
			if err != nil {
				return &ValidationError{
					Parameter: paramName,
					Expected:  "bool",
					Actual:    fmt.Sprintf("%v", paramValue),
					Loc:       annotation.Location,
					Hint:      fmt.Sprintf("Use -%s, -%s=true or -%s=false", paramName, paramName, paramName),
				}
			}
			annotation.Parameters[paramName] = converted
		case StringType:
			annotation.Parameters[paramName] = fmt.Sprintf("%v", paramValue)
		}
	}
	return nil
}

func (v *validator) validateParameterType(name string, expected ParameterType, value interface{}, loc SourceLocation) error {
	ok := false
	switch expected {
	case BoolType:
		_, ok = value.(bool)
	case StringType:
		_, ok = value.(string)
	}
	if ok {
		return nil
	}
	return &ValidationError{
		Parameter: name,
		Expected:  expected.String(),
		Actual:    fmt.Sprintf("%T", value),
		Loc:       loc,
		Hint:      fmt.Sprintf("Provide a %s value for -%s", expected, name),
	}
}
