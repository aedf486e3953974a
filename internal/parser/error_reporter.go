package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/toyz/bindmeta/internal/annotations"
	"github.com/toyz/bindmeta/internal/models"
)

// ErrorReporter turns parse findings into GeneratorErrors with suggestions
type ErrorReporter struct{}

// NewErrorReporter creates a new error reporter
func NewErrorReporter() *ErrorReporter {
	return &ErrorReporter{}
}

// ReportAnnotationError wraps an annotation syntax or validation error
func (r *ErrorReporter) ReportAnnotationError(err error, location annotations.SourceLocation) error {
	errorType := models.ErrorTypeValidation
	var suggestions []string

	var syntaxErr *annotations.SyntaxError
	if errors.As(err, &syntaxErr) {
		errorType = models.ErrorTypeAnnotationSyntax
	}

	var multi *annotations.MultipleValidationErrors
	if errors.As(err, &multi) {
		for _, e := range multi.Errors {
			if annotationErr, ok := e.(annotations.AnnotationError); ok && annotationErr.Suggestion() != "" {
				suggestions = append(suggestions, annotationErr.Suggestion())
			}
		}
	} else {
		var annotationErr annotations.AnnotationError
		if errors.As(err, &annotationErr) && annotationErr.Suggestion() != "" {
			suggestions = append(suggestions, annotationErr.Suggestion())
		}
	}

	return &models.GeneratorError{
		Type:        errorType,
		File:        location.File,
		Line:        location.Line,
		Message:     fmt.Sprintf("invalid annotation: %v", err),
		Suggestions: suggestions,
		Cause:       err,
	}
}

// ReportUnknownParameter reports an annotation naming a parameter the method does not have
func (r *ErrorReporter) ReportUnknownParameter(receiver, method, param string, available []string, location annotations.SourceLocation) error {
	suggestions := []string{"The first word after the kind is the Go parameter name, not the binding name"}
	if len(available) > 0 {
		suggestions = append(suggestions, fmt.Sprintf("Parameters of %s: %s", method, strings.Join(available, ", ")))
		for _, name := range available {
			if strings.EqualFold(name, param) {
				suggestions = append(suggestions, fmt.Sprintf("Did you mean '%s'?", name))
			}
		}
	} else {
		suggestions = append(suggestions, fmt.Sprintf("%s has no named parameters", method))
	}

	return &models.GeneratorError{
		Type:        models.ErrorTypeValidation,
		File:        location.File,
		Line:        location.Line,
		Message:     fmt.Sprintf("%s.%s has no parameter named '%s'", receiver, method, param),
		Suggestions: suggestions,
	}
}

// ReportDuplicateBinding reports a parameter annotated twice
func (r *ErrorReporter) ReportDuplicateBinding(method, param string, existing *models.Binding, location annotations.SourceLocation) error {
	return &models.GeneratorError{
		Type:    models.ErrorTypeValidation,
		File:    location.File,
		Line:    location.Line,
		Message: fmt.Sprintf("parameter '%s' of %s is already bound as %s", param, method, existing.Kind),
		Suggestions: []string{
			fmt.Sprintf("Remove one of the annotations, the first one is at %s", existing.Position()),
		},
	}
}

// ReportFunctionAnnotation reports annotations on a function without receiver
func (r *ErrorReporter) ReportFunctionAnnotation(function, file string, line int) error {
	return &models.GeneratorError{
		Type:    models.ErrorTypeValidation,
		File:    file,
		Line:    line,
		Message: fmt.Sprintf("//bind:: annotations on function '%s' have no controller", function),
		Suggestions: []string{
			"Parameter bindings can only be declared on methods",
			"Move the function onto a controller type",
		},
	}
}

// ReportGenericReceiver reports annotations on a method of a generic type
func (r *ErrorReporter) ReportGenericReceiver(receiver, method, file string, line int) error {
	return &models.GeneratorError{
		Type:    models.ErrorTypeValidation,
		File:    file,
		Line:    line,
		Message: fmt.Sprintf("cannot generate bindings for %s.%s: %s is generic", receiver, method, receiver),
		Suggestions: []string{
			fmt.Sprintf("Register the bindings by hand with bindmeta.Controller[%s[YourType]]()", receiver),
		},
	}
}
