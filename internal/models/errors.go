package models

import "fmt"

// ErrorType represents different types of generator errors
type ErrorType int

const (
	ErrorTypeAnnotationSyntax ErrorType = iota
	ErrorTypeValidation
	ErrorTypeGeneration
	ErrorTypeFileSystem
)

// String returns the string representation of the error type
func (t ErrorType) String() string {
	switch t {
	case ErrorTypeAnnotationSyntax:
		return "annotation syntax"
	case ErrorTypeValidation:
		return "validation"
	case ErrorTypeGeneration:
		return "generation"
	case ErrorTypeFileSystem:
		return "file system"
	default:
		return "unknown"
	}
}

// GeneratorError represents an error that occurred during code generation
type GeneratorError struct {
	Type        ErrorType // type of error
	File        string    // file where error occurred
	Line        int       // line number where error occurred
	Message     string    // error message
	Suggestions []string  // ways to fix the problem
	Cause       error     // underlying error cause
}

// Error implements the error interface
func (e *GeneratorError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error cause
func (e *GeneratorError) Unwrap() error {
	return e.Cause
}
