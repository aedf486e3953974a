package bindmeta

import (
	"errors"
	"fmt"
)

var (
	ErrNilTarget            = errors.New("target is nil")
	ErrEmptyMethod          = errors.New("method name is empty")
	ErrNegativeIndex        = errors.New("parameter index is negative")
	ErrInvalidKind          = errors.New("invalid binding kind")
	ErrMissingName          = errors.New("binding name is required for this kind")
	ErrUnexpectedName       = errors.New("binding name is not accepted for this kind")
	ErrParseJSONNotAllowed  = errors.New("parseJSON is not accepted for this kind")
	ErrRequiredNotAllowed   = errors.New("required is not accepted for this kind")
	ErrDuplicateBinding     = errors.New("parameter is already bound")
	ErrRegistryFrozen       = errors.New("registry is frozen")
	ErrParamIndexOutOfRange = errors.New("parameter index out of range")
)

// RegistrationError describes why a binding could not be recorded
type RegistrationError struct {
	Target string // controller type name
	Method string // method name
	Index  int    // parameter index
	Err    error  // underlying cause
}

// Error implements the error interface
func (e *RegistrationError) Error() string {
	return fmt.Sprintf("bindmeta: %s.%s[%d]: %v", e.Target, e.Method, e.Index, e.Err)
}

// Unwrap returns the underlying cause for errors.Is / errors.As
func (e *RegistrationError) Unwrap() error {
	return e.Err
}

func registrationError(md ParamMetadata, err error) error {
	return &RegistrationError{
		Target: md.TargetName(),
		Method: md.Method,
		Index:  md.Index,
		Err:    err,
	}
}
