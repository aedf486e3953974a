package bindmeta

import (
	"fmt"
	"reflect"
)

// Unknown stands in for a declared type that could not be resolved
type Unknown struct{}

// UnknownType is recorded as DeclaredType when the resolver has no type
// information for a parameter. Binders should pass the raw value through.
var UnknownType = reflect.TypeOf(Unknown{})

// ParamMetadata describes one bound controller method parameter
type ParamMetadata struct {
	Target       reflect.Type // owning controller type, pointers stripped
	Method       string       // method the parameter belongs to
	Index        int          // zero-based position, receiver excluded
	Kind         BindingKind  // what the parameter binds to
	DeclaredType reflect.Type // static parameter type or UnknownType
	Name         string       // route/query/header/cookie/field/file key, empty when absent
	ParseJSON    bool         // decode the raw value as JSON before injection
	Required     bool         // a missing value is an error for the binder
}

// HasName reports whether the record carries a binding name
func (m ParamMetadata) HasName() bool {
	return m.Name != ""
}

// TypeKnown reports whether the declared type was resolved
func (m ParamMetadata) TypeKnown() bool {
	return m.DeclaredType != nil && m.DeclaredType != UnknownType
}

// TargetName returns the qualified name of the owning controller
func (m ParamMetadata) TargetName() string {
	if m.Target == nil {
		return "<nil>"
	}
	return m.Target.String()
}

func (m ParamMetadata) String() string {
	declared := "unknown"
	if m.TypeKnown() {
		declared = m.DeclaredType.String()
	}
	s := fmt.Sprintf("%s.%s[%d] %s %s", m.TargetName(), m.Method, m.Index, m.Kind, declared)
	if m.HasName() {
		s += fmt.Sprintf(" name=%q", m.Name)
	}
	if m.ParseJSON {
		s += " json"
	}
	if m.Required {
		s += " required"
	}
	return s
}

// Validate checks the record against the rules of its binding kind
func (m ParamMetadata) Validate() error {
	var err error
	switch {
	case m.Target == nil:
		err = ErrNilTarget
	case m.Method == "":
		err = ErrEmptyMethod
	case m.Index < 0:
		err = ErrNegativeIndex
	case !m.Kind.Valid():
		err = ErrInvalidKind
	case m.Kind.NameRequired() && m.Name == "":
		err = ErrMissingName
	case !m.Kind.AcceptsName() && m.Name != "":
		err = ErrUnexpectedName
	case !m.Kind.AcceptsParseJSON() && m.ParseJSON:
		err = ErrParseJSONNotAllowed
	case !m.Kind.AcceptsRequired() && m.Required:
		err = ErrRequiredNotAllowed
	}
	if err != nil {
		return registrationError(m, err)
	}
	return nil
}

// TargetOf normalises a controller reference to the type records are keyed by.
// It accepts a reflect.Type, a struct value, a pointer (including a typed nil
// pointer such as (*Controller)(nil)) or a pointer to an interface type.
func TargetOf(v any) (reflect.Type, error) {
	if v == nil {
		return nil, ErrNilTarget
	}
	t, ok := v.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(v)
	}
	if t == nil {
		return nil, ErrNilTarget
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t, nil
}
