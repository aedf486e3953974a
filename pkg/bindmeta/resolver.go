package bindmeta

import (
	"fmt"
	"reflect"
	"sync"
)

// TypeResolver supplies the declared type of a method parameter.
//
// A nil type with a nil error means the information is not available; the
// record is stored with UnknownType. A non-nil error is a configuration error
// and aborts the registration.
type TypeResolver interface {
	ParamType(target reflect.Type, method string, index int) (reflect.Type, error)
}

// TypeResolverFunc adapts a function to the TypeResolver interface
type TypeResolverFunc func(target reflect.Type, method string, index int) (reflect.Type, error)

// ParamType calls f
func (f TypeResolverFunc) ParamType(target reflect.Type, method string, index int) (reflect.Type, error) {
	return f(target, method, index)
}

type methodResolver struct{}

// MethodResolver returns a resolver that reads parameter types from the
// target's method set. Only exported methods are visible to reflection, so
// unexported methods resolve to UnknownType.
func MethodResolver() TypeResolver {
	return methodResolver{}
}

func (methodResolver) ParamType(target reflect.Type, method string, index int) (reflect.Type, error) {
	if target == nil {
		return nil, nil
	}

	var fn reflect.Type
	offset := 0
	if target.Kind() == reflect.Interface {
		m, ok := target.MethodByName(method)
		if !ok {
			return nil, nil
		}
		fn = m.Type
	} else {
		// Pointer method set includes value receivers as well
		m, ok := reflect.PointerTo(target).MethodByName(method)
		if !ok {
			return nil, nil
		}
		fn = m.Type
		offset = 1 // receiver
	}

	params := fn.NumIn() - offset
	if index < 0 || index >= params {
		return nil, fmt.Errorf("%w: %s.%s has %d parameters, got index %d",
			ErrParamIndexOutOfRange, target, method, params, index)
	}
	return fn.In(index + offset), nil
}

type staticKey struct {
	target reflect.Type
	method string
	index  int
}

// StaticResolver serves explicitly declared parameter types and falls back to
// another resolver (if any) for everything else.
type StaticResolver struct {
	mu       sync.RWMutex
	types    map[staticKey]reflect.Type
	fallback TypeResolver
}

// NewStaticResolver creates a StaticResolver. fallback may be nil.
func NewStaticResolver(fallback TypeResolver) *StaticResolver {
	return &StaticResolver{
		types:    make(map[staticKey]reflect.Type),
		fallback: fallback,
	}
}

// Declare records the type of one parameter
func (s *StaticResolver) Declare(target any, method string, index int, declared reflect.Type) error {
	t, err := TargetOf(target)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.types[staticKey{t, method, index}] = declared
	return nil
}

// ParamType implements TypeResolver
func (s *StaticResolver) ParamType(target reflect.Type, method string, index int) (reflect.Type, error) {
	s.mu.RLock()
	declared, ok := s.types[staticKey{target, method, index}]
	s.mu.RUnlock()
	if ok {
		return declared, nil
	}
	if s.fallback != nil {
		return s.fallback.ParamType(target, method, index)
	}
	return nil, nil
}
