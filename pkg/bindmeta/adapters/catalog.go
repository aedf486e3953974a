package adapters

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/toyz/bindmeta/pkg/bindmeta"
)

// ErrNotACarrier is returned when a request or response binding is declared on a
// parameter whose type cannot carry the request or response
var ErrNotACarrier = errors.New("declared type is not a request/response carrier")

// Framework lists the types a web framework hands to handlers as the request
// and response objects
type Framework struct {
	Name     string
	Request  []reflect.Type
	Response []reflect.Type
}

// Catalog holds the frameworks known to the application
type Catalog struct {
	mu         sync.RWMutex
	frameworks []Framework
}

// NewCatalog creates a catalog of the given frameworks
func NewCatalog(frameworks ...Framework) *Catalog {
	return &Catalog{
		frameworks: append([]Framework(nil), frameworks...),
	}
}

// Default returns a catalog of net/http, Gin, Echo and Fiber
func Default() *Catalog {
	return NewCatalog(NetHTTP(), Gin(), Echo(), Fiber())
}

// Add registers another framework
func (c *Catalog) Add(fw Framework) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frameworks = append(c.frameworks, fw)
}

// Names returns the names of every registered framework
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.frameworks))
	for _, fw := range c.frameworks {
		names = append(names, fw.Name)
	}
	return names
}

// IsRequest reports whether t can be injected as the request object
func (c *Catalog) IsRequest(t reflect.Type) bool {
	_, ok := c.lookup(t, func(fw Framework) []reflect.Type { return fw.Request })
	return ok
}

// IsResponse reports whether t can be injected as the response object
func (c *Catalog) IsResponse(t reflect.Type) bool {
	_, ok := c.lookup(t, func(fw Framework) []reflect.Type { return fw.Response })
	return ok
}

// FrameworkOf returns the name of the first framework t is a carrier of
func (c *Catalog) FrameworkOf(t reflect.Type) (string, bool) {
	return c.lookup(t, func(fw Framework) []reflect.Type {
		return append(append([]reflect.Type(nil), fw.Request...), fw.Response...)
	})
}

func (c *Catalog) lookup(t reflect.Type, carriers func(Framework) []reflect.Type) (string, bool) {
	if t == nil {
		return "", false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, fw := range c.frameworks {
		for _, carrier := range carriers(fw) {
			if matches(t, carrier) {
				return fw.Name, true
			}
		}
	}
	return "", false
}

// matches accepts the carrier itself, and for interface carriers any type
// implementing it
func matches(t, carrier reflect.Type) bool {
	if t == carrier {
		return true
	}
	return carrier.Kind() == reflect.Interface && t.Implements(carrier)
}

// Validator returns a registry check rejecting request/response bindings whose
// declared type is known but is not a carrier. Bindings with UnknownType pass.
//
//	registry := bindmeta.NewRegistry(bindmeta.WithValidator(adapters.Default().Validator()))
func (c *Catalog) Validator() func(bindmeta.ParamMetadata) error {
	return func(md bindmeta.ParamMetadata) error {
		if !md.TypeKnown() {
			return nil
		}
		switch md.Kind {
		case bindmeta.KindRequest:
			if !c.IsRequest(md.DeclaredType) {
				return fmt.Errorf("%w: %s cannot carry the request", ErrNotACarrier, md.DeclaredType)
			}
		case bindmeta.KindResponse:
			if !c.IsResponse(md.DeclaredType) {
				return fmt.Errorf("%w: %s cannot carry the response", ErrNotACarrier, md.DeclaredType)
			}
		}
		return nil
	}
}
