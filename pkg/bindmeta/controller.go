package bindmeta

import (
	"errors"
	"reflect"
)

type pendingBinding struct {
	method    string
	index     int
	decorator Decorator
}

// ControllerBuilder collects the parameter bindings of one controller type and
// registers them in one step. It is the explicit counterpart of decorating
// method parameters in place.
//
//	bindmeta.Controller[UserController]().
//		Method("Show", bindmeta.Req(), bindmeta.Param("id")).
//		Method("List", bindmeta.Skip, bindmeta.QueryParam("page")).
//		MustRegister()
type ControllerBuilder struct {
	registry *Registry
	target   reflect.Type
	pending  []pendingBinding
}

// Controller starts a builder for T bound to the default registry
func Controller[T any]() *ControllerBuilder {
	return ControllerIn[T](DefaultRegistry())
}

// ControllerIn starts a builder for T bound to r, or to the default registry
// when r is nil
func ControllerIn[T any](r *Registry) *ControllerBuilder {
	if r == nil {
		r = DefaultRegistry()
	}
	t, _ := TargetOf(reflect.TypeFor[T]())
	return &ControllerBuilder{
		registry: r,
		target:   t,
	}
}

// Target returns the controller type the builder registers for
func (b *ControllerBuilder) Target() reflect.Type {
	return b.target
}

// Method queues one decorator per parameter of method, in signature order.
// Skip leaves a position unbound.
func (b *ControllerBuilder) Method(name string, params ...Decorator) *ControllerBuilder {
	for i, d := range params {
		if d.IsZero() {
			continue
		}
		b.pending = append(b.pending, pendingBinding{method: name, index: i, decorator: d})
	}
	return b
}

// Bind queues a single decorator at an explicit parameter index
func (b *ControllerBuilder) Bind(method string, index int, d Decorator) *ControllerBuilder {
	if !d.IsZero() {
		b.pending = append(b.pending, pendingBinding{method: method, index: index, decorator: d})
	}
	return b
}

// Len returns the number of queued bindings
func (b *ControllerBuilder) Len() int {
	return len(b.pending)
}

// Register applies every queued binding in the order it was queued. Failed
// bindings do not stop the others; all failures are returned joined.
func (b *ControllerBuilder) Register() error {
	var errs []error
	for _, p := range b.pending {
		if err := p.decorator.ApplyTo(b.registry, b.target, p.method, p.index); err != nil {
			errs = append(errs, err)
		}
	}
	b.pending = nil
	return errors.Join(errs...)
}

// MustRegister is like Register but panics on failure. Generated init
// functions use it so that a broken declaration stops the program at start-up.
func (b *ControllerBuilder) MustRegister() {
	if err := b.Register(); err != nil {
		panic(err)
	}
}
