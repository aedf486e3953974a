package models

import (
	"fmt"

	"github.com/toyz/bindmeta/pkg/bindmeta"
)

// ControllerBindings groups the annotated methods of one controller type
type ControllerBindings struct {
	Name    string           // type name
	Methods []MethodBindings // annotated methods in source order
}

// BindingCount returns the number of bound parameters of the controller
func (c *ControllerBindings) BindingCount() int {
	count := 0
	for _, m := range c.Methods {
		count += len(m.Bound())
	}
	return count
}

// MethodBindings describes one annotated method and its full parameter list
type MethodBindings struct {
	Name     string      // method name
	Exported bool        // unexported methods resolve to an unknown type at runtime
	File     string      // file declaring the method
	Line     int         // line of the method declaration
	Params   []ParamSlot // every parameter, bound or not, receiver excluded
}

// Bound returns the parameters that carry a binding
func (m MethodBindings) Bound() []ParamSlot {
	var bound []ParamSlot
	for _, p := range m.Params {
		if p.Binding != nil {
			bound = append(bound, p)
		}
	}
	return bound
}

// Slots returns the parameters up to and including the last bound one, the
// positional list passed to ControllerBuilder.Method
func (m MethodBindings) Slots() []ParamSlot {
	last := -1
	for i, p := range m.Params {
		if p.Binding != nil {
			last = i
		}
	}
	return m.Params[:last+1]
}

// ParamSlot is one position in a method signature
type ParamSlot struct {
	Index   int      // zero-based position, receiver excluded
	GoName  string   // parameter name in source
	GoType  string   // parameter type as written in source
	Binding *Binding // nil when the parameter is not bound
}

// Binding is the parameter binding declared by an annotation
type Binding struct {
	Kind      bindmeta.BindingKind
	Name      string
	ParseJSON bool
	Required  bool
	File      string
	Line      int
}

// Position returns file:line of the annotation
func (b *Binding) Position() string {
	return fmt.Sprintf("%s:%d", b.File, b.Line)
}
