package bindmeta

import "reflect"

// ParamOptions configures name-bound decorators
type ParamOptions struct {
	// ParseJSON decodes the raw string value as JSON before injection
	ParseJSON bool
	// Required makes a missing value an error
	Required bool
}

// BodyOptions configures body and file decorators
type BodyOptions struct {
	// Required makes a missing value an error
	Required bool
}

// Decorator is a parameter binding waiting to be applied to a method
// parameter. The zero value is Skip.
type Decorator struct {
	kind      BindingKind
	name      string
	parseJSON bool
	required  bool
	declared  reflect.Type
}

// Skip leaves a parameter position unbound when passed to ControllerBuilder.Method
var Skip Decorator

// Req binds the request object
func Req() Decorator {
	return Decorator{kind: KindRequest}
}

// Res binds the response object
func Res() Decorator {
	return Decorator{kind: KindResponse}
}

// Param binds the route parameter called name
func Param(name string, opts ...ParamOptions) Decorator {
	return named(KindParam, name, opts)
}

// QueryParam binds the query parameter called name
func QueryParam(name string, opts ...ParamOptions) Decorator {
	return named(KindQuery, name, opts)
}

// HeaderParam binds the request header called name
func HeaderParam(name string, opts ...ParamOptions) Decorator {
	return named(KindHeader, name, opts)
}

// CookieParam binds the cookie called name
func CookieParam(name string, opts ...ParamOptions) Decorator {
	return named(KindCookie, name, opts)
}

// Body binds the whole request body
func Body(opts ...BodyOptions) Decorator {
	return Decorator{kind: KindBody, required: lastBody(opts).Required}
}

// BodyParam binds the body field called name
func BodyParam(name string, opts ...ParamOptions) Decorator {
	return named(KindBodyParam, name, opts)
}

// UploadedFile binds one uploaded file. An empty name leaves the file field
// unspecified and lets the binder pick.
func UploadedFile(name string, opts ...BodyOptions) Decorator {
	return Decorator{kind: KindUploadedFile, name: name, required: lastBody(opts).Required}
}

// UploadedFiles binds every uploaded file of the request
func UploadedFiles(opts ...BodyOptions) Decorator {
	return Decorator{kind: KindUploadedFiles, required: lastBody(opts).Required}
}

func named(kind BindingKind, name string, opts []ParamOptions) Decorator {
	var o ParamOptions
	if len(opts) > 0 {
		o = opts[len(opts)-1]
	}
	return Decorator{kind: kind, name: name, parseJSON: o.ParseJSON, required: o.Required}
}

func lastBody(opts []BodyOptions) BodyOptions {
	if len(opts) == 0 {
		return BodyOptions{}
	}
	return opts[len(opts)-1]
}

// As returns a copy of d whose declared type is T instead of the resolved one
func As[T any](d Decorator) Decorator {
	return d.WithType(reflect.TypeFor[T]())
}

// WithType returns a copy of d with an explicit declared type
func (d Decorator) WithType(t reflect.Type) Decorator {
	d.declared = t
	return d
}

// Kind returns the binding kind, zero for Skip
func (d Decorator) Kind() BindingKind {
	return d.kind
}

// Name returns the binding name, empty when absent
func (d Decorator) Name() string {
	return d.name
}

// IsZero reports whether d is Skip
func (d Decorator) IsZero() bool {
	return d.kind == kindInvalid
}

// Apply records the binding of parameter index of target.method in the
// default registry. Bindings are declared during start-up, so a failure is a
// configuration error and panics.
func (d Decorator) Apply(target any, method string, index int) {
	if err := d.ApplyTo(DefaultRegistry(), target, method, index); err != nil {
		panic(err)
	}
}

// ApplyTo records the binding in r. A nil r means the default registry.
func (d Decorator) ApplyTo(r *Registry, target any, method string, index int) error {
	if r == nil {
		r = DefaultRegistry()
	}
	md, err := d.metadata(r.Resolver(), target, method, index)
	if err != nil {
		return err
	}
	return r.Add(md)
}

func (d Decorator) metadata(resolver TypeResolver, target any, method string, index int) (ParamMetadata, error) {
	md := ParamMetadata{
		Method:    method,
		Index:     index,
		Kind:      d.kind,
		Name:      d.name,
		ParseJSON: d.parseJSON,
		Required:  d.required,
	}

	t, err := TargetOf(target)
	if err != nil {
		return md, registrationError(md, err)
	}
	md.Target = t

	md.DeclaredType = d.declared
	if md.DeclaredType == nil && resolver != nil && method != "" && index >= 0 {
		declared, err := resolver.ParamType(t, method, index)
		if err != nil {
			return md, registrationError(md, err)
		}
		md.DeclaredType = declared
	}
	if md.DeclaredType == nil {
		md.DeclaredType = UnknownType
	}
	return md, nil
}
