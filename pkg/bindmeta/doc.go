// Package bindmeta records how controller method parameters bind to request
// data: the request or response object, route parameters, query parameters,
// headers, cookies, the body or one of its fields, and uploaded files.
//
// Each binding kind has its own factory (Req, Res, Param, QueryParam,
// HeaderParam, CookieParam, Body, BodyParam, UploadedFile, UploadedFiles).
// A factory returns a Decorator; applying it to (controller, method, index)
// appends one ParamMetadata record to a Registry. Request dispatchers read the
// records back with Registry.ForMethod and perform the actual extraction.
//
// Bindings are declared once at start-up, either with the builder
//
//	func init() {
//		bindmeta.Controller[UserController]().
//			Method("Show", bindmeta.Req(), bindmeta.Param("id")).
//			Method("Upload", bindmeta.UploadedFile("avatar", bindmeta.BodyOptions{Required: true})).
//			MustRegister()
//	}
//
// or by running the bindgen tool over //bind:: method annotations, which emits
// the same calls into autogen_bindings.go.
//
// Declared parameter types are read from the controller's method set with
// reflection. Methods that reflection cannot see (unexported ones) get
// UnknownType; As and Decorator.WithType declare a type explicitly.
package bindmeta
