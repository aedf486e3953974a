package bindmeta

import "fmt"

// BindingKind identifies which part of a request a parameter is bound to
type BindingKind int

const (
	kindInvalid BindingKind = iota

	// KindRequest binds the whole request object
	KindRequest
	// KindResponse binds the whole response object
	KindResponse
	// KindParam binds a named route parameter
	KindParam
	// KindQuery binds a named query parameter
	KindQuery
	// KindHeader binds a named request header
	KindHeader
	// KindCookie binds a named cookie
	KindCookie
	// KindBody binds the whole request body
	KindBody
	// KindBodyParam binds one named field of the request body
	KindBodyParam
	// KindUploadedFile binds a single uploaded file
	KindUploadedFile
	// KindUploadedFiles binds the full collection of uploaded files
	KindUploadedFiles
)

var kindNames = map[BindingKind]string{
	KindRequest:       "request",
	KindResponse:      "response",
	KindParam:         "param",
	KindQuery:         "query",
	KindHeader:        "header",
	KindCookie:        "cookie",
	KindBody:          "body",
	KindBodyParam:     "body-param",
	KindUploadedFile:  "file",
	KindUploadedFiles: "files",
}

// Kinds returns every valid binding kind in declaration order
func Kinds() []BindingKind {
	return []BindingKind{
		KindRequest, KindResponse, KindParam, KindQuery, KindHeader,
		KindCookie, KindBody, KindBodyParam, KindUploadedFile, KindUploadedFiles,
	}
}

// String returns the string representation of the binding kind
func (k BindingKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseBindingKind converts a string to a BindingKind
func ParseBindingKind(s string) (BindingKind, error) {
	for kind, name := range kindNames {
		if name == s {
			return kind, nil
		}
	}
	return kindInvalid, fmt.Errorf("unknown binding kind: %s", s)
}

// Valid reports whether k is one of the declared kinds
func (k BindingKind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// NameRequired reports whether bindings of this kind must carry a binding name
func (k BindingKind) NameRequired() bool {
	switch k {
	case KindParam, KindQuery, KindHeader, KindCookie, KindBodyParam:
		return true
	}
	return false
}

// AcceptsName reports whether a binding name is meaningful for this kind
func (k BindingKind) AcceptsName() bool {
	return k.NameRequired() || k == KindUploadedFile
}

// AcceptsParseJSON reports whether the raw value may be JSON-decoded before injection
func (k BindingKind) AcceptsParseJSON() bool {
	return k.NameRequired()
}

// AcceptsRequired reports whether the kind can be marked as required.
// Request and response objects are always present.
func (k BindingKind) AcceptsRequired() bool {
	return k.Valid() && k != KindRequest && k != KindResponse
}

// MarshalText implements encoding.TextMarshaler
func (k BindingKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid binding kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *BindingKind) UnmarshalText(text []byte) error {
	kind, err := ParseBindingKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}
