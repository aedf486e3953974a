package adapters

import (
	"net/http"
	"reflect"
)

// NetHTTP describes the standard library handler types
func NetHTTP() Framework {
	return Framework{
		Name:     "net/http",
		Request:  []reflect.Type{reflect.TypeFor[*http.Request]()},
		Response: []reflect.Type{reflect.TypeFor[http.ResponseWriter]()},
	}
}
