package adapters

import (
	"reflect"

	"github.com/labstack/echo/v4"
)

// Echo describes echo handler types. echo.Context carries both the request and
// the response.
func Echo() Framework {
	ctx := reflect.TypeFor[echo.Context]()
	return Framework{
		Name:     "echo",
		Request:  []reflect.Type{ctx},
		Response: []reflect.Type{ctx, reflect.TypeFor[*echo.Response]()},
	}
}
