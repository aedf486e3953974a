package adapters

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
)

// Gin describes gin handler types. *gin.Context carries both the request and
// the response.
func Gin() Framework {
	ctx := reflect.TypeFor[*gin.Context]()
	return Framework{
		Name:     "gin",
		Request:  []reflect.Type{ctx, reflect.TypeFor[*http.Request]()},
		Response: []reflect.Type{ctx, reflect.TypeFor[gin.ResponseWriter]()},
	}
}
