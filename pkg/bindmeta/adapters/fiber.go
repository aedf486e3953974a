package adapters

import (
	"reflect"

	"github.com/gofiber/fiber/v2"
)

// Fiber describes fiber handler types. Fiber exposes a single *fiber.Ctx for
// both sides of the exchange.
func Fiber() Framework {
	ctx := reflect.TypeFor[*fiber.Ctx]()
	return Framework{
		Name:     "fiber",
		Request:  []reflect.Type{ctx},
		Response: []reflect.Type{ctx},
	}
}
