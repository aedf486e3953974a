package templates

import (
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/toyz/bindmeta/internal/models"
	"github.com/toyz/bindmeta/pkg/bindmeta"
)

// RuntimeImport is the import path generated files register bindings through
const RuntimeImport = "github.com/toyz/bindmeta/pkg/bindmeta"

// BindingsFileData is the data of the bindings-file template
type BindingsFileData struct {
	PackageName   string
	RuntimeImport string
	Controllers   []models.ControllerBindings
}

// TemplateUtils provides common utilities for template generation
type TemplateUtils struct{}

// NewTemplateUtils creates a new template utilities instance
func NewTemplateUtils() *TemplateUtils {
	return &TemplateUtils{}
}

// FuncMap returns the functions available to every template
func (tu *TemplateUtils) FuncMap() template.FuncMap {
	return template.FuncMap{
		"quote":     strconv.Quote,
		"decorator": tu.DecoratorExpr,
	}
}

// DecoratorExpr returns the bindmeta call that declares the binding of one
// parameter slot, bindmeta.Skip when the slot is unbound
func (tu *TemplateUtils) DecoratorExpr(slot models.ParamSlot) (string, error) {
	b := slot.Binding
	if b == nil {
		return "bindmeta.Skip", nil
	}

	switch b.Kind {
	case bindmeta.KindRequest:
		return "bindmeta.Req()", nil
	case bindmeta.KindResponse:
		return "bindmeta.Res()", nil
	case bindmeta.KindParam:
		return tu.namedCall("Param", b), nil
	case bindmeta.KindQuery:
		return tu.namedCall("QueryParam", b), nil
	case bindmeta.KindHeader:
		return tu.namedCall("HeaderParam", b), nil
	case bindmeta.KindCookie:
		return tu.namedCall("CookieParam", b), nil
	case bindmeta.KindBodyParam:
		return tu.namedCall("BodyParam", b), nil
	case bindmeta.KindBody:
		return "bindmeta.Body(" + tu.bodyOptions(b) + ")", nil
	case bindmeta.KindUploadedFile:
		return "bindmeta.UploadedFile(" + tu.joinArgs(strconv.Quote(b.Name), tu.bodyOptions(b)) + ")", nil
	case bindmeta.KindUploadedFiles:
		return "bindmeta.UploadedFiles(" + tu.bodyOptions(b) + ")", nil
	default:
		return "", fmt.Errorf("parameter %s has unsupported binding kind %s", slot.GoName, b.Kind)
	}
}

func (tu *TemplateUtils) namedCall(factory string, b *models.Binding) string {
	var fields []string
	if b.ParseJSON {
		fields = append(fields, "ParseJSON: true")
	}
	if b.Required {
		fields = append(fields, "Required: true")
	}
	opts := ""
	if len(fields) > 0 {
		opts = "bindmeta.ParamOptions{" + strings.Join(fields, ", ") + "}"
	}
	return "bindmeta." + factory + "(" + tu.joinArgs(strconv.Quote(b.Name), opts) + ")"
}

func (tu *TemplateUtils) bodyOptions(b *models.Binding) string {
	if !b.Required {
		return ""
	}
	return "bindmeta.BodyOptions{Required: true}"
}

func (tu *TemplateUtils) joinArgs(args ...string) string {
	var nonEmpty []string
	for _, arg := range args {
		if arg != "" {
			nonEmpty = append(nonEmpty, arg)
		}
	}
	return strings.Join(nonEmpty, ", ")
}
