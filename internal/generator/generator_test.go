package generator

import (
	"errors"
	"go/parser"
	"go/token"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/bindmeta/internal/models"
	annotationparser "github.com/toyz/bindmeta/internal/parser"
)

const ordersSource = `package orders

import (
	"mime/multipart"
	"net/http"
)

type OrderController struct{}

//bind::req r
//bind::param id orderId
func (c *OrderController) Get(r *http.Request, id string) {}

//bind::query filter -ParseJSON
//bind::body_param note -Required
func (c *OrderController) Search(limit int, filter map[string]string, note string) {}

type UploadController struct{}

//bind::res w
//bind::files docs -Required
func (u UploadController) Upload(w http.ResponseWriter, _ int, docs []*multipart.FileHeader) {}
`

func TestGenerate(t *testing.T) {
	metadata, err := annotationparser.NewParser().ParseSource("orders.go", ordersSource)
	require.NoError(t, err)
	metadata.PackagePath = filepath.Join("internal", "orders")

	file, err := NewGenerator().Generate(metadata)
	require.NoError(t, err)

	assert.Equal(t, "orders", file.PackageName)
	assert.Equal(t, filepath.Join("internal", "orders", models.GeneratedFileName), file.FilePath)
	assert.Equal(t, 2, file.Controllers)
	assert.Equal(t, 6, file.Bindings)

	expected := `// Code generated by bindgen. DO NOT EDIT.

package orders

import "github.com/toyz/bindmeta/pkg/bindmeta"

func init() {
	bindmeta.Controller[OrderController]().
		Method("Get", bindmeta.Req(), bindmeta.Param("orderId")).
		Method("Search", bindmeta.Skip, bindmeta.QueryParam("filter", bindmeta.ParamOptions{ParseJSON: true}), bindmeta.BodyParam("note", bindmeta.ParamOptions{Required: true})).
		MustRegister()
	bindmeta.Controller[UploadController]().
		Method("Upload", bindmeta.Res(), bindmeta.Skip, bindmeta.UploadedFiles(bindmeta.BodyOptions{Required: true})).
		MustRegister()
}
`
	assert.Equal(t, expected, file.Content)

	_, err = parser.ParseFile(token.NewFileSet(), file.FilePath, file.Content, parser.ParseComments)
	assert.NoError(t, err)
}

func TestGenerateErrors(t *testing.T) {
	g := NewGenerator()

	_, err := g.Generate(nil)
	assert.ErrorContains(t, err, "metadata cannot be nil")

	_, err = g.Generate(&models.PackageBindings{PackageName: "empty"})
	assert.ErrorContains(t, err, "package empty has no parameter bindings")
}

type stubRenderer struct {
	out string
	err error
}

func (s stubRenderer) Render(string, interface{}) (string, error) {
	return s.out, s.err
}

func TestGenerateRendererFailures(t *testing.T) {
	metadata := &models.PackageBindings{
		PackageName: "x",
		PackagePath: "x",
		Controllers: []models.ControllerBindings{{
			Name: "C",
			Methods: []models.MethodBindings{{
				Name:   "M",
				Params: []models.ParamSlot{{GoName: "r", Binding: &models.Binding{}}},
			}},
		}},
	}

	t.Run("render error", func(t *testing.T) {
		cause := errors.New("boom")
		_, err := NewGeneratorWithRenderer(stubRenderer{err: cause}, "example.com/bindmeta").Generate(metadata)
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)

		var genErr *models.GeneratorError
		require.True(t, errors.As(err, &genErr))
		assert.Equal(t, models.ErrorTypeGeneration, genErr.Type)
	})

	t.Run("invalid output", func(t *testing.T) {
		_, err := NewGeneratorWithRenderer(stubRenderer{out: "package x\nfunc {"}, "example.com/bindmeta").Generate(metadata)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "generated code does not compile")
	})
}

func TestFormatSource(t *testing.T) {
	out, err := formatSource("a.go", "package a\nfunc  f( ) {\nreturn}\n")
	require.NoError(t, err)
	assert.Equal(t, "package a\n\nfunc f() {\n\treturn\n}\n", out)
}
