package parser

import (
	"errors"
	"go/build"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/bindmeta/internal/models"
	"github.com/toyz/bindmeta/pkg/bindmeta"
)

const usersSource = `package users

import (
	"context"
	"mime/multipart"
	"net/http"
)

type UserController struct{}

// Show returns one user
//bind::req r
//bind::param id
func (c *UserController) Show(r *http.Request, id string) error { return nil }

//bind::query filter f -ParseJSON
//bind::header traceID X-Trace-Id -Required
func (c UserController) List(ctx context.Context, filter map[string]any, page, size int, traceID string) {}

//bind::body input -Required
//bind::file avatar
//bind::files rest
func (c *UserController) Create(input CreateUser, avatar *multipart.FileHeader, rest []*multipart.FileHeader) {}

// Plain method without annotations
func (c *UserController) Helper(x int) {}

type CreateUser struct{ Name string }
`

func TestParseSource(t *testing.T) {
	p := NewParser()
	metadata, err := p.ParseSource("users.go", usersSource)
	require.NoError(t, err)

	assert.Equal(t, "users", metadata.PackageName)
	require.Len(t, metadata.Controllers, 1)

	controller := metadata.Controllers[0]
	assert.Equal(t, "UserController", controller.Name)
	require.Len(t, controller.Methods, 3, "Helper has no annotations")
	assert.Equal(t, 7, controller.BindingCount())

	show := controller.Methods[0]
	assert.Equal(t, "Show", show.Name)
	assert.True(t, show.Exported)
	assert.Equal(t, 14, show.Line)
	require.Len(t, show.Params, 2)
	assert.Equal(t, "*http.Request", show.Params[0].GoType)
	assert.Equal(t, bindmeta.KindRequest, show.Params[0].Binding.Kind)
	assert.Equal(t, &models.Binding{Kind: bindmeta.KindParam, Name: "id", File: "users.go", Line: 13}, show.Params[1].Binding)

	list := controller.Methods[1]
	require.Len(t, list.Params, 5, "grouped names get one slot each")
	assert.Nil(t, list.Params[0].Binding)
	assert.Equal(t, "map[string]any", list.Params[1].GoType)
	assert.Equal(t, "f", list.Params[1].Binding.Name)
	assert.True(t, list.Params[1].Binding.ParseJSON)
	assert.False(t, list.Params[1].Binding.Required)
	assert.Equal(t, "size", list.Params[3].GoName)
	assert.Equal(t, 3, list.Params[3].Index)
	assert.Equal(t, 4, list.Params[4].Index)
	assert.Equal(t, "X-Trace-Id", list.Params[4].Binding.Name)
	assert.True(t, list.Params[4].Binding.Required)

	create := controller.Methods[2]
	assert.Equal(t, bindmeta.KindBody, create.Params[0].Binding.Kind)
	assert.True(t, create.Params[0].Binding.Required)
	assert.Equal(t, bindmeta.KindUploadedFile, create.Params[1].Binding.Kind)
	assert.Empty(t, create.Params[1].Binding.Name)
	assert.Equal(t, "[]*multipart.FileHeader", create.Params[2].GoType)
	assert.Equal(t, bindmeta.KindUploadedFiles, create.Params[2].Binding.Kind)

	assert.Empty(t, p.Warnings())
}

func TestParseSourceVariadicAndBlank(t *testing.T) {
	source := `package tags

type Tags struct{}

//bind::query values tag
func (Tags) Add(_ string, _ int, values ...string) {}
`
	metadata, err := NewParser().ParseSource("tags.go", source)
	require.NoError(t, err)

	method := metadata.Controllers[0].Methods[0]
	require.Len(t, method.Params, 3)
	assert.Equal(t, "_", method.Params[0].GoName)
	assert.Equal(t, "int", method.Params[1].GoType)
	assert.Equal(t, "...string", method.Params[2].GoType)
	assert.Equal(t, 2, method.Params[2].Index)
	assert.Equal(t, "tag", method.Params[2].Binding.Name)
}

func TestParseSourceUnexportedMethodWarns(t *testing.T) {
	source := `package users

type controller struct{}

//bind::param id
func (c *controller) show(id string) {}
`
	p := NewParser()
	metadata, err := p.ParseSource("users.go", source)
	require.NoError(t, err)
	assert.False(t, metadata.Controllers[0].Methods[0].Exported)

	warnings := p.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, 6, warnings[0].Line)
	assert.Contains(t, warnings[0].String(), "users.go:6: controller.show is unexported")
}

func TestParseSourceErrors(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		contains []string
	}{
		{
			name: "unknown parameter",
			source: `package x
type C struct{}
//bind::param userID
func (C) Get(userId string) {}
`,
			contains: []string{"C.Get has no parameter named 'userID'", "x.go:3"},
		},
		{
			name: "bound twice",
			source: `package x
type C struct{}
//bind::param id
//bind::query id
func (C) Get(id string) {}
`,
			contains: []string{"parameter 'id' of Get is already bound as param"},
		},
		{
			name: "plain function",
			source: `package x
//bind::req r
func Handle(r any) {}
`,
			contains: []string{"function 'Handle' have no controller"},
		},
		{
			name: "generic receiver",
			source: `package x
type Repo[T any] struct{}
//bind::param id
func (r *Repo[T]) Get(id string) {}
`,
			contains: []string{"Repo is generic"},
		},
		{
			name: "invalid annotation",
			source: `package x
type C struct{}
//bind::body input payload
func (C) Post(input string) {}
`,
			contains: []string{"invalid annotation", "does not take a name"},
		},
		{
			name: "errors are collected",
			source: `package x
type C struct{}
//bind::param a
func (C) One(b string) {}
//bind::cookie c
func (C) Two(d string) {}
`,
			contains: []string{"no parameter named 'a'", "no parameter named 'c'"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser().ParseSource("x.go", tt.source)
			require.Error(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, err.Error(), s)
			}

			var genErr *models.GeneratorError
			require.True(t, errors.As(err, &genErr))
			assert.NotEmpty(t, genErr.Suggestions)
		})
	}
}

func TestParseDirectory(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}

	write("a.go", `package api

type Orders struct{}

//bind::param id
func (o *Orders) Get(id int64) {}
`)
	write("b.go", `package api

type Accounts struct{}

//bind::cookie session sid
func (a *Accounts) Me(session string) {}

//bind::param id
func (o *Orders) Delete(id int64) {}
`)
	write("a_test.go", `package api

//bind::param nope
func (o *Orders) Broken() {}
`)
	write(models.GeneratedFileName, `package api

this is not go
`)

	metadata, err := NewParser().ParseDirectory(dir)
	require.NoError(t, err)

	assert.Equal(t, "api", metadata.PackageName)
	assert.Equal(t, dir, metadata.PackagePath)
	require.Len(t, metadata.Controllers, 2)
	assert.Equal(t, "Orders", metadata.Controllers[0].Name)
	assert.Len(t, metadata.Controllers[0].Methods, 2)
	assert.Equal(t, "Accounts", metadata.Controllers[1].Name)
	assert.Equal(t, "sid", metadata.Controllers[1].Methods[0].Params[0].Binding.Name)
	assert.Equal(t, filepath.Join(dir, "b.go"), metadata.Controllers[1].Methods[0].File)
}

func TestParseDirectoryErrors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := NewParser().ParseDirectory(filepath.Join(t.TempDir(), "missing"))
		assert.Error(t, err)
	})

	t.Run("no go files", func(t *testing.T) {
		_, err := NewParser().ParseDirectory(t.TempDir())
		assert.ErrorContains(t, err, "no Go files found")
	})

	t.Run("mixed packages", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte("package a\n"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "b.go"), []byte("package b\n"), 0644))
		_, err := NewParser().ParseDirectory(dir)
		assert.ErrorContains(t, err, "multiple packages")
	})
}

func TestParseSourceGofmtSpacing(t *testing.T) {
	source := `package users

type C struct{}

// Show returns one user.
//
// bind::param id
// bind::header token Authorization -Required
func (C) Show(id, token string) {}
`
	metadata, err := NewParser().ParseSource("users.go", source)
	require.NoError(t, err)

	params := metadata.Controllers[0].Methods[0].Params
	assert.Equal(t, "id", params[0].Binding.Name)
	assert.Equal(t, "Authorization", params[1].Binding.Name)
	assert.True(t, params[1].Binding.Required)
}

func TestParseDirectoryBuildConstraints(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}

	write("server.go", `package serve

type Server struct{}
`)
	for _, goos := range []string{"linux", "windows"} {
		write("serve_"+goos+".go", `package serve

//bind::param id
func (s *Server) Serve(id string) {}
`)
	}
	write("gen.go", `//go:build ignore

package main

func main() {}
`)

	for _, goos := range []string{"linux", "windows"} {
		t.Run(goos, func(t *testing.T) {
			ctxt := build.Default
			ctxt.GOOS = goos

			metadata, err := NewParserFor(&ctxt).ParseDirectory(dir)
			require.NoError(t, err)

			assert.Equal(t, "serve", metadata.PackageName)
			require.Len(t, metadata.Controllers, 1)
			require.Len(t, metadata.Controllers[0].Methods, 1, "one Serve per platform")
			assert.Equal(t, filepath.Join(dir, "serve_"+goos+".go"), metadata.Controllers[0].Methods[0].File)
		})
	}

	t.Run("only ignored files", func(t *testing.T) {
		ignored := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(ignored, "gen.go"), []byte("//go:build ignore\n\npackage main\n"), 0644))
		_, err := NewParser().ParseDirectory(ignored)
		assert.ErrorContains(t, err, "no Go files found")
	})
}

func TestParseSourceUnicodeParameter(t *testing.T) {
	source := `package shop

type Prices struct{}

// bind::query café
func (Prices) List(café string) {}
`
	metadata, err := NewParser().ParseSource("shop.go", source)
	require.NoError(t, err)

	param := metadata.Controllers[0].Methods[0].Params[0]
	assert.Equal(t, "café", param.GoName)
	assert.Equal(t, "café", param.Binding.Name)
}
