package generator

import (
	"fmt"
	"path/filepath"

	"golang.org/x/tools/imports"

	"github.com/toyz/bindmeta/internal/models"
	"github.com/toyz/bindmeta/internal/templates"
)

// Generator implements the CodeGenerator interface
type Generator struct {
	renderer      TemplateRenderer
	runtimeImport string
}

// NewGenerator creates a new code generator instance
func NewGenerator() *Generator {
	return &Generator{
		renderer:      templates.NewTemplateRegistry(),
		runtimeImport: templates.RuntimeImport,
	}
}

// NewGeneratorWithRenderer creates a generator using a custom renderer and
// runtime import path
func NewGeneratorWithRenderer(renderer TemplateRenderer, runtimeImport string) *Generator {
	return &Generator{
		renderer:      renderer,
		runtimeImport: runtimeImport,
	}
}

// Generate renders autogen_bindings.go for a package. Packages without any
// bound parameter are an error; callers skip them before generating.
func (g *Generator) Generate(metadata *models.PackageBindings) (*models.GeneratedFile, error) {
	if metadata == nil {
		return nil, fmt.Errorf("metadata cannot be nil")
	}
	if !metadata.HasBindings() {
		return nil, fmt.Errorf("package %s has no parameter bindings", metadata.PackageName)
	}

	filePath := filepath.Join(metadata.PackagePath, models.GeneratedFileName)

	content, err := g.renderer.Render(templates.BindingsFileTemplate, templates.BindingsFileData{
		PackageName:   metadata.PackageName,
		RuntimeImport: g.runtimeImport,
		Controllers:   metadata.Controllers,
	})
	if err != nil {
		return nil, &models.GeneratorError{
			Type:    models.ErrorTypeGeneration,
			File:    filePath,
			Message: "failed to render bindings",
			Cause:   err,
		}
	}

	formatted, err := formatSource(filePath, content)
	if err != nil {
		return nil, &models.GeneratorError{
			Type:        models.ErrorTypeGeneration,
			File:        filePath,
			Message:     "generated code does not compile",
			Suggestions: []string{"Check the Go parameter types of the annotated methods"},
			Cause:       err,
		}
	}

	return &models.GeneratedFile{
		PackageName: metadata.PackageName,
		FilePath:    filePath,
		Content:     formatted,
		Controllers: len(metadata.Controllers),
		Bindings:    metadata.BindingCount(),
	}, nil
}

// formatSource gofmts generated code without touching its imports
func formatSource(filename, source string) (string, error) {
	out, err := imports.Process(filename, []byte(source), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return "", err
	}
	return string(out), nil
}
