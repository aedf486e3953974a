package generator

import "github.com/toyz/bindmeta/internal/models"

// CodeGenerator renders the registration file of one annotated package
type CodeGenerator interface {
	Generate(metadata *models.PackageBindings) (*models.GeneratedFile, error)
}

// TemplateRenderer executes a named template
type TemplateRenderer interface {
	Render(name string, data interface{}) (string, error)
}
