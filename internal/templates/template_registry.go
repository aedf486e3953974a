package templates

import (
	"bytes"
	"fmt"
	"text/template"
)

// Template names
const (
	BindingsFileTemplate = "bindings-file"
	ControllerTemplate   = "controller-registration"
)

// TemplateRegistry provides a centralized way to access all templates
type TemplateRegistry struct {
	templates map[string]string
	funcs     template.FuncMap
}

// NewTemplateRegistry creates a new template registry with all templates
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]string),
		funcs:     NewTemplateUtils().FuncMap(),
	}

	registry.registerBindingTemplates()

	return registry
}

// Get retrieves a template by name
func (tr *TemplateRegistry) Get(name string) (string, bool) {
	template, exists := tr.templates[name]
	return template, exists
}

// MustGet retrieves a template by name, panics if not found
func (tr *TemplateRegistry) MustGet(name string) string {
	template, exists := tr.templates[name]
	if !exists {
		panic("template not found: " + name)
	}
	return template
}

// Render executes the named template with data. Every registered template is
// available to the executed one.
func (tr *TemplateRegistry) Render(name string, data interface{}) (string, error) {
	if _, exists := tr.templates[name]; !exists {
		return "", fmt.Errorf("template not found: %s", name)
	}

	root := template.New("").Funcs(tr.funcs)
	for templateName, text := range tr.templates {
		if _, err := root.New(templateName).Parse(text); err != nil {
			return "", fmt.Errorf("failed to parse template %s: %w", templateName, err)
		}
	}

	var buf bytes.Buffer
	if err := root.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.String(), nil
}

// registerBindingTemplates registers the autogen_bindings.go templates
func (tr *TemplateRegistry) registerBindingTemplates() {
	tr.templates[BindingsFileTemplate] = `// Code generated by bindgen. DO NOT EDIT.

package {{.PackageName}}

import {{quote .RuntimeImport}}

func init() {
{{- range .Controllers}}
{{template "controller-registration" .}}
{{- end}}
}
`

	tr.templates[ControllerTemplate] = `	bindmeta.Controller[{{.Name}}]().
{{- range .Methods}}
		Method({{quote .Name}}{{range .Slots}}, {{decorator .}}{{end}}).
{{- end}}
		MustRegister()`
}
