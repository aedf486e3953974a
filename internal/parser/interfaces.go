package parser

import (
	"fmt"

	"github.com/toyz/bindmeta/internal/models"
)

// AnnotationParser defines the interface for parsing Go source files and extracting binding metadata
type AnnotationParser interface {
	ParseDirectory(path string) (*models.PackageBindings, error)
	ParseSource(filename, source string) (*models.PackageBindings, error)
	Warnings() []Warning
}

// Warning is a non-fatal finding, such as an annotated unexported method
type Warning struct {
	File    string
	Line    int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s:%d: %s", w.File, w.Line, w.Message)
}
