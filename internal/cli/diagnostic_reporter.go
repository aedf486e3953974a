package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/bindmeta/internal/models"
)

// DiagnosticReporter provides user-friendly error reporting and diagnostics
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
	warn    *color.Color
	fail    *color.Color
}

// NewDiagnosticReporter creates a new diagnostic reporter writing to stderr
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return NewDiagnosticReporterTo(verbose, os.Stderr)
}

// NewDiagnosticReporterTo creates a diagnostic reporter writing to out
func NewDiagnosticReporterTo(verbose bool, out io.Writer) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
		out:     out,
		warn:    color.New(color.FgYellow, color.Bold),
		fail:    color.New(color.FgRed, color.Bold),
	}
}

// SetColors forces colored output on or off
func (r *DiagnosticReporter) SetColors(enabled bool) {
	for _, c := range []*color.Color{r.warn, r.fail} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

// ReportWarning prints a single warning line
func (r *DiagnosticReporter) ReportWarning(message string) {
	r.warn.Fprint(r.out, "! ")
	fmt.Fprintf(r.out, "%s\n", message)
}

// ReportError prints every error joined into err, rich errors with their
// location and suggestions
func (r *DiagnosticReporter) ReportError(err error) {
	if err == nil {
		return
	}

	errs := flatten(err)
	r.fail.Fprintf(r.out, "\nERROR: Code Generation Failed (%d %s)\n", len(errs), plural(len(errs), "problem", "problems"))
	fmt.Fprintf(r.out, "=============================\n\n")

	for _, e := range errs {
		var genErr *models.GeneratorError
		if errors.As(e, &genErr) {
			r.reportGeneratorError(genErr)
		} else {
			fmt.Fprintf(r.out, "Message: %s\n\n", e.Error())
		}
	}

	fmt.Fprintf(r.out, "For more help:\n")
	fmt.Fprintf(r.out, "  - Annotations look like //bind::<kind> <param> [name] [-ParseJSON] [-Required]\n")
	fmt.Fprintf(r.out, "  - Run with -verbose for more detailed output\n")
}

func (r *DiagnosticReporter) reportGeneratorError(genErr *models.GeneratorError) {
	title := errorTitle(genErr.Type)
	fmt.Fprintf(r.out, "Type: %s\n", title)
	fmt.Fprintf(r.out, "%s\n", strings.Repeat("-", len(title)+6))

	if genErr.File != "" {
		if genErr.Line > 0 {
			fmt.Fprintf(r.out, "Location: %s:%d\n", genErr.File, genErr.Line)
		} else {
			fmt.Fprintf(r.out, "File: %s\n", genErr.File)
		}
	}
	fmt.Fprintf(r.out, "Message: %s\n", genErr.Message)

	if r.verbose && genErr.Cause != nil {
		fmt.Fprintf(r.out, "Underlying cause: %s\n", genErr.Cause.Error())
	}

	if len(genErr.Suggestions) > 0 {
		fmt.Fprintf(r.out, "Suggestions:\n")
		for i, suggestion := range genErr.Suggestions {
			fmt.Fprintf(r.out, "   %d. %s\n", i+1, suggestion)
		}
	}
	fmt.Fprintln(r.out)
}

func errorTitle(errorType models.ErrorType) string {
	switch errorType {
	case models.ErrorTypeAnnotationSyntax:
		return "Annotation Syntax Error"
	case models.ErrorTypeValidation:
		return "Validation Error"
	case models.ErrorTypeGeneration:
		return "Code Generation Error"
	case models.ErrorTypeFileSystem:
		return "File System Error"
	default:
		return "Unknown Error"
	}
}

// flatten expands errors.Join trees into their leaves
func flatten(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var errs []error
		for _, e := range joined.Unwrap() {
			errs = append(errs, flatten(e)...)
		}
		return errs
	}
	return []error{err}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// GenerationSummary contains information about the generation process
type GenerationSummary struct {
	PackagesProcessed int
	PackagesBound     int
	ControllersFound  int
	MethodsFound      int
	BindingsFound     int
	Warnings          int
	GeneratedFiles    []string
	UnchangedFiles    []string
	RemovedFiles      []string
	ManifestPath      string
}

// Stats returns the summary as display rows
func (s GenerationSummary) Stats() map[string]interface{} {
	return map[string]interface{}{
		"Packages processed":     s.PackagesProcessed,
		"Packages with bindings": s.PackagesBound,
		"Controllers found":      s.ControllersFound,
		"Methods found":          s.MethodsFound,
		"Bindings found":         s.BindingsFound,
		"Files written":          len(s.GeneratedFiles),
		"Files unchanged":        len(s.UnchangedFiles),
		"Stale files removed":    len(s.RemovedFiles),
	}
}
