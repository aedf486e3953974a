package parser

import (
	"errors"
	"fmt"
	"go/ast"
	"go/build"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/toyz/bindmeta/internal/annotations"
	"github.com/toyz/bindmeta/internal/models"
)

// Parser implements the AnnotationParser interface
type Parser struct {
	fileSet     *token.FileSet
	buildCtx    *build.Context
	annotations *annotations.ParticipleParser
	reporter    *ErrorReporter
	warnings    []Warning
}

// NewParser creates a new annotation parser for the host GOOS/GOARCH and
// build tags
func NewParser() *Parser {
	return NewParserFor(&build.Default)
}

// NewParserFor creates a parser that only reads the files ctxt would build
func NewParserFor(ctxt *build.Context) *Parser {
	return &Parser{
		fileSet:     token.NewFileSet(),
		buildCtx:    ctxt,
		annotations: annotations.NewParticipleParser(annotations.DefaultSchemas()),
		reporter:    NewErrorReporter(),
	}
}

// Warnings returns the warnings collected by the last parse
func (p *Parser) Warnings() []Warning {
	return append([]Warning(nil), p.warnings...)
}

// ParseSource parses source code from a string for testing purposes
func (p *Parser) ParseSource(filename, source string) (*models.PackageBindings, error) {
	p.warnings = nil

	file, err := parser.ParseFile(p.fileSet, filename, source, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}

	metadata := &models.PackageBindings{
		PackageName: file.Name.Name,
		PackagePath: "./",
	}

	if err := p.collect(metadata, []*ast.File{file}); err != nil {
		return nil, err
	}
	return metadata, nil
}

// ParseDirectory parses the non-test Go files of one package directory that
// match the build constraints of the parser's context. Previously generated
// files are ignored.
func (p *Parser) ParseDirectory(path string) (*models.PackageBindings, error) {
	p.warnings = nil

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", path, err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		if name == models.GeneratedFileName {
			continue
		}
		if match, err := p.buildCtx.MatchFile(path, name); err == nil && !match {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	if len(names) == 0 {
		return nil, fmt.Errorf("no Go files found in directory %s for %s/%s", path, p.buildCtx.GOOS, p.buildCtx.GOARCH)
	}

	var files []*ast.File
	packageName := ""
	for _, name := range names {
		fileName := filepath.Join(path, name)
		file, err := parser.ParseFile(p.fileSet, fileName, nil, parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", fileName, err)
		}
		if packageName == "" {
			packageName = file.Name.Name
		} else if file.Name.Name != packageName {
			return nil, fmt.Errorf("multiple packages found in directory %s: %s and %s", path, packageName, file.Name.Name)
		}
		files = append(files, file)
	}

	metadata := &models.PackageBindings{
		PackageName: packageName,
		PackagePath: path,
	}

	if err := p.collect(metadata, files); err != nil {
		return nil, err
	}
	return metadata, nil
}

// collect walks every method declaration and records its bindings. All
// errors are reported together.
func (p *Parser) collect(metadata *models.PackageBindings, files []*ast.File) error {
	var errs []error
	controllers := make(map[string]int)

	for _, file := range files {
		for _, decl := range file.Decls {
			funcDecl, ok := decl.(*ast.FuncDecl)
			if !ok {
				continue
			}

			comments := annotationComments(funcDecl)
			if len(comments) == 0 {
				continue
			}

			method, receiver, err := p.parseMethod(funcDecl, comments)
			if err != nil {
				errs = append(errs, err)
				continue
			}

			i, seen := controllers[receiver]
			if !seen {
				i = len(metadata.Controllers)
				controllers[receiver] = i
				metadata.Controllers = append(metadata.Controllers, models.ControllerBindings{Name: receiver})
			}
			metadata.Controllers[i].Methods = append(metadata.Controllers[i].Methods, method)
		}
	}

	return errors.Join(errs...)
}

func annotationComments(funcDecl *ast.FuncDecl) []*ast.Comment {
	if funcDecl.Doc == nil {
		return nil
	}
	var comments []*ast.Comment
	for _, comment := range funcDecl.Doc.List {
		if annotations.IsAnnotation(comment.Text) {
			comments = append(comments, comment)
		}
	}
	return comments
}

// parseMethod maps the annotations of one method onto its parameter list
func (p *Parser) parseMethod(funcDecl *ast.FuncDecl, comments []*ast.Comment) (models.MethodBindings, string, error) {
	pos := p.fileSet.Position(funcDecl.Pos())
	method := models.MethodBindings{
		Name:     funcDecl.Name.Name,
		Exported: funcDecl.Name.IsExported(),
		File:     pos.Filename,
		Line:     pos.Line,
		Params:   p.signatureParams(funcDecl),
	}

	if funcDecl.Recv == nil || len(funcDecl.Recv.List) == 0 {
		return method, "", p.reporter.ReportFunctionAnnotation(funcDecl.Name.Name, pos.Filename, pos.Line)
	}

	receiver, generic := receiverTypeName(funcDecl.Recv.List[0].Type)
	if generic {
		return method, "", p.reporter.ReportGenericReceiver(receiver, funcDecl.Name.Name, pos.Filename, pos.Line)
	}

	var errs []error
	for _, comment := range comments {
		commentPos := p.fileSet.Position(comment.Pos())
		location := annotations.SourceLocation{
			File:   commentPos.Filename,
			Line:   commentPos.Line,
			Column: commentPos.Column,
		}

		parsed, err := p.annotations.ParseAnnotation(comment.Text, location)
		if err != nil {
			errs = append(errs, p.reporter.ReportAnnotationError(err, location))
			continue
		}

		slot := findParam(method.Params, parsed.Target)
		if slot == nil {
			errs = append(errs, p.reporter.ReportUnknownParameter(receiver, method.Name, parsed.Target, paramNames(method.Params), location))
			continue
		}
		if slot.Binding != nil {
			errs = append(errs, p.reporter.ReportDuplicateBinding(method.Name, parsed.Target, slot.Binding, location))
			continue
		}

		slot.Binding = &models.Binding{
			Kind:      parsed.Type.BindingKind(),
			Name:      parsed.Name,
			ParseJSON: parsed.ParseJSON(),
			Required:  parsed.Required(),
			File:      location.File,
			Line:      location.Line,
		}
	}

	if len(errs) > 0 {
		return method, receiver, errors.Join(errs...)
	}

	if !method.Exported {
		p.warnings = append(p.warnings, Warning{
			File:    pos.Filename,
			Line:    pos.Line,
			Message: fmt.Sprintf("%s.%s is unexported, its parameter types will be recorded as unknown", receiver, method.Name),
		})
	}

	return method, receiver, nil
}

// signatureParams flattens the parameter list, one slot per name
func (p *Parser) signatureParams(funcDecl *ast.FuncDecl) []models.ParamSlot {
	var params []models.ParamSlot
	if funcDecl.Type.Params == nil {
		return params
	}

	for _, field := range funcDecl.Type.Params.List {
		typeString := types.ExprString(field.Type)
		if len(field.Names) == 0 {
			params = append(params, models.ParamSlot{Index: len(params), GoType: typeString})
			continue
		}
		for _, name := range field.Names {
			params = append(params, models.ParamSlot{
				Index:  len(params),
				GoName: name.Name,
				GoType: typeString,
			})
		}
	}
	return params
}

// receiverTypeName returns the base type name of a receiver and whether it is generic
func receiverTypeName(expr ast.Expr) (string, bool) {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiverTypeName(t.X)
	case *ast.ParenExpr:
		return receiverTypeName(t.X)
	case *ast.Ident:
		return t.Name, false
	case *ast.IndexExpr:
		name, _ := receiverTypeName(t.X)
		return name, true
	case *ast.IndexListExpr:
		name, _ := receiverTypeName(t.X)
		return name, true
	default:
		return types.ExprString(expr), false
	}
}

func findParam(params []models.ParamSlot, name string) *models.ParamSlot {
	if name == "" || name == "_" {
		return nil
	}
	for i := range params {
		if params[i].GoName == name {
			return &params[i]
		}
	}
	return nil
}

func paramNames(params []models.ParamSlot) []string {
	var names []string
	for _, param := range params {
		if param.GoName != "" && param.GoName != "_" {
			names = append(names, param.GoName)
		}
	}
	return names
}
