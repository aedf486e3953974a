package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/toyz/bindmeta/internal/generator"
	"github.com/toyz/bindmeta/internal/models"
	"github.com/toyz/bindmeta/internal/parser"
	"github.com/toyz/bindmeta/internal/utils"
)

// Generator coordinates the CLI generation process
type Generator struct {
	scanner        *DirectoryScanner
	moduleResolver *ModuleResolver
	parser         parser.AnnotationParser
	codeGenerator  generator.CodeGenerator
	reporter       *DiagnosticReporter
	diagnostics    *utils.DiagnosticSystem
	summary        GenerationSummary
}

// NewGenerator creates a CLI generator reporting through diagnostics
func NewGenerator(diagnostics *utils.DiagnosticSystem, reporter *DiagnosticReporter) *Generator {
	return &Generator{
		scanner:        NewDirectoryScanner(),
		moduleResolver: NewModuleResolver(),
		parser:         parser.NewParser(),
		codeGenerator:  generator.NewGenerator(),
		reporter:       reporter,
		diagnostics:    diagnostics,
	}
}

// GetSummary returns the summary of the last run
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// Run scans the configured directories, writes autogen_bindings.go into every
// package with bindings and removes stale ones from packages without. Parse
// errors of all packages are reported together and nothing is written when
// any package fails.
func (g *Generator) Run(config Config) error {
	startTime := time.Now()
	g.summary = GenerationSummary{}

	if err := config.Validate(); err != nil {
		return err
	}

	g.diagnostics.Debug("Scanning directories: %v", config.Directories)

	module, moduleErr := g.resolveModule(config)
	if moduleErr != nil {
		g.diagnostics.Warn("%v", moduleErr)
	} else {
		g.diagnostics.Verbose("Module: %s (%s)", module.Path, module.Root)
	}

	g.diagnostics.PhaseHeader("Scanning")
	packageDirs, err := g.scanner.ScanDirectories(config.Directories)
	if err != nil {
		return &models.GeneratorError{
			Type:    models.ErrorTypeFileSystem,
			Message: fmt.Sprintf("Failed to scan directories: %v", err),
			Suggestions: []string{
				"Check that the specified directories exist",
				"Use './...' to scan a directory tree",
			},
			Cause: err,
		}
	}
	if len(packageDirs) == 0 {
		return &models.GeneratorError{
			Type:    models.ErrorTypeValidation,
			Message: "No Go packages found in specified directories",
			Suggestions: []string{
				"Ensure the directories contain Go files",
				"Try scanning parent directories or use './...' pattern",
			},
		}
	}
	g.summary.PackagesProcessed = len(packageDirs)
	g.diagnostics.PhaseItem(fmt.Sprintf("Found %d %s", len(packageDirs), plural(len(packageDirs), "package", "packages")))

	g.diagnostics.PhaseHeader("Parsing")
	packages, err := g.parsePackages(packageDirs, module, moduleErr == nil)
	if err != nil {
		return err
	}

	g.diagnostics.PhaseHeader("Generating")
	if err := g.writePackages(packages); err != nil {
		return err
	}

	if config.ManifestPath != "" {
		manifest := BuildManifest(module.Path, packages)
		if err := WriteManifest(config.ManifestPath, manifest); err != nil {
			return &models.GeneratorError{
				Type:    models.ErrorTypeFileSystem,
				File:    config.ManifestPath,
				Message: "Failed to write manifest",
				Cause:   err,
			}
		}
		g.summary.ManifestPath = config.ManifestPath
		g.diagnostics.PhaseProgress(fmt.Sprintf("Writing manifest %s", config.ManifestPath))
	}

	g.diagnostics.Verbose("Generation completed in %v", time.Since(startTime))
	return nil
}

func (g *Generator) resolveModule(config Config) (ModuleInfo, error) {
	wd, err := os.Getwd()
	if err != nil {
		return ModuleInfo{}, fmt.Errorf("failed to get current directory: %w", err)
	}
	return g.moduleResolver.ResolveModule(config.ModuleName, wd)
}

// parsePackages parses every directory and collects all failures
func (g *Generator) parsePackages(packageDirs []string, module ModuleInfo, haveModule bool) ([]*models.PackageBindings, error) {
	var packages []*models.PackageBindings
	var errs []error

	for _, dir := range packageDirs {
		g.diagnostics.Debug("Parsing %s", dir)

		metadata, err := g.parser.ParseDirectory(dir)
		for _, warning := range g.parser.Warnings() {
			g.summary.Warnings++
			g.reporter.ReportWarning(warning.String())
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if haveModule {
			importPath, err := g.moduleResolver.BuildPackagePath(module, dir)
			if err != nil {
				g.diagnostics.Debug("No import path for %s: %v", dir, err)
			} else {
				metadata.ImportPath = importPath
			}
		}

		if metadata.HasBindings() {
			g.summary.PackagesBound++
			g.summary.ControllersFound += len(metadata.Controllers)
			for _, controller := range metadata.Controllers {
				g.summary.MethodsFound += len(controller.Methods)
			}
			g.summary.BindingsFound += metadata.BindingCount()
			g.diagnostics.PhaseItem(fmt.Sprintf("%s: %d %s", metadata.PackageName,
				metadata.BindingCount(), plural(metadata.BindingCount(), "binding", "bindings")))
		}
		packages = append(packages, metadata)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return packages, nil
}

func (g *Generator) writePackages(packages []*models.PackageBindings) error {
	for _, metadata := range packages {
		if !metadata.HasBindings() {
			removed, err := removeGeneratedFile(metadata.PackagePath)
			if err != nil {
				return g.fileSystemError(filepath.Join(metadata.PackagePath, models.GeneratedFileName), "Failed to remove stale bindings", err)
			}
			if removed != "" {
				g.summary.RemovedFiles = append(g.summary.RemovedFiles, removed)
				g.diagnostics.PhaseProgress(fmt.Sprintf("Removing stale %s", removed))
			}
			continue
		}

		file, err := g.codeGenerator.Generate(metadata)
		if err != nil {
			return err
		}

		written, err := writeIfChanged(file.FilePath, []byte(file.Content))
		if err != nil {
			return g.fileSystemError(file.FilePath, "Failed to write bindings", err)
		}
		if written {
			g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, file.FilePath)
			g.diagnostics.PhaseProgress(fmt.Sprintf("Writing %s", file.FilePath))
		} else {
			g.summary.UnchangedFiles = append(g.summary.UnchangedFiles, file.FilePath)
			g.diagnostics.Verbose("Unchanged %s", file.FilePath)
		}
	}
	return nil
}

func (g *Generator) fileSystemError(path, message string, err error) error {
	return &models.GeneratorError{
		Type:    models.ErrorTypeFileSystem,
		File:    path,
		Message: message,
		Suggestions: []string{
			"Check write permissions for the target directory",
		},
		Cause: err,
	}
}

// writeIfChanged leaves files with identical content untouched so build
// caches stay warm
func writeIfChanged(path string, content []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, content) {
		return false, nil
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return false, err
	}
	return true, nil
}
