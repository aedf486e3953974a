package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/toyz/bindmeta/internal/utils"
)

// ModuleInfo is the module a run generates for
type ModuleInfo struct {
	Path string // module path
	Root string // directory holding go.mod, the working directory when none was found
}

// ModuleResolver handles resolving Go module information
type ModuleResolver struct {
	goMod *utils.GoModParser
}

// NewModuleResolver creates a new module resolver
func NewModuleResolver() *ModuleResolver {
	return &ModuleResolver{
		goMod: utils.NewGoModParser(),
	}
}

// ResolveModule finds the module enclosing startDir. customModule replaces the
// module path declared in go.mod.
func (r *ModuleResolver) ResolveModule(customModule, startDir string) (ModuleInfo, error) {
	goModPath, findErr := r.goMod.FindGoModFile(startDir)

	if customModule != "" {
		root := startDir
		if findErr == nil {
			root = filepath.Dir(goModPath)
		}
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return ModuleInfo{}, err
		}
		return ModuleInfo{Path: customModule, Root: absRoot}, nil
	}

	if findErr != nil {
		return ModuleInfo{}, fmt.Errorf("failed to determine module name: %w (consider using -module flag)", findErr)
	}

	modulePath, err := r.goMod.ParseModuleName(goModPath)
	if err != nil {
		return ModuleInfo{}, fmt.Errorf("failed to determine module name: %w", err)
	}

	return ModuleInfo{Path: modulePath, Root: filepath.Dir(goModPath)}, nil
}

// ResolveModuleName resolves the module path for the working directory
func (r *ModuleResolver) ResolveModuleName(customModule string) (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	info, err := r.ResolveModule(customModule, wd)
	if err != nil {
		return "", err
	}
	return info.Path, nil
}

// BuildPackagePath builds the full import path for a package directory
func (r *ModuleResolver) BuildPackagePath(module ModuleInfo, packageDir string) (string, error) {
	return r.goMod.ImportPath(module.Path, module.Root, packageDir)
}
