package utils

import (
	"errors"
	"fmt"
	"go/build"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/bindmeta/internal/models"
)

// FileProcessor walks source trees looking for packages and generated files
type FileProcessor struct{}

// NewFileProcessor creates a new file processor
func NewFileProcessor() *FileProcessor {
	return &FileProcessor{}
}

// FileFilter defines a function that determines whether a file should be processed
type FileFilter func(path string, info os.DirEntry) bool

// DirectoryFilter defines a function that determines whether a directory should be processed
type DirectoryFilter func(path string, info os.DirEntry) bool

// DefaultGoFileFilter filters for .go files, excluding tests and generated bindings
func DefaultGoFileFilter() FileFilter {
	return func(path string, info os.DirEntry) bool {
		if info.IsDir() {
			return false
		}

		name := info.Name()
		return strings.HasSuffix(name, ".go") &&
			!strings.HasSuffix(name, "_test.go") &&
			name != models.GeneratedFileName
	}
}

// BuildableGoFileFilter narrows DefaultGoFileFilter to the files ctxt would
// compile. A file whose constraints cannot be read is kept so that parsing
// reports it.
func BuildableGoFileFilter(ctxt *build.Context) FileFilter {
	goFiles := DefaultGoFileFilter()
	return func(path string, info os.DirEntry) bool {
		if !goFiles(path, info) {
			return false
		}
		match, err := ctxt.MatchFile(filepath.Dir(path), info.Name())
		return match || err != nil
	}
}

// GeneratedFileFilter matches the files written by the generator
func GeneratedFileFilter() FileFilter {
	return func(path string, info os.DirEntry) bool {
		return !info.IsDir() && info.Name() == models.GeneratedFileName
	}
}

// DefaultDirectoryFilter skips directories that the go tool ignores or that
// never hold source code
func DefaultDirectoryFilter() DirectoryFilter {
	skipDirs := map[string]bool{
		"vendor":       true,
		"node_modules": true,
		"testdata":     true,
	}

	return func(path string, info os.DirEntry) bool {
		if !info.IsDir() {
			return true
		}

		name := info.Name()
		if name == "." || name == ".." {
			return true
		}
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			return false
		}
		return !skipDirs[name]
	}
}

// ScanDirectoriesWithGoFiles returns every directory below the roots that holds
// Go source, roots included. Each directory is reported once.
func (fp *FileProcessor) ScanDirectoriesWithGoFiles(rootDirs []string) ([]string, error) {
	var packageDirs []string
	visited := make(map[string]bool)
	dirFilter := DefaultDirectoryFilter()

	for _, rootDir := range rootDirs {
		err := filepath.WalkDir(rootDir, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !entry.IsDir() {
				return nil
			}
			if path != rootDir && !dirFilter(path, entry) {
				return filepath.SkipDir
			}

			absDir, err := filepath.Abs(path)
			if err != nil {
				return WrapProcessError(fmt.Sprintf("path resolution %s", path), err)
			}
			if visited[absDir] {
				return nil
			}
			visited[absDir] = true

			hasGoFiles, err := fp.HasGoFiles(path)
			if err != nil {
				return WrapProcessError(fmt.Sprintf("Go file check in %s", path), err)
			}
			if hasGoFiles {
				packageDirs = append(packageDirs, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return packageDirs, nil
}

// HasGoFiles checks if a directory contains .go files that build for the
// current GOOS/GOARCH (test files and generated files excluded)
func (fp *FileProcessor) HasGoFiles(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}

	fileFilter := BuildableGoFileFilter(&build.Default)
	for _, entry := range entries {
		if fileFilter(filepath.Join(dir, entry.Name()), entry) {
			return true, nil
		}
	}

	return false, nil
}

// CleanDirectories removes generated bindings below the given directories
// and returns the removed paths
func (fp *FileProcessor) CleanDirectories(baseDirs []string) ([]string, error) {
	var removedFiles []string
	dirFilter := DefaultDirectoryFilter()
	generated := GeneratedFileFilter()

	for _, baseDir := range baseDirs {
		if baseDir == "" {
			baseDir = "."
		}

		err := filepath.WalkDir(baseDir, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return nil
				}
				return err
			}
			if entry.IsDir() {
				if path != baseDir && !dirFilter(path, entry) {
					return filepath.SkipDir
				}
				return nil
			}
			if !generated(path, entry) {
				return nil
			}

			if err := os.Remove(path); err != nil {
				return WrapProcessError(fmt.Sprintf("file removal %s", path), err)
			}
			removedFiles = append(removedFiles, path)
			return nil
		})
		if err != nil {
			return removedFiles, WrapProcessError(fmt.Sprintf("directory clean %s", baseDir), err)
		}
	}

	return removedFiles, nil
}
