package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/toyz/bindmeta/internal/models"
	"github.com/toyz/bindmeta/internal/utils"
)

// Cleaner handles cleaning up generated files
type Cleaner struct {
	fileProcessor *utils.FileProcessor
}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{
		fileProcessor: utils.NewFileProcessor(),
	}
}

// CleanGeneratedFiles removes autogen_bindings.go from the given directories.
// Patterns ending in "/..." are cleaned recursively. The removed paths are returned.
func (c *Cleaner) CleanGeneratedFiles(patterns []string) ([]string, error) {
	var removedFiles []string

	for _, pattern := range patterns {
		dir, recursive := splitPattern(pattern)

		if recursive {
			removed, err := c.fileProcessor.CleanDirectories([]string{dir})
			removedFiles = append(removedFiles, removed...)
			if err != nil {
				return removedFiles, fmt.Errorf("failed to clean directory %s: %w", dir, err)
			}
			continue
		}

		removed, err := removeGeneratedFile(dir)
		if err != nil {
			return removedFiles, fmt.Errorf("failed to clean directory %s: %w", dir, err)
		}
		if removed != "" {
			removedFiles = append(removedFiles, removed)
		}
	}

	return removedFiles, nil
}

// removeGeneratedFile deletes the generated file of one directory if present
func removeGeneratedFile(dir string) (string, error) {
	generated := filepath.Join(dir, models.GeneratedFileName)
	if err := os.Remove(generated); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return generated, nil
}
