package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/bindmeta/internal/utils"
)

// DirectoryScanner resolves directory patterns into package directories
type DirectoryScanner struct {
	fileProcessor *utils.FileProcessor
}

// NewDirectoryScanner creates a new directory scanner
func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{
		fileProcessor: utils.NewFileProcessor(),
	}
}

// ScanDirectories returns the directories holding Go source. A pattern ending
// in "/..." is scanned recursively; a plain directory is checked on its own.
func (s *DirectoryScanner) ScanDirectories(patterns []string) ([]string, error) {
	var packageDirs []string
	seen := make(map[string]bool)

	add := func(dirs ...string) {
		for _, dir := range dirs {
			if !seen[dir] {
				seen[dir] = true
				packageDirs = append(packageDirs, dir)
			}
		}
	}

	for _, pattern := range patterns {
		baseDir, recursive := splitPattern(pattern)

		cleanPath, err := filepath.Abs(baseDir)
		if err != nil {
			return nil, utils.WrapProcessError(fmt.Sprintf("path resolution %s", baseDir), err)
		}

		info, err := os.Stat(cleanPath)
		if err != nil {
			return nil, utils.WrapProcessError(fmt.Sprintf("directory %s", baseDir), err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", baseDir)
		}

		if recursive {
			dirs, err := s.fileProcessor.ScanDirectoriesWithGoFiles([]string{cleanPath})
			if err != nil {
				return nil, err
			}
			add(dirs...)
			continue
		}

		hasGoFiles, err := s.fileProcessor.HasGoFiles(cleanPath)
		if err != nil {
			return nil, utils.WrapProcessError(fmt.Sprintf("Go file check in %s", baseDir), err)
		}
		if hasGoFiles {
			add(cleanPath)
		}
	}

	return packageDirs, nil
}

// splitPattern strips a trailing "/..." from a Go-style pattern
func splitPattern(pattern string) (string, bool) {
	if pattern == "..." {
		return ".", true
	}
	if strings.HasSuffix(pattern, "/...") {
		baseDir := strings.TrimSuffix(pattern, "/...")
		if baseDir == "" {
			baseDir = "."
		}
		return baseDir, true
	}
	return pattern, false
}
