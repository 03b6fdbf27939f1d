package service

import (
	"os"

	"github.com/cloneradar/cloneradar/domain"
	"github.com/cloneradar/cloneradar/internal/discovery"
)

// FileReaderImpl implements domain.FileReader on top of internal/discovery,
// the doublestar-backed walker the engine's CLI and MCP front ends share.
// Pattern matching itself (globstar, .cloneradarignore, directory skip-list)
// lives entirely in internal/discovery; this type only adapts that walker's
// shape to the domain.FileReader contract.
type FileReaderImpl struct{}

// NewFileReader creates a new file reader service.
func NewFileReader() *FileReaderImpl {
	return &FileReaderImpl{}
}

// CollectFiles walks paths and returns every file internal/discovery
// recognizes as a known source language, filtered by includePatterns and
// excludePatterns.
func (f *FileReaderImpl) CollectFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	opts := discovery.DefaultOptions()
	opts.Recursive = recursive
	opts.Include = includePatterns
	opts.Exclude = excludePatterns

	found, err := discovery.Discover(paths, opts)
	if err != nil {
		return nil, domain.NewInvalidInputError("failed to collect files", err)
	}

	files := make([]string, 0, len(found))
	for _, f := range found {
		files = append(files, f.Path)
	}
	return files, nil
}

// ReadFile reads the content of a file.
func (f *FileReaderImpl) ReadFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}
	return content, nil
}

// FileExists checks if a file exists and is not a directory.
func (f *FileReaderImpl) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}
