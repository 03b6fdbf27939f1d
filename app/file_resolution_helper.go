package app

import "github.com/cloneradar/cloneradar/domain"

// ResolveFilePaths resolves input paths into a concrete file list.
// If every entry in paths already names an existing file, they are returned
// as-is. Otherwise paths are treated as roots to walk and files are
// collected from them using the given filters.
//
// This avoids a redundant filesystem walk when a caller (an MCP handler, a
// test) already has a concrete file list and just wants it passed through.
func ResolveFilePaths(
	fileReader domain.FileReader,
	paths []string,
	recursive bool,
	includePatterns []string,
	excludePatterns []string,
) ([]string, error) {
	allFiles := true
	for _, path := range paths {
		exists, err := fileReader.FileExists(path)
		if err != nil || !exists {
			allFiles = false
			break
		}
	}

	if allFiles {
		return paths, nil
	}

	return fileReader.CollectFiles(paths, recursive, includePatterns, excludePatterns)
}
