// Package discovery implements spec.md §1's "file discovery" collaborator,
// left out-of-scope by the comparison engine itself: it walks a set of root
// paths, matches files against the extraction profiles' known languages
// (SPEC_FULL.md §3.2), and applies include/exclude glob patterns plus a
// .cloneradarignore file, the way a real source-discovery layer would.
package discovery

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// defaultSkipDirs lists directory names never worth descending into when
// looking for source files.
var defaultSkipDirs = map[string]bool{
	".git":         true,
	".svn":         true,
	".hg":          true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	".venv":        true,
	"venv":         true,
	"__pycache__":  true,
	".tox":         true,
	".mypy_cache":  true,
	".pytest_cache": true,
}

// languageExtensions maps a file extension to the language name
// internal/langprofile and internal/parser register profiles/grammars
// under.
var languageExtensions = map[string]string{
	".go":   "go",
	".py":   "python",
	".pyi":  "python",
	".js":   "javascript",
	".jsx":  "javascript",
	".mjs":  "javascript",
	".ts":   "typescript",
	".tsx":  "typescript",
	".css":  "css",
}

// LanguageForPath returns the language name for path's extension, or ""
// and false when the extension isn't recognized.
func LanguageForPath(path string) (string, bool) {
	lang, ok := languageExtensions[strings.ToLower(filepath.Ext(path))]
	return lang, ok
}

// Options configures a discovery walk.
type Options struct {
	// Recursive descends into subdirectories; false only collects files
	// directly inside a given directory root.
	Recursive bool

	// Include, when non-empty, requires a file to match at least one
	// pattern (doublestar glob syntax, e.g. "**/*_test.go").
	Include []string

	// Exclude drops any file or directory matching one of these patterns,
	// checked before Include.
	Exclude []string

	// IgnoreFile is read relative to each root, one doublestar pattern per
	// line, and merged into Exclude (spec.md's ".cloneradarignore"). Blank
	// lines and lines starting with "#" are skipped. Defaults to
	// ".cloneradarignore" when empty.
	IgnoreFile string
}

// DefaultOptions returns a recursive walk with no extra include/exclude
// patterns beyond the built-in directory skip-list.
func DefaultOptions() Options {
	return Options{Recursive: true, IgnoreFile: ".cloneradarignore"}
}

// File is a single discovered source file, already resolved to a known
// language.
type File struct {
	Path     string
	Language string
}

// Discover walks every root in paths and returns every recognized source
// file that survives Options' include/exclude filtering. A root that is
// itself a file is returned directly (subject to the same filters) without
// being walked. Roots are processed in the order given; within a root,
// files are returned in the order filepath.Walk visits them.
func Discover(paths []string, opts Options) ([]File, error) {
	if opts.IgnoreFile == "" {
		opts.IgnoreFile = ".cloneradarignore"
	}

	var files []File
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("discovery: %w", err)
		}

		if !info.IsDir() {
			if lang, ok := LanguageForPath(root); ok && matchesFilters(root, opts, opts.Exclude) {
				files = append(files, File{Path: root, Language: lang})
			}
			continue
		}

		exclude := append(append([]string{}, opts.Exclude...), readIgnoreFile(root, opts.IgnoreFile)...)
		found, err := walkDir(root, opts, exclude)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

func walkDir(root string, opts Options, exclude []string) ([]File, error) {
	var files []File
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != root {
				if !opts.Recursive {
					return filepath.SkipDir
				}
				if defaultSkipDirs[info.Name()] || strings.HasPrefix(info.Name(), ".") {
					return filepath.SkipDir
				}
				if matchesAny(exclude, path, info.Name()) {
					return filepath.SkipDir
				}
			}
			return nil
		}

		lang, ok := LanguageForPath(path)
		if !ok {
			return nil
		}
		if !matchesFilters(path, opts, exclude) {
			return nil
		}
		files = append(files, File{Path: path, Language: lang})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discovery: failed to walk %s: %w", root, err)
	}
	return files, nil
}

// matchesFilters applies exclude (denies) then include (requires, if any)
// glob patterns against both the full path and the base name, so a pattern
// like "*_test.go" and "**/internal/**" both work intuitively. exclude is
// the caller's already-merged Options.Exclude + .cloneradarignore list.
func matchesFilters(path string, opts Options, exclude []string) bool {
	if matchesAny(exclude, path, filepath.Base(path)) {
		return false
	}
	if len(opts.Include) == 0 {
		return true
	}
	return matchesAny(opts.Include, path, filepath.Base(path))
}

func matchesAny(patterns []string, path, base string) bool {
	for _, pattern := range patterns {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return true
		}
		if matched, _ := doublestar.Match(pattern, base); matched {
			return true
		}
		// doublestar.Match requires forward-slash paths; filepath.Walk
		// already produces those on every platform this module targets, but
		// normalize defensively for patterns authored with OS separators.
		if sep := string(filepath.Separator); sep != "/" {
			if matched, _ := doublestar.Match(pattern, strings.ReplaceAll(path, sep, "/")); matched {
				return true
			}
		}
	}
	return false
}

// readIgnoreFile reads root/ignoreFileName, returning one glob pattern per
// non-blank, non-comment line. A missing ignore file is not an error.
func readIgnoreFile(root, ignoreFileName string) []string {
	f, err := os.Open(filepath.Join(root, ignoreFileName))
	if err != nil {
		return nil
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns
}
