package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFileReaderImpl_CollectFiles_MultiLanguageRecursive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.go", "package main")
	writeFile(t, dir, "util.py", "def f(): pass")
	writeFile(t, dir, "README.md", "# docs")
	writeFile(t, dir, "sub/app.js", "function f() {}")
	writeFile(t, dir, "node_modules/pkg/index.js", "skip me")

	fr := NewFileReader()
	files, err := fr.CollectFiles([]string{dir}, true, nil, nil)
	require.NoError(t, err)

	assert.Len(t, files, 3)
	for _, f := range files {
		assert.NotContains(t, f, "node_modules")
		assert.NotContains(t, f, "README.md")
	}
}

func TestFileReaderImpl_CollectFiles_NonRecursiveSkipsSubdirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.go", "package main")
	writeFile(t, dir, "sub/nested.go", "package nested")

	fr := NewFileReader()
	files, err := fr.CollectFiles([]string{dir}, false, nil, nil)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestFileReaderImpl_CollectFiles_ExcludePattern(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.go", "package main")
	writeFile(t, dir, "main_test.go", "package main")

	fr := NewFileReader()
	files, err := fr.CollectFiles([]string{dir}, true, nil, []string{"**/*_test.go"})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "main.go", filepath.Base(files[0]))
}

func TestFileReaderImpl_ReadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.go", "package main")

	fr := NewFileReader()
	content, err := fr.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "package main", string(content))
}

func TestFileReaderImpl_ReadFile_MissingIsDomainError(t *testing.T) {
	fr := NewFileReader()
	_, err := fr.ReadFile(filepath.Join(t.TempDir(), "missing.go"))
	require.Error(t, err)
}

func TestFileReaderImpl_FileExists(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.go", "package main")

	fr := NewFileReader()
	exists, err := fr.FileExists(path)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = fr.FileExists(filepath.Join(dir, "missing.go"))
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = fr.FileExists(dir)
	require.NoError(t, err)
	assert.False(t, exists, "a directory is not a file")
}
