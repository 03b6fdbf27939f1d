package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockFileReader is a mock implementation of domain.FileReader.
type MockFileReader struct {
	mock.Mock
}

func (m *MockFileReader) FileExists(path string) (bool, error) {
	args := m.Called(path)
	return args.Bool(0), args.Error(1)
}

func (m *MockFileReader) CollectFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	args := m.Called(paths, recursive, includePatterns, excludePatterns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFileReader) ReadFile(path string) ([]byte, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func TestResolveFilePaths_AllPathsAreFiles(t *testing.T) {
	mockReader := new(MockFileReader)
	paths := []string{"file1.go", "file2.go", "file3.go"}

	for _, path := range paths {
		mockReader.On("FileExists", path).Return(true, nil)
	}

	result, err := ResolveFilePaths(mockReader, paths, false, []string{"*.go"}, []string{})

	assert.NoError(t, err)
	assert.Equal(t, paths, result)
	mockReader.AssertExpectations(t)
	mockReader.AssertNotCalled(t, "CollectFiles")
}

func TestResolveFilePaths_MixedFilesAndDirectories(t *testing.T) {
	mockReader := new(MockFileReader)
	paths := []string{"file1.go", "directory"}

	mockReader.On("FileExists", "file1.go").Return(true, nil)
	mockReader.On("FileExists", "directory").Return(false, nil)

	collectedFiles := []string{"file1.go", "directory/file2.go", "directory/file3.go"}
	mockReader.On("CollectFiles", paths, true, []string{"*.go"}, []string{"*_test.go"}).Return(collectedFiles, nil)

	result, err := ResolveFilePaths(mockReader, paths, true, []string{"*.go"}, []string{"*_test.go"})

	assert.NoError(t, err)
	assert.Equal(t, collectedFiles, result)
	mockReader.AssertExpectations(t)
}

func TestResolveFilePaths_FileExistsError(t *testing.T) {
	mockReader := new(MockFileReader)
	paths := []string{"file1.go", "file2.go"}

	mockReader.On("FileExists", "file1.go").Return(true, nil)
	mockReader.On("FileExists", "file2.go").Return(false, errors.New("permission denied"))

	collectedFiles := []string{"file1.go"}
	mockReader.On("CollectFiles", paths, false, []string{"*.go"}, []string{}).Return(collectedFiles, nil)

	result, err := ResolveFilePaths(mockReader, paths, false, []string{"*.go"}, []string{})

	assert.NoError(t, err)
	assert.Equal(t, collectedFiles, result)
	mockReader.AssertExpectations(t)
}

func TestResolveFilePaths_CollectFilesError(t *testing.T) {
	mockReader := new(MockFileReader)
	paths := []string{"directory"}

	mockReader.On("FileExists", "directory").Return(false, nil)
	collectErr := errors.New("failed to collect files")
	mockReader.On("CollectFiles", paths, true, []string{"*.go"}, []string{}).Return(nil, collectErr)

	result, err := ResolveFilePaths(mockReader, paths, true, []string{"*.go"}, []string{})

	assert.Error(t, err)
	assert.Equal(t, collectErr, err)
	assert.Nil(t, result)
	mockReader.AssertExpectations(t)
}

func TestResolveFilePaths_EmptyPaths(t *testing.T) {
	mockReader := new(MockFileReader)

	result, err := ResolveFilePaths(mockReader, []string{}, false, []string{"*.go"}, []string{})

	assert.NoError(t, err)
	assert.Equal(t, []string{}, result)
}

func TestResolveFilePaths_NoFilesCollected(t *testing.T) {
	mockReader := new(MockFileReader)
	paths := []string{"empty_directory"}

	mockReader.On("FileExists", "empty_directory").Return(false, nil)
	mockReader.On("CollectFiles", paths, false, []string{"*.go"}, []string{}).Return([]string{}, nil)

	result, err := ResolveFilePaths(mockReader, paths, false, []string{"*.go"}, []string{})

	assert.NoError(t, err)
	assert.Empty(t, result)
	mockReader.AssertExpectations(t)
}
