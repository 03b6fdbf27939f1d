package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/cloneradar/cloneradar/domain"
)

type mockCloneService struct {
	mock.Mock
}

func (m *mockCloneService) Detect(ctx context.Context, req *domain.Request) (*domain.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Response), args.Error(1)
}

func (m *mockCloneService) DetectInFiles(ctx context.Context, filePaths []string, req *domain.Request) (*domain.Response, error) {
	args := m.Called(ctx, filePaths, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Response), args.Error(1)
}

func (m *mockCloneService) ComputeSimilarity(ctx context.Context, language, snippet1, snippet2 string) (float64, error) {
	args := m.Called(ctx, language, snippet1, snippet2)
	return args.Get(0).(float64), args.Error(1)
}

type mockCloneOutputFormatter struct {
	mock.Mock
}

func (m *mockCloneOutputFormatter) Format(response *domain.Response, format domain.OutputFormat) (string, error) {
	args := m.Called(response, format)
	return args.String(0), args.Error(1)
}

func (m *mockCloneOutputFormatter) Write(response *domain.Response, format domain.OutputFormat, writer io.Writer) error {
	args := m.Called(response, format, writer)
	return args.Error(0)
}

type mockCloneConfigurationLoader struct {
	mock.Mock
}

func (m *mockCloneConfigurationLoader) LoadConfig(path string) (*domain.Request, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *mockCloneConfigurationLoader) LoadDefaultConfig() *domain.Request {
	args := m.Called()
	return args.Get(0).(*domain.Request)
}

func (m *mockCloneConfigurationLoader) MergeConfig(base *domain.Request, override *domain.Request) *domain.Request {
	args := m.Called(base, override)
	return args.Get(0).(*domain.Request)
}

type mockReportWriter struct {
	mock.Mock
}

func (m *mockReportWriter) Write(writer io.Writer, outputPath string, format domain.OutputFormat, noOpen bool, writeFunc func(io.Writer) error) error {
	args := m.Called(writer, outputPath, format, noOpen)
	if err := args.Error(0); err != nil {
		return err
	}
	return writeFunc(writer)
}

func validCloneRequest() *domain.Request {
	return &domain.Request{
		Paths:               []string{"/test/file1.go", "/test/file2.go"},
		OutputFormat:        domain.OutputFormatText,
		SortBy:              domain.SortBySimilarity,
		MinLines:            5,
		MinNodes:            10,
		SimilarityThreshold: 0.8,
		RenameCost:          0.3,
		Recursive:           true,
		IncludePatterns:     []string{"*.go"},
		ExcludePatterns:     []string{"*_test.go"},
	}
}

func mockResponse() *domain.Response {
	return &domain.Response{
		Pairs: []*domain.PairReport{
			{ID: 1, Similarity: 0.85, Priority: 1.2, Tier: domain.Tier2},
		},
		Statistics: &domain.Statistics{PairsReported: 1},
		Success:    true,
	}
}

func setupCloneUseCase() (*CloneUseCase, *mockCloneService, *MockFileReader, *mockCloneOutputFormatter, *mockCloneConfigurationLoader, *mockReportWriter) {
	service := &mockCloneService{}
	fileReader := &MockFileReader{}
	formatter := &mockCloneOutputFormatter{}
	configLoader := &mockCloneConfigurationLoader{}
	output := &mockReportWriter{}

	uc := NewCloneUseCase(service, fileReader, formatter, configLoader, output)
	return uc, service, fileReader, formatter, configLoader, output
}

func TestCloneUseCase_Execute_Success(t *testing.T) {
	uc, service, fileReader, formatter, configLoader, output := setupCloneUseCase()
	req := validCloneRequest()

	configLoader.On("LoadDefaultConfig").Return(domain.DefaultRequest())
	configLoader.On("MergeConfig", mock.Anything, req).Return(req)
	fileReader.On("FileExists", "/test/file1.go").Return(true, nil)
	fileReader.On("FileExists", "/test/file2.go").Return(true, nil)
	service.On("DetectInFiles", mock.Anything, req.Paths, req).Return(mockResponse(), nil)
	output.On("Write", mock.Anything, "", domain.OutputFormatText, false).Return(nil)
	formatter.On("Write", mock.Anything, domain.OutputFormatText, mock.Anything).Return(nil)

	var buf bytes.Buffer
	err := uc.Execute(context.Background(), req, "", &buf, false)

	assert.NoError(t, err)
	service.AssertExpectations(t)
	fileReader.AssertExpectations(t)
	formatter.AssertExpectations(t)
	configLoader.AssertExpectations(t)
	output.AssertExpectations(t)
}

func TestCloneUseCase_Execute_ValidationError(t *testing.T) {
	uc, _, _, _, configLoader, _ := setupCloneUseCase()
	req := &domain.Request{Paths: []string{}, MinLines: -1, SimilarityThreshold: 1.5}

	configLoader.On("LoadDefaultConfig").Return(domain.DefaultRequest())
	configLoader.On("MergeConfig", mock.Anything, req).Return(req)

	err := uc.Execute(context.Background(), req, "", io.Discard, false)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestCloneUseCase_Execute_NoFilesFound(t *testing.T) {
	uc, service, fileReader, formatter, configLoader, output := setupCloneUseCase()
	req := validCloneRequest()
	req.Paths = []string{"/empty/path"}

	configLoader.On("LoadDefaultConfig").Return(domain.DefaultRequest())
	configLoader.On("MergeConfig", mock.Anything, req).Return(req)
	fileReader.On("FileExists", "/empty/path").Return(false, nil)
	fileReader.On("CollectFiles", req.Paths, true, req.IncludePatterns, req.ExcludePatterns).Return([]string{}, nil)
	output.On("Write", mock.Anything, "", domain.OutputFormatText, false).Return(nil)
	formatter.On("Write", mock.MatchedBy(func(resp *domain.Response) bool {
		return resp.Statistics.PairsReported == 0
	}), domain.OutputFormatText, mock.Anything).Return(nil)

	err := uc.Execute(context.Background(), req, "", io.Discard, false)

	assert.NoError(t, err)
	service.AssertNotCalled(t, "DetectInFiles")
	fileReader.AssertExpectations(t)
	formatter.AssertExpectations(t)
	output.AssertExpectations(t)
}

func TestCloneUseCase_Execute_DetectionError(t *testing.T) {
	uc, service, fileReader, _, configLoader, _ := setupCloneUseCase()
	req := validCloneRequest()

	configLoader.On("LoadDefaultConfig").Return(domain.DefaultRequest())
	configLoader.On("MergeConfig", mock.Anything, req).Return(req)
	fileReader.On("FileExists", "/test/file1.go").Return(true, nil)
	fileReader.On("FileExists", "/test/file2.go").Return(true, nil)
	service.On("DetectInFiles", mock.Anything, req.Paths, req).Return(nil, errors.New("APTED analysis failed"))

	err := uc.Execute(context.Background(), req, "", io.Discard, false)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "clone detection failed")
}

func TestCloneUseCase_Execute_NoOutputWriter(t *testing.T) {
	uc, service, fileReader, _, configLoader, _ := setupCloneUseCase()
	req := validCloneRequest()

	configLoader.On("LoadDefaultConfig").Return(domain.DefaultRequest())
	configLoader.On("MergeConfig", mock.Anything, req).Return(req)
	fileReader.On("FileExists", "/test/file1.go").Return(true, nil)
	fileReader.On("FileExists", "/test/file2.go").Return(true, nil)
	service.On("DetectInFiles", mock.Anything, req.Paths, req).Return(mockResponse(), nil)

	err := uc.Execute(context.Background(), req, "", nil, false)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no valid output writer specified")
}

func TestCloneUseCase_ExecuteAndReturn(t *testing.T) {
	uc, service, fileReader, _, configLoader, _ := setupCloneUseCase()
	req := validCloneRequest()

	configLoader.On("LoadDefaultConfig").Return(domain.DefaultRequest())
	configLoader.On("MergeConfig", mock.Anything, req).Return(req)
	fileReader.On("FileExists", "/test/file1.go").Return(true, nil)
	fileReader.On("FileExists", "/test/file2.go").Return(true, nil)
	service.On("DetectInFiles", mock.Anything, req.Paths, req).Return(mockResponse(), nil)

	resp, err := uc.ExecuteAndReturn(context.Background(), req)

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, 1, len(resp.Pairs))
}

func TestCloneUseCase_ExecuteWithFiles(t *testing.T) {
	uc, service, _, formatter, _, output := setupCloneUseCase()
	req := validCloneRequest()
	files := []string{"/test/file1.go", "/test/file2.go"}

	service.On("DetectInFiles", mock.Anything, files, req).Return(mockResponse(), nil)
	output.On("Write", mock.Anything, "", domain.OutputFormatText, false).Return(nil)
	formatter.On("Write", mock.Anything, domain.OutputFormatText, mock.Anything).Return(nil)

	err := uc.ExecuteWithFiles(context.Background(), files, req, "", io.Discard, false)

	assert.NoError(t, err)
}

func TestCloneUseCase_ComputeFragmentSimilarity(t *testing.T) {
	uc, service, _, _, _, _ := setupCloneUseCase()

	service.On("ComputeSimilarity", mock.Anything, "go", "func f() {}", "func g() {}").Return(0.75, nil)

	sim, err := uc.ComputeFragmentSimilarity(context.Background(), "go", "func f() {}", "func g() {}")

	assert.NoError(t, err)
	assert.Equal(t, 0.75, sim)
}

func TestCloneUseCase_ComputeFragmentSimilarity_Error(t *testing.T) {
	uc, service, _, _, _, _ := setupCloneUseCase()

	service.On("ComputeSimilarity", mock.Anything, "go", "a", "b").Return(0.0, errors.New("failed to parse fragment"))

	sim, err := uc.ComputeFragmentSimilarity(context.Background(), "go", "a", "b")

	assert.Error(t, err)
	assert.Equal(t, 0.0, sim)
	assert.Contains(t, err.Error(), "failed to compute similarity")
}

func TestCloneUseCaseBuilder_Build(t *testing.T) {
	_, err := NewCloneUseCaseBuilder().Build()
	assert.Error(t, err)

	service := &mockCloneService{}
	fileReader := &MockFileReader{}
	formatter := &mockCloneOutputFormatter{}

	uc, err := NewCloneUseCaseBuilder().
		WithService(service).
		WithFileReader(fileReader).
		WithFormatter(formatter).
		Build()

	assert.NoError(t, err)
	assert.NotNil(t, uc)
}
