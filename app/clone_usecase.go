package app

import (
	"context"
	"fmt"
	"io"

	"github.com/cloneradar/cloneradar/domain"
)

// CloneUseCase orchestrates a clone-detection run end to end: resolve
// configuration, collect files, run the engine, write the formatted report.
//
// cmd/cloneradar talks to internal/config.Load and the service package
// directly so it can thread its own *pflag.FlagSet through the layered
// config loader; this use case exists for callers that only need a plain
// domain.Request in and a written report out - the mcp package's
// find_similar_fragments tool, tests, and any future library embedding.
type CloneUseCase struct {
	service      domain.Service
	fileReader   domain.FileReader
	formatter    domain.OutputFormatter
	configLoader domain.ConfigurationLoader
	output       domain.ReportWriter
}

// NewCloneUseCase wires a CloneUseCase from its five driving dependencies.
func NewCloneUseCase(
	service domain.Service,
	fileReader domain.FileReader,
	formatter domain.OutputFormatter,
	configLoader domain.ConfigurationLoader,
	output domain.ReportWriter,
) *CloneUseCase {
	return &CloneUseCase{
		service:      service,
		fileReader:   fileReader,
		formatter:    formatter,
		configLoader: configLoader,
		output:       output,
	}
}

// Execute runs clone detection over req.Paths and writes the formatted
// report through the use case's ReportWriter. outputPath is passed straight
// through to ReportWriter.Write: empty means "write to writer", non-empty
// means "create/truncate this file instead".
func (uc *CloneUseCase) Execute(ctx context.Context, req *domain.Request, outputPath string, writer io.Writer, noOpen bool) error {
	resp, err := uc.run(ctx, req)
	if err != nil {
		return err
	}
	return uc.write(resp, req, outputPath, writer, noOpen)
}

// ExecuteAndReturn runs clone detection and returns the raw Response without
// formatting or writing it anywhere - the shape MCP tool handlers need to
// marshal a result themselves.
func (uc *CloneUseCase) ExecuteAndReturn(ctx context.Context, req *domain.Request) (*domain.Response, error) {
	return uc.run(ctx, req)
}

// ExecuteWithFiles runs clone detection against an already-resolved file set,
// skipping CollectFiles entirely. Useful when a caller (an orchestrating
// use case, a cached file list) has already paid for discovery once.
func (uc *CloneUseCase) ExecuteWithFiles(ctx context.Context, filePaths []string, req *domain.Request, outputPath string, writer io.Writer, noOpen bool) error {
	if err := req.Validate(); err != nil {
		return domain.NewValidationError("validation failed: " + err.Error())
	}
	if len(filePaths) == 0 {
		return uc.write(emptyResponse(req), req, outputPath, writer, noOpen)
	}

	resp, err := uc.service.DetectInFiles(ctx, filePaths, req)
	if err != nil {
		return domain.NewAnalysisError("clone detection failed", err)
	}
	return uc.write(resp, req, outputPath, writer, noOpen)
}

// ComputeFragmentSimilarity compares two source snippets of the same
// language directly, bypassing file discovery and the pair orchestrator -
// the single-comparison path MCP clients and editor plugins use.
func (uc *CloneUseCase) ComputeFragmentSimilarity(ctx context.Context, language, fragment1, fragment2 string) (float64, error) {
	sim, err := uc.service.ComputeSimilarity(ctx, language, fragment1, fragment2)
	if err != nil {
		return 0, domain.NewAnalysisError("failed to compute similarity", err)
	}
	return sim, nil
}

// run validates req, resolves its configuration, collects files, and
// invokes the engine. Shared by Execute and ExecuteAndReturn.
func (uc *CloneUseCase) run(ctx context.Context, req *domain.Request) (*domain.Response, error) {
	req, err := uc.resolveConfig(req)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, domain.NewValidationError("validation failed: " + err.Error())
	}

	files, err := ResolveFilePaths(uc.fileReader, req.Paths, req.Recursive, req.IncludePatterns, req.ExcludePatterns)
	if err != nil {
		return nil, domain.NewInternalError("failed to collect files", err)
	}
	if len(files) == 0 {
		return emptyResponse(req), nil
	}

	resp, err := uc.service.DetectInFiles(ctx, files, req)
	if err != nil {
		return nil, domain.NewAnalysisError("clone detection failed", err)
	}
	return resp, nil
}

// resolveConfig merges a config file at req.ConfigPath (if any) underneath
// req, so explicitly-set request fields always win. Compiled-in defaults are
// used when no config loader is wired.
func (uc *CloneUseCase) resolveConfig(req *domain.Request) (*domain.Request, error) {
	if req == nil {
		req = domain.DefaultRequest()
	}
	if uc.configLoader == nil {
		return req, nil
	}

	var base *domain.Request
	if req.ConfigPath != "" {
		loaded, err := uc.configLoader.LoadConfig(req.ConfigPath)
		if err != nil {
			return nil, domain.NewConfigError("failed to load configuration", err)
		}
		base = loaded
	} else {
		base = uc.configLoader.LoadDefaultConfig()
	}

	return uc.configLoader.MergeConfig(base, req), nil
}

// write renders resp through the use case's formatter and ReportWriter.
func (uc *CloneUseCase) write(resp *domain.Response, req *domain.Request, outputPath string, writer io.Writer, noOpen bool) error {
	if writer == nil {
		writer = req.OutputWriter
	}
	if writer == nil {
		return domain.NewValidationError("no valid output writer specified")
	}
	if uc.output == nil {
		return fmt.Errorf("no report writer configured")
	}

	format := req.OutputFormat
	if format == "" {
		format = domain.OutputFormatText
	}

	return uc.output.Write(writer, outputPath, format, noOpen, func(w io.Writer) error {
		if err := uc.formatter.Write(resp, format, w); err != nil {
			return domain.NewOutputError("failed to format output", err)
		}
		return nil
	})
}

// emptyResponse builds a zero-pair, successful Response for a run that
// found no files to analyze.
func emptyResponse(req *domain.Request) *domain.Response {
	return &domain.Response{
		Pairs:      []*domain.PairReport{},
		Statistics: domain.NewStatistics(),
		Request:    req,
		Success:    true,
	}
}

// CloneUseCaseBuilder assembles a CloneUseCase from its dependencies one at
// a time.
type CloneUseCaseBuilder struct {
	service      domain.Service
	fileReader   domain.FileReader
	formatter    domain.OutputFormatter
	configLoader domain.ConfigurationLoader
	output       domain.ReportWriter
}

// NewCloneUseCaseBuilder returns an empty builder.
func NewCloneUseCaseBuilder() *CloneUseCaseBuilder {
	return &CloneUseCaseBuilder{}
}

func (b *CloneUseCaseBuilder) WithService(service domain.Service) *CloneUseCaseBuilder {
	b.service = service
	return b
}

func (b *CloneUseCaseBuilder) WithFileReader(fileReader domain.FileReader) *CloneUseCaseBuilder {
	b.fileReader = fileReader
	return b
}

func (b *CloneUseCaseBuilder) WithFormatter(formatter domain.OutputFormatter) *CloneUseCaseBuilder {
	b.formatter = formatter
	return b
}

func (b *CloneUseCaseBuilder) WithConfigLoader(configLoader domain.ConfigurationLoader) *CloneUseCaseBuilder {
	b.configLoader = configLoader
	return b
}

func (b *CloneUseCaseBuilder) WithOutput(output domain.ReportWriter) *CloneUseCaseBuilder {
	b.output = output
	return b
}

// Build validates that the required dependencies are present and returns the
// assembled CloneUseCase. configLoader and output may be left nil.
func (b *CloneUseCaseBuilder) Build() (*CloneUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("service is required")
	}
	if b.fileReader == nil {
		return nil, fmt.Errorf("file reader is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("formatter is required")
	}
	return NewCloneUseCase(b.service, b.fileReader, b.formatter, b.configLoader, b.output), nil
}
