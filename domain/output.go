package domain

import (
	"context"
	"io"
)

// OutputFormat represents the supported report output formats.
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatCSV  OutputFormat = "csv"
	OutputFormatHTML OutputFormat = "html"
)

// SortCriteria represents the criteria for ordering pair reports for display.
// The engine's own output order (spec §4.5) is always by file then descending
// priority; SortCriteria only affects how a formatter re-presents that slice.
type SortCriteria string

const (
	SortByLocation   SortCriteria = "location"
	SortBySimilarity SortCriteria = "similarity"
	SortByPriority   SortCriteria = "priority"
	SortBySize       SortCriteria = "size"
)

// FileReader abstracts file discovery and reading so the engine and CLI never
// touch the filesystem directly; see internal/discovery for the concrete
// doublestar-backed implementation.
type FileReader interface {
	// CollectFiles recursively finds all source files under paths that match
	// the include patterns and do not match the exclude patterns.
	CollectFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error)

	// ReadFile reads the content of a single file.
	ReadFile(path string) ([]byte, error)

	// FileExists checks if a file exists.
	FileExists(path string) (bool, error)
}

// OutputFormatter defines the interface for formatting a Response.
type OutputFormatter interface {
	// Format renders the response as a string in the given format.
	Format(response *Response, format OutputFormat) (string, error)

	// Write renders the response directly to a writer.
	Write(response *Response, format OutputFormat, writer io.Writer) error
}

// ConfigurationLoader defines the interface for loading run configuration.
type ConfigurationLoader interface {
	// LoadConfig loads configuration from the given path.
	LoadConfig(path string) (*Request, error)

	// LoadDefaultConfig returns compiled-in defaults.
	LoadDefaultConfig() *Request

	// MergeConfig merges CLI-flag overrides onto a base configuration.
	MergeConfig(base *Request, override *Request) *Request
}

// ReportWriter abstracts writing reports to a destination (file or writer)
// and handling side-effects like opening HTML reports in a browser.
//
// Implementations live in the service layer.
type ReportWriter interface {
	// Write writes formatted content using the provided writeFunc.
	// - If outputPath is non-empty, implementations should create/truncate the file
	//   at that path and pass the file as the writer to writeFunc.
	// - If outputPath is empty, implementations should pass the provided writer to writeFunc.
	// Implementations may emit user-facing status messages (e.g., file paths) and
	// optionally open HTML outputs in a browser when format is OutputFormatHTML and noOpen is false.
	Write(writer io.Writer, outputPath string, format OutputFormat, noOpen bool, writeFunc func(io.Writer) error) error
}

// Service defines the interface for the similarity-engine's driving service.
type Service interface {
	// Detect runs fragment extraction and pair comparison over a request.
	Detect(ctx context.Context, req *Request) (*Response, error)

	// DetectInFiles runs the same pipeline restricted to a known file set.
	DetectInFiles(ctx context.Context, filePaths []string, req *Request) (*Response, error)

	// ComputeSimilarity computes the similarity between two source snippets
	// of the same language, mostly useful for scripting and MCP tool calls.
	ComputeSimilarity(ctx context.Context, language, snippet1, snippet2 string) (float64, error)
}
