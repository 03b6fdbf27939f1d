package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cloneradar/cloneradar/domain"
	"github.com/cloneradar/cloneradar/internal/analyzer"
	"github.com/cloneradar/cloneradar/internal/constants"
	"github.com/cloneradar/cloneradar/internal/discovery"
	"github.com/cloneradar/cloneradar/internal/extractor"
	"github.com/cloneradar/cloneradar/internal/langprofile"
)

func languageForPath(path string) (string, bool) {
	return discovery.LanguageForPath(path)
}

func loadProfile(path string) (*langprofile.ExtractionProfile, error) {
	return langprofile.LoadFile(path)
}

// CloneService implements domain.Service: it turns a request (or an
// already-resolved file list) into extracted fragments, hands them to
// internal/analyzer.Orchestrator for comparison, and applies consumer-side
// grouping. It owns no state across calls — each Detect/DetectInFiles call
// builds its own extractor.Registry so concurrent calls never share one.
type CloneService struct {
	reader   domain.FileReader
	progress *ProgressManagerImpl
}

// NewCloneService creates a new clone service backed by reader for resolving
// req.Paths into concrete files. Callers that already have a file list
// should use DetectInFiles and may pass a nil reader.
func NewCloneService(reader domain.FileReader) *CloneService {
	return &CloneService{reader: reader}
}

// WithProgress attaches a progress manager that DetectInFiles reports
// per-file extraction progress to. Passing nil disables progress reporting.
func (s *CloneService) WithProgress(pm *ProgressManagerImpl) *CloneService {
	s.progress = pm
	return s
}

// Detect resolves req.Paths against the configured reader, then runs
// DetectInFiles over the resolved file set.
func (s *CloneService) Detect(ctx context.Context, req *domain.Request) (*domain.Response, error) {
	if req == nil {
		return nil, fmt.Errorf("request cannot be nil")
	}
	if s.reader == nil {
		return nil, fmt.Errorf("clone service has no file reader configured")
	}
	files, err := s.reader.CollectFiles(req.Paths, req.Recursive, req.IncludePatterns, req.ExcludePatterns)
	if err != nil {
		return nil, err
	}
	return s.DetectInFiles(ctx, files, req)
}

// DetectInFiles parses and extracts fragments from filePaths, compares them
// with internal/analyzer.Orchestrator, and applies grouping.
func (s *CloneService) DetectInFiles(ctx context.Context, filePaths []string, req *domain.Request) (*domain.Response, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}
	if req == nil {
		return nil, fmt.Errorf("request cannot be nil")
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	start := time.Now()

	registry := extractor.NewRegistry(extractor.Options{MinLines: req.MinLines, MinNodes: req.MinNodes})
	if req.ProfilePath != "" {
		profile, err := loadProfile(req.ProfilePath)
		if err != nil {
			return nil, err
		}
		if err := registry.RegisterProfile(profile); err != nil {
			return nil, err
		}
	}

	allowedLanguages := toSet(req.Languages)

	candidates := make([]string, 0, len(filePaths))
	for _, path := range filePaths {
		if language, ok := languageForPath(path); ok && (len(allowedLanguages) == 0 || allowedLanguages[language]) {
			candidates = append(candidates, path)
		}
	}

	if s.progress != nil {
		s.progress.Initialize(len(candidates))
		s.progress.StartTask("extract")
		defer s.progress.Close()
	}

	var completed int32
	results, err := NewParallelExtractor(domain.DefaultMaxGoroutines).Run(ctx, candidates, func(ctx context.Context, path string) ([]*domain.Fragment, error) {
		language, _ := languageForPath(path)
		content, err := s.readFile(path)
		if err != nil {
			return nil, err
		}
		ex, err := registry.For(language)
		if err != nil {
			return nil, err
		}
		fragments, err := ex.ExtractFile(ctx, path, content)
		if s.progress != nil {
			n := atomic.AddInt32(&completed, 1)
			s.progress.UpdateProgress("extract", int(n), len(candidates))
		}
		return fragments, err
	})
	if err != nil {
		return nil, err
	}

	var fragments []*domain.Fragment
	filesAnalyzed := 0
	filesSkipped := len(filePaths) - len(candidates)
	for _, r := range results {
		if r.Err != nil {
			filesSkipped++
			continue
		}
		fragments = append(fragments, r.Fragments...)
		filesAnalyzed++
	}

	if s.progress != nil {
		s.progress.CompleteTask("extract", true)
	}

	orchestrator := analyzer.NewOrchestrator(req.RenameCost)
	resp, err := orchestrator.Run(ctx, fragments, req)
	if err != nil {
		return nil, err
	}

	resp.Statistics.FilesAnalyzed = filesAnalyzed
	resp.Statistics.FilesSkipped = filesSkipped
	resp.Duration = time.Since(start).Milliseconds()

	GroupResponse(resp, req)

	return resp, nil
}

// ComputeSimilarity parses two standalone snippets of the same language and
// returns their size-adjusted similarity, for scripting and MCP callers that
// don't have files to point a Detect request at.
func (s *CloneService) ComputeSimilarity(ctx context.Context, language, snippet1, snippet2 string) (float64, error) {
	if ctx == nil {
		return 0, fmt.Errorf("context cannot be nil")
	}
	if snippet1 == "" || snippet2 == "" {
		return 0, fmt.Errorf("snippets cannot be empty")
	}
	if len(snippet1) > constants.DefaultMaxSnippetSize || len(snippet2) > constants.DefaultMaxSnippetSize {
		return 0, fmt.Errorf("snippet size exceeds maximum allowed size of %d bytes", constants.DefaultMaxSnippetSize)
	}

	registry := extractor.NewRegistry(extractor.DefaultOptions())
	ex, err := registry.For(language)
	if err != nil {
		return 0, err
	}

	f1, err := ex.ExtractSnippet(ctx, []byte(snippet1))
	if err != nil {
		return 0, fmt.Errorf("failed to extract snippet1: %w", err)
	}
	f2, err := ex.ExtractSnippet(ctx, []byte(snippet2))
	if err != nil {
		return 0, fmt.Errorf("failed to extract snippet2: %w", err)
	}

	tree1, ok1 := f1.CanonicalTree.(*analyzer.CanonicalNode)
	tree2, ok2 := f2.CanonicalTree.(*analyzer.CanonicalNode)
	if !ok1 || !ok2 {
		return 0, fmt.Errorf("failed to canonicalize snippets")
	}

	kernel := analyzer.NewTSEDKernel(analyzer.NewDefaultCostModel(0.3))
	detail := kernel.ComputeDetailed(tree1, tree2)
	return analyzer.AdjustedSimilarity(detail.Similarity, f1.SourceSize, f2.SourceSize, true), nil
}

func (s *CloneService) readFile(path string) ([]byte, error) {
	if s.reader != nil {
		return s.reader.ReadFile(path)
	}
	return NewFileReader().ReadFile(path)
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
