package extractor

import (
	"fmt"
	"sync"

	"github.com/cloneradar/cloneradar/internal/langprofile"
)

// Registry holds one Extractor per language, built lazily from compiled-in
// or JSON-loaded profiles, so a caller walking a mixed-language tree of
// source files doesn't pay parser/profile construction cost per file. It is
// safe for concurrent use: service.CloneService.DetectInFiles calls For from
// a bounded pool of extraction goroutines.
type Registry struct {
	opts       Options
	mu         sync.Mutex
	extractors map[string]*Extractor
}

// NewRegistry builds an empty Registry; extractors are constructed on first
// use by For.
func NewRegistry(opts Options) *Registry {
	return &Registry{opts: opts, extractors: make(map[string]*Extractor)}
}

// For returns the Extractor for language, building and caching it from the
// compiled-in profile on first request.
func (r *Registry) For(language string) (*Extractor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.extractors[language]; ok {
		return e, nil
	}
	profile, ok := langprofile.For(language)
	if !ok {
		return nil, fmt.Errorf("extractor: no compiled-in profile for language %q", language)
	}
	e, err := New(profile, r.opts)
	if err != nil {
		return nil, err
	}
	r.extractors[language] = e
	return e, nil
}

// RegisterProfile installs a caller-supplied profile (e.g. loaded from
// --profile path.json), overriding any compiled-in extractor already cached
// for that language.
func (r *Registry) RegisterProfile(profile *langprofile.ExtractionProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := New(profile, r.opts)
	if err != nil {
		return err
	}
	r.extractors[profile.Language] = e
	return nil
}
