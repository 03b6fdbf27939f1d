package service

import (
	"errors"

	"github.com/cloneradar/cloneradar/domain"
)

// ExitCode is the process exit status spec.md §7 assigns to a failure class.
type ExitCode int

const (
	ExitSuccess ExitCode = 0
	// ExitRuntime covers I/O or parse failures that prevented progress but
	// didn't stem from a bad configuration value.
	ExitRuntime ExitCode = 1
	// ExitConfig covers invalid configuration: a bad threshold, an unknown
	// language, a malformed extraction profile.
	ExitConfig ExitCode = 2
)

// ErrorAdvice bundles the exit code and user-facing remediation text cmd/cloneradar
// reports for a failed run.
type ErrorAdvice struct {
	ExitCode    ExitCode
	Message     string
	Suggestions []string
}

// ErrorCategorizerImpl classifies an error into actionable advice by reading
// domain.DomainError's structured Code, falling back to ExitRuntime with no
// specific suggestions for an error that never passed through one of the
// domain package's NewXxxError constructors.
type ErrorCategorizerImpl struct{}

// NewErrorCategorizer creates a new error categorizer.
func NewErrorCategorizer() *ErrorCategorizerImpl {
	return &ErrorCategorizerImpl{}
}

// Categorize inspects err for a wrapped domain.DomainError and returns the
// advice to show the user.
func (ec *ErrorCategorizerImpl) Categorize(err error) *ErrorAdvice {
	if err == nil {
		return nil
	}

	var de domain.DomainError
	if !errors.As(err, &de) {
		return &ErrorAdvice{ExitCode: ExitRuntime, Message: err.Error()}
	}

	switch de.Code {
	case domain.ErrCodeInvalidInput, domain.ErrCodeConfigError:
		return &ErrorAdvice{
			ExitCode: ExitConfig,
			Message:  de.Error(),
			Suggestions: []string{
				"Check .cloneradar.toml and CLONERADAR_-prefixed environment variables for the offending value",
				"Run with --help to see the accepted range/values for each flag",
			},
		}
	case domain.ErrCodeFileNotFound:
		return &ErrorAdvice{
			ExitCode: ExitRuntime,
			Message:  de.Error(),
			Suggestions: []string{
				"Verify the path exists and is readable",
				"Check --include/--exclude patterns aren't excluding every file",
			},
		}
	case domain.ErrCodeParseError:
		return &ErrorAdvice{
			ExitCode: ExitRuntime,
			Message:  de.Error(),
			Suggestions: []string{
				"The file may use syntax the language's parser doesn't recognize",
				"Re-run with a narrower --include pattern to isolate the offending file",
			},
		}
	case domain.ErrCodeTimeout, domain.ErrCodeCancelled:
		return &ErrorAdvice{
			ExitCode: ExitRuntime,
			Message:  de.Error(),
			Suggestions: []string{
				"Re-run on a smaller path set, or raise the context timeout",
			},
		}
	case domain.ErrCodeOutputError, domain.ErrCodeUnsupportedFormat:
		return &ErrorAdvice{
			ExitCode: ExitConfig,
			Message:  de.Error(),
			Suggestions: []string{
				"Check --format is one of text, json, yaml, csv, html",
				"Check the output path's directory exists and is writable",
			},
		}
	default:
		return &ErrorAdvice{ExitCode: ExitRuntime, Message: de.Error()}
	}
}
