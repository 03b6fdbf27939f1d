package service

import (
	"fmt"
	"html/template"
	"math"
	"strings"
	"time"

	"github.com/cloneradar/cloneradar/domain"
)

// HTMLFormatterImpl renders a clone-detection Response as a single
// self-contained, Lighthouse-style HTML report.
type HTMLFormatterImpl struct{}

// NewHTMLFormatter creates a new HTML formatter service.
func NewHTMLFormatter() *HTMLFormatterImpl {
	return &HTMLFormatterImpl{}
}

// ScoreData is the gauge rendered for a single quality dimension.
type ScoreData struct {
	Score    int
	Label    string
	Color    string
	Status   string
	Category string
}

// CloneHTMLData is the template model for a clone-detection report.
type CloneHTMLData struct {
	ProjectName  string
	Timestamp    string
	ScoreDetails ScoreData
	Response     *domain.Response
	Pairs        []*domain.PairReport
	HiddenPairs  int
}

// maxHTMLPairsDisplayed bounds the pairs table so a large run's report
// doesn't ship megabytes of inline HTML; the full data is still available
// via --format json or --format yaml.
const maxHTMLPairsDisplayed = 200

// CalculateCloneScore scores a run on a 0-100 Lighthouse-style scale from
// clone-pair density: zero pairs found in a lot of analyzed code scores 100,
// and density above that scales down on a log curve so one or two pairs in
// a huge codebase doesn't tank the score the way it would on a linear one.
func (f *HTMLFormatterImpl) CalculateCloneScore(stats *domain.Statistics) ScoreData {
	if stats == nil || stats.FragmentsExtracted == 0 {
		return ScoreData{Score: 100, Label: "No Fragments Extracted", Color: "#0CCE6B", Status: "pass", Category: "clone"}
	}

	pairs := stats.PairsReported
	density := float64(pairs) / (float64(stats.FragmentsExtracted) / 1000.0)

	var score int
	if pairs == 0 {
		score = 100
	} else {
		raw := 100 - (math.Log(density+1) * 10)
		score = int(math.Max(5, math.Min(100, raw)))
	}

	var color, status string
	switch {
	case score >= 90:
		color, status = "#0CCE6B", "pass"
	case score >= 50:
		color, status = "#FFA500", "average"
	default:
		color, status = "#FF5722", "fail"
	}

	return ScoreData{
		Score:    score,
		Label:    fmt.Sprintf("%d clone pairs", pairs),
		Color:    color,
		Status:   status,
		Category: "clone",
	}
}

// FormatAsHTML renders response as a complete HTML document.
func (f *HTMLFormatterImpl) FormatAsHTML(response *domain.Response, projectName string) (string, error) {
	if response == nil {
		return "", fmt.Errorf("response cannot be nil")
	}
	if projectName == "" {
		projectName = "cloneradar report"
	}

	pairs := response.Pairs
	hidden := 0
	if len(pairs) > maxHTMLPairsDisplayed {
		hidden = len(pairs) - maxHTMLPairsDisplayed
		pairs = pairs[:maxHTMLPairsDisplayed]
	}

	data := CloneHTMLData{
		ProjectName:  projectName,
		Timestamp:    time.Now().Format("2006-01-02T15:04:05Z07:00"),
		ScoreDetails: f.CalculateCloneScore(response.Statistics),
		Response:     response,
		Pairs:        pairs,
		HiddenPairs:  hidden,
	}

	return f.renderTemplate(data)
}

func (f *HTMLFormatterImpl) renderTemplate(data interface{}) (string, error) {
	funcMap := template.FuncMap{
		"title": func(s string) string {
			if len(s) == 0 {
				return s
			}
			return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
		},
		"pct": func(f float64) string {
			return fmt.Sprintf("%.1f%%", f*100)
		},
	}

	tmpl, err := template.New("html_report").Funcs(funcMap).Parse(cloneHTMLTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML template: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute HTML template: %w", err)
	}
	return buf.String(), nil
}
