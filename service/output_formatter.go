package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/cloneradar/cloneradar/domain"
	"github.com/cloneradar/cloneradar/internal/constants"
)

// tierDescriptions maps a Tier's label (domain.Tier.String()) to the
// canonical clone-type description carried in internal/constants, so the
// text report can explain each tier instead of just naming it.
var tierDescriptions = map[string]string{
	"Type-1": constants.CloneTypeDescriptions[1],
	"Type-2": constants.CloneTypeDescriptions[2],
	"Type-3": constants.CloneTypeDescriptions[3],
	"Type-4": constants.CloneTypeDescriptions[4],
}

// OutputFormatterImpl implements domain.OutputFormatter for a clone-detection
// Response: text, JSON, YAML, CSV and a self-contained HTML report.
type OutputFormatterImpl struct{}

// NewOutputFormatter creates a new output formatter service.
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// Format renders response in the given format.
func (f *OutputFormatterImpl) Format(response *domain.Response, format domain.OutputFormat) (string, error) {
	if response == nil {
		return "", fmt.Errorf("response cannot be nil")
	}
	switch format {
	case domain.OutputFormatText, "":
		return f.formatText(response), nil
	case domain.OutputFormatJSON:
		return EncodeJSON(response)
	case domain.OutputFormatYAML:
		return EncodeYAML(response)
	case domain.OutputFormatCSV:
		return f.formatCSV(response)
	case domain.OutputFormatHTML:
		return NewHTMLFormatter().FormatAsHTML(response, "cloneradar report")
	default:
		return "", domain.NewUnsupportedFormatError(string(format))
	}
}

// Write renders response in the given format directly to writer.
func (f *OutputFormatterImpl) Write(response *domain.Response, format domain.OutputFormat, writer io.Writer) error {
	output, err := f.Format(response, format)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(writer, output); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}
	return nil
}

// formatText renders a human-readable report: a summary, then the clone
// pairs (or, when grouping ran, the groups instead).
func (f *OutputFormatterImpl) formatText(response *domain.Response) string {
	var b strings.Builder
	utils := NewFormatUtils()

	b.WriteString(utils.FormatMainHeader("Clone Detection Report"))

	if !response.Success {
		b.WriteString(fmt.Sprintf("Run failed: %s\n", response.Error))
		return b.String()
	}

	if stats := response.Statistics; stats != nil {
		b.WriteString(utils.FormatSummaryStats([]LabelValue{
			{Label: "Files Analyzed", Value: stats.FilesAnalyzed},
			{Label: "Files Skipped", Value: stats.FilesSkipped},
			{Label: "Fragments Extracted", Value: stats.FragmentsExtracted},
			{Label: "Pairs Compared", Value: stats.PairsCompared},
			{Label: "Pairs Reported", Value: stats.PairsReported},
			{Label: "Average Similarity", Value: fmt.Sprintf("%.3f", stats.AverageSimilarity)},
			{Label: "Duration", Value: utils.FormatDuration(response.Duration)},
		}))

		if len(stats.PairsByTier) > 0 {
			b.WriteString(utils.FormatSectionHeader("PAIRS BY TIER"))
			for _, tier := range []string{"Type-1", "Type-2", "Type-3", "Type-4"} {
				if n, ok := stats.PairsByTier[tier]; ok {
					label := fmt.Sprintf("%s (%s)", tier, tierDescriptions[tier])
					b.WriteString(utils.FormatLabelWithIndent(SectionPadding, label, n))
				}
			}
			b.WriteString(utils.FormatSectionSeparator())
		}
	}

	if len(response.Groups) > 0 {
		b.WriteString(utils.FormatSectionHeader("CLONE GROUPS"))
		for _, g := range response.Groups {
			b.WriteString(fmt.Sprintf("Group %d (%d fragments, similarity=%.3f):\n", g.ID, len(g.Fragments), g.Similarity))
			for _, frag := range g.Fragments {
				b.WriteString(fmt.Sprintf("  - %s\n", frag.Location))
			}
		}
		b.WriteString(utils.FormatSectionSeparator())
		return b.String()
	}

	if len(response.Pairs) == 0 {
		b.WriteString("No clones detected.\n")
		return b.String()
	}

	b.WriteString(utils.FormatSectionHeader("CLONE PAIRS"))
	for i, pair := range response.Pairs {
		b.WriteString(fmt.Sprintf("%d. %s (similarity=%.3f, priority=%.1f)\n", i+1, pair.Tier, pair.Similarity, pair.Priority))
		b.WriteString(fmt.Sprintf("   A: %s\n", pair.FragmentA.Location))
		b.WriteString(fmt.Sprintf("   B: %s\n", pair.FragmentB.Location))
	}

	return b.String()
}

// formatCSV renders one row per reported pair; --group output (which has no
// fixed arity per row) is out of CSV's reach and is reported pair-by-pair
// regardless of req.Group.
func (f *OutputFormatterImpl) formatCSV(response *domain.Response) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	header := []string{
		"id", "tier", "similarity", "priority", "distance", "overlap_lines",
		"a_file", "a_start_line", "a_end_line",
		"b_file", "b_start_line", "b_end_line",
	}
	if err := w.Write(header); err != nil {
		return "", domain.NewOutputError("failed to write CSV header", err)
	}

	for _, pair := range response.Pairs {
		row := []string{
			fmt.Sprintf("%d", pair.ID),
			pair.Tier.String(),
			fmt.Sprintf("%.6f", pair.Similarity),
			fmt.Sprintf("%.2f", pair.Priority),
			fmt.Sprintf("%.2f", pair.Distance),
			fmt.Sprintf("%d", pair.OverlapLines),
			pair.FragmentA.Location.FilePath,
			fmt.Sprintf("%d", pair.FragmentA.Location.StartLine),
			fmt.Sprintf("%d", pair.FragmentA.Location.EndLine),
			pair.FragmentB.Location.FilePath,
			fmt.Sprintf("%d", pair.FragmentB.Location.StartLine),
			fmt.Sprintf("%d", pair.FragmentB.Location.EndLine),
		}
		if err := w.Write(row); err != nil {
			return "", domain.NewOutputError("failed to write CSV row", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", domain.NewOutputError("CSV writer error", err)
	}
	return b.String(), nil
}
