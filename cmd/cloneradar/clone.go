package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/cloneradar/cloneradar/domain"
	"github.com/cloneradar/cloneradar/internal/config"
	"github.com/cloneradar/cloneradar/service"
)

// NewCloneCmd creates the clone detection command. Flag registration is
// delegated to internal/config.RegisterFlags so the flag set, the TOML
// schema, and the CLONERADAR_ environment variables all describe the exact
// same set of knobs.
func NewCloneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clone [paths...]",
		Short: "Detect code clones using tree edit distance",
		Long: `Detect structurally similar code fragments across a project using a
tree-edit-distance kernel over a language-agnostic canonical tree.

This identifies structurally similar code that may be a candidate for
refactoring, and classifies each pair into one of four clone types:

  Type-1: identical code (whitespace/comments aside)
  Type-2: syntactically identical modulo renamed identifiers/literals
  Type-3: near-miss, same shape with local modifications
  Type-4: structurally distant but still above the similarity threshold

Examples:
  cloneradar clone .
  cloneradar clone --similarity-threshold 0.9 src/
  cloneradar clone --format json src/ > clones.json
  cloneradar clone --format html --group .`,
		RunE: runCloneDetection,
	}

	config.RegisterFlags(cmd.Flags(), config.DefaultConfig())
	cmd.Flags().StringP("config", "c", "", "path to a .cloneradar.toml (defaults to searching upward from the scanned path)")
	cmd.Flags().Bool("no-open", false, "don't auto-open an HTML report in the browser")
	cmd.Flags().Bool("progress", false, "show a progress bar while extracting fragments")
	_ = cmd.Flags().MarkHidden("profile")

	return cmd
}

func runCloneDetection(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}

	configPath, _ := cmd.Flags().GetString("config")
	startDir := args[0]
	if configPath != "" {
		startDir = configPath
	}

	cfg, _, err := config.Load(startDir, cmd.Flags())
	if err != nil {
		return domain.NewConfigError("failed to load configuration", err)
	}
	if err := cfg.Validate(); err != nil {
		return domain.NewConfigError("invalid configuration", err)
	}

	req := cfg.ToRequest()
	req.Paths = args
	req.ConfigPath = configPath

	if err := req.Validate(); err != nil {
		return domain.NewValidationError("invalid request: " + err.Error())
	}

	ext, err := service.NewOutputFormatResolver().Extension(req.OutputFormat)
	if err != nil {
		return domain.NewUnsupportedFormatError(string(req.OutputFormat))
	}

	outputPath := ""
	if ext != "" {
		outputPath, err = generateOutputFilePath("clone", ext)
		if err != nil {
			return fmt.Errorf("failed to generate output path: %w", err)
		}
	}

	cloneService := service.NewCloneService(service.NewFileReader())
	if showProgress, _ := cmd.Flags().GetBool("progress"); showProgress {
		pm := service.NewProgressManager()
		pm.SetWriter(cmd.ErrOrStderr())
		cloneService = cloneService.WithProgress(pm)
	}

	ctx, cancel := context.WithTimeout(context.Background(), domain.DefaultTimeoutSeconds*time.Second)
	defer cancel()

	resp, err := cloneService.Detect(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return domain.NewTimeoutError("clone detection exceeded the run timeout", ctx.Err())
		}
		return domain.NewAnalysisError("clone detection failed", err)
	}

	formatter := service.NewOutputFormatter()
	writer := service.NewFileOutputWriter(cmd.ErrOrStderr())
	noOpen, _ := cmd.Flags().GetBool("no-open")

	return writer.Write(cmd.OutOrStdout(), outputPath, req.OutputFormat, noOpen, func(w io.Writer) error {
		return formatter.Write(resp, req.OutputFormat, w)
	})
}
