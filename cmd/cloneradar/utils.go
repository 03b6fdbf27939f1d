package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// generateTimestampedFileName builds a report filename of the form
// "clone_20060102_150405.json".
func generateTimestampedFileName(command, extension string) string {
	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s_%s.%s", command, timestamp, extension)
}

// generateOutputFilePath places a timestamped report file under
// ./.cloneradar/reports, creating the directory if needed.
func generateOutputFilePath(command, extension string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	outputDir := filepath.Join(cwd, ".cloneradar", "reports")
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}
	return filepath.Join(outputDir, generateTimestampedFileName(command, extension)), nil
}
