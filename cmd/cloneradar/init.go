package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cloneradar/cloneradar/internal/config"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

// NewInitCmd creates the init subcommand, which writes a .cloneradar.toml
// seeded from config.DefaultConfig() into the current directory.
func NewInitCmd() *cobra.Command {
	var force bool
	var configPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a .cloneradar.toml with default settings",
		Long: `Create a .cloneradar.toml configuration file in the current directory,
populated with cloneradar's default settings for editing.

Examples:
  cloneradar init
  cloneradar init --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, configPath, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing configuration file")
	cmd.Flags().StringVarP(&configPath, "config", "c", ".cloneradar.toml", "Configuration file path to write")

	return cmd
}

func runInit(cmd *cobra.Command, configPath string, force bool) error {
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", absPath)
	}

	data, err := toml.Marshal(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to encode default configuration: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(absPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	relPath, err := filepath.Rel(".", absPath)
	if err != nil {
		relPath = absPath
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", relPath)
	return nil
}
