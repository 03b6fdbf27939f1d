package main

import (
	"fmt"

	"github.com/cloneradar/cloneradar/internal/version"
	"github.com/spf13/cobra"
)

// NewVersionCmd creates the version subcommand.
func NewVersionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Display version information for cloneradar.

Use --short to print only the version number.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), version.Short())
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), version.Info())
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Show only the version number")
	return cmd
}
