package main

import (
	"fmt"
	"os"

	"github.com/cloneradar/cloneradar/internal/version"
	"github.com/cloneradar/cloneradar/service"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cloneradar",
	Short: "Detect structurally similar code fragments across a project",
	Long: `cloneradar finds clusters of structurally similar code across a
multi-language codebase using a tree-edit-distance comparison over a
canonicalized fragment tree.

Features:
  • Type-1 through Type-4 clone classification
  • Tree-edit-distance kernel over a language-agnostic canonical tree
  • MinHash/LSH candidate prefiltering for large inputs
  • Connected-component and k-core clone grouping`,
	Version: version.Short(),
}

func init() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	rootCmd.AddCommand(NewCloneCmd())
	rootCmd.AddCommand(NewVersionCmd())
	rootCmd.AddCommand(NewInitCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		advice := service.NewErrorCategorizer().Categorize(err)
		if advice == nil {
			os.Exit(int(service.ExitRuntime))
		}
		fmt.Fprintln(os.Stderr, advice.Message)
		for _, s := range advice.Suggestions {
			fmt.Fprintf(os.Stderr, "  - %s\n", s)
		}
		os.Exit(int(advice.ExitCode))
	}
}
