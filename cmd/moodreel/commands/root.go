// ABOUTME: Root CLI command with global flags shared by all subcommands
// ABOUTME: Wires recommend, build, stats, and version under one cobra tree
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "moodreel",
		Short: "Mood-based horror movie recommendations",
		Long: `moodreel — mood-based horror recommendations from the command line.

Describe the kind of scare you are after in plain language and get back a
short, varied list of matching movies. Repeated identical requests return
deliberately different results.

Examples:
  moodreel recommend "a slow-burn haunted house with a sad ghost"
  moodreel recommend --limit 3 --min-year 2000 "found footage in the woods"
  moodreel build --pages 2
  moodreel stats`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "table", "Output format: table or json")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewRecommendCmd())
	cmd.AddCommand(NewBuildCmd())
	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
