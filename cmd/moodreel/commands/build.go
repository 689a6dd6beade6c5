// ABOUTME: CLI command to rebuild the horror corpus from OMDb
// ABOUTME: Long-running; reports item count and version when done
package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var buildPages int

// NewBuildCmd creates the build command
func NewBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Rebuild the movie corpus",
		Long: `Rebuild the candidate corpus from the OMDb metadata source.

Walks the discovery vocabulary, fetches details for every horror title
found, and atomically replaces the previous snapshot. Embeddings are
re-encoded lazily on the next recommendation.

Examples:
  moodreel build
  moodreel build --pages 3`,
		Args: cobra.NoArgs,
		RunE: runBuild,
	}

	cmd.Flags().IntVar(&buildPages, "pages", 0, "Search pages per discovery term (default from config)")

	return cmd
}

func runBuild(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	svc, err := openServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	if svc.cfg.OMDbAPIKey == "" {
		return fmt.Errorf("OMDB_API_KEY is not set")
	}

	pages := buildPages
	if pages <= 0 {
		pages = svc.cfg.BuildPages
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Building corpus (%d pages per term)...\n", pages)
	}

	snap, err := svc.builder.Rebuild(cmd.Context(), pages)
	if err != nil {
		return fmt.Errorf("building corpus: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Corpus ready: %d items (version %s)\n", snap.Size(), snap.Version)
	}
	return nil
}
