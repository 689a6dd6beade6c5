// ABOUTME: CLI command reporting the current corpus snapshot composition
// ABOUTME: Reads the persisted snapshot without touching the network
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/moodreel/moodreel/internal/models"
)

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show corpus statistics",
		Long: `Show the size, composition, and version of the stored corpus.

Examples:
  moodreel stats
  moodreel stats --format json`,
		Args: cobra.NoArgs,
		RunE: runStats,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	svc, err := openServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	snap, err := svc.store.LoadSnapshot()
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}
	if snap == nil {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No corpus built yet. Run: moodreel build")
		}
		return nil
	}

	movies, series := 0, 0
	minYear, maxYear := 0, 0
	for _, item := range snap.Items {
		switch item.MediaType {
		case models.MediaTypeSeries:
			series++
		default:
			movies++
		}
		if item.Year > 0 {
			if minYear == 0 || item.Year < minYear {
				minYear = item.Year
			}
			if item.Year > maxYear {
				maxYear = item.Year
			}
		}
	}

	if outputFormat == "json" {
		stats := map[string]interface{}{
			"version":  snap.Version,
			"built_at": snap.BuiltAt,
			"items":    snap.Size(),
			"movies":   movies,
			"series":   series,
			"min_year": minYear,
			"max_year": maxYear,
		}
		jsonData, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Version:\t%s\n", snap.Version)
	fmt.Fprintf(w, "Built:\t%s\n", snap.BuiltAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Items:\t%d\n", snap.Size())
	fmt.Fprintf(w, "Movies:\t%d\n", movies)
	fmt.Fprintf(w, "Series:\t%d\n", series)
	if minYear > 0 {
		fmt.Fprintf(w, "Years:\t%d-%d\n", minYear, maxYear)
	}
	return w.Flush()
}
