// ABOUTME: CLI command producing mood-based recommendations
// ABOUTME: Supports strategy selection, hard filters, and table or JSON output
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/moodreel/moodreel/internal/models"
)

var (
	recommendLimit       int
	recommendStrategy    string
	recommendMinYear     int
	recommendMaxYear     int
	recommendMinRating   float64
	recommendEnglishOnly bool
	recommendMediaType   string
)

// NewRecommendCmd creates the recommend command
func NewRecommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend <mood>",
		Short: "Recommend horror movies for a mood",
		Long: `Recommend horror movies matching a free-text mood description.

The first run builds the corpus from OMDb, which takes a few minutes.
Results are intentionally varied: asking the same thing twice returns
different, equally relevant picks.

Examples:
  moodreel recommend "a haunted house with a sad ghost"
  moodreel recommend --strategy semantic "cosmic dread on a fishing boat"
  moodreel recommend --limit 3 --min-rating 7 --type movie "80s slasher energy"`,
		Args: cobra.ExactArgs(1),
		RunE: runRecommend,
	}

	cmd.Flags().IntVar(&recommendLimit, "limit", 5, "Number of recommendations to return")
	cmd.Flags().StringVar(&recommendStrategy, "strategy", "unified", "Scoring strategy: semantic, unified, or popular")
	cmd.Flags().IntVar(&recommendMinYear, "min-year", 0, "Earliest release year")
	cmd.Flags().IntVar(&recommendMaxYear, "max-year", 0, "Latest release year")
	cmd.Flags().Float64Var(&recommendMinRating, "min-rating", 0, "Minimum audience rating (0-10)")
	cmd.Flags().BoolVar(&recommendEnglishOnly, "english-only", false, "Keep only English-language titles")
	cmd.Flags().StringVar(&recommendMediaType, "type", "", "Restrict to 'movie' or 'series'")

	return cmd
}

func runRecommend(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	if err := validatePositiveInt(recommendLimit, "limit"); err != nil {
		return err
	}

	svc, err := openServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	query := models.Query{
		Text:     args[0],
		Strategy: models.ParseStrategy(recommendStrategy),
		Limit:    recommendLimit,
		Filters: models.Filters{
			MinYear:     recommendMinYear,
			MaxYear:     recommendMaxYear,
			MinRating:   recommendMinRating,
			EnglishOnly: recommendEnglishOnly,
			MediaType:   recommendMediaType,
		},
	}

	results, err := svc.recommender.Recommend(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("recommending: %w", err)
	}

	if len(results) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No matches for: %s\n", args[0])
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SCORE\tTITLE\tYEAR\tRATING\tOVERVIEW\n")
	fmt.Fprintf(w, "-----\t-----\t----\t------\t--------\n")
	for _, rec := range results {
		fmt.Fprintf(w, "%.3f\t%s\t%d\t%.1f\t%s\n",
			rec.Score,
			truncate(rec.Title, 30),
			rec.Year,
			rec.Rating,
			truncate(rec.Overview, 50),
		)
	}
	return w.Flush()
}
