package cli

import (
	"fmt"
	"os"

	"github.com/danielsohn/chronica/internal/pipeline"
	"github.com/spf13/cobra"
)

var enrichResearchDir string

// enrichCmd represents the enrich command
var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Add fuzzy gospel parallels to an existing research dataset",
	Long: `Score gospel event titles against each other with Jaccard similarity
over Korean token sets and add parallel evidence for matches above the
threshold.

The command is idempotent: rows it already added are recognized by their
provenance note and never duplicated, so re-running it on unchanged
input writes nothing.

Examples:
  chronica enrich --research-dir ./research`,
	RunE: runEnrich,
}

func init() {
	enrichCmd.Flags().StringVar(&enrichResearchDir, "research-dir", "", "research dataset directory (required)")
	_ = enrichCmd.MarkFlagRequired("research-dir")

	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Scoring gospel parallels in %s (threshold: %.2f)\n",
			enrichResearchDir, cfg.Parallel.Threshold)
	}

	added, err := p.Enrich(enrichResearchDir)
	if err != nil {
		return err
	}

	if added == 0 {
		fmt.Println("No new parallels found; dataset unchanged")
		return nil
	}

	fmt.Printf("✓ Added %d parallel evidence rows to %s\n", added, enrichResearchDir)
	return nil
}
