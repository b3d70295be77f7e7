package cli

import (
	"fmt"
	"os"

	"github.com/danielsohn/chronica/internal/model"
	"github.com/danielsohn/chronica/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	buildMode        string
	buildResearchDir string
	buildSourceDir   string
	buildOutput      string
	buildPretty      bool
	buildNoCache     bool
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build timeline JSON from curated data or the raw corpus",
	Long: `Produce a viewer-ready timeline JSON payload.

Two modes are available:
  research    normalize a curated research directory (default); the
              CSVs are fully re-validated since they may have been
              hand-edited after extraction
  all_verses  render every chapter of the corpus as one event, without
              any selection or curation

Examples:
  chronica build --research-dir ./research --output web/research.json
  chronica build --mode all_verses --source-dir ./corpus --output web/all_verses.json --pretty`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildMode, "mode", model.ModeResearch, "build mode (research, all_verses)")
	buildCmd.Flags().StringVar(&buildResearchDir, "research-dir", "", "curated research dataset directory (research mode)")
	buildCmd.Flags().StringVar(&buildSourceDir, "source-dir", "", "directory of scripture text files (all_verses mode)")
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "timeline.json", "output JSON path")
	buildCmd.Flags().BoolVar(&buildPretty, "pretty", false, "indent the JSON output")
	buildCmd.Flags().BoolVar(&buildNoCache, "no-cache", false, "bypass the parsed-corpus cache")

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if buildPretty {
		cfg.Output.Pretty = true
	}
	if buildNoCache {
		cfg.Cache.Enabled = false
	}
	resolveCacheDir(cfg)

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	switch buildMode {
	case model.ModeResearch:
		if buildResearchDir == "" {
			return fmt.Errorf("research mode requires --research-dir")
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Building research timeline from %s\n", buildResearchDir)
		}
		tl, err := p.BuildResearch(buildResearchDir, buildOutput)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Timeline written to %s\n", buildOutput)
		fmt.Printf("  events: %d, lanes: %d, tracks: %d\n",
			tl.Meta.TotalEvents, len(tl.Lanes), len(tl.EdgesByTrack))

	case model.ModeAllVerses:
		if buildSourceDir == "" {
			return fmt.Errorf("all_verses mode requires --source-dir")
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Building all-verses timeline from %s\n", buildSourceDir)
		}
		tl, err := p.BuildAllVerses(buildSourceDir, buildOutput)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Timeline written to %s\n", buildOutput)
		fmt.Printf("  chapters: %d, lanes: %d\n", tl.Meta.TotalChapters, len(tl.Lanes))

	default:
		return fmt.Errorf("unknown mode: %q (want %s or %s)", buildMode, model.ModeResearch, model.ModeAllVerses)
	}

	return nil
}
