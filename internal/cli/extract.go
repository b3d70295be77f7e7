package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/danielsohn/chronica/internal/model"
	"github.com/danielsohn/chronica/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	extractSourceDir string
	extractOutputDir string
	extractTarget    int
	extractNoCache   bool
	extractLLM       string
	extractLLMModel  string
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract the research dataset from a scripture corpus",
	Long: `Parse a directory of cp949 scripture text files, extract narrative
events from in-text headings, select a proportional sample per book, and
write the four research CSV tables plus editor notes.

The output directory is meant to be reviewed and hand-edited before
building timeline JSON from it.

Examples:
  chronica extract --source-dir ./corpus --output-dir ./research
  chronica extract --source-dir ./corpus --output-dir ./research --target-events 200
  chronica extract --source-dir ./corpus --output-dir ./research --llm openai --llm-model gpt-4o-mini`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractSourceDir, "source-dir", "", "directory of scripture text files (required)")
	extractCmd.Flags().StringVarP(&extractOutputDir, "output-dir", "o", "research", "output directory for the research dataset")
	extractCmd.Flags().IntVar(&extractTarget, "target-events", 0, "override the global event quota")
	extractCmd.Flags().BoolVar(&extractNoCache, "no-cache", false, "bypass the parsed-corpus cache")
	extractCmd.Flags().StringVar(&extractLLM, "llm", "", "LLM provider for the notes overview (openai, ollama)")
	extractCmd.Flags().StringVar(&extractLLMModel, "llm-model", "", "model name for the notes overview")

	_ = extractCmd.MarkFlagRequired("source-dir")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if extractTarget > 0 {
		cfg.Extraction.TargetEvents = extractTarget
	}
	if extractNoCache {
		cfg.Cache.Enabled = false
	}
	applyLLMFlags(cfg, extractLLM, extractLLMModel)
	resolveCacheDir(cfg)

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Extracting events from %s (target: %d)\n", extractSourceDir, cfg.Extraction.TargetEvents)
	}

	result, err := p.Extract(cmd.Context(), extractSourceDir, extractOutputDir)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Research dataset written to %s\n", extractOutputDir)
	fmt.Printf("  events: %d, evidence verses: %d, chronology edges: %d\n",
		result.Events, result.Evidence, result.Edges)

	return nil
}

// applyLLMFlags layers CLI flags and ambient env vars over the config
func applyLLMFlags(cfg *model.Config, provider, modelName string) {
	if provider != "" {
		cfg.LLM.Provider = provider
	}
	if modelName != "" {
		cfg.LLM.Model = modelName
	}
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = os.Getenv("OLLAMA_BASE_URL")
	}
}

// resolveCacheDir fills in the default cache location when unset
func resolveCacheDir(cfg *model.Config) {
	if cfg.Cache.Dir != "" || !cfg.Cache.Enabled {
		return
	}
	home, err := os.UserHomeDir()
	if err != nil {
		cfg.Cache.Enabled = false
		return
	}
	cfg.Cache.Dir = filepath.Join(home, ".chronica", "cache")
}
