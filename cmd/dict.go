package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bimmerbailey/logmine/internal/analyzer"
	"github.com/bimmerbailey/logmine/internal/config"
	"github.com/bimmerbailey/logmine/internal/format"
	"github.com/bimmerbailey/logmine/internal/ngram"
	"github.com/bimmerbailey/logmine/internal/output"
	"github.com/bimmerbailey/logmine/internal/parser"
)

var dictCmd = &cobra.Command{
	Use:   "dict [flags]",
	Short: "Print the bigram and trigram dictionaries of a log file",
	Long: `Build the bigram and trigram frequency dictionaries of a log file and
print them grouped by count, rarest first.

Examples:
  logmine dict --raw-linux Linux_2k.log
  logmine dict --raw-hdfs HDFS_2k.log --below 3
  logmine dict --raw-spark "logs/Spark_*.log" --single-map --format json`,
	Args: cobra.NoArgs,
	RunE: runDict,
}

func init() {
	addRawFlags(dictCmd)
	addBuildFlags(dictCmd)
	dictCmd.Flags().Int("below", 0, "only show n-grams seen fewer than this many times")

	rootCmd.AddCommand(dictCmd)
}

// corpus is a log file together with the dictionaries built from it.
type corpus struct {
	format format.Format
	path   string
	size   int64
	parser *parser.Parser
	lines  *parser.Lines
	result *ngram.Result
}

// buildCorpus reads the selected raw input and builds its dictionaries.
func buildCorpus(cmd *cobra.Command, cfg config.Config) (*corpus, error) {
	f, path, err := selectInput(cmd)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	lines, err := parser.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if lines.Invalid > 0 {
		logger.Warn("skipped lines with invalid UTF-8", "path", path, "count", lines.Invalid)
	}

	p := parser.New(f)
	builder := ngram.New(p,
		ngram.WithWorkers(cfg.NumThreads),
		ngram.WithStrategy(ngram.StrategyFor(cfg.SingleMap)),
		ngram.WithLogger(logger.Named("ngram")))

	res, err := builder.Build(commandContext(cmd), lines.Lines)
	if err != nil {
		return nil, fmt.Errorf("building dictionaries for %s: %w", path, err)
	}

	return &corpus{
		format: f,
		path:   path,
		size:   info.Size(),
		parser: p,
		lines:  lines,
		result: res,
	}, nil
}

func (c *corpus) summaries() []analyzer.DictSummary {
	return []analyzer.DictSummary{
		analyzer.Summarize("double", c.result.Bigrams),
		analyzer.Summarize("triple", c.result.Trigrams),
	}
}

func runDict(cmd *cobra.Command, args []string) error {
	below, _ := cmd.Flags().GetInt("below")
	if below < 0 {
		return fmt.Errorf("invalid --below value: %d (must not be negative)", below)
	}

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	c, err := buildCorpus(cmd, cfg)
	if err != nil {
		return err
	}

	summaries := c.summaries()
	if below > 0 {
		summaries = []analyzer.DictSummary{
			analyzer.Summarize("double", rareOnly(c.result.Bigrams, below)),
			analyzer.Summarize("triple", rareOnly(c.result.Trigrams, below)),
		}
	}

	outFormat := output.ParseFormat(viper.GetString("format"))
	return output.New(cmd.OutOrStdout(), outFormat).WriteDictSummaries(summaries)
}

func rareOnly(d ngram.Dict, cutoff int) ngram.Dict {
	rare := make(ngram.Dict)
	for _, kc := range analyzer.Rarest(d, cutoff) {
		rare[kc.Key] = kc.Count
	}
	return rare
}
