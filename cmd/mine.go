package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bimmerbailey/logmine/internal/config"
	"github.com/bimmerbailey/logmine/internal/inference"
	"github.com/bimmerbailey/logmine/internal/output"
)

var mineCmd = &cobra.Command{
	Use:   "mine [flags]",
	Short: "Find the dynamic tokens of a log line",
	Long: `Build the n-gram dictionaries of a raw log file, then classify each token
of a sample line from that file as dynamic (a variable) or fixed (template
text).

A token is dynamic when both word pairs around it were seen fewer than
--cutoff times. Context from the lines before and after the sample can be
given as literal tokens (--before, --after) or as full log lines
(--before-line, --after-line); a full line wins when both are given.

Examples:
  logmine mine --raw-linux Linux_2k.log --to-parse "Jun 14 15:16:02 combo sshd(pam_unix)[19937]: check pass; user unknown"
  logmine mine --raw-hdfs HDFS_2k.log --to-parse "$LINE" --before-line "$PREV" --after-line "$NEXT"
  logmine mine --raw-linux "logs/Linux*.log" --to-parse "$LINE" --cutoff 5 --single-map --format json`,
	Args: cobra.NoArgs,
	RunE: runMine,
}

func init() {
	addMineFlags(mineCmd)
	_ = mineCmd.MarkFlagRequired("to-parse")

	rootCmd.AddCommand(mineCmd)
}

func addMineFlags(cmd *cobra.Command) {
	addRawFlags(cmd)
	addBuildFlags(cmd)

	cmd.Flags().String("to-parse", "", "sample log line to classify (required)")
	cmd.Flags().String("before", "", "literal tokens preceding the sample")
	cmd.Flags().String("before-line", "", "full log line preceding the sample")
	cmd.Flags().String("after", "", "literal tokens following the sample")
	cmd.Flags().String("after-line", "", "full log line following the sample")
	cmd.Flags().Int("cutoff", config.DefaultCutoff, "n-grams seen fewer times than this are rare")
	cmd.Flags().Bool("show-dicts", false, "also print both dictionaries")
	cmd.Flags().String("color", "auto", "highlight dynamic tokens (auto, always, never)")
}

func runMine(cmd *cobra.Command, args []string) error {
	toParse, _ := cmd.Flags().GetString("to-parse")
	before, _ := cmd.Flags().GetString("before")
	beforeLine, _ := cmd.Flags().GetString("before-line")
	after, _ := cmd.Flags().GetString("after")
	afterLine, _ := cmd.Flags().GetString("after-line")
	showDicts, _ := cmd.Flags().GetBool("show-dicts")

	if toParse == "" {
		return errors.New("--to-parse is required")
	}

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	colorMode, err := output.ParseColorMode(cfg.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}

	c, err := buildCorpus(cmd, cfg)
	if err != nil {
		return err
	}

	sample := c.parser.Tokenize(toParse)
	if len(sample) == 0 {
		logger.Warn("sample line does not match the format template", "format", c.format.String())
	}
	beforeTokens := inference.Choose(before, beforeLine).Resolve(c.parser, inference.Before)
	afterTokens := inference.Choose(after, afterLine).Resolve(c.parser, inference.After)

	engine := inference.New(c.result.Bigrams, c.result.Trigrams, cfg.Cutoff,
		inference.WithLogger(logger.Named("inference")))

	classification, err := engine.Classify(inference.Extend(beforeTokens, sample, afterTokens))
	if err != nil {
		return fmt.Errorf("classifying sample against %s: %w", c.path, err)
	}

	report := output.MineReport{
		File:           c.path,
		Size:           c.size,
		Format:         c.format.String(),
		Strategy:       c.result.Strategy.String(),
		Workers:        c.result.Workers,
		Lines:          c.result.Lines,
		Empty:          c.result.Empty,
		Invalid:        c.lines.Invalid,
		Bigrams:        len(c.result.Bigrams),
		Trigrams:       len(c.result.Trigrams),
		Elapsed:        c.result.Elapsed,
		Cutoff:         cfg.Cutoff,
		Before:         beforeTokens,
		Sample:         sample,
		After:          afterTokens,
		Classification: classification,
	}
	if showDicts {
		report.Dicts = c.summaries()
	}

	outFormat := output.ParseFormat(viper.GetString("format"))
	return output.New(cmd.OutOrStdout(), outFormat).WithColor(colorMode).WriteMineReport(report)
}
