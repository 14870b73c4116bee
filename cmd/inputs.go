package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bimmerbailey/logmine/internal/config"
	"github.com/bimmerbailey/logmine/internal/format"
)

func rawFlag(f format.Format) string {
	return "raw-" + f.String()
}

// addRawFlags registers one --raw-<format> flag per registered format.
func addRawFlags(cmd *cobra.Command) {
	for _, f := range format.All() {
		cmd.Flags().String(rawFlag(f), "", fmt.Sprintf("raw %s log file (path or glob)", f))
	}
}

// addBuildFlags registers the dictionary builder flags.
func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("single-map", false, "give each worker its own maps and merge them at the end")
	cmd.Flags().Int("num-threads", config.DefaultNumThreads, "number of dictionary builder workers")
}

// selectInput returns the format and the resolved file of the one
// --raw-<format> flag that was given.
func selectInput(cmd *cobra.Command) (format.Format, string, error) {
	var (
		chosen  []string
		f       format.Format
		pattern string
	)
	for _, candidate := range format.All() {
		value, _ := cmd.Flags().GetString(rawFlag(candidate))
		if value == "" {
			continue
		}
		chosen = append(chosen, "--"+rawFlag(candidate))
		f, pattern = candidate, value
	}

	switch len(chosen) {
	case 0:
		return 0, "", fmt.Errorf("must specify a raw input file with one of --raw-<format> (%s): %w",
			formatNames(), config.ErrNoInput)
	case 1:
	default:
		return 0, "", fmt.Errorf("only one raw input file may be given, got %s: %w",
			strings.Join(chosen, ", "), config.ErrAmbiguousInput)
	}

	path, err := config.ResolveInput(pattern)
	if err != nil {
		return 0, "", fmt.Errorf("invalid --%s value: %w", rawFlag(f), err)
	}
	return f, path, nil
}

func formatNames() string {
	names := make([]string, 0, len(format.All()))
	for _, f := range format.All() {
		names = append(names, f.String())
	}
	return strings.Join(names, ", ")
}

// loadSettings reads the configuration and applies the flags the user set
// explicitly on top of it.
func loadSettings(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("cutoff") {
		cfg.Cutoff, _ = flags.GetInt("cutoff")
	}
	if flags.Changed("num-threads") {
		cfg.NumThreads, _ = flags.GetInt("num-threads")
	}
	if flags.Changed("single-map") {
		cfg.SingleMap, _ = flags.GetBool("single-map")
	}
	if flags.Changed("color") {
		cfg.Color, _ = flags.GetString("color")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
