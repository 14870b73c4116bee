// Package output renders dictionary summaries and mining reports.
// It supports text, table, JSON, and YAML formats.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/bimmerbailey/logmine/internal/analyzer"
	"github.com/bimmerbailey/logmine/internal/inference"
)

// Format represents an output format type.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
	FormatYAML  Format = "yaml"
)

// ParseFormat converts a string to a Format, defaulting to text.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "table":
		return FormatTable
	case "yaml", "yml":
		return FormatYAML
	default:
		return FormatText
	}
}

// MineReport is everything the mine command reports about one run.
type MineReport struct {
	File     string        `json:"file" yaml:"file"`
	Size     int64         `json:"size" yaml:"size"`
	Format   string        `json:"format" yaml:"format"`
	Strategy string        `json:"strategy" yaml:"strategy"`
	Workers  int           `json:"workers" yaml:"workers"`
	Lines    int           `json:"lines" yaml:"lines"`
	Empty    int           `json:"empty" yaml:"empty"`
	Invalid  int           `json:"invalid" yaml:"invalid"`
	Bigrams  int           `json:"bigrams" yaml:"bigrams"`
	Trigrams int           `json:"trigrams" yaml:"trigrams"`
	Elapsed  time.Duration `json:"elapsed_ns" yaml:"elapsed"`
	Cutoff   int           `json:"cutoff" yaml:"cutoff"`

	Before []string `json:"before,omitempty" yaml:"before,omitempty"`
	Sample []string `json:"sample" yaml:"sample"`
	After  []string `json:"after,omitempty" yaml:"after,omitempty"`

	Classification *inference.Classification `json:"classification" yaml:"classification"`

	// Dicts is only set when the dictionaries were asked for.
	Dicts []analyzer.DictSummary `json:"dicts,omitempty" yaml:"dicts,omitempty"`
}

// Writer handles writing formatted output.
type Writer struct {
	w      io.Writer
	format Format
	color  ColorMode
}

// New creates a new output Writer. Color defaults to ColorAuto.
func New(w io.Writer, format Format) *Writer {
	return &Writer{w: w, format: format}
}

// WithColor sets when text output is colored.
func (wr *Writer) WithColor(mode ColorMode) *Writer {
	wr.color = mode
	return wr
}

// WriteJSON outputs any value as indented JSON.
func (wr *Writer) WriteJSON(v interface{}) error {
	enc := json.NewEncoder(wr.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteYAML outputs any value as YAML.
func (wr *Writer) WriteYAML(v interface{}) error {
	enc := yaml.NewEncoder(wr.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// WriteDictSummaries outputs frequency dictionary summaries in the
// configured format.
func (wr *Writer) WriteDictSummaries(summaries []analyzer.DictSummary) error {
	switch wr.format {
	case FormatJSON:
		return wr.WriteJSON(summaries)
	case FormatYAML:
		return wr.WriteYAML(summaries)
	case FormatTable:
		return wr.writeSummaryTable(summaries)
	default:
		return wr.writeSummaryText(summaries)
	}
}

func (wr *Writer) writeSummaryText(summaries []analyzer.DictSummary) error {
	for _, s := range summaries {
		fmt.Fprintf(wr.w, "printing dict: %s\n", s.Name)
		for _, b := range s.Buckets {
			fmt.Fprintf(wr.w, "%d: %q\n", b.Count, b.Keys)
		}
		fmt.Fprintln(wr.w, "---")
	}
	return nil
}

func (wr *Writer) writeSummaryTable(summaries []analyzer.DictSummary) error {
	tw := tabwriter.NewWriter(wr.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DICT\tCOUNT\tKEYS\tEXAMPLE")
	fmt.Fprintln(tw, "----\t-----\t----\t-------")

	for _, s := range summaries {
		for _, b := range s.Buckets {
			example := ""
			if len(b.Keys) > 0 {
				example = truncate(b.Keys[0], 60)
			}
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", s.Name, b.Count, humanize.Comma(int64(len(b.Keys))), example)
		}
	}

	return tw.Flush()
}

// WriteMineReport outputs the result of classifying a sample line.
func (wr *Writer) WriteMineReport(r MineReport) error {
	switch wr.format {
	case FormatJSON:
		return wr.WriteJSON(r)
	case FormatYAML:
		return wr.WriteYAML(r)
	case FormatTable:
		return wr.writeMineTable(r)
	default:
		return wr.writeMineText(r)
	}
}

func (wr *Writer) writeMineText(r MineReport) error {
	colorize := shouldColorize(wr.color, wr.w)

	if len(r.Dicts) > 0 {
		if err := wr.writeSummaryText(r.Dicts); err != nil {
			return err
		}
		fmt.Fprintln(wr.w)
	}

	fmt.Fprintf(wr.w, "File:      %s (%s, %s)\n", r.File, r.Format, humanize.Bytes(uint64(r.Size)))
	fmt.Fprintf(wr.w, "Lines:     %s (%s without tokens, %s invalid)\n",
		humanize.Comma(int64(r.Lines)), humanize.Comma(int64(r.Empty)), humanize.Comma(int64(r.Invalid)))
	fmt.Fprintf(wr.w, "Build:     %s, %d workers, %s\n", r.Strategy, r.Workers, r.Elapsed.Round(time.Microsecond))
	fmt.Fprintf(wr.w, "Bigrams:   %s distinct\n", humanize.Comma(int64(r.Bigrams)))
	fmt.Fprintf(wr.w, "Trigrams:  %s distinct\n", humanize.Comma(int64(r.Trigrams)))
	fmt.Fprintf(wr.w, "Cutoff:    %d\n", r.Cutoff)
	fmt.Fprintln(wr.w)

	if r.Classification == nil {
		fmt.Fprintln(wr.w, "No classification.")
		return nil
	}

	c := r.Classification
	fmt.Fprintf(wr.w, "Tokens:    %s\n", Highlight(c.Tokens, c.Positions(), colorize))
	writeList(wr.w, "Uncommon trigrams", c.UncommonTrigrams)
	writeList(wr.w, "Uncommon bigrams", c.UncommonBigrams)
	fmt.Fprintf(wr.w, "dynamic tokens: %q\n", c.DynamicTokens())
	return nil
}

func writeList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		fmt.Fprintf(w, "%s: none\n", title)
		return
	}
	fmt.Fprintf(w, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "  %s\n", item)
	}
}

func (wr *Writer) writeMineTable(r MineReport) error {
	if len(r.Dicts) > 0 {
		if err := wr.writeSummaryTable(r.Dicts); err != nil {
			return err
		}
		fmt.Fprintln(wr.w)
	}

	tw := tabwriter.NewWriter(wr.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "POS\tTOKEN\tROLE\tDYNAMIC")
	fmt.Fprintln(tw, "---\t-----\t----\t-------")

	if r.Classification == nil {
		return tw.Flush()
	}

	dynamic := make(map[int]bool, len(r.Classification.Dynamic))
	for _, t := range r.Classification.Dynamic {
		dynamic[t.Position] = true
	}

	for i, tok := range r.Classification.Tokens {
		role := "sample"
		switch {
		case i < len(r.Before):
			role = "before"
		case i >= len(r.Before)+len(r.Sample):
			role = "after"
		}
		mark := ""
		if dynamic[i] {
			mark = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i, truncate(tok, 60), role, mark)
	}

	return tw.Flush()
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n-3] + "..."
	}
	return s
}
