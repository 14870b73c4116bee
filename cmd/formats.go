package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bimmerbailey/logmine/internal/format"
	"github.com/bimmerbailey/logmine/internal/output"
	"github.com/bimmerbailey/logmine/internal/parser"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the supported log formats",
	Long: `List every supported log format with its line template, the regular
expression the template compiles to, and the censoring patterns applied to
the content before tokenizing.

Examples:
  logmine formats
  logmine formats --format json`,
	Args: cobra.NoArgs,
	RunE: runFormats,
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}

type censorInfo struct {
	Name        string `json:"name" yaml:"name"`
	Regex       string `json:"regex" yaml:"regex"`
	Description string `json:"description" yaml:"description"`
}

type formatInfo struct {
	Name     string       `json:"name" yaml:"name"`
	Flag     string       `json:"flag" yaml:"flag"`
	Template string       `json:"template" yaml:"template"`
	Regex    string       `json:"regex" yaml:"regex"`
	Censors  []censorInfo `json:"censors" yaml:"censors"`
}

func describeFormats() []formatInfo {
	infos := make([]formatInfo, 0, len(format.All()))
	for _, f := range format.All() {
		info := formatInfo{
			Name:     f.String(),
			Flag:     "--" + rawFlag(f),
			Template: f.Template(),
			Regex:    parser.New(f).Regexp().String(),
			Censors:  []censorInfo{},
		}
		for _, c := range f.Censors() {
			info.Censors = append(info.Censors, censorInfo{
				Name:        c.Name,
				Regex:       c.Regex.String(),
				Description: c.Description,
			})
		}
		infos = append(infos, info)
	}
	return infos
}

func runFormats(cmd *cobra.Command, args []string) error {
	infos := describeFormats()
	w := cmd.OutOrStdout()
	outFormat := output.ParseFormat(viper.GetString("format"))
	wr := output.New(w, outFormat)

	switch outFormat {
	case output.FormatJSON:
		return wr.WriteJSON(infos)
	case output.FormatYAML:
		return wr.WriteYAML(infos)
	case output.FormatTable:
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "FORMAT\tFLAG\tTEMPLATE\tCENSORS")
		fmt.Fprintln(tw, "------\t----\t--------\t-------")
		for _, info := range infos {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", info.Name, info.Flag, info.Template, censorNames(info.Censors))
		}
		return tw.Flush()
	default:
		for _, info := range infos {
			fmt.Fprintf(w, "%s (%s)\n", info.Name, info.Flag)
			fmt.Fprintf(w, "  template: %s\n", info.Template)
			fmt.Fprintf(w, "  regex:    %s\n", info.Regex)
			if len(info.Censors) == 0 {
				fmt.Fprintln(w, "  censors:  none")
				continue
			}
			fmt.Fprintln(w, "  censors:")
			for _, c := range info.Censors {
				fmt.Fprintf(w, "    %-12s %s\n", c.Name, c.Description)
			}
		}
		return nil
	}
}

func censorNames(censors []censorInfo) string {
	if len(censors) == 0 {
		return "-"
	}
	names := make([]string, len(censors))
	for i, c := range censors {
		names[i] = c.Name
	}
	return strings.Join(names, ",")
}
