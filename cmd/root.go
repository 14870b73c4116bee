package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bimmerbailey/logmine/internal/config"
)

var cfgFile string

// logger is replaced in initConfig once the log level is known.
var logger = hclog.NewNullLogger()

var rootCmd = &cobra.Command{
	Use:   "logmine",
	Short: "Find the variable parts of log lines",
	Long: `Logmine learns which tokens of a log line are template text and which
are variables, using bigram and trigram frequencies over a whole log file.

A token is reported as dynamic when the word pairs on both of its sides
are rare in the file.

Examples:
  logmine mine --raw-linux Linux_2k.log --to-parse "Jun 14 15:16:02 combo sshd(pam_unix)[19937]: check pass; user unknown"
  logmine dict --raw-hdfs HDFS_2k.log --format json
  logmine formats`,
	SilenceUsage: true,
}

// Execute is called by main.main(). It runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.logmine.yaml)")
	rootCmd.PersistentFlags().StringP("format", "f", "text", "output format (text, json, table, yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".logmine")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("LOGMINE")
	viper.AutomaticEnv()

	config.SetDefaults(viper.GetViper())

	readErr := viper.ReadInConfig()

	logger = newLogger()
	if readErr == nil {
		logger.Debug("using config file", "path", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		logger.Warn("could not read config file", "path", cfgFile, "error", readErr)
	}
}

// newLogger builds the process logger from the current settings. Logs go
// to stderr so they never mix with reports.
func newLogger() hclog.Logger {
	cfg := config.Default()
	cfg.Verbose = viper.GetBool("verbose")
	cfg.LogLevel = viper.GetString("log_level")

	return hclog.New(&hclog.LoggerOptions{
		Name:   "logmine",
		Level:  cfg.Level(),
		Output: os.Stderr,
		Color:  hclog.AutoColor,
	})
}

// commandContext returns the command's context, or a background context
// when the command was not started through Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
