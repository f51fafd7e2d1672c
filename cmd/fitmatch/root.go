package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:     "fitmatch",
	Short:   "Least-squares selection and tolerance classification for sampled functions",
	Version: version,
	Long: `fitmatch pairs each training signal with the candidate function that
minimizes its mean squared error over a shared x-grid, then assigns test
points to the fitted candidates within a sqrt(2) multiple of the largest
training deviation.

Inputs are CSV tables (plain or gzip-compressed) or binary snapshots;
outputs go to SQLite, HTML charts and CSV.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, toml or json)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.SetVersionTemplate("fitmatch version {{.Version}}\n")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// initConfig wires the FITMATCH_* environment and the optional config file
// into viper before any subcommand reads its settings.
func initConfig() {
	viper.SetEnvPrefix("FITMATCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if cfgFile == "" {
		return
	}
	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot read config file %s: %v\n", cfgFile, err)
	}
}

// newLogger builds the logger the subcommands share. The --debug flag
// switches to zap's development config.
func newLogger() (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}
