// Package main is the entry point for the bladeassist CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bladeassist/pkg/config"
	"bladeassist/pkg/logger"
	"bladeassist/pkg/version"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "bladeassist",
	Short: "bladeassist - configuration for the Blade Properties chat widget",
	Long: `bladeassist loads, checks and publishes the configuration record the
Blade Properties chat widget reads: the n8n webhook URL, the bot name, the
welcome message and the canned replies.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.GetFullVersion())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logger.level (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
}

func options() config.Options {
	return config.Options{Path: configPath, LogLevel: logLevel}
}

// loadConfig loads the configuration and builds a logger from it for
// commands that run without the fx container.
func loadConfig() (*config.File, *logger.Logger, error) {
	file, err := config.ProvideLoader(options()).Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(file.Settings.Logger.ToLoggerConfig())
	if err != nil {
		return nil, nil, fmt.Errorf("creating logger: %w", err)
	}
	return file, log, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
