package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bladeassist/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration without publishing it",
	Args:  cobra.NoArgs,
	RunE:  runValidate,
}

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default configuration file",
	Long: `Write the built-in configuration to a file if none exists there.

Without a path, --config, BLADEASSIST_CONFIG_FILE and finally
~/.bladeassist/assistant.yaml are used, in that order.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(initCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	file, log, err := loadConfig()
	if err != nil {
		return fmt.Errorf("configuration is invalid: %w", err)
	}
	defer log.Sync()

	source := file.Path
	if source == "" {
		source = "built-in defaults"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "OK: %s (%s)\n", source, file.Assistant.WebhookURL())
	return nil
}

func runInit(cmd *cobra.Command, args []string) error {
	path := configPath
	if len(args) == 1 {
		path = args[0]
	}

	resolved, created, err := config.InitDefaultConfig(path)
	if err != nil {
		return err
	}

	if created {
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", resolved)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Config already exists: %s\n", resolved)
	}
	return nil
}
