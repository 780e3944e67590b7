package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bladeassist/pkg/assistant"
)

var showCmd = &cobra.Command{
	Use:   "show [field]",
	Short: "Print the assistant record or one of its fields",
	Long: `Print every field of the loaded assistant record, or the raw value of a
single field addressed by its wire name.

Examples:
  bladeassist show
  bladeassist show webhookUrl
  bladeassist show messages.errorMessage`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

var replyCmd = &cobra.Command{
	Use:   "reply <outcome>",
	Short: "Print the canned reply for a response outcome",
	Long: `Print the message the widget shows for a response outcome.

Outcomes: action, modal_action, unexpected_format, error`,
	Args: cobra.ExactArgs(1),
	RunE: runReply,
}

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(replyCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	file, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer log.Sync()

	log.Debug("Loaded configuration", zap.String("path", file.Path))
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		value, ok := file.Assistant.Lookup(args[0])
		if !ok {
			return fmt.Errorf("unknown field %q (known: %s)", args[0], strings.Join(assistant.Fields(), ", "))
		}
		fmt.Fprintln(out, value)
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, name := range assistant.Fields() {
		value, _ := file.Assistant.Lookup(name)
		fmt.Fprintf(tw, "%s\t%s\n", name, value)
	}
	return tw.Flush()
}

func runReply(cmd *cobra.Command, args []string) error {
	outcome, err := assistant.ParseOutcome(args[0])
	if err != nil {
		return err
	}

	file, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer log.Sync()

	fmt.Fprintln(cmd.OutOrStdout(), file.Assistant.MessageFor(outcome))
	return nil
}
