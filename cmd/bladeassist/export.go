package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"bladeassist/pkg/assistant"
	"bladeassist/pkg/config"
	"bladeassist/pkg/logger"
	"bladeassist/pkg/render"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render the record for the widget",
	Long: `Render the assistant record as the widget's config.js, or as JSON or YAML.

Format and output default to export.format and export.output from the
configuration file. Without an output path the result goes to stdout.

Examples:
  bladeassist export > public/config.js
  bladeassist export --format json -o dist/assistant.json`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-export the record whenever the configuration file changes",
	Long: `Export the record once, then watch the configuration file and export
again after every valid edit. Invalid or blank edits are logged and skipped;
the last good export stays in place. Changes to export.format and
export.output take effect on the next reload unless --format or --output
pin them. Stops on Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	for _, cmd := range []*cobra.Command{exportCmd, watchCmd} {
		cmd.Flags().StringVarP(&exportFormat, "format", "f", "", "output format: js, json or yaml")
		cmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
	}

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(watchCmd)
}

// exportTarget resolves format and output from flags, then settings, then
// the output file's extension.
func exportTarget(settings config.ExportConfig) (render.Format, string, error) {
	output := exportOutput
	if output == "" {
		output = settings.Output
	}

	name := exportFormat
	if name == "" {
		if f, ok := render.FormatFromPath(output); ok && exportOutput != "" {
			return f, output, nil
		}
		name = settings.Format
	}

	format, err := render.ParseFormat(name)
	if err != nil {
		return "", "", err
	}
	return format, output, nil
}

func publish(cmd *cobra.Command, log *logger.Logger, rec *assistant.Config, format render.Format, output string) error {
	if output == "" || output == "-" {
		return render.Render(cmd.OutOrStdout(), rec, format)
	}

	written, err := render.WriteFile(output, rec, format)
	if err != nil {
		return err
	}
	if written {
		log.Info("Exported assistant record",
			zap.String("output", output),
			zap.String("format", string(format)),
		)
	} else {
		log.Debug("Export unchanged", zap.String("output", output))
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	file, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer log.Sync()

	format, output, err := exportTarget(file.Settings.Export)
	if err != nil {
		return err
	}
	return publish(cmd, log, file.Assistant, format, output)
}

// watchTarget is exportTarget for watch, which cannot write to stdout.
func watchTarget(settings config.ExportConfig) (render.Format, string, error) {
	format, output, err := exportTarget(settings)
	if err != nil {
		return "", "", err
	}
	if output == "" || output == "-" {
		return "", "", fmt.Errorf("watch needs an output file (--output or export.output)")
	}
	return format, output, nil
}

// republish exports a loaded file to the target its own export section
// names, so edits to export.format or export.output apply on reload.
func republish(cmd *cobra.Command, log *logger.Logger) config.ChangeHandler {
	return func(f *config.File) error {
		format, output, err := watchTarget(f.Settings.Export)
		if err != nil {
			return err
		}
		return publish(cmd, log, f.Assistant, format, output)
	}
}

// watchApp assembles the fx graph behind the watch command.
func watchApp(cmd *cobra.Command) fx.Option {
	return fx.Options(
		fx.Supply(options()),
		config.Module,
		config.WatchModule,
		logger.Module,

		fx.Invoke(func(lc fx.Lifecycle, log *logger.Logger, w *config.Watcher, file *config.File) error {
			if _, _, err := watchTarget(file.Settings.Export); err != nil {
				return err
			}

			handler := republish(cmd, log)
			w.AddHandler(handler)

			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					return handler(file)
				},
			})
			return nil
		}),
		fx.NopLogger,
	)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := fx.New(watchApp(cmd))
	if err := app.Err(); err != nil {
		return err
	}
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancel()
	return app.Stop(stopCtx)
}
