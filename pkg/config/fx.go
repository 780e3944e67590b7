package config

import (
	"context"

	"go.uber.org/fx"

	"bladeassist/pkg/assistant"
	"bladeassist/pkg/logger"
)

// Options are command line overrides applied before loading.
type Options struct {
	// Path is the config file. Empty means search the default locations.
	Path string
	// LogLevel overrides logger.level when set.
	LogLevel string
}

// Module provides configuration for fx dependency injection. It needs an
// Options value supplied by the caller.
var Module = fx.Module("config",
	fx.Provide(ProvideLoader),
	fx.Provide(ProvideFile),
	fx.Provide(ProvideAssistant),
	fx.Provide(ProvideLoggerConfig),
)

// WatchModule adds the hot-reload watcher on top of Module.
var WatchModule = fx.Module("config-watch",
	fx.Provide(ProvideWatcher),
)

// ProvideLoader provides a loader with command line overrides applied.
func ProvideLoader(opts Options) *Loader {
	loader := NewLoader()
	if opts.LogLevel != "" {
		loader.Set("logger.level", opts.LogLevel)
	}
	return loader
}

// ProvideFile loads and validates the configuration.
func ProvideFile(loader *Loader, opts Options) (*File, error) {
	return loader.Load(opts.Path)
}

// ProvideAssistant exposes the frozen assistant record.
func ProvideAssistant(f *File) *assistant.Config {
	return f.Assistant
}

// ProvideLoggerConfig feeds the logger module.
func ProvideLoggerConfig(f *File) *logger.Config {
	return f.Settings.Logger.ToLoggerConfig()
}

// ProvideWatcher provides a configuration watcher with hot-reload.
func ProvideWatcher(loader *Loader, f *File, lc fx.Lifecycle, log *logger.Logger) *Watcher {
	watcher := NewWatcher(loader, f, log)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return watcher.Start()
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping configuration watcher")
			watcher.Stop()
			return nil
		},
	})

	return watcher
}
