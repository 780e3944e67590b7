// Package config loads the assistant record and the tool's own settings.
// It uses Viper for:
// - JSON, YAML and TOML files
// - BLADEASSIST_* environment overrides
// - Built-in defaults for every key
// - Hot-reload through fsnotify
package config

import (
	"bladeassist/pkg/assistant"
)

// Settings is the decoded shape of a configuration file.
type Settings struct {
	Assistant assistant.Spec `mapstructure:"assistant" json:"assistant" yaml:"assistant" validate:"-"`
	Logger    LoggerConfig   `mapstructure:"logger" json:"logger" yaml:"logger"`
	Export    ExportConfig   `mapstructure:"export" json:"export" yaml:"export"`
}

// LoggerConfig contains logging settings.
type LoggerConfig struct {
	Level      string `mapstructure:"level" json:"level" yaml:"level" validate:"loglevel"`
	OutputPath string `mapstructure:"output_path" json:"output_path" yaml:"output_path"`
	MaxSize    int    `mapstructure:"max_size" json:"max_size" yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" json:"max_backups" yaml:"max_backups" validate:"gte=0"`
	MaxAge     int    `mapstructure:"max_age" json:"max_age" yaml:"max_age" validate:"gte=0"`
	Compress   bool   `mapstructure:"compress" json:"compress" yaml:"compress"`
	JSON       bool   `mapstructure:"json" json:"json" yaml:"json"`
}

// ExportConfig says where `export` and `watch` put the rendered record.
type ExportConfig struct {
	Format string `mapstructure:"format" json:"format" yaml:"format" validate:"exportformat"`
	Output string `mapstructure:"output" json:"output" yaml:"output"`
}

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings() Settings {
	return Settings{
		Assistant: assistant.DefaultSpec(),
		Logger: LoggerConfig{
			Level:      "info",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     7,
			Compress:   true,
		},
		Export: ExportConfig{
			Format: "js",
		},
	}
}

// File is a loaded configuration: the settings as read and the frozen
// assistant record built from them.
type File struct {
	// Path is the file that was read. Empty when only defaults and
	// environment variables were used.
	Path      string
	Settings  Settings
	Assistant *assistant.Config
}
