package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"bladeassist/pkg/assistant"
	"bladeassist/pkg/fileutil"
)

const (
	// ConfigPathEnv names a config file to use when none is passed explicitly.
	ConfigPathEnv = "BLADEASSIST_CONFIG_FILE"

	// EnvPrefix prefixes every environment override, e.g.
	// BLADEASSIST_ASSISTANT_WEBHOOKURL or BLADEASSIST_LOGGER_LEVEL.
	EnvPrefix = "BLADEASSIST"

	configName = "assistant"
)

// ErrEmptyFile is returned by Reload when the config file holds no settings.
var ErrEmptyFile = errors.New("config file is empty")

// Loader handles configuration loading with Viper.
type Loader struct {
	viper *viper.Viper
}

// NewLoader creates a loader searching $HOME/.bladeassist, the working
// directory and ./config for assistant.{json,yaml,yml,toml}.
func NewLoader() *Loader {
	v := viper.New()
	v.SetConfigName(configName)

	if home, err := GetConfigHome(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, DefaultSettings())

	return &Loader{viper: v}
}

// setDefaults registers every key so environment overrides reach Unmarshal
// even when the file does not mention the key.
func setDefaults(v *viper.Viper, s Settings) {
	v.SetDefault("assistant.webhookUrl", s.Assistant.WebhookURL)
	v.SetDefault("assistant.botName", s.Assistant.BotName)
	v.SetDefault("assistant.welcomeMessage", s.Assistant.WelcomeMessage)
	v.SetDefault("assistant.messages.actionResponse", s.Assistant.Messages.ActionResponse)
	v.SetDefault("assistant.messages.modalActionResponse", s.Assistant.Messages.ModalActionResponse)
	v.SetDefault("assistant.messages.unexpectedFormat", s.Assistant.Messages.UnexpectedFormat)
	v.SetDefault("assistant.messages.errorMessage", s.Assistant.Messages.ErrorMessage)

	v.SetDefault("logger.level", s.Logger.Level)
	v.SetDefault("logger.output_path", s.Logger.OutputPath)
	v.SetDefault("logger.max_size", s.Logger.MaxSize)
	v.SetDefault("logger.max_backups", s.Logger.MaxBackups)
	v.SetDefault("logger.max_age", s.Logger.MaxAge)
	v.SetDefault("logger.compress", s.Logger.Compress)
	v.SetDefault("logger.json", s.Logger.JSON)

	v.SetDefault("export.format", s.Export.Format)
	v.SetDefault("export.output", s.Export.Output)
}

// Load reads the configuration file, applies environment overrides,
// validates the result and freezes the assistant record.
//
// If configPath is empty, BLADEASSIST_CONFIG_FILE is consulted and then the
// default search paths. Finding nothing on the search paths is not an error:
// defaults apply. A file named explicitly must exist.
func (l *Loader) Load(configPath string) (*File, error) {
	if strings.TrimSpace(configPath) == "" {
		configPath = strings.TrimSpace(os.Getenv(ConfigPathEnv))
	}
	explicit := configPath != ""
	if explicit {
		resolved, err := resolveConfigPath(configPath)
		if err != nil {
			return nil, err
		}
		l.viper.SetConfigFile(resolved)
	}

	read := true
	if err := l.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		searched := errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
		if explicit || !searched {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		read = false
	}

	var s Settings
	if err := l.viper.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := ValidateSettings(&s); err != nil {
		return nil, err
	}

	record, err := assistant.New(s.Assistant)
	if err != nil {
		return nil, err
	}

	f := &File{Settings: s, Assistant: record}
	if read {
		f.Path = l.viper.ConfigFileUsed()
	}
	return f, nil
}

// Reload reads path again after it changed on disk. Unlike Load it refuses
// a blank file: editors that truncate before writing leave one behind for a
// moment, and every key would silently fall back to its default.
func (l *Loader) Reload(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyFile)
	}
	return l.Load(path)
}

// Set overrides a key for every later Load, taking precedence over files
// and environment variables.
func (l *Loader) Set(key string, value interface{}) {
	l.viper.Set(key, value)
}

// Save writes settings to path in the format named by its extension
// (.json, .yaml or .yml). The file is replaced atomically.
func (l *Loader) Save(path string, s Settings) error {
	var (
		data []byte
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(s)
	case ".json":
		data, err = json.MarshalIndent(s, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	default:
		return fmt.Errorf("unsupported config file extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// SaveToFile is a convenience function to save settings without a Loader.
func SaveToFile(s Settings, path string) error {
	return NewLoader().Save(path, s)
}

// GetConfigHome returns the default config directory.
func GetConfigHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".bladeassist"), nil
}

// InitDefaultConfig writes the default settings to configPath unless a file
// already exists there. An empty configPath falls back to
// BLADEASSIST_CONFIG_FILE and then $HOME/.bladeassist/assistant.yaml.
// It returns the resolved path and whether the file was created.
func InitDefaultConfig(configPath string) (string, bool, error) {
	if strings.TrimSpace(configPath) == "" {
		configPath = strings.TrimSpace(os.Getenv(ConfigPathEnv))
	}
	if configPath == "" {
		home, err := GetConfigHome()
		if err != nil {
			return "", false, err
		}
		configPath = filepath.Join(home, configName+".yaml")
	}

	resolved, err := resolveConfigPath(configPath)
	if err != nil {
		return "", false, err
	}

	if _, err := os.Stat(resolved); err == nil {
		return resolved, false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", false, fmt.Errorf("checking config file: %w", err)
	}

	if err := SaveToFile(DefaultSettings(), resolved); err != nil {
		return "", false, fmt.Errorf("writing default config: %w", err)
	}
	return resolved, true, nil
}

func resolveConfigPath(configPath string) (string, error) {
	abs, err := filepath.Abs(expandHome(strings.TrimSpace(configPath)))
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return abs, nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
