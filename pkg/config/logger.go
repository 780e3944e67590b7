package config

import (
	"strings"

	"bladeassist/pkg/logger"
)

// ToLoggerConfig converts LoggerConfig to logger.Config.
func (lc *LoggerConfig) ToLoggerConfig() *logger.Config {
	level, err := logger.ParseLevel(lc.Level)
	if err != nil {
		level = logger.LevelInfo
	}

	return &logger.Config{
		Level:       level,
		OutputPath:  expandHome(strings.TrimSpace(lc.OutputPath)),
		MaxSize:     lc.MaxSize,
		MaxBackups:  lc.MaxBackups,
		MaxAge:      lc.MaxAge,
		Compress:    lc.Compress,
		Development: !lc.JSON,
	}
}
