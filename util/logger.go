package util

import (
	"io"
	"os"
	"strings"

	"github.com/ariebrainware/basis-data-dental/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger configures the global zerolog logger from cfg. Output goes to
// stdout, plus a rotated file when LOG_FILE is set. Development gets the
// console writer.
func InitLogger(cfg *config.Config) zerolog.Logger {
	var writers []io.Writer
	if strings.EqualFold(cfg.AppEnv, "development") {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stdout})
	} else {
		writers = append(writers, os.Stdout)
	}
	if cfg.LogFile != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxBackups,
			MaxAge:     cfg.LogMaxAgeDays,
			Compress:   true,
		})
	}

	logger := zerolog.New(io.MultiWriter(writers...)).
		Level(ParseLogLevel(cfg.LogLevel)).
		With().
		Timestamp().
		Str("service", cfg.AppName).
		Str("env", cfg.AppEnv).
		Logger()

	log.Logger = logger
	return logger
}

// ParseLogLevel maps a config string to a zerolog level, defaulting to info.
func ParseLogLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || s == "" {
		return zerolog.InfoLevel
	}
	return lvl
}
