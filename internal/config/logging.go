package config

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// NewLogger creates the root logger writing to w. The level comes from
// LOG_LEVEL (debug, info, warn, error; info when unset) and LOG_FORMAT
// selects text, json or logfmt output.
func NewLogger(w io.Writer, prefix string) (*log.Logger, error) {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          prefix,
	})

	name := GetEnv("LOG_LEVEL", "")
	if name == "" {
		name = "info"
	}
	level, err := log.ParseLevel(name)
	if err != nil {
		return logger, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	logger.SetLevel(level)

	switch format := GetEnv("LOG_FORMAT", ""); format {
	case "", "text":
		logger.SetFormatter(log.TextFormatter)
	case "json":
		logger.SetFormatter(log.JSONFormatter)
	case "logfmt":
		logger.SetFormatter(log.LogfmtFormatter)
	default:
		return logger, fmt.Errorf("LOG_FORMAT: unknown format %q", format)
	}
	return logger, nil
}
