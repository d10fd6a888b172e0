// Package logger configures structured logging for the process.
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// New builds a text slog.Logger writing to stdout at the given level and
// installs it as the process default. Accepts: debug, info, warn/warning,
// error (case-insensitive); empty means info.
func New(level string) (*slog.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(log)
	return log, nil
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("logger: unknown log level: %s", level)
}
