// Package logging configures the application's structured log sink.
//
// Redwood is a full-screen TUI, so logs go to a rotating file instead of
// stderr; anything written to the terminal while the alternate screen is
// active would either be invisible or corrupt the display.
package logging

import (
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/nihcosnosaj/redwood-tui/pkg/config"
)

// New builds a slog.Logger writing JSON records to the configured rotating
// file. Directory creation failures are not fatal; lumberjack will surface
// write errors later and the dashboard still works without a log.
func New(cfg config.LoggingConfig) *slog.Logger {
	if dir := filepath.Dir(cfg.File); dir != "." {
		_ = os.MkdirAll(dir, 0755)
	}

	w := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
	}

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: Level(cfg.Level)})
	return slog.New(h)
}

// Level maps a config level string onto a slog.Level, defaulting to Info for
// anything unrecognized.
func Level(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
