package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	mu       sync.RWMutex
	instance = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
)

// Init replaces the package logger. level is one of debug, info, warn, error.
func Init(level string, format string) {
	InitWithWriter(os.Stdout, level, format)
}

func InitWithWriter(w io.Writer, level string, format string) {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	mu.Lock()
	instance = slog.New(handler)
	mu.Unlock()
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func get() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return instance
}

// normalize turns a lone trailing value (usually an error) into an "error" pair.
func normalize(kv []any) []any {
	if len(kv) == 1 {
		return []any{"error", kv[0]}
	}
	if len(kv)%2 == 1 {
		return append(kv[:len(kv)-1:len(kv)-1], "error", kv[len(kv)-1])
	}
	return kv
}

func Debug(msg string, kv ...any) {
	get().Debug(msg, normalize(kv)...)
}

func Info(msg string, kv ...any) {
	get().Info(msg, normalize(kv)...)
}

func Warn(msg string, kv ...any) {
	get().Warn(msg, normalize(kv)...)
}

func Error(msg string, kv ...any) {
	get().Error(msg, normalize(kv)...)
}
