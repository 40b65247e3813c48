package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

var log = slog.New(slog.NewTextHandler(os.Stdout, nil))

// Init configures the package logger for the given environment.
// Production uses JSON output at info level, everything else uses text at debug level.
func Init(env string) {
	log = slog.New(newHandler(env))
	slog.SetDefault(log)
}

func newHandler(env string) slog.Handler {
	if strings.EqualFold(env, "production") {
		return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}

	return slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
}

func Debug(msg string, args ...interface{}) {
	log.Debug(msg, normalizeArgs(args)...)
}

func Info(msg string, args ...interface{}) {
	log.Info(msg, normalizeArgs(args)...)
}

func Warn(msg string, args ...interface{}) {
	log.Warn(msg, normalizeArgs(args)...)
}

func Error(msg string, args ...interface{}) {
	log.Error(msg, normalizeArgs(args)...)
}

// Fatal logs at error level and exits the process.
func Fatal(msg string, args ...interface{}) {
	log.Log(context.Background(), slog.LevelError, msg, normalizeArgs(args)...)
	os.Exit(1)
}

// normalizeArgs lets callers pass a bare error or value after the message
// (logger.Error("failed", err)) as well as proper key/value pairs.
func normalizeArgs(args []interface{}) []interface{} {
	out := make([]interface{}, 0, len(args))

	for i := 0; i < len(args); i++ {
		switch v := args[i].(type) {
		case slog.Attr:
			out = append(out, v)
		case error:
			out = append(out, slog.String("error", v.Error()))
		case string:
			if i+1 < len(args) {
				out = append(out, slog.Any(v, args[i+1]))
				i++
				continue
			}
			out = append(out, slog.String("detail", v))
		default:
			out = append(out, slog.Any("detail", v))
		}
	}

	return out
}
