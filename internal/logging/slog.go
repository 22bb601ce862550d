package logging

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyTool     = "tool"
	KeyCommand  = "command"
	KeyContext  = "context"
	KeyPlatform = "platform"
	KeyCluster  = "cluster"
	KeyDuration = "duration"
	KeyStatus   = "status"
	KeyExitCode = "exit_code"
	KeyError    = "error"
)

// NewLogger builds the process logger. Output always goes to w, which must
// not be stdout when the stdio MCP transport is in use, since stdout carries
// the protocol stream.
func NewLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	}))
}

// ParseLevel maps a configuration string to a slog level. Unknown values
// default to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// WithTool returns a logger with the tool attribute set.
func WithTool(logger *slog.Logger, tool string) *slog.Logger {
	return logger.With(slog.String(KeyTool, tool))
}

// Command returns a slog attribute for an external command's argv, joined for
// readability.
func Command(argv []string) slog.Attr {
	return slog.String(KeyCommand, strings.Join(argv, " "))
}

// Context returns a slog attribute for a kubeconfig context name.
func Context(name string) slog.Attr {
	return slog.String(KeyContext, name)
}

// Platform returns a slog attribute for a cluster platform (kind/k3d).
func Platform(p string) slog.Attr {
	return slog.String(KeyPlatform, p)
}

// Cluster returns a slog attribute for a cluster name.
func Cluster(name string) slog.Attr {
	return slog.String(KeyCluster, name)
}

// Status returns a slog attribute for the status.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// ExitCode returns a slog attribute for a command exit code.
func ExitCode(code int) slog.Attr {
	return slog.Int(KeyExitCode, code)
}

// Duration returns a slog attribute for an elapsed time.
func Duration(d time.Duration) slog.Attr {
	return slog.String(KeyDuration, d.String())
}

// Err returns a slog attribute for an error.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
