// Package logger holds the process-wide structured logger. Until Setup is
// called records are discarded, so library code can log unconditionally.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Config selects where records go and how verbose they are.
type Config struct {
	// DataDir holds logs/mechlab.log unless File is set.
	DataDir string
	// File overrides the log path. "-" writes to stderr.
	File string
	// Level is one of debug, info, warn or error. Empty means info.
	Level string
	// Command is attached to every record as "cmd".
	Command string
}

var (
	mu     sync.RWMutex
	global = discard()
)

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel accepts the slog level names in any case, with offsets such
// as "debug+2".
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return l, nil
}

// Setup installs a JSON logger and returns a cleanup that closes the log
// file and restores the discard logger. Debug records carry their source
// position.
func Setup(cfg Config) (func() error, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	w, closer, err := open(cfg)
	if err != nil {
		return nil, err
	}

	l := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	}))
	if cfg.Command != "" {
		l = l.With("cmd", cfg.Command)
	}

	mu.Lock()
	global = l
	mu.Unlock()

	return func() error {
		mu.Lock()
		global = discard()
		mu.Unlock()
		if closer != nil {
			return closer.Close()
		}
		return nil
	}, nil
}

func open(cfg Config) (io.Writer, io.Closer, error) {
	if cfg.File == "-" {
		return os.Stderr, nil, nil
	}
	path := cfg.File
	if path == "" {
		root := cfg.DataDir
		if root == "" {
			root = "."
		}
		path = filepath.Join(root, "logs", "mechlab.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// Script returns the logger with the script name attached.
func Script(name string) *slog.Logger {
	return L().With("script", name)
}
