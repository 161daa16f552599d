package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger returns a JSON slog.Logger at the named level. With a file path
// the output goes to a size-rotated file and the returned closer must be
// closed on exit; otherwise it logs to stdout and the closer is nil.
func NewLogger(level, file string) (*slog.Logger, io.Closer, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, nil, err
	}
	var (
		w      io.Writer = os.Stdout
		closer io.Closer
	)
	if file != "" {
		lj := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    20, // megabytes
			MaxBackups: 3,
			MaxAge:     14, // days
		}
		w, closer = lj, lj
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	return slog.New(h), closer, nil
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid --log-level %q", s)
	}
	return lvl, nil
}
