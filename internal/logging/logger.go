package logging

import (
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// Options configures New.
type Options struct {
	Level slog.Leveler
	// Writer receives text records. Defaults to os.Stderr so stdout stays free
	// for command output.
	Writer io.Writer
	// JSONFile, when set, also receives every record as JSON lines.
	JSONFile string
}

// New creates the application logger. The returned close function releases the
// JSON file, if any, and is always safe to call.
// It standardizes common keys (e.g., "error" -> "err").
func New(opts Options) (*slog.Logger, func() error, error) {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	hopts := &slog.HandlerOptions{
		Level:       opts.Level,
		ReplaceAttr: replaceAttr,
	}
	text := slog.NewTextHandler(w, hopts)
	if opts.JSONFile == "" {
		return slog.New(text), func() error { return nil }, nil
	}

	f, err := os.OpenFile(opts.JSONFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slogmulti.Fanout(text, slog.NewJSONHandler(f, hopts)))
	return logger, f.Close, nil
}

func replaceAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Key == "error" {
		a.Key = "err"
	}
	return a
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
