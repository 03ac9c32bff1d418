package analysis

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// OpenErrorLog opens path for appending and returns a JSON logger writing to it.
// An empty path returns a nil logger.
func OpenErrorLog(path string) (*slog.Logger, io.Closer, error) {
	if path == "" {
		return nil, io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open error log %s: %w", path, err)
	}
	return slog.New(slog.NewJSONHandler(f, nil)), f, nil
}
