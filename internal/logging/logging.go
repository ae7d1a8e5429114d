// Package logging sets up the file-backed zerolog logger. The TUI owns the
// terminal, so nothing may log to stdout or stderr while it runs.
package logging

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

const logPerm = 0o664

// Open returns a logger appending to the given file. The caller is
// responsible for closing the returned file on shutdown.
func Open(path string) (zerolog.Logger, *os.File, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logPerm)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file %q: %w", path, err)
	}

	logger := zerolog.New(zerolog.SyncWriter(f)).With().Timestamp().Logger()
	return logger, f, nil
}
