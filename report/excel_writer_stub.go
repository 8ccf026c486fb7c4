//go:build noexcel

package report

import (
	"time"

	"github.com/rs/zerolog"
)

// ExcelWriter in a noexcel build refuses to run instead of silently
// producing nothing.
type ExcelWriter struct {
	logger zerolog.Logger
	now    func() time.Time
}

// NewExcelWriter creates the unavailable-variant writer.
func NewExcelWriter(logger zerolog.Logger) *ExcelWriter {
	logger.Warn().Msg("excel support not compiled in, excel output will be refused")
	return &ExcelWriter{
		logger: logger,
		now:    time.Now,
	}
}

// Available reports whether this build can produce workbooks.
func (w *ExcelWriter) Available() bool { return false }

// Write always fails with ErrExcelUnavailable, before touching any file.
func (w *ExcelWriter) Write(map[string]any, string) (string, error) {
	return "", ErrExcelUnavailable
}
