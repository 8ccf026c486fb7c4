package report

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Recognized output formats.
const (
	FormatJSON  = "json"
	FormatExcel = "excel"
)

// Outcome describes what one Process call produced.
type Outcome struct {
	Files   []string `json:"files"`
	Summary Summary  `json:"summary"`
}

// Processor dispatches scan results to the requested output writers.
type Processor struct {
	json   *JSONWriter
	excel  *ExcelWriter
	logger zerolog.Logger
}

// NewProcessor creates a processor with both writers wired.
func NewProcessor(logger zerolog.Logger) *Processor {
	return &Processor{
		json:   NewJSONWriter(logger),
		excel:  NewExcelWriter(logger),
		logger: logger,
	}
}

// Process normalizes results and writes each requested format into dir.
// Unrecognized formats are logged and skipped. A failing writer does not
// stop its siblings; all writer errors come back joined.
func (p *Processor) Process(results any, dir string, formats []string) (*Outcome, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", dir, err)
	}

	p.logger.Info().
		Str("dir", dir).
		Strs("formats", formats).
		Msg("processing output")

	normalized := Normalize(results, p.logger)

	outcome := &Outcome{Summary: BuildSummary(normalized, time.Now())}
	var errs []error

	for _, format := range formats {
		switch format {
		case FormatJSON:
			files, err := p.json.Write(normalized, dir)
			if err != nil {
				p.logger.Error().Err(err).Msg("JSON output failed")
				errs = append(errs, err)
				continue
			}
			outcome.Files = append(outcome.Files, files...)
		case FormatExcel:
			file, err := p.excel.Write(normalized, dir)
			if err != nil {
				p.logger.Error().Err(err).Msg("Excel output failed")
				errs = append(errs, err)
				continue
			}
			outcome.Files = append(outcome.Files, file)
		default:
			p.logger.Warn().Str("format", format).Msg("unknown output format, skipping")
		}
	}

	return outcome, errors.Join(errs...)
}
