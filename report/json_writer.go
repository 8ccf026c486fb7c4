package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// timestampFormat stamps output filenames: aws_inventory_20240131_235959.json
const timestampFormat = "20060102_150405"

// JSONWriter emits the normalized result tree plus its summary as two
// timestamped JSON files.
type JSONWriter struct {
	logger zerolog.Logger
	now    func() time.Time
}

// NewJSONWriter creates a JSON writer.
func NewJSONWriter(logger zerolog.Logger) *JSONWriter {
	return &JSONWriter{
		logger: logger,
		now:    time.Now,
	}
}

// Write serializes results and their summary into dir, returning the paths
// written. A failure on either file is fatal for this writer.
func (w *JSONWriter) Write(results map[string]any, dir string) ([]string, error) {
	w.logger.Info().Msg("generating JSON output")

	now := w.now()
	timestamp := now.Format(timestampFormat)

	mainFile := filepath.Join(dir, fmt.Sprintf("aws_inventory_%s.json", timestamp))
	if err := w.writeFile(mainFile, results); err != nil {
		return nil, err
	}

	summaryFile := filepath.Join(dir, fmt.Sprintf("aws_inventory_summary_%s.json", timestamp))
	if err := w.writeFile(summaryFile, BuildSummary(results, now)); err != nil {
		return nil, err
	}

	w.logger.Info().
		Str("main", mainFile).
		Str("summary", summaryFile).
		Msg("JSON files generated")
	return []string{mainFile, summaryFile}, nil
}

func (w *JSONWriter) writeFile(path string, data any) error {
	encoded, err := json.MarshalIndent(sanitizeJSON(data), "", "  ")
	if err != nil {
		w.logger.Error().Err(err).Str("path", path).Msg("failed to encode JSON")
		return fmt.Errorf("encode %s: %w", path, err)
	}
	encoded = append(encoded, '\n')

	if err := os.WriteFile(path, encoded, 0600); err != nil {
		w.logger.Error().Err(err).Str("path", path).Msg("failed to write JSON file")
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// sanitizeJSON replaces any value encoding/json cannot represent with its
// string form, so an odd payload degrades instead of failing the report.
func sanitizeJSON(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = sanitizeJSON(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = sanitizeJSON(val)
		}
		return out
	case nil, string, bool, float64, float32, int, int32, int64, time.Time:
		return t
	default:
		if _, err := json.Marshal(t); err != nil {
			return fmt.Sprintf("%v", t)
		}
		return t
	}
}
