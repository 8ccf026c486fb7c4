// Package report turns raw inventory scan results into human-consumable
// artifacts: a JSON report pair and an Excel workbook.
package report

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vforvarun/aws-auto-inventory/types"
)

// Result is the capability a scan result must expose to be keyed by
// inventory name. types.ScanResult implements it.
type Result interface {
	InventoryName() string
	ToMap() map[string]any
}

// Normalize converts raw scan results into the canonical mapping from
// inventory name to inventory result.
//
// Accepted inputs: an already-normalized map, a slice of typed results, or
// a heterogeneous []any. Slice elements without the Result capability are
// kept under a synthesized result_<index> key rather than dropped; each
// fallback is logged.
func Normalize(in any, logger zerolog.Logger) map[string]any {
	switch v := in.(type) {
	case map[string]any:
		return v
	case []types.ScanResult:
		out := make(map[string]any, len(v))
		for _, r := range v {
			out[r.InventoryName()] = r.ToMap()
		}
		return out
	case []Result:
		out := make(map[string]any, len(v))
		for _, r := range v {
			out[r.InventoryName()] = r.ToMap()
		}
		return out
	case []any:
		out := make(map[string]any, len(v))
		for _, item := range v {
			if r, ok := item.(Result); ok {
				out[r.InventoryName()] = r.ToMap()
				continue
			}
			key := fmt.Sprintf("result_%d", len(out))
			logger.Warn().
				Str("key", key).
				Type("result_type", item).
				Msg("result without inventory name, using placeholder key")
			out[key] = item
		}
		return out
	case nil:
		return map[string]any{}
	default:
		logger.Warn().
			Type("result_type", in).
			Msg("unrecognized results shape, producing empty report")
		return map[string]any{}
	}
}
