package report

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vforvarun/aws-auto-inventory/types"
)

func TestNormalize_MappingPassesThrough(t *testing.T) {
	in := map[string]any{"prod": map[string]any{"account_results": []any{}}}

	out := Normalize(in, zerolog.Nop())
	assert.Equal(t, in, out)
}

func TestNormalize_TypedResults(t *testing.T) {
	in := []types.ScanResult{
		{
			Inventory: "prod",
			AccountResults: []types.RegionResult{
				{
					Region: "us-east-1",
					Services: []types.ServiceResult{
						{Service: "s3", Success: true, Result: []any{map[string]any{"Name": "b"}}},
					},
				},
			},
		},
	}

	out := Normalize(in, zerolog.Nop())
	require.Contains(t, out, "prod")

	inventory := types.AsMapping(out["prod"])
	require.NotNil(t, inventory)
	regions := types.AsSequence(inventory["account_results"])
	require.Len(t, regions, 1)
	region := types.AsMapping(regions[0])
	assert.Equal(t, "us-east-1", region["region"])
}

func TestNormalize_PlaceholderKeysForUnknownElements(t *testing.T) {
	in := []any{
		types.ScanResult{Inventory: "prod"},
		map[string]any{"raw": true},
		"garbage",
	}

	out := Normalize(in, zerolog.Nop())
	require.Len(t, out, 3)
	assert.Contains(t, out, "prod")
	assert.Equal(t, map[string]any{"raw": true}, out["result_1"])
	assert.Equal(t, "garbage", out["result_2"])
}

func TestNormalize_UnrecognizedInput(t *testing.T) {
	assert.Empty(t, Normalize(nil, zerolog.Nop()))
	assert.Empty(t, Normalize(42, zerolog.Nop()))
}
