package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResults() map[string]any {
	return map[string]any{
		"main": map[string]any{
			"account_results": []any{
				map[string]any{
					"region": "us-east-1",
					"services": []any{
						map[string]any{
							"service": "s3",
							"success": true,
							"result": map[string]any{
								"Buckets": []any{
									map[string]any{"Name": "logs"},
									map[string]any{"Name": "backups"},
								},
							},
						},
						map[string]any{
							"service": "iam",
							"success": false,
							"error":   "access denied",
							"result": map[string]any{
								"Roles": []any{map[string]any{"RoleName": "ghost"}},
							},
						},
					},
				},
				map[string]any{
					"region": "eu-west-1",
					"services": []any{
						map[string]any{
							"service": "s3",
							"success": true,
							"result": map[string]any{
								"Buckets": []any{map[string]any{"Name": "eu-data"}},
							},
						},
					},
				},
			},
		},
	}
}

func TestBuildSummary(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	summary := BuildSummary(testResults(), now)

	assert.Equal(t, "2024-03-01T12:00:00Z", summary.ScanTimestamp)
	assert.Equal(t, 1, summary.TotalInventories)
	assert.Equal(t, 2, summary.TotalRegions)
	assert.Equal(t, 2, summary.TotalServices)
	assert.Equal(t, 3, summary.TotalResources)

	inv, ok := summary.Inventories["main"]
	require.True(t, ok)
	assert.Equal(t, 3, inv.TotalResources)
	assert.Equal(t, []string{"eu-west-1", "us-east-1"}, inv.Regions)
	assert.Equal(t, []string{"iam", "s3"}, inv.Services)

	// Per-service tally counts only successful services.
	assert.Equal(t, 3, summary.Services["s3"])
	assert.Zero(t, summary.Services["iam"])
}

func TestBuildSummary_FailedServiceContributesNothing(t *testing.T) {
	results := map[string]any{
		"main": map[string]any{
			"account_results": []any{
				map[string]any{
					"region": "us-east-1",
					"services": []any{
						map[string]any{
							"service": "ec2",
							"success": false,
							"result": map[string]any{
								"Reservations": []any{
									map[string]any{"Instances": []any{map[string]any{"InstanceId": "i-1"}}},
								},
							},
						},
					},
				},
			},
		},
	}

	summary := BuildSummary(results, time.Now())
	assert.Zero(t, summary.TotalResources)
	// The failed service is still listed as touched.
	assert.Equal(t, []string{"ec2"}, summary.Inventories["main"].Services)
}

func TestBuildSummary_OrganizationResultsAreRecognizedButEmpty(t *testing.T) {
	results := map[string]any{
		"org": map[string]any{
			"organization_results": []any{
				map[string]any{"account_id": "111122223333"},
				map[string]any{"account_id": "444455556666"},
			},
		},
	}

	summary := BuildSummary(results, time.Now())
	assert.Equal(t, 1, summary.TotalInventories)
	assert.Zero(t, summary.TotalResources)
	assert.Zero(t, summary.TotalRegions)
	assert.Empty(t, summary.Inventories["org"].Regions)
}

func TestBuildSummary_IgnoresNonMappingInventories(t *testing.T) {
	results := map[string]any{
		"broken": "not a mapping",
	}

	summary := BuildSummary(results, time.Now())
	assert.Zero(t, summary.TotalInventories)
}
