package report

import (
	"sort"
	"time"

	"github.com/vforvarun/aws-auto-inventory/types"
)

// Summary aggregates resource counts across the whole result tree.
type Summary struct {
	ScanTimestamp    string                      `json:"scan_timestamp"`
	TotalInventories int                         `json:"total_inventories"`
	TotalRegions     int                         `json:"total_regions"`
	TotalServices    int                         `json:"total_services"`
	TotalResources   int                         `json:"total_resources"`
	Inventories      map[string]InventorySummary `json:"inventories"`
	Services         map[string]int              `json:"services"`
}

// InventorySummary is the per-inventory breakdown.
type InventorySummary struct {
	TotalResources int      `json:"total_resources"`
	Regions        []string `json:"regions"`
	Services       []string `json:"services"`
}

// BuildSummary walks the normalized result tree and tallies resources per
// inventory, per region, and per service. Region and service lists are
// deduplicated and sorted.
func BuildSummary(results map[string]any, now time.Time) Summary {
	summary := Summary{
		ScanTimestamp: now.Format(time.RFC3339),
		Inventories:   make(map[string]InventorySummary),
		Services:      make(map[string]int),
	}

	for _, name := range sortedKeys(results) {
		inventory := types.AsMapping(results[name])
		if inventory == nil {
			continue
		}
		summary.TotalInventories++

		regions := make(map[string]struct{})
		services := make(map[string]struct{})
		resources := 0

		if accounts := types.AsSequence(inventory["organization_results"]); accounts != nil {
			for _, a := range accounts {
				resources += countAccountResources(a, regions, services, summary.Services)
			}
		} else if regionResults := types.AsSequence(inventory["account_results"]); regionResults != nil {
			for _, r := range regionResults {
				resources += countRegionResources(r, regions, services, summary.Services)
			}
		}

		summary.TotalRegions += len(regions)
		summary.TotalServices += len(services)
		summary.TotalResources += resources

		summary.Inventories[name] = InventorySummary{
			TotalResources: resources,
			Regions:        sortedSet(regions),
			Services:       sortedSet(services),
		}
	}

	return summary
}

// countAccountResources handles one account of an organization scan.
// Organization scanning is not implemented, so the shape is recognized but
// contributes nothing.
func countAccountResources(_ any, _, _ map[string]struct{}, _ map[string]int) int {
	return 0
}

// countRegionResources tallies one region's services into the running sets
// and the per-service tally.
func countRegionResources(v any, regions, services map[string]struct{}, serviceTally map[string]int) int {
	region := types.AsMapping(v)
	if region == nil {
		return 0
	}

	if name, ok := region["region"].(string); ok {
		regions[name] = struct{}{}
	}

	total := 0
	for _, s := range types.AsSequence(region["services"]) {
		service := types.AsMapping(s)
		if service == nil {
			continue
		}
		name := serviceName(service)
		services[name] = struct{}{}

		if !serviceSucceeded(service) {
			continue
		}
		count := CountResources(service["result"])
		total += count
		serviceTally[name] += count
	}
	return total
}

func serviceName(service map[string]any) string {
	if name, ok := service["service"].(string); ok {
		return name
	}
	return "unknown"
}

func serviceSucceeded(service map[string]any) bool {
	ok, _ := service["success"].(bool)
	_, hasResult := service["result"]
	return ok && hasResult
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
