package report

import (
	"sort"

	"github.com/vforvarun/aws-auto-inventory/types"
)

// countRule matches one known response shape: a collection key plus the way
// its entries are counted. Rules are tried in order, first match wins.
type countRule struct {
	key   string
	count func(items []any) int
}

// Known collection keys in AWS API responses, in priority order. This list
// is best-effort, not exhaustive: most responses expose their resource list
// under one of these names, and anything else falls through to the first
// list-valued field. Add a rule here to teach the counter a new shape.
var countRules = []countRule{
	{"Reservations", countNestedInstances},
	{"Buckets", countEntries},
	{"Roles", countEntries},
	{"Functions", countEntries},
	{"Instances", countEntries},
	{"Items", countEntries},
}

func countEntries(items []any) int {
	return len(items)
}

// countNestedInstances handles the EC2 DescribeInstances shape: resources
// are the Instances nested inside each reservation, not the reservations.
func countNestedInstances(items []any) int {
	n := 0
	for _, item := range items {
		reservation := types.AsMapping(item)
		if reservation == nil {
			continue
		}
		n += len(types.AsSequence(reservation["Instances"]))
	}
	return n
}

// CountResources estimates how many resources a raw service payload
// represents. A sequence payload counts directly; a mapping payload is
// matched against the known shapes above, then falls back to the first
// list-valued field (keys scanned in sorted order so the result is
// deterministic). Anything else counts as zero.
func CountResources(payload any) int {
	switch types.ShapeOf(payload) {
	case types.ShapeSequence:
		return len(types.AsSequence(payload))
	case types.ShapeMapping:
		return countMapping(types.AsMapping(payload))
	default:
		return 0
	}
}

func countMapping(m map[string]any) int {
	for _, rule := range countRules {
		if items := types.AsSequence(m[rule.key]); items != nil {
			return rule.count(items)
		}
	}

	for _, key := range sortedKeys(m) {
		if items, ok := m[key].([]any); ok {
			return len(items)
		}
	}
	return 0
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
