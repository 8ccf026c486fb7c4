package report

import (
	"errors"
	"sort"
	"strings"

	"github.com/vforvarun/aws-auto-inventory/types"
)

// ErrExcelUnavailable is returned by builds compiled without Excel support
// (build tag noexcel). It is raised before any file is touched.
var ErrExcelUnavailable = errors.New("excel output is not available in this build: rebuild without the noexcel tag")

// summaryRow is one line of the workbook's Summary sheet.
type summaryRow struct {
	Inventory string
	Region    string
	Service   string
	Count     int
	Status    string
}

// collectSummaryRows produces one row per (inventory, region, service)
// triple. Failed services show a zero count and a Failed status.
func collectSummaryRows(results map[string]any) []summaryRow {
	var rows []summaryRow

	walkServices(results, func(inventory, region string, service map[string]any) {
		row := summaryRow{
			Inventory: inventory,
			Region:    region,
			Service:   serviceName(service),
			Status:    "Failed",
		}
		// Status follows the success flag alone; the count additionally
		// needs a payload to count.
		if ok, _ := service["success"].(bool); ok {
			row.Status = "Success"
		}
		if serviceSucceeded(service) {
			row.Count = CountResources(service["result"])
		}
		rows = append(rows, row)
	})

	return rows
}

// collectServiceRecords flattens every successful service's payload,
// grouped by service name across all inventories and regions.
func collectServiceRecords(results map[string]any) map[string][]Record {
	records := make(map[string][]Record)

	walkServices(results, func(inventory, region string, service map[string]any) {
		if !serviceSucceeded(service) {
			return
		}
		name := serviceName(service)
		rows := FlattenResources(service["result"], inventory, region, name)
		records[name] = append(records[name], rows...)
	})

	return records
}

// walkServices visits every service result of every single-account scan, in
// deterministic order. Organization results are recognized but skipped.
func walkServices(results map[string]any, visit func(inventory, region string, service map[string]any)) {
	for _, name := range sortedKeys(results) {
		inventory := types.AsMapping(results[name])
		if inventory == nil {
			continue
		}
		if _, isOrg := inventory["organization_results"]; isOrg {
			continue
		}
		for _, r := range types.AsSequence(inventory["account_results"]) {
			region := types.AsMapping(r)
			if region == nil {
				continue
			}
			regionName, ok := region["region"].(string)
			if !ok {
				continue
			}
			for _, s := range types.AsSequence(region["services"]) {
				if service := types.AsMapping(s); service != nil {
					visit(name, regionName, service)
				}
			}
		}
	}
}

// columnOrder returns the union of columns across rows: context columns
// first, everything else sorted.
func columnOrder(records []Record) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		for col := range r {
			seen[col] = struct{}{}
		}
	}

	context := []string{ColInventory, ColRegion, ColService}
	columns := make([]string, 0, len(seen))
	for _, c := range context {
		if _, ok := seen[c]; ok {
			columns = append(columns, c)
			delete(seen, c)
		}
	}

	rest := make([]string, 0, len(seen))
	for c := range seen {
		rest = append(rest, c)
	}
	sort.Strings(rest)
	return append(columns, rest...)
}

// maxSheetName is the hard xlsx limit on sheet name length.
const maxSheetName = 31

// Characters xlsx forbids in sheet names, plus separators we normalize so
// service names read as one token (storage-buckets -> storage_buckets).
var replacedSheetChars = []string{`\`, `/`, `*`, `[`, `]`, `:`, `?`, `-`, ` `}

// sanitizeSheetName makes a service name legal as an xlsx sheet name.
// Distinct names that collapse to the same 31 characters are not detected;
// the last sheet written wins.
func sanitizeSheetName(name string) string {
	for _, c := range replacedSheetChars {
		name = strings.ReplaceAll(name, c, "_")
	}
	runes := []rune(name)
	if len(runes) > maxSheetName {
		return string(runes[:maxSheetName])
	}
	return name
}
