package report

import (
	"fmt"
	"time"

	"github.com/vforvarun/aws-auto-inventory/types"
)

// Record is one flattened resource row. Column sets may differ row to row
// within the same service; there is no enforced schema.
type Record map[string]any

// Context columns present on every record.
const (
	ColInventory = "Inventory"
	ColRegion    = "Region"
	ColService   = "Service"
	ColResource  = "Resource"
)

// flattenSep joins nested mapping keys into column names (parent_child).
const flattenSep = "_"

// FlattenResources converts one service's raw payload into resource rows.
//
// Sequence payloads yield one row per element. Mapping payloads yield rows
// for every list-valued field, with the EC2 reservations shape unwrapped to
// its nested instances. Non-mapping elements become a single Resource
// column holding their string form in both paths. Scalar payloads yield
// nothing.
func FlattenResources(payload any, inventory, region, service string) []Record {
	switch types.ShapeOf(payload) {
	case types.ShapeSequence:
		return flattenSequence(types.AsSequence(payload), inventory, region, service)
	case types.ShapeMapping:
		return flattenMapping(types.AsMapping(payload), inventory, region, service)
	default:
		return nil
	}
}

func flattenSequence(items []any, inventory, region, service string) []Record {
	records := make([]Record, 0, len(items))
	for _, item := range items {
		records = append(records, newRecord(item, inventory, region, service))
	}
	return records
}

func flattenMapping(m map[string]any, inventory, region, service string) []Record {
	if service == "ec2" {
		if reservations := types.AsSequence(m["Reservations"]); reservations != nil {
			return flattenReservations(reservations, inventory, region, service)
		}
	}

	var records []Record
	for _, key := range sortedKeys(m) {
		items, ok := m[key].([]any)
		if !ok {
			continue
		}
		for _, item := range items {
			records = append(records, newRecord(item, inventory, region, service))
		}
	}
	return records
}

// flattenReservations unwraps the two-level DescribeInstances shape: each
// nested instance is its own resource.
func flattenReservations(reservations []any, inventory, region, service string) []Record {
	var records []Record
	for _, r := range reservations {
		reservation := types.AsMapping(r)
		if reservation == nil {
			continue
		}
		for _, inst := range types.AsSequence(reservation["Instances"]) {
			records = append(records, newRecord(inst, inventory, region, service))
		}
	}
	return records
}

// newRecord builds one row: context columns plus the flattened resource.
// Non-mapping resources get a single Resource column.
func newRecord(resource any, inventory, region, service string) Record {
	record := Record{
		ColInventory: inventory,
		ColRegion:    region,
		ColService:   service,
	}
	m := types.AsMapping(resource)
	if m == nil {
		record[ColResource] = fmt.Sprintf("%v", resource)
		return record
	}
	flattenInto(record, m, "")
	return record
}

// flattenInto recursively collapses a nested mapping into record. Nested
// mappings merge under separator-joined key paths; sequences and times are
// serialized to strings rather than recursed into.
func flattenInto(record Record, m map[string]any, prefix string) {
	for _, key := range sortedKeys(m) {
		name := key
		if prefix != "" {
			name = prefix + flattenSep + key
		}
		switch v := m[key].(type) {
		case map[string]any:
			flattenInto(record, v, name)
		case []any:
			record[name] = fmt.Sprintf("%v", v)
		case time.Time:
			record[name] = v.Format(time.RFC3339)
		case nil, string, bool, float64, float32, int, int32, int64:
			record[name] = v
		default:
			record[name] = fmt.Sprintf("%v", v)
		}
	}
}
