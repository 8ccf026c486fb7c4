package types

// Shape classifies a raw service payload. API responses have no fixed
// schema, so every consumer switches on the shape instead of sprinkling
// type assertions at each call site.
type Shape int

const (
	// ShapeScalar is anything that is neither a sequence nor a mapping,
	// including nil.
	ShapeScalar Shape = iota
	ShapeSequence
	ShapeMapping
)

// ShapeOf returns the shape of a decoded payload value. Only the generic
// forms produced by JSON decoding (and ScanResult.ToMap) are recognized as
// sequences and mappings; typed slices or structs count as scalars.
func ShapeOf(v any) Shape {
	switch v.(type) {
	case []any:
		return ShapeSequence
	case map[string]any:
		return ShapeMapping
	default:
		return ShapeScalar
	}
}

// AsSequence returns the payload as a sequence, or nil if it is not one.
func AsSequence(v any) []any {
	s, _ := v.([]any)
	return s
}

// AsMapping returns the payload as a mapping, or nil if it is not one.
func AsMapping(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}
