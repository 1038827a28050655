package extract

import (
	"strings"

	"github.com/codebuster009/chunkr-pdf-extraction/internal/domain"
	"github.com/codebuster009/chunkr-pdf-extraction/internal/port"
)

// setPath walks/creates nested maps for all path segments except the last
// and sets the leaf to value. An intermediate key holding a non-map value is
// silently replaced by an empty map (last write wins).
func setPath(m map[string]interface{}, path []string, value interface{}) {
	cur := m
	for _, p := range path[:len(path)-1] {
		next, ok := cur[p].(map[string]interface{})
		if !ok {
			next = map[string]interface{}{}
			cur[p] = next
		}
		cur = next
	}
	cur[path[len(path)-1]] = value
}

// nestFields turns the flat dotted-path field list into a nested map.
// Fields with an empty name are skipped; duplicate paths resolve to the
// last occurrence.
func nestFields(fields []port.ExtractedField) map[string]interface{} {
	out := map[string]interface{}{}
	for _, f := range fields {
		if f.Name == "" {
			continue
		}
		setPath(out, strings.Split(f.Name, "."), f.Value)
	}
	return out
}

// rateNode builds the canonical {per_kg, min_charge} pair from a possibly
// missing or malformed sub-node. Both keys are always present; absent or
// blank values become the literal "null".
func rateNode(node interface{}) domain.RateNode {
	m, _ := node.(map[string]interface{})
	return domain.RateNode{
		PerKg:     stringOrNull(m["per_kg"]),
		MinCharge: stringOrNull(m["min_charge"]),
	}
}

// subMap looks up key in flat and returns it as a map, or nil when absent
// or of the wrong type.
func subMap(flat map[string]interface{}, key string) map[string]interface{} {
	m, _ := flat[key].(map[string]interface{})
	return m
}

// topString reads a top-level string field, defaulting to "" when missing
// or not a string.
func topString(flat map[string]interface{}, key string) string {
	s, _ := flat[key].(string)
	return s
}

// AssembleRateSheet converts the extracted-field list into the fixed
// RateSheet shape. It is total over its input: malformed or missing fields
// degrade to defaults and never produce an error.
func AssembleRateSheet(fields []port.ExtractedField) *domain.RateSheet {
	flat := nestFields(fields)

	rates := subMap(flat, "rates")
	screening := subMap(flat, "screeningPrices")
	ffwh := subMap(flat, "FFWH")

	sheet := &domain.RateSheet{
		ValidUntil:      NormalizeValidUntil(topString(flat, "valid_until")),
		Currency:        topString(flat, "currency"),
		Rates:           map[string]domain.RateNode{},
		ScreeningPrices: map[string]domain.RateNode{},
		FFWH:            map[string]domain.RateNode{},
	}
	for _, cat := range domain.RateCategories {
		sheet.Rates[cat] = rateNode(rates[cat])
	}
	for _, cat := range domain.ScreeningCategories {
		sheet.ScreeningPrices[cat] = rateNode(screening[cat])
	}
	for _, cat := range domain.FFWHCategories {
		sheet.FFWH[cat] = rateNode(ffwh[cat])
	}
	return sheet
}

// RateSheetFromResponse locates the extracted-fields list inside a raw task
// response document (extracted_json.extracted_fields, absent treated as
// empty) and assembles the rate sheet from it.
func RateSheetFromResponse(response map[string]interface{}) *domain.RateSheet {
	var fields []port.ExtractedField
	if ej, ok := response["extracted_json"].(map[string]interface{}); ok {
		if raw, ok := ej["extracted_fields"].([]interface{}); ok {
			for _, entry := range raw {
				m, ok := entry.(map[string]interface{})
				if !ok {
					continue
				}
				name, _ := m["name"].(string)
				fields = append(fields, port.ExtractedField{Name: name, Value: m["value"]})
			}
		}
	}
	return AssembleRateSheet(fields)
}
