package extract_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codebuster009/chunkr-pdf-extraction/internal/domain"
	"github.com/codebuster009/chunkr-pdf-extraction/internal/extract"
	"github.com/codebuster009/chunkr-pdf-extraction/internal/port"
)

func TestAssembleRateSheet_FullSheet(t *testing.T) {
	fields := []port.ExtractedField{
		{Name: "valid_until", Value: "+14 days"},
		{Name: "currency", Value: "EUR"},
		{Name: "rates.stackable.per_kg", Value: "0.1676"},
		{Name: "rates.stackable.min_charge", Value: "45"},
		{Name: "rates.hazardous.per_kg", Value: "0.25"},
		{Name: "screeningPrices.primaryScreeningPrice.per_kg", Value: "0.04"},
		{Name: "FFWH.fuelSurcharge.per_kg", Value: "0.12"},
		{Name: "FFWH.fuelSurcharge.min_charge", Value: ""},
	}

	sheet := extract.AssembleRateSheet(fields)

	assert.Equal(t, "2025-10-07", sheet.ValidUntil)
	assert.Equal(t, "EUR", sheet.Currency)
	assert.Equal(t, domain.RateNode{PerKg: "0.1676", MinCharge: "45"}, sheet.Rates["stackable"])
	assert.Equal(t, domain.RateNode{PerKg: "0.25", MinCharge: "null"}, sheet.Rates["hazardous"])
	assert.Equal(t, domain.RateNode{PerKg: "0.04", MinCharge: "null"}, sheet.ScreeningPrices["primaryScreeningPrice"])
	// Blank extracted values canonicalize to the "null" literal
	assert.Equal(t, domain.RateNode{PerKg: "0.12", MinCharge: "null"}, sheet.FFWH["fuelSurcharge"])
}

func TestAssembleRateSheet_EmptyInputYieldsFullShape(t *testing.T) {
	sheet := extract.AssembleRateSheet(nil)

	assert.Equal(t, "", sheet.ValidUntil)
	assert.Equal(t, "", sheet.Currency)
	assert.Len(t, sheet.Rates, len(domain.RateCategories))
	assert.Len(t, sheet.ScreeningPrices, len(domain.ScreeningCategories))
	assert.Len(t, sheet.FFWH, len(domain.FFWHCategories))
	for _, cat := range domain.RateCategories {
		assert.Equal(t, domain.RateNode{PerKg: "null", MinCharge: "null"}, sheet.Rates[cat])
	}
}

func TestAssembleRateSheet_DuplicatePathsLastWins(t *testing.T) {
	fields := []port.ExtractedField{
		{Name: "rates.general.per_kg", Value: "1.00"},
		{Name: "rates.general.per_kg", Value: "2.00"},
	}
	sheet := extract.AssembleRateSheet(fields)
	assert.Equal(t, "2.00", sheet.Rates["general"].PerKg)
}

func TestAssembleRateSheet_ConflictingLeafAndBranch(t *testing.T) {
	// A scalar written at an intermediate path is replaced when a deeper
	// path arrives afterwards.
	fields := []port.ExtractedField{
		{Name: "rates.mix", Value: "not a node"},
		{Name: "rates.mix.per_kg", Value: "0.30"},
	}
	sheet := extract.AssembleRateSheet(fields)
	assert.Equal(t, "0.30", sheet.Rates["mix"].PerKg)
	assert.Equal(t, "null", sheet.Rates["mix"].MinCharge)
}

func TestAssembleRateSheet_IgnoresUnknownCategoriesAndEmptyNames(t *testing.T) {
	fields := []port.ExtractedField{
		{Name: "", Value: "ignored"},
		{Name: "rates.oversized.per_kg", Value: "9.99"},
		{Name: "rates.stackable.per_kg", Value: "0.10"},
	}
	sheet := extract.AssembleRateSheet(fields)

	assert.Equal(t, "0.10", sheet.Rates["stackable"].PerKg)
	_, ok := sheet.Rates["oversized"]
	assert.False(t, ok)
}

func TestAssembleRateSheet_NumericValuesStringified(t *testing.T) {
	fields := []port.ExtractedField{
		{Name: "rates.stackable.per_kg", Value: 0.5},
		{Name: "rates.stackable.min_charge", Value: 45},
	}
	sheet := extract.AssembleRateSheet(fields)
	assert.Equal(t, "0.5", sheet.Rates["stackable"].PerKg)
	assert.Equal(t, "45", sheet.Rates["stackable"].MinCharge)
}

func TestRateSheetFromResponse(t *testing.T) {
	raw := `{
		"task_id": "abc",
		"status": "completed",
		"extracted_json": {
			"extracted_fields": [
				{"name": "valid_until", "value": "2025-11-30"},
				{"name": "currency", "value": "USD"},
				{"name": "rates.non-stackable.per_kg", "value": "0.21"}
			]
		}
	}`
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &response))

	sheet := extract.RateSheetFromResponse(response)

	assert.Equal(t, "2025-11-30", sheet.ValidUntil)
	assert.Equal(t, "USD", sheet.Currency)
	assert.Equal(t, "0.21", sheet.Rates["non-stackable"].PerKg)
}

func TestRateSheetFromResponse_MissingExtractedJSON(t *testing.T) {
	sheet := extract.RateSheetFromResponse(map[string]interface{}{"status": "completed"})

	assert.Equal(t, "", sheet.Currency)
	assert.Equal(t, domain.RateNode{PerKg: "null", MinCharge: "null"}, sheet.Rates["general"])
}
