package chunkr

import (
	"encoding/json"

	"github.com/codebuster009/chunkr-pdf-extraction/internal/domain"
)

// schemaField is one entry in the legacy structured-extraction schema. The
// legacy API expects "properties" as a list of named fields rather than a
// JSON-Schema object map.
type schemaField struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

type extractionSchema struct {
	Title      string        `json:"title"`
	Type       string        `json:"type"`
	Properties []schemaField `json:"properties"`
}

// airlineSchemaJSON renders the fixed airfreight-rate field schema sent with
// every task: valid_until, currency, and a per_kg/min_charge pair for every
// rate, screening, and FFWH category.
func airlineSchemaJSON() ([]byte, error) {
	props := []schemaField{
		{Name: "valid_until", Type: "string", Description: "YYYY-MM-DD or empty string"},
		{Name: "currency", Type: "string", Description: "3-letter code or symbol, or empty string"},
	}
	buckets := []struct {
		prefix     string
		categories []string
	}{
		{"rates", domain.RateCategories},
		{"screeningPrices", domain.ScreeningCategories},
		{"FFWH", domain.FFWHCategories},
	}
	for _, b := range buckets {
		for _, cat := range b.categories {
			props = append(props,
				schemaField{Name: b.prefix + "." + cat + ".per_kg", Type: "string"},
				schemaField{Name: b.prefix + "." + cat + ".min_charge", Type: "string"},
			)
		}
	}
	return json.Marshal(extractionSchema{
		Title:      "AirfreightRateEmail",
		Type:       "object",
		Properties: props,
	})
}

// airlineInstructions are the natural-language extraction rules sent as the
// instructions part of every task. The "today" anchor must stay in sync with
// extract.ReferenceDate.
const airlineInstructions = `You are extracting structured airfreight rate data from an airline rate email/PDF.

Return ONLY valid JSON that exactly matches the provided JSON schema field names. Each numeric field must be a string containing a number or "null". Use "" for empty string fields.

RULES:
- Normalize decimals: convert commas to dots, e.g., "0,1676" -> "0.1676".
- Treat ">" "/" ":" as separators. Example: "Min >35.91 per kg >0.1676" => min_charge: "35.91", per_kg: "0.1676".
- Strip inequality signs (">", "<=", etc.) from numbers; extract numeric values only.
- "currency" should be a symbol or 3-letter code found in the text; otherwise "".

- FF/WW/H mapping:
  - If a single combined "FFW" (e.g., "FFW: £0.60", "FFW 0.60", "SMART FFW") appears, map to FFWH.freightCharge.per_kg, and min if present. Set FFWH.fuelSurcharge and FFWH.warRiskSurcharge to "null" unless explicitly separate.
  - If "FF" appears separately and "W" or "H" separately, map them respectively to FFWH.freightCharge, FFWH.warRiskSurcharge, FFWH.handlingFee.

- Screening mapping:
  - Map "X-Ray Fee" to screeningPrices.secondaryScreeningPrice.
  - Map "Security Charge" or generic screening to primaryScreeningPrice only if distinct from X-Ray. If both appear with similar rates, fill secondary (X-Ray) and set primary to "null"/"" to avoid duplication.

- Handling fee mapping (FFWH.handlingFee) ONLY when an explicit loose-handling label occurs:
  Accept (case-insensitive, punctuation allowed): "Loose Handling Fee", "Loose Handling", "Loose-handling fee", "Loose handling charge".
  If a number appears on same line/sentence, map it (per_kg if clearly per-kg; else min_charge).
  Do NOT map unrelated handling terms (e.g., "Unit Handling Fee", "Processing", "Storage Charge", "POD Fee", "DG Check").

- Rates bucket:
  - Put explicit tiers under rates.<key> (stackable, non-stackable, hazardous, mix, general). If an item belongs to FFW/FF/WH buckets, prioritize FFWH over rates.

- valid_until:
  - Today's date is 2025-09-23. If validity is relative (e.g., "+14 Days"), compute absolute date (YYYY-MM-DD). If absolute, use it; if missing, "".

- Do not invent values. Do not emit extra keys. Output must be valid JSON per the schema.`
