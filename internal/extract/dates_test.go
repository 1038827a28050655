package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codebuster009/chunkr-pdf-extraction/internal/extract"
)

func TestNormalizeValidUntil_ISOPassthrough(t *testing.T) {
	assert.Equal(t, "2025-12-31", extract.NormalizeValidUntil("2025-12-31"))
	assert.Equal(t, "2025-12-31", extract.NormalizeValidUntil("  2025-12-31  "))
}

func TestNormalizeValidUntil_Idempotent(t *testing.T) {
	once := extract.NormalizeValidUntil("31/12/2025")
	assert.Equal(t, once, extract.NormalizeValidUntil(once))
}

func TestNormalizeValidUntil_RelativeDays(t *testing.T) {
	// Offsets resolve against the fixed reference date 2025-09-23
	assert.Equal(t, "2025-10-07", extract.NormalizeValidUntil("+14 days"))
	assert.Equal(t, "2025-09-24", extract.NormalizeValidUntil("+1 day"))
	assert.Equal(t, "2025-10-23", extract.NormalizeValidUntil("+30days"))
	assert.Equal(t, "2025-10-07", extract.NormalizeValidUntil("+14 DAYS"))
}

func TestNormalizeValidUntil_Layouts(t *testing.T) {
	cases := map[string]string{
		"31-12-2025":       "2025-12-31",
		"31/12/2025":       "2025-12-31",
		"01/02/2025":       "2025-02-01", // day-first wins for ambiguous dates
		"12/25/2025":       "2025-12-25", // month-first fallback
		"31.12.2025":       "2025-12-31",
		"5-1-2025":         "2025-01-05", // single-digit day and month
		"5/1/2025":         "2025-01-05",
		"5.1.2025":         "2025-01-05",
		"2025/1/5":         "2025-01-05",
		"2025/12/31":       "2025-12-31",
		"31 Dec 2025":      "2025-12-31",
		"31 December 2025": "2025-12-31",
	}
	for in, want := range cases {
		assert.Equal(t, want, extract.NormalizeValidUntil(in), "input %q", in)
	}
}

func TestNormalizeValidUntil_UnrecognizedPassesThrough(t *testing.T) {
	assert.Equal(t, "end of Q3", extract.NormalizeValidUntil("end of Q3"))
	assert.Equal(t, "TBD", extract.NormalizeValidUntil(" TBD "))
}

func TestNormalizeValidUntil_Empty(t *testing.T) {
	assert.Equal(t, "", extract.NormalizeValidUntil(""))
	assert.Equal(t, "", extract.NormalizeValidUntil("   "))
}
