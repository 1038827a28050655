package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ReferenceDate is the fixed date against which relative validity offsets
// like "+14 days" are computed. It matches the "today" anchor embedded in
// the extraction instructions.
var ReferenceDate = time.Date(2025, time.September, 23, 0, 0, 0, 0, time.UTC)

var (
	isoDateRe      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	relativeDaysRe = regexp.MustCompile(`(?i)^\+(\d{1,3})\s*days?$`)
)

// dateLayouts are tried in order against non-ISO validity dates. Day-first
// layouts come before month-first to resolve locale ambiguity. Non-padded
// forms accept both "5-1-2025" and "05-01-2025".
var dateLayouts = []string{
	"2-1-2006",
	"2/1/2006",
	"1/2/2006",
	"2.1.2006",
	"2006/1/2",
	"2 Jan 2006",
	"2 January 2006",
}

// NormalizeValidUntil converts a validity date string to ISO YYYY-MM-DD on a
// best-effort basis. Already-ISO dates pass through unchanged, "+N day(s)"
// offsets are resolved against ReferenceDate, and a fixed list of known
// layouts is tried in order. Unrecognized input is returned as-is rather
// than treated as an error.
func NormalizeValidUntil(v string) string {
	s := strings.TrimSpace(v)
	if s == "" {
		return ""
	}
	if isoDateRe.MatchString(s) {
		return s
	}
	if m := relativeDaysRe.FindStringSubmatch(s); m != nil {
		days, err := strconv.Atoi(m[1])
		if err == nil {
			return ReferenceDate.AddDate(0, 0, days).Format("2006-01-02")
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}

// stringOrNull canonicalizes a raw extracted value into a rate-node field:
// nil or blank becomes the literal "null", anything else is the trimmed
// string form of the value.
func stringOrNull(v interface{}) string {
	if v == nil {
		return "null"
	}
	var s string
	switch val := v.(type) {
	case string:
		s = strings.TrimSpace(val)
	default:
		s = strings.TrimSpace(fmt.Sprint(val))
	}
	if s == "" {
		return "null"
	}
	return s
}
