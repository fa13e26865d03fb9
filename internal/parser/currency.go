package parser

import (
	"math"
	"strconv"
	"strings"
)

// NormalizeCurrency converts Brazilian-locale currency text into a
// float64. Accepted shapes include `R$ 15,90`, `"1.200,50"` and plain
// `15.9`. When both separators are present the dot is treated as a
// thousands separator and removed. Anything unparseable normalizes to 0
// rather than failing: a malformed amount must never cost the row.
func NormalizeCurrency(raw string) float64 {
	s := strings.ReplaceAll(raw, `"`, "")
	s = strings.ReplaceAll(s, "R$", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	if strings.Contains(s, ".") && strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
	}
	s = strings.Replace(s, ",", ".", 1)

	value, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	// Amounts are sale values; the contract guarantees a non-negative
	// result even if the exporter emits a stray negative.
	if value < 0 {
		return 0
	}
	return value
}
