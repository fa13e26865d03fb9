package parser

import (
	"strings"

	"lavadash/pkg/contracts/domain"
)

// signatureRule ties a set of substrings to the layout they identify.
// A line matches when it contains every token. Rules are evaluated
// top-to-bottom, so earlier layouts win when a line somehow carries
// both signatures.
type signatureRule struct {
	layout domain.Layout
	tokens []string
}

// layoutSignatures is the ordered signature table. New exporter layouts
// are added here without touching the detection loop.
var layoutSignatures = []signatureRule{
	{domain.LayoutSelfService, []string{"Produtos", "Total Venda", "Data"}},
	{domain.LayoutAttendant, []string{"Nome Terminal", "Venda (R$)", "Data"}},
}

// DetectLayout scans at most maxScan lines for a layout signature and
// returns the layout of the first matching line. Matching is substring
// matching on the raw, unsplit line text so that surrounding banner junk
// and quoting cannot hide a signature. Returns LayoutUnknown when no
// signature appears within the window.
func DetectLayout(lines []string, maxScan int) domain.Layout {
	limit := len(lines)
	if maxScan > 0 && maxScan < limit {
		limit = maxScan
	}

	for i := 0; i < limit; i++ {
		for _, rule := range layoutSignatures {
			if lineHasAll(lines[i], rule.tokens) {
				return rule.layout
			}
		}
	}
	return domain.LayoutUnknown
}

func lineHasAll(line string, tokens []string) bool {
	for _, tok := range tokens {
		if !strings.Contains(line, tok) {
			return false
		}
	}
	return true
}

// LocateHeader returns the index of the column-header row: the first
// line containing both "Data" and "Hora". Header position varies across
// exports because the banner block above it has no fixed length, so the
// whole line list is scanned. The second return reports whether a header
// was found; callers fall back to index 0 when it was not.
func LocateHeader(lines []string) (int, bool) {
	for i, line := range lines {
		if strings.Contains(line, "Data") && strings.Contains(line, "Hora") {
			return i, true
		}
	}
	return 0, false
}
