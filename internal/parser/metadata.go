package parser

import (
	"strings"

	"lavadash/pkg/contracts/domain"
)

const periodMarker = "Vendas de"

// ExtractPeriod finds the reporting-period string within the first
// maxScan lines. The exporter writes it as a field containing
// "Vendas de 01/03/2024 ate 31/03/2024"; the prefix is stripped and the
// " ate " connector rewritten to " - ". Returns the default placeholder
// when no period line exists.
func ExtractPeriod(lines []string, maxScan int) string {
	limit := len(lines)
	if maxScan > 0 && maxScan < limit {
		limit = maxScan
	}

	for i := 0; i < limit; i++ {
		if !strings.Contains(lines[i], periodMarker) {
			continue
		}
		for _, field := range splitFields(lines[i]) {
			idx := strings.Index(field, periodMarker)
			if idx < 0 {
				continue
			}
			period := field[idx+len(periodMarker):]
			period = strings.ReplaceAll(period, " ate ", " - ")
			return cleanField(period)
		}
	}
	return domain.DefaultPeriod
}

// unitNameAccumulator implements the "first match wins, set once"
// semantics for the operating-unit name. The name is discovered lazily
// during row mapping because its location is layout-dependent, and once
// set it is never overwritten.
type unitNameAccumulator struct {
	name string
	set  bool
}

func newUnitNameAccumulator() *unitNameAccumulator {
	return &unitNameAccumulator{name: domain.DefaultUnitName}
}

// trySet records the candidate name unless one was already captured or
// the candidate is empty.
func (a *unitNameAccumulator) trySet(candidate string) {
	if a.set || candidate == "" {
		return
	}
	a.name = candidate
	a.set = true
}

// fromOperatorLine scans the first maxScan lines for the SELF_SERVICE
// unit-name carrier: a line starting with "Operador:" whose second field
// holds the name.
func (a *unitNameAccumulator) fromOperatorLine(lines []string, maxScan int) {
	if a.set {
		return
	}
	limit := len(lines)
	if maxScan > 0 && maxScan < limit {
		limit = maxScan
	}
	for i := 0; i < limit; i++ {
		if !strings.HasPrefix(strings.TrimSpace(lines[i]), "Operador:") {
			continue
		}
		fields := splitFields(lines[i])
		if name := fieldAt(fields, 1, ""); name != "" {
			a.trySet(name)
			return
		}
	}
}

// fromAttendantRow captures the unit name from column 0 of an ATTENDANT
// data row. The literal "cliente" is the column header leaking through
// a malformed export, not a real unit name, and is rejected.
func (a *unitNameAccumulator) fromAttendantRow(fields []string) {
	if a.set {
		return
	}
	candidate := fieldAt(fields, 0, "")
	if strings.EqualFold(candidate, "cliente") {
		return
	}
	a.trySet(candidate)
}
