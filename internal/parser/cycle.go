package parser

import (
	"strings"

	"lavadash/pkg/contracts/domain"
)

// cycleRule maps a keyword found in a machine or product name to a
// cycle type. Rules are checked in order and the first match wins, so
// combined units like "LAVA-SECA" classify as WASH.
type cycleRule struct {
	keyword string
	cycle   domain.CycleType
}

var cycleRules = []cycleRule{
	{"lava", domain.CycleWash},
	{"seca", domain.CycleDry},
}

// ClassifyCycle derives the cycle type from a free-text machine or
// product name. The search is case-insensitive; an empty or
// unrecognized name yields CycleUnknown.
func ClassifyCycle(name string) domain.CycleType {
	lower := strings.ToLower(name)
	for _, rule := range cycleRules {
		if strings.Contains(lower, rule.keyword) {
			return rule.cycle
		}
	}
	return domain.CycleUnknown
}
