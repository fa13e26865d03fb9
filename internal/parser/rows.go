package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"lavadash/pkg/contracts/domain"
)

// SkipReason explains why a data row did not become a transaction.
// Skips are not errors: the public contract only returns accepted rows,
// but the reasons stay inspectable for tests and metrics.
type SkipReason string

const (
	SkipNone          SkipReason = ""
	SkipFooter        SkipReason = "footer_row"
	SkipUnknownLayout SkipReason = "unknown_layout"
	SkipTooFewColumns SkipReason = "too_few_columns"
	SkipNoDateToken   SkipReason = "no_date_token"
	SkipInvalidDate   SkipReason = "invalid_date"
)

// RowOutcome is the tagged result of mapping one source line.
type RowOutcome struct {
	Line        int
	Accepted    bool
	Reason      SkipReason
	Transaction *domain.Transaction
}

// columnMap fixes the positional field layout of one report format.
type columnMap struct {
	minColumns int
	machine    int
	amount     int
	date       int
	time       int
	payment    int
	// requireDateToken gates rows on a "/" in the date column before any
	// further validation. Only the ATTENDANT layout needs it: that format
	// interleaves subtotal rows that otherwise look column-complete.
	requireDateToken bool
}

var layoutColumns = map[domain.Layout]columnMap{
	domain.LayoutSelfService: {
		minColumns: 12,
		machine:    6,
		amount:     9,
		date:       10,
		time:       11,
		payment:    4,
	},
	domain.LayoutAttendant: {
		minColumns:       14,
		machine:          4,
		amount:           8,
		date:             12,
		time:             13,
		payment:          5,
		requireDateToken: true,
	},
}

// datePattern is the row-validity date shape: exactly DD/DD/DDDD.
var datePattern = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)

// mapRow converts one source line into a RowOutcome under the detected
// layout. lineIdx is the index within the normalized line list and
// feeds the transaction ID.
func (p *Parser) mapRow(lines []string, lineIdx int, layout domain.Layout, unit *unitNameAccumulator) RowOutcome {
	line := lines[lineIdx]
	skip := func(reason SkipReason) RowOutcome {
		return RowOutcome{Line: lineIdx, Reason: reason}
	}

	if strings.HasPrefix(strings.TrimSpace(line), "Total") {
		return skip(SkipFooter)
	}

	cols, ok := layoutColumns[layout]
	if !ok {
		return skip(SkipUnknownLayout)
	}

	fields := splitFields(line)
	if len(fields) < cols.minColumns {
		return skip(SkipTooFewColumns)
	}

	rawDate := fieldAt(fields, cols.date, "")
	if cols.requireDateToken && !strings.Contains(rawDate, "/") {
		return skip(SkipNoDateToken)
	}

	// The unit name lives in different places per layout and is captured
	// from the first row that carries it, never overwritten afterwards.
	switch layout {
	case domain.LayoutSelfService:
		unit.fromOperatorLine(lines, p.cfg.UnitNameScanLimit)
	case domain.LayoutAttendant:
		unit.fromAttendantRow(fields)
	}

	if !datePattern.MatchString(rawDate) {
		return skip(SkipInvalidDate)
	}

	rawTime := fieldAt(fields, cols.time, "00:00:00")
	machine := fieldAt(fields, cols.machine, "")
	amount := NormalizeCurrency(fieldAt(fields, cols.amount, "0"))
	payment := fieldAt(fields, cols.payment, "")

	date := buildTimestamp(rawDate, rawTime)

	tx := &domain.Transaction{
		ID:            fmt.Sprintf("%d-%s-%s-%s", lineIdx, rawDate, rawTime, machine),
		Date:          date,
		RawDate:       rawDate,
		RawTime:       rawTime,
		ProductName:   machine,
		Type:          ClassifyCycle(machine),
		Amount:        amount,
		PaymentMethod: payment,
		Machine:       machine,
		DayOfWeek:     int(date.Weekday()),
	}
	return RowOutcome{Line: lineIdx, Accepted: true, Transaction: tx}
}

// buildTimestamp combines a DD/MM/YYYY date and an HH:MM:SS clock into
// a local-time timestamp. The date has already passed the shape check;
// missing or short time components default to zero.
func buildTimestamp(rawDate, rawTime string) time.Time {
	dateParts := strings.Split(rawDate, "/")
	day, _ := strconv.Atoi(dateParts[0])
	month, _ := strconv.Atoi(dateParts[1])
	year, _ := strconv.Atoi(dateParts[2])

	var hour, minute, second int
	if rawTime != "" {
		timeParts := strings.Split(rawTime, ":")
		if len(timeParts) > 0 {
			hour, _ = strconv.Atoi(strings.TrimSpace(timeParts[0]))
		}
		if len(timeParts) > 1 {
			minute, _ = strconv.Atoi(strings.TrimSpace(timeParts[1]))
		}
		if len(timeParts) > 2 {
			second, _ = strconv.Atoi(strings.TrimSpace(timeParts[2]))
		}
	}

	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.Local)
}
