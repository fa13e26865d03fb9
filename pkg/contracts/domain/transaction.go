package domain

import (
	"time"
)

// CycleType classifies a laundry machine cycle from its raw product name.
type CycleType string

const (
	CycleWash    CycleType = "WASH"
	CycleDry     CycleType = "DRY"
	CycleUnknown CycleType = "UNKNOWN"
)

// Layout identifies the column-position scheme of a terminal export.
// It is detected once per parse from signature text and reused for
// every row.
type Layout string

const (
	LayoutSelfService Layout = "SELF_SERVICE"
	LayoutAttendant   Layout = "ATTENDANT"
	LayoutUnknown     Layout = "UNKNOWN"
)

// ReportType is the report classification exposed to dashboard consumers.
// Unlike Layout it has no UNKNOWN value: an undetected layout is reported
// as SELF_SERVICE, a default carried over from the original exporter
// integration that downstream consumers depend on.
type ReportType string

const (
	ReportTypeSelfService ReportType = "SELF_SERVICE"
	ReportTypeAttendant   ReportType = "ATTENDANT"
)

// Transaction represents one normalized sale extracted from a terminal
// export row.
type Transaction struct {
	ID            string    `json:"id" validate:"required"`
	Date          time.Time `json:"date"`
	RawDate       string    `json:"raw_date" validate:"required"`
	RawTime       string    `json:"raw_time"`
	ProductName   string    `json:"product_name"`
	Type          CycleType `json:"type" validate:"required,oneof=WASH DRY UNKNOWN"`
	Amount        float64   `json:"amount" validate:"min=0"`
	PaymentMethod string    `json:"payment_method"`
	Machine       string    `json:"machine"`
	DayOfWeek     int       `json:"day_of_week" validate:"min=0,max=6"`
}

// DashboardMetadata carries report-level information extracted alongside
// the transactions.
type DashboardMetadata struct {
	UnitName   string     `json:"unit_name"`
	Period     string     `json:"period"`
	ReportType ReportType `json:"report_type" validate:"required,oneof=SELF_SERVICE ATTENDANT"`
}

// Placeholder values substituted when the export carries no usable
// unit name or reporting period. They are part of the contract: callers
// compare against them to detect a degraded parse.
const (
	DefaultUnitName = "Unidade Desconhecida"
	DefaultPeriod   = "Período não identificado"
)

// ParseResult is the complete output of one parse call. Transactions
// preserve source row order; duplicates are permitted.
type ParseResult struct {
	Metadata     DashboardMetadata `json:"metadata"`
	Transactions []Transaction     `json:"transactions"`
}

// ReportTypeForLayout maps a detected layout to the report type exposed
// in metadata. Everything that is not ATTENDANT, including UNKNOWN,
// maps to SELF_SERVICE.
func ReportTypeForLayout(l Layout) ReportType {
	if l == LayoutAttendant {
		return ReportTypeAttendant
	}
	return ReportTypeSelfService
}
