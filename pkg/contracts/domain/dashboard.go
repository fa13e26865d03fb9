package domain

// DailyRevenue aggregates revenue for one calendar day of the report.
type DailyRevenue struct {
	Date         string  `json:"date"` // DD/MM/YYYY as it appears in the export
	Transactions int     `json:"transactions"`
	Revenue      float64 `json:"revenue"`
}

// PaymentBreakdown aggregates revenue per payment method.
type PaymentBreakdown struct {
	Method       string  `json:"method"`
	Transactions int     `json:"transactions"`
	Revenue      float64 `json:"revenue"`
}

// CycleBreakdown aggregates revenue per cycle type.
type CycleBreakdown struct {
	Type         CycleType `json:"type"`
	Transactions int       `json:"transactions"`
	Revenue      float64   `json:"revenue"`
}

// MachineRanking ranks a single machine by revenue within the report.
type MachineRanking struct {
	Machine      string  `json:"machine"`
	Transactions int     `json:"transactions"`
	Revenue      float64 `json:"revenue"`
}

// DashboardSummary is the aggregate view served to dashboard consumers.
type DashboardSummary struct {
	Metadata         DashboardMetadata  `json:"metadata"`
	TotalRevenue     float64            `json:"total_revenue"`
	TotalCount       int                `json:"total_count"`
	AverageTicket    float64            `json:"average_ticket"`
	RevenueByDay     []DailyRevenue     `json:"revenue_by_day"`
	RevenueByPayment []PaymentBreakdown `json:"revenue_by_payment"`
	RevenueByCycle   []CycleBreakdown   `json:"revenue_by_cycle"`
	TopMachines      []MachineRanking   `json:"top_machines"`
}
