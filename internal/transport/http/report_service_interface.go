package http

import (
	"context"

	"lavadash/internal/services"
	"lavadash/pkg/contracts/domain"
)

// ReportServiceInterface defines the report operations the handlers
// depend on. Satisfied by services.DashboardService.
type ReportServiceInterface interface {
	ListReports(ctx context.Context) ([]services.ReportFile, error)
	ParseReport(ctx context.Context, name string) (domain.ParseResult, error)
	ParseUpload(ctx context.Context, name string, data []byte) (domain.ParseResult, error)
	Dashboard(ctx context.Context, name string) (*domain.DashboardSummary, error)
}
