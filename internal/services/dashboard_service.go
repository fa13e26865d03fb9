package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"lavadash/internal/config"
	"lavadash/internal/files"
	"lavadash/internal/ingest/xlsx"
	"lavadash/internal/metrics"
	"lavadash/internal/parser"
	"lavadash/pkg/contracts/domain"
)

// topMachineLimit caps the machine ranking in dashboard summaries.
const topMachineLimit = 5

// ReportFile describes one discovered report export.
type ReportFile struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// DashboardService parses terminal report exports and serves dashboard
// aggregates over them.
type DashboardService struct {
	parser    *parser.Parser
	discovery *files.Discovery
	paths     *config.Paths
	logger    *slog.Logger
}

// NewDashboardService creates a dashboard service from the application
// configuration.
func NewDashboardService(cfg *config.Config, logger *slog.Logger) (*DashboardService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	paths, err := cfg.Paths.Resolve()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}

	logger.Info("dashboard service initialized",
		slog.String("uploads_dir", paths.UploadsDir),
		slog.String("reports_dir", paths.ReportsDir))

	return &DashboardService{
		parser: parser.New(logger, parser.Config{
			DetectScanLimit:   cfg.Parser.DetectScanLimit,
			UnitNameScanLimit: cfg.Parser.UnitNameScanLimit,
		}),
		discovery: files.NewDiscovery(paths.UploadsDir),
		paths:     paths,
		logger:    logger,
	}, nil
}

// ListReports returns the report exports found in the uploads
// directory, newest first.
func (s *DashboardService) ListReports(ctx context.Context) ([]ReportFile, error) {
	found, err := s.discovery.FindReportFiles(".")
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	s.logger.DebugContext(ctx, "reports listed", slog.Int("count", len(found)))

	reports := make([]ReportFile, 0, len(found))
	for _, f := range found {
		reports = append(reports, ReportFile{Name: f.Name, Size: f.Size, Modified: f.ModTime})
	}
	return reports, nil
}

// ParseReport parses the named export from the uploads directory.
func (s *DashboardService) ParseReport(ctx context.Context, name string) (domain.ParseResult, error) {
	info, err := s.discovery.FindByName(".", name)
	if err != nil {
		return domain.ParseResult{}, fmt.Errorf("failed to locate report %s: %w", name, err)
	}

	data, err := os.ReadFile(info.Path)
	if err != nil {
		return domain.ParseResult{}, fmt.Errorf("failed to read report %s: %w", name, err)
	}
	return s.ParseUpload(ctx, name, data)
}

// ParseUpload parses an in-memory report. Spreadsheet uploads are
// flattened to CSV text first; everything else is treated as text. A
// degraded parse is not an error: per the contract the result simply
// carries fewer transactions and placeholder metadata.
func (s *DashboardService) ParseUpload(ctx context.Context, name string, data []byte) (domain.ParseResult, error) {
	text := string(data)
	if strings.EqualFold(filepath.Ext(name), ".xlsx") {
		flat, err := xlsx.FlattenBytes(data)
		if err != nil {
			return domain.ParseResult{}, fmt.Errorf("failed to read workbook %s: %w", name, err)
		}
		text = flat
	}

	result, outcomes := s.parser.ParseWithOutcomes(text)
	metrics.RecordParse(result, outcomes)

	for i := range result.Transactions {
		if err := result.Transactions[i].Validate(); err != nil {
			s.logger.WarnContext(ctx, "transaction failed contract validation",
				slog.String("report", name),
				slog.String("transaction_id", result.Transactions[i].ID),
				slog.String("error", err.Error()))
		}
	}

	s.logger.InfoContext(ctx, "report parsed",
		slog.String("report", name),
		slog.String("report_type", string(result.Metadata.ReportType)),
		slog.String("unit_name", result.Metadata.UnitName),
		slog.Int("transactions", len(result.Transactions)),
		slog.Int("rows_seen", len(outcomes)))

	return result, nil
}

// Dashboard parses the named export and aggregates it into the summary
// served to dashboard consumers.
func (s *DashboardService) Dashboard(ctx context.Context, name string) (*domain.DashboardSummary, error) {
	result, err := s.ParseReport(ctx, name)
	if err != nil {
		return nil, err
	}
	summary := Summarize(result)
	return &summary, nil
}

// Summarize computes the dashboard aggregates for one parse result.
func Summarize(result domain.ParseResult) domain.DashboardSummary {
	summary := domain.DashboardSummary{
		Metadata:   result.Metadata,
		TotalCount: len(result.Transactions),
	}

	type bucket struct {
		count   int
		revenue float64
	}
	byDay := make(map[string]*bucket)
	byPayment := make(map[string]*bucket)
	byCycle := make(map[domain.CycleType]*bucket)
	byMachine := make(map[string]*bucket)

	add := func(m map[string]*bucket, key string, amount float64) {
		b := m[key]
		if b == nil {
			b = &bucket{}
			m[key] = b
		}
		b.count++
		b.revenue += amount
	}

	for _, tx := range result.Transactions {
		summary.TotalRevenue += tx.Amount
		add(byDay, tx.RawDate, tx.Amount)
		add(byPayment, tx.PaymentMethod, tx.Amount)
		add(byMachine, tx.Machine, tx.Amount)

		cb := byCycle[tx.Type]
		if cb == nil {
			cb = &bucket{}
			byCycle[tx.Type] = cb
		}
		cb.count++
		cb.revenue += tx.Amount
	}

	if summary.TotalCount > 0 {
		summary.AverageTicket = summary.TotalRevenue / float64(summary.TotalCount)
	}

	for day, b := range byDay {
		summary.RevenueByDay = append(summary.RevenueByDay, domain.DailyRevenue{
			Date: day, Transactions: b.count, Revenue: b.revenue,
		})
	}
	sort.Slice(summary.RevenueByDay, func(i, j int) bool {
		return dayKey(summary.RevenueByDay[i].Date) < dayKey(summary.RevenueByDay[j].Date)
	})

	for method, b := range byPayment {
		summary.RevenueByPayment = append(summary.RevenueByPayment, domain.PaymentBreakdown{
			Method: method, Transactions: b.count, Revenue: b.revenue,
		})
	}
	sort.Slice(summary.RevenueByPayment, func(i, j int) bool {
		a, b := summary.RevenueByPayment[i], summary.RevenueByPayment[j]
		if a.Revenue == b.Revenue {
			return a.Method < b.Method
		}
		return a.Revenue > b.Revenue
	})

	for cycle, b := range byCycle {
		summary.RevenueByCycle = append(summary.RevenueByCycle, domain.CycleBreakdown{
			Type: cycle, Transactions: b.count, Revenue: b.revenue,
		})
	}
	sort.Slice(summary.RevenueByCycle, func(i, j int) bool {
		a, b := summary.RevenueByCycle[i], summary.RevenueByCycle[j]
		if a.Revenue == b.Revenue {
			return a.Type < b.Type
		}
		return a.Revenue > b.Revenue
	})

	for machine, b := range byMachine {
		summary.TopMachines = append(summary.TopMachines, domain.MachineRanking{
			Machine: machine, Transactions: b.count, Revenue: b.revenue,
		})
	}
	sort.Slice(summary.TopMachines, func(i, j int) bool {
		a, b := summary.TopMachines[i], summary.TopMachines[j]
		if a.Revenue == b.Revenue {
			return a.Machine < b.Machine
		}
		return a.Revenue > b.Revenue
	})
	if len(summary.TopMachines) > topMachineLimit {
		summary.TopMachines = summary.TopMachines[:topMachineLimit]
	}

	return summary
}

// dayKey rewrites DD/MM/YYYY for lexicographic chronological order.
func dayKey(d string) string {
	parts := strings.Split(d, "/")
	if len(parts) != 3 {
		return d
	}
	return parts[2] + parts[1] + parts[0]
}
