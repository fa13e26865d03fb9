package exporter

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"lavadash/pkg/contracts/domain"
)

// TransactionExporter writes normalized parse results to CSV files.
type TransactionExporter struct {
	csvWriter *CSVWriter
}

// NewTransactionExporter creates a new transaction exporter.
func NewTransactionExporter(logger *slog.Logger) *TransactionExporter {
	return &TransactionExporter{csvWriter: NewCSVWriter(logger)}
}

var transactionHeaders = []string{
	"ID", "Date", "Time", "Machine", "CycleType", "Amount", "PaymentMethod", "DayOfWeek",
}

// ExportTransactions writes one parse result to outputPath, preserving
// source row order.
func (e *TransactionExporter) ExportTransactions(result domain.ParseResult, outputPath string) error {
	records := make([][]string, 0, len(result.Transactions))
	for _, tx := range result.Transactions {
		records = append(records, []string{
			tx.ID,
			tx.RawDate,
			tx.RawTime,
			tx.Machine,
			string(tx.Type),
			formatFloat(tx.Amount),
			tx.PaymentMethod,
			formatInt(tx.DayOfWeek),
		})
	}

	if err := e.csvWriter.WriteSimpleCSV(outputPath, transactionHeaders, records); err != nil {
		return fmt.Errorf("failed to write transactions for %s: %w", result.Metadata.UnitName, err)
	}
	return nil
}

// ExportDailySummary aggregates revenue per calendar day and writes the
// summary next to the transaction export.
func (e *TransactionExporter) ExportDailySummary(result domain.ParseResult, outputPath string) error {
	type bucket struct {
		count   int
		revenue float64
	}
	byDay := make(map[string]*bucket)
	for _, tx := range result.Transactions {
		b := byDay[tx.RawDate]
		if b == nil {
			b = &bucket{}
			byDay[tx.RawDate] = b
		}
		b.count++
		b.revenue += tx.Amount
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	// DD/MM/YYYY sorts chronologically when compared year, month, day.
	sort.Slice(days, func(i, j int) bool {
		return dateSortKey(days[i]) < dateSortKey(days[j])
	})

	records := make([][]string, 0, len(days))
	for _, day := range days {
		b := byDay[day]
		records = append(records, []string{day, formatInt(b.count), formatFloat(b.revenue)})
	}

	headers := []string{"Date", "Transactions", "Revenue"}
	if err := e.csvWriter.WriteSimpleCSV(outputPath, headers, records); err != nil {
		return fmt.Errorf("failed to write daily summary: %w", err)
	}
	return nil
}

// ExportResult writes both the transaction file and the daily summary
// for one parsed report into outputDir, deriving file names from the
// source name.
func (e *TransactionExporter) ExportResult(result domain.ParseResult, outputDir, sourceName string) error {
	base := strings.TrimSuffix(sourceName, filepath.Ext(sourceName))
	if err := e.ExportTransactions(result, filepath.Join(outputDir, base+"_transactions.csv")); err != nil {
		return err
	}
	return e.ExportDailySummary(result, filepath.Join(outputDir, base+"_daily.csv"))
}

// dateSortKey rewrites DD/MM/YYYY into YYYY/MM/DD for lexicographic
// comparison. Dates in parse results already passed the shape check.
func dateSortKey(d string) string {
	parts := strings.Split(d, "/")
	if len(parts) != 3 {
		return d
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}
