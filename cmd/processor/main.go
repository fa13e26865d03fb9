// Command processor is the batch pipeline: it discovers terminal
// report exports in the uploads directory, parses each one and writes
// the transaction and daily summary CSVs to the reports directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"lavadash/internal/config"
	"lavadash/internal/exporter"
	"lavadash/internal/files"
	"lavadash/internal/infrastructure"
	"lavadash/internal/ingest/xlsx"
	"lavadash/internal/metrics"
	"lavadash/internal/parser"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	inDir := flag.String("in", "", "input directory for report exports (defaults to configured uploads dir)")
	outDir := flag.String("out", "", "output directory for CSV files (defaults to configured reports dir)")
	flag.Parse()

	if err := run(*configPath, *inDir, *outDir); err != nil {
		slog.Error("processing failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, inDir, outDir string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	paths, err := cfg.Paths.Resolve()
	if err != nil {
		return fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	if inDir == "" {
		inDir = paths.UploadsDir
	}
	if outDir == "" {
		outDir = paths.ReportsDir
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogger()

	logger.Info("starting report processing",
		slog.String("input_dir", inDir),
		slog.String("output_dir", outDir),
		slog.Int("workers", cfg.Parser.Workers))

	discovery := files.NewDiscovery(inDir)
	reports, err := discovery.FindReportFiles(".")
	if err != nil {
		return fmt.Errorf("failed to discover reports: %w", err)
	}

	fmt.Printf("Found %d report files\n", len(reports))
	if len(reports) == 0 {
		logger.Warn("no report files found", slog.String("input_dir", inDir))
		return nil
	}

	p := parser.New(logger, parser.Config{
		DetectScanLimit:   cfg.Parser.DetectScanLimit,
		UnitNameScanLimit: cfg.Parser.UnitNameScanLimit,
	})
	exp := exporter.NewTransactionExporter(logger)

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(cfg.Parser.Workers)

	for _, report := range reports {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return processFile(logger, p, exp, report, outDir)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("processing complete", slog.Int("files", len(reports)))
	fmt.Printf("Processing complete: %d files\n", len(reports))
	return nil
}

func processFile(logger *slog.Logger, p *parser.Parser, exp *exporter.TransactionExporter, report files.FileInfo, outDir string) error {
	data, err := os.ReadFile(report.Path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", report.Name, err)
	}

	text, err := flattenIfWorkbook(report.Name, data)
	if err != nil {
		logger.Error("skipping unreadable workbook",
			slog.String("filename", report.Name),
			slog.String("error", err.Error()))
		return nil
	}

	result, outcomes := p.ParseWithOutcomes(text)
	metrics.RecordParse(result, outcomes)

	logger.Info("report parsed",
		slog.String("filename", report.Name),
		slog.String("report_type", string(result.Metadata.ReportType)),
		slog.String("unit_name", result.Metadata.UnitName),
		slog.Int("transactions", len(result.Transactions)),
		slog.Int("rows_seen", len(outcomes)))

	if err := exp.ExportResult(result, outDir, report.Name); err != nil {
		return fmt.Errorf("failed to export %s: %w", report.Name, err)
	}
	return nil
}

func flattenIfWorkbook(name string, data []byte) (string, error) {
	if strings.EqualFold(filepath.Ext(name), ".xlsx") {
		return xlsx.FlattenBytes(data)
	}
	return string(data), nil
}
