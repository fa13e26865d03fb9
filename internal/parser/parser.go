package parser

import (
	"log/slog"

	"lavadash/pkg/contracts/domain"
)

// Config bounds the scans the parser performs over the input. The
// limits are worst-case cost guards for adversarial or truncated
// exports, not correctness features, and are configurable rather than
// baked in.
type Config struct {
	// DetectScanLimit caps how many lines are scanned for a layout
	// signature and for the reporting-period line.
	DetectScanLimit int
	// UnitNameScanLimit caps how many lines are scanned for the
	// "Operador:" unit-name line of SELF_SERVICE exports.
	UnitNameScanLimit int
}

// DefaultConfig returns the scan bounds used in production.
func DefaultConfig() Config {
	return Config{
		DetectScanLimit:   5000,
		UnitNameScanLimit: 50,
	}
}

// Parser converts raw terminal export text into normalized transactions
// plus report metadata. A Parser is stateless across calls and safe for
// concurrent use: each Parse reads only its own input and writes only
// its own result.
type Parser struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a Parser. A nil logger falls back to slog.Default.
func New(logger *slog.Logger, cfg Config) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.DetectScanLimit <= 0 {
		cfg.DetectScanLimit = DefaultConfig().DetectScanLimit
	}
	if cfg.UnitNameScanLimit <= 0 {
		cfg.UnitNameScanLimit = DefaultConfig().UnitNameScanLimit
	}
	return &Parser{cfg: cfg, logger: logger}
}

// Parse runs the full pipeline over one export. It never fails: degraded
// input produces fewer (or zero) transactions and placeholder metadata,
// and callers inspect those to detect a bad parse.
func (p *Parser) Parse(raw string) domain.ParseResult {
	result, _ := p.ParseWithOutcomes(raw)
	return result
}

// ParseWithOutcomes is Parse plus the per-row outcomes, including the
// reasons rows were filtered out. The outcome slice covers every line
// visited by the row mapper in source order.
func (p *Parser) ParseWithOutcomes(raw string) (domain.ParseResult, []RowOutcome) {
	lines := NormalizeLines(raw)

	layout := DetectLayout(lines, p.cfg.DetectScanLimit)
	period := ExtractPeriod(lines, p.cfg.DetectScanLimit)

	headerIdx, headerFound := LocateHeader(lines)
	if !headerFound && layout != domain.LayoutUnknown {
		// Diagnostic only: the scan falls back to the top of the file,
		// which may still line up with the real data rows.
		p.logger.Warn("report header row not found, scanning from first line",
			slog.String("layout", string(layout)),
			slog.Int("line_count", len(lines)))
	}

	start := 0
	if headerFound {
		start = headerIdx + 1
	}

	unit := newUnitNameAccumulator()
	outcomes := make([]RowOutcome, 0, len(lines)-start)
	var transactions []domain.Transaction

	for i := start; i < len(lines); i++ {
		outcome := p.mapRow(lines, i, layout, unit)
		outcomes = append(outcomes, outcome)
		if outcome.Accepted {
			transactions = append(transactions, *outcome.Transaction)
		}
	}

	result := domain.ParseResult{
		Metadata: domain.DashboardMetadata{
			UnitName:   unit.name,
			Period:     period,
			ReportType: domain.ReportTypeForLayout(layout),
		},
		Transactions: transactions,
	}

	p.logger.Debug("report parsed",
		slog.String("layout", string(layout)),
		slog.String("unit_name", result.Metadata.UnitName),
		slog.Int("lines", len(lines)),
		slog.Int("transactions", len(transactions)))

	return result, outcomes
}
