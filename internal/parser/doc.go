// Package parser converts vendor-exported laundry terminal CSV reports
// into normalized transactions and report metadata.
//
// # Architecture
//
// One parse is a single pass through a fixed pipeline:
//
//  1. Line normalization: split raw text, drop blank and delimiter-only lines
//  2. Layout detection: classify the export from signature substrings
//  3. Metadata extraction: reporting period and operating-unit name
//  4. Header location: find where data rows begin
//  5. Row mapping: positional columns to typed fields, per detected layout
//  6. Assembly: metadata plus accepted transactions, in source order
//
// # Formats
//
// The same exporter produces two column layouts, self-service and
// attendant, distinguishable only by header text. Both use
// Brazilian-Portuguese locale formatting: comma decimal separators and
// DD/MM/YYYY dates. The layout signature and column tables in this
// package are data-driven so further layouts can be added without
// touching the control flow.
//
// # Error philosophy
//
// Parse never returns an error. Malformed rows are silently filtered,
// unparseable amounts normalize to zero, and missing metadata falls back
// to stable placeholder strings. The only user-visible failure mode is
// fewer transactions than expected. ParseWithOutcomes exposes the
// per-row skip reasons for tests and metrics.
package parser
