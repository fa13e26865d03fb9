package parser

import (
	"strings"
)

// NormalizeLines splits raw report text into logical lines and drops the
// noise the terminal exporter is known to emit: blank lines and rows that
// are nothing but delimiters (",,,,,,"). Relative order of the surviving
// lines is preserved because line position drives header search and row
// iteration.
func NormalizeLines(raw string) []string {
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	candidates := strings.Split(normalized, "\n")

	lines := make([]string, 0, len(candidates))
	for _, line := range candidates {
		if strings.TrimSpace(line) == "" {
			continue
		}
		// Delimiter-only rows survive a plain blank check, so strip the
		// commas first and look at what is left.
		if strings.TrimSpace(strings.ReplaceAll(line, ",", "")) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// splitFields splits a report line on commas while never splitting inside
// a double-quoted field. This is deliberately not a full RFC 4180 reader:
// the exporter emits single-line records with simple quoting, and
// encoding/csv would reject the banner rows we need to scan through.
func splitFields(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			current.WriteRune(r)
		case r == ',' && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, current.String())
	return fields
}

// cleanField strips quote characters and surrounding whitespace from a
// raw field value.
func cleanField(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, `"`, ""))
}

// fieldAt returns the cleaned field at index i, or def when the column
// is absent from the row.
func fieldAt(fields []string, i int, def string) string {
	if i < 0 || i >= len(fields) {
		return def
	}
	return cleanField(fields[i])
}
