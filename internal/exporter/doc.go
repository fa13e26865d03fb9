// Package exporter writes normalized laundry transactions and revenue
// summaries to CSV files. Output files carry a UTF-8 BOM so Excel
// renders the Portuguese accented text correctly.
package exporter
