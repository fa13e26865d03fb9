// Package files provides discovery of laundry terminal report exports
// on disk. It knows which file extensions the exporter produces and
// guards lookups by name against path traversal; reading and parsing
// the files is the caller's concern.
package files
