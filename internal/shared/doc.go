// Package shared provides common utilities and test helpers used across
// the lavadash codebase. It is a home for functionality that belongs to
// no specific domain or architectural layer.
//
// The testutil subpackage provides log-capture helpers for asserting on
// structured log output in tests. This package must not grow business
// logic or dependencies on other internal packages.
package shared
