// Package logging builds the slog loggers used by the CLI and pipeline.
//
// Console output is a compact single-line format, coloured when writing to a
// terminal; JSON output carries the same attributes for machine consumption.
package logging
