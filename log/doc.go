// Package log provides a thin structured-logging layer over log/slog
// with an additional Trace level, selectable text or JSON output, and
// an optional colorized pretty format for terminals.
//
// The zero value of Logger is valid and discards everything, so
// libraries can accept a Logger without nil checks. A package-level
// default logger backs the Config, Trace, Debug, Info, Warn, and Error
// functions; it is meant to be configured once during process startup.
package log
