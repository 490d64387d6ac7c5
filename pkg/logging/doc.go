// Package logging configures log/slog for nutrihelpd.
//
// Loggers write JSON to stderr and carry "module" and "version" attributes.
// The level comes from the EnvLogLevel variable (LOG_LEVEL) or an explicit
// value: debug, info, warn (or warning) and error, case-insensitive, with
// info as the fallback. Source locations are added at debug level.
//
//	logging.SetDefaultStructuredLoggerWithLevel("nutrihelpd", version, "debug")
//	slog.Info("reclaimed", "deleted", 3)
//
// NewLogLogger bridges APIs that still take a *log.Logger, such as
// http.Server.ErrorLog, onto the default slog handler.
package logging
