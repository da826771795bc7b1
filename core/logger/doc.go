// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and is tuned for command-line use: the console
// encoding is the default so per-item pipeline progress stays readable.
//
// # Run Correlation
//
// Every CLI invocation tags its logger with a unique run identifier via
// WithRunID, so all log lines belonging to one pass over the font catalog can
// be correlated after the fact.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log = logger.WithRunID(log, uuid.NewString())
//	log.Info("Fetch started")
package logger
