// Package logger provides structured logging for lcstats.
//
// It wraps zerolog behind a small Logger interface with:
//   - colored console output on stderr (stdout carries tables and CSV)
//   - optional JSON file output
//   - field-carrying child loggers (WithField, WithFields, WithError)
//   - a global logger with package-level helpers
//   - NewNopLogger and NewTestLogger for tests
//
// Basic Usage:
//
//	err := logger.Initialize(&cfg.Logging)
//	logger.Info("Application started")
//	logger.WithField("username", "alice123").Debug("Fetching stats")
//
// Component loggers:
//
//	log := logger.GetLogger().WithField("component", "processor")
//	log.InfoWithFields("Run completed", map[string]interface{}{
//	    "rows":      42,
//	    "processed": 40,
//	})
package logger
