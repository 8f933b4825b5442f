// Package logging provides structured logging utilities for the Sprut.hub MCP server.
//
// This package centralizes logging patterns to ensure consistent, structured logging
// throughout the codebase using the standard library's slog package. Logs always go
// to stderr because stdout carries the stdio MCP transport.
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithTool(slog.Default(), "spruthub_list_accessories")
//	logger.Info("smart default applied",
//	    logging.Operation("auto_summary"),
//	    logging.Count(42))
//
// Sanitize sensitive data before logging:
//
//	logger.Info("connecting to hub",
//	    logging.Host(cfg.URL),
//	    logging.UserHash(cfg.Email))
//
// # Security Considerations
//
//   - Hub account emails are hashed to prevent PII leakage while allowing correlation
//   - Hub URLs have IP addresses redacted to prevent home network topology leakage
//   - Passwords and session tokens are never logged directly
package logging
