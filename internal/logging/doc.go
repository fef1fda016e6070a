// Package logging provides structured logging utilities for the mcp-coda
// application.
//
// This package centralizes logging patterns to ensure consistent, structured
// logging throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Structured logging with slog
//   - PII sanitization (email anonymization, credential masking)
//   - Host/URL sanitization for security
//   - Consistent attribute naming across the codebase
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithTool(slog.Default(), "coda_list_rows")
//	logger.Info("listing rows",
//	    logging.DocID(docID),
//	    logging.TableID(tableID))
//
// Sanitize sensitive data before logging:
//
//	logger.Info("permission granted",
//	    logging.UserHash(email),
//	    logging.Host(baseURL))
//
// # Security Considerations
//
// This package is designed with security in mind:
//   - User emails are hashed to prevent PII leakage while allowing correlation
//   - Endpoint URLs have IP addresses redacted to prevent topology leakage
//   - API tokens are never logged directly
package logging
