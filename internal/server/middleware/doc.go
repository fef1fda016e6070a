// Package middleware provides HTTP middleware for the Coda MCP server.
// These middleware functions handle tenant credential extraction, security
// headers, CORS, and request metrics.
package middleware
