// Package middleware provides HTTP middleware for the SSE and streamable-HTTP transports.
package middleware
