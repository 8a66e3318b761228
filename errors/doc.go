// Package errors provides CLI error presentation: it maps internal
// failures (missing credentials, generation service errors, unknown
// runs) to user-friendly messages with actionable suggestions, while
// preserving the original error chain for errors.Is/As.
package errors
