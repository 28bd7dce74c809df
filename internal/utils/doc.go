// Package utils provides a collection of helper functions for common tasks,
// such as title sanitization, file checks, context-aware pauses, and content type validation.
package utils
