// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeEntryAccess,
//	    "failed to remove scratch entry",
//	    removeErr,
//	    map[string]any{
//	        "path": path,
//	    },
//	)
package errors
