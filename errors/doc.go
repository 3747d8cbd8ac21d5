// Package errors provides structured error types for native handle management.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the operation name, the offending value, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseRelease, errors.KindCloseFailed).
//		Op("native_handle_close").
//		Value(status).
//		Detail("close returned non-zero status").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NotFound(errors.PhaseTable, "handle", id)
//	err := errors.ReleaseFailed(errors.KindDeleteFailed, "native_handle_delete", status)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
