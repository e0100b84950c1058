// Package errs provides the typed errors shared by the dispatch service.
//
// Each error type follows the same pattern:
//   - a sentinel variable (ErrValueIsRequired, ErrObjectNotFound, ...)
//   - a struct carrying the details
//   - constructors with and without a cause
//   - Error() for formatting and Unwrap() for errors.Is classification
//
// Validation failures (ErrValueIsRequired, ErrValueIsInvalid, ErrValueIsOutOfRange) are
// surfaced to callers as-is. ErrStorageFailure marks transient persistence errors that a
// caller may retry after re-reading state.
package errs
