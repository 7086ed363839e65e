// Package errs provides the error taxonomy of the order tracker.
//
// Validation problems (a scanned identifier that is empty or malformed, a
// missing operator name) use ValueIsRequiredError, ValueIsInvalidError and
// ValueIsOutOfRangeError. Lookups that find nothing use ObjectNotFoundError.
// ConflictError rejects actions that are invalid for the current order state
// before anything is written. AuthError marks a missing or rejected vision
// credential, which blocks scanning until a new key is supplied.
// PersistenceError wraps storage failures.
//
// Each error type follows the same pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
package errs
