// Package errs provides standardized error types for the donation coordinator.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes two families of errors:
//   - Validation errors (ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError,
//     VersionIsInvalidError) and ObjectNotFoundError, used by value objects, aggregates
//     and repositories.
//   - LifecycleError, the typed rejection returned by every lifecycle operation. It carries
//     a stable Code, a human-readable Reason and, for verification and input failures,
//     the machine-readable list of offending fields.
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired, ErrConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for errors.Is / errors.As support
package errs
