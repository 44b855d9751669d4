// Package errs provides standardized error types for the transit application.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: for when a required value is missing
//   - ValueIsInvalidError: for when a value is invalid
//   - ValueIsOutOfRangeError: for when a value lies outside its bounds
//   - ObjectNotFoundError: for when an object cannot be found
//   - VersionIsInvalidError: for optimistic-concurrency conflicts
//
// Each error type follows a consistent pattern:
//   - a sentinel error variable (e.g. ErrValueIsRequired)
//   - a struct type with fields for error details
//   - constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error classification with errors.Is
//
// This standardized approach keeps failure reporting specific and
// machine-classifiable: the HTTP adapter maps these types to distinct
// status codes so hub operators always see an actionable reason.
package errs
