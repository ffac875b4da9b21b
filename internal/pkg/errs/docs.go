// Package errs provides the standardized error types used across the
// procurement application, with a consistent pattern for creation, formatting
// and unwrapping.
//
// The package covers the common failure scenarios of the domain and its
// adapters:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value fails validation
//   - ValueIsOutOfRangeError: a numeric value falls outside its allowed range
//   - ObjectNotFoundError: a referenced aggregate or record does not exist
//
// Each error type follows the same pattern:
//   - A sentinel error variable (e.g. ErrValueIsRequired)
//   - A struct type carrying the error details
//   - Constructor functions with and without a cause
//   - Error() for message formatting
//   - Unwrap() so errors.Is and errors.As work against the sentinel and cause
//
// Adapters rely on these types for classification: the HTTP layer maps
// ObjectNotFoundError to 404 and the value errors to 400.
package errs
