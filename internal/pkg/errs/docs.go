// Package errs provides standardized error types for the shipping service.
//
// Every type follows the same pattern:
//   - a sentinel error variable (e.g., ErrValueIsRequired) that errors.Is can match
//   - a struct carrying the offending parameter and an optional cause
//   - constructors with and without cause
//   - Unwrap returning the sentinel, so callers classify by category and read details by type
//
// Categories:
//   - ValueIsRequiredError: a mandatory value is missing
//   - ValueIsInvalidError: a value breaks a business rule
//   - ValueIsOutOfRangeError: a value falls outside an inclusive range
//   - ObjectNotFoundError: a lookup by identifier matched nothing
//   - VersionIsInvalidError: an optimistic concurrency check failed
//
// Adapters translate these categories into transport codes (HTTP 400/404/409).
package errs
