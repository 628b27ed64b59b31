// Package errs provides standardized error types for the lab order backend.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The lifecycle core distinguishes five failure kinds:
//   - InvalidTransitionError: a state change not allowed from the current state
//   - PreconditionFailedError: a legal transition missing a required field or approval
//   - ConflictingVersionError: an optimistic-concurrency check failed on write
//   - DuplicateExamInOrderError: an exam added twice outside the repeat path
//   - ObjectNotFoundError: an order/item/result id that does not resolve
//
// plus ValueIsRequiredError and ValueIsInvalidError for constructor validation.
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrInvalidTransition)
//   - A struct type with fields for error details
//   - Constructor functions
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
//
// Every failure here is a rejected operation on an otherwise-consistent
// persisted state; none is fatal at the process level.
package errs
