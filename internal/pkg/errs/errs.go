package errs

import (
	"fmt"
	"strings"
)

// Sentinel errors for the lifecycle core. Callers classify failures with
// errors.Is against these values; the concrete error types below carry the
// details of each rejected operation.
var (
	// ErrValueIsRequired indicates a required value was not provided.
	ErrValueIsRequired = fmt.Errorf("value is required")

	// ErrValueIsInvalid indicates a provided value is not acceptable.
	ErrValueIsInvalid = fmt.Errorf("value is invalid")

	// ErrObjectNotFound indicates a referenced order, item, or result does not resolve.
	ErrObjectNotFound = fmt.Errorf("object not found")

	// ErrInvalidTransition indicates an attempted state change that is not
	// allowed from the current state. Nothing is written.
	ErrInvalidTransition = fmt.Errorf("invalid transition")

	// ErrPreconditionFailed indicates an otherwise-legal transition was rejected
	// because a required field or approval is missing.
	ErrPreconditionFailed = fmt.Errorf("precondition failed")

	// ErrConflictingVersion indicates an optimistic-concurrency check failed.
	// The caller must re-read and retry.
	ErrConflictingVersion = fmt.Errorf("conflicting version")

	// ErrDuplicateExamInOrder indicates an exam already active on the order was
	// added again outside the repeat path.
	ErrDuplicateExamInOrder = fmt.Errorf("duplicate exam in order")
)

// sanitize removes line breaks from values that end up in error messages,
// keeping log lines intact.
func sanitize(value string) string {
	value = strings.ReplaceAll(value, "\n", " ")
	return strings.ReplaceAll(value, "\r", " ")
}

// ValueIsRequiredError is returned when a required parameter is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError for the named parameter.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping a cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError is returned when a parameter fails validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError for the named parameter.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping a cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ObjectNotFoundError is returned when an identifier does not resolve to a
// persisted order, item, or result.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError for the named reference.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping a cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// InvalidTransitionError is returned when a status change is not allowed from
// the current state. The rejected transition is reported verbatim; nothing is
// written to the entity or to the history ledger.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

// NewInvalidTransitionError creates an InvalidTransitionError for the entity
// kind ("order", "item", "result") and the rejected from/to pair.
func NewInvalidTransitionError(entity, from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{Entity: entity, From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s cannot go from %s to %s",
		ErrInvalidTransition, e.Entity, e.From, e.To))
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// PreconditionFailedError is returned when a transition is legal from the
// current state but a required field or approval is missing. Missing names the
// specific precondition so the caller can surface it.
type PreconditionFailedError struct {
	Transition string
	Missing    string
}

// NewPreconditionFailedError creates a PreconditionFailedError naming the
// transition and the missing precondition.
func NewPreconditionFailedError(transition, missing string) *PreconditionFailedError {
	return &PreconditionFailedError{Transition: transition, Missing: missing}
}

func (e *PreconditionFailedError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s requires %s", ErrPreconditionFailed, e.Transition, e.Missing))
}

func (e *PreconditionFailedError) Unwrap() error {
	return ErrPreconditionFailed
}

// ConflictingVersionError is returned when an optimistic-concurrency check
// fails: the persisted row version no longer matches the version the aggregate
// was loaded with. The write is discarded and the caller must retry.
type ConflictingVersionError struct {
	Entity  string
	ID      string
	Version int
}

// NewConflictingVersionError creates a ConflictingVersionError for the entity
// whose stored version diverged from the expected one.
func NewConflictingVersionError(entity, id string, version int) *ConflictingVersionError {
	return &ConflictingVersionError{Entity: entity, ID: id, Version: version}
}

func (e *ConflictingVersionError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s %s was not at version %d",
		ErrConflictingVersion, e.Entity, e.ID, e.Version))
}

func (e *ConflictingVersionError) Unwrap() error {
	return ErrConflictingVersion
}

// DuplicateExamInOrderError is returned when an exam already present and not
// cancelled on the order is added again without being linked as a repeat.
type DuplicateExamInOrderError struct {
	OrderID string
	ExamID  string
}

// NewDuplicateExamInOrderError creates a DuplicateExamInOrderError for the
// order/exam pair.
func NewDuplicateExamInOrderError(orderID, examID string) *DuplicateExamInOrderError {
	return &DuplicateExamInOrderError{OrderID: orderID, ExamID: examID}
}

func (e *DuplicateExamInOrderError) Error() string {
	return sanitize(fmt.Sprintf("%s: exam %s is already active on order %s",
		ErrDuplicateExamInOrder, e.ExamID, e.OrderID))
}

func (e *DuplicateExamInOrderError) Unwrap() error {
	return ErrDuplicateExamInOrder
}
