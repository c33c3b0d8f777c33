package goSignup

import "fmt"

// Void is the success payload of unit-valued workflows. Register and Reissue
// succeed with Void: the caller learns that the operation completed, nothing
// more.
type Void struct{}

// Failure is the populated failure side of an [Outcome]. Kind is one of the
// closed [FailureKind] set, Message is human-readable, and Cause carries the
// originating collaborator fault (nil for pure domain conditions).
type Failure struct {
	Kind    FailureKind
	Message string
	Cause   error
}

// Error renders the failure for diagnostics. Failure is not returned through
// error channels by the engine; this exists so callers can log one directly.
func (f Failure) Error() string {
	if f.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Message, f.Cause)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Unwrap exposes the collaborator fault, if any, to errors.Is/As chains.
func (f Failure) Unwrap() error {
	return f.Cause
}

// Outcome is the disjoint success/failure result returned by every workflow.
// Exactly one side is populated. Callers must branch on [Outcome.IsSuccess]
// or [Outcome.IsFailure] before unwrapping; unwrapping the wrong side is a
// programming defect and panics.
type Outcome[T any] struct {
	value   T
	failure *Failure
}

// Succeed wraps value as a successful Outcome.
func Succeed[T any](value T) Outcome[T] {
	return Outcome[T]{value: value}
}

// FailWith builds a failed Outcome with the given kind, message, and optional
// cause.
func FailWith[T any](kind FailureKind, message string, cause error) Outcome[T] {
	return Outcome[T]{failure: &Failure{Kind: kind, Message: message, Cause: cause}}
}

// IsSuccess reports whether the success side is populated.
func (o Outcome[T]) IsSuccess() bool {
	return o.failure == nil
}

// IsFailure reports whether the failure side is populated.
func (o Outcome[T]) IsFailure() bool {
	return o.failure != nil
}

// Value returns the success payload. It panics when called on a failure.
func (o Outcome[T]) Value() T {
	if o.failure != nil {
		panic("goSignup: Value called on a failed Outcome")
	}
	return o.value
}

// Failure returns the failure payload. It panics when called on a success.
func (o Outcome[T]) Failure() Failure {
	if o.failure == nil {
		panic("goSignup: Failure called on a successful Outcome")
	}
	return *o.failure
}
