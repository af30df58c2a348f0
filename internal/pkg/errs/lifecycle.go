package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Code is the stable, machine-readable identifier of a lifecycle rejection.
type Code string

const (
	CodeInvalidInput           Code = "invalid_input"
	CodeUnauthorized           Code = "unauthorized"
	CodeInvalidTransition      Code = "invalid_transition"
	CodeIncompleteVerification Code = "incomplete_verification"
	CodeExpired                Code = "expired"
	CodeConflict               Code = "conflict"
	CodeNotFound               Code = "not_found"
)

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrInvalidTransition      = errors.New("invalid transition")
	ErrIncompleteVerification = errors.New("incomplete verification")
	ErrExpired                = errors.New("expired")
	ErrConflict               = errors.New("conflict")
)

// LifecycleError is the typed rejection returned by lifecycle operations.
//
// Callers branch on it with errors.Is against the sentinels above, or extract it
// with errors.As to read Code, Reason and Fields:
//
//	var lerr *errs.LifecycleError
//	if errors.As(err, &lerr) && lerr.Code == errs.CodeIncompleteVerification {
//	    // lerr.Fields lists what the courier still has to supply
//	}
type LifecycleError struct {
	Code   Code
	Reason string
	Fields []string
	Cause  error
}

func NewInvalidInputError(reason string, cause error) *LifecycleError {
	return &LifecycleError{Code: CodeInvalidInput, Reason: reason, Fields: ParamNames(cause), Cause: cause}
}

func NewUnauthorizedError(reason string) *LifecycleError {
	return &LifecycleError{Code: CodeUnauthorized, Reason: reason}
}

func NewInvalidTransitionError(reason string) *LifecycleError {
	return &LifecycleError{Code: CodeInvalidTransition, Reason: reason}
}

func NewIncompleteVerificationError(fields []string) *LifecycleError {
	return &LifecycleError{
		Code:   CodeIncompleteVerification,
		Reason: "verification is incomplete: " + strings.Join(fields, ", "),
		Fields: fields,
	}
}

func NewExpiredError(reason string) *LifecycleError {
	return &LifecycleError{Code: CodeExpired, Reason: reason}
}

func NewConflictError(reason string) *LifecycleError {
	return &LifecycleError{Code: CodeConflict, Reason: reason}
}

func NewConflictErrorWithCause(reason string, cause error) *LifecycleError {
	return &LifecycleError{Code: CodeConflict, Reason: reason, Cause: cause}
}

func (e *LifecycleError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.sentinel(), e.Reason)
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

func (e *LifecycleError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.sentinel(), e.Cause}
	}
	return []error{e.sentinel()}
}

func (e *LifecycleError) sentinel() error {
	switch e.Code {
	case CodeInvalidInput:
		return ErrInvalidInput
	case CodeUnauthorized:
		return ErrUnauthorized
	case CodeInvalidTransition:
		return ErrInvalidTransition
	case CodeIncompleteVerification:
		return ErrIncompleteVerification
	case CodeExpired:
		return ErrExpired
	case CodeConflict:
		return ErrConflict
	case CodeNotFound:
		return ErrObjectNotFound
	}
	return errors.New(string(e.Code))
}

// CodeOf returns the lifecycle code carried by err, or "" when err is not a
// lifecycle rejection. ObjectNotFoundError maps to CodeNotFound.
func CodeOf(err error) Code {
	var lerr *LifecycleError
	if errors.As(err, &lerr) {
		return lerr.Code
	}
	if errors.Is(err, ErrObjectNotFound) {
		return CodeNotFound
	}
	return ""
}
