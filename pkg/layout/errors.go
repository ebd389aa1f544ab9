package layout

import (
	"errors"
	"fmt"
)

// Invariant violations. Layout panics with these (wrapped) so callers can
// recover and match them with errors.Is.
var (
	ErrWrongFlowVariant        = errors.New("wrong flow variant")
	ErrNotImplemented          = errors.New("not yet implemented")
	ErrRefCountNonZero         = errors.New("flow destroyed before its ref count hit zero")
	ErrDoubleRelease           = errors.New("flow reference released twice")
	ErrUseAfterRelease         = errors.New("flow reference used after release")
	ErrAlreadyOwned            = errors.New("flow already owned by a reference")
	ErrFlowDestroyed           = errors.New("flow already destroyed")
	ErrContainingBlockUnset    = errors.New("containing block link is not set")
	ErrContainingBlockNotReady = errors.New("containing block inline size not assigned yet")
	ErrNoAnonymousChild        = errors.New("no need to generate a missing child")
)

// WrongVariantError is raised by a variant accessor called on the wrong variant.
type WrongVariantError struct {
	Op    string
	Class FlowClass
}

func (e *WrongVariantError) Error() string {
	return fmt.Sprintf("called %s() on a %s flow", e.Op, e.Class)
}

func (e *WrongVariantError) Unwrap() error { return ErrWrongFlowVariant }

// PhaseError is raised when a layout phase runs on a variant that does not
// implement it.
type PhaseError struct {
	Op    string
	Class FlowClass
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s not yet implemented for %s flow", e.Op, e.Class)
}

func (e *PhaseError) Unwrap() error { return ErrNotImplemented }
