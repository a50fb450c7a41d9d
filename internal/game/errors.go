package game

import (
	"errors"
	"fmt"
)

// ErrScenarioFetch is the single failure kind of a session: the scenario
// provider could not deliver a usable scenario.
var ErrScenarioFetch = errors.New("scenario fetch failed")

// Errors returned when a transition is invoked in the wrong state.
// They never change the controller state.
var (
	ErrNotReady        = errors.New("session is not ready for answers")
	ErrFeedbackPending = errors.New("feedback for the selected option is still pending")
	ErrUnknownOption   = errors.New("option does not belong to the current stage")
	ErrNoSelection     = errors.New("no option is awaiting acknowledgement")
)

// FetchError wraps the provider's cause. It matches ErrScenarioFetch
// with errors.Is.
type FetchError struct {
	Generation uint64
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("scenario fetch failed (generation %d): %v", e.Generation, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrScenarioFetch }
