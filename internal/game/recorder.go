package game

import (
	"context"

	"github.com/abhisek/internsim/internal/scenario"
)

// Answer is one acknowledged answer, as reported to a Recorder.
type Answer struct {
	SessionID  string
	StageIndex int
	StageID    int
	StageType  string
	OptionID   string
	Correct    bool
	Score      int // after the answer
	Mistakes   int // after the answer
}

// Recorder observes session events, e.g. to append them to an audit log.
// Errors are logged by the controller and otherwise ignored.
type Recorder interface {
	RecordStart(ctx context.Context, sessionID string, s *scenario.Scenario) error
	RecordAnswer(ctx context.Context, a Answer) error
	RecordEnd(ctx context.Context, sum Summary) error
	RecordFailure(ctx context.Context, sessionID string, cause error) error
}

// NopRecorder discards all events.
type NopRecorder struct{}

func (NopRecorder) RecordStart(context.Context, string, *scenario.Scenario) error { return nil }
func (NopRecorder) RecordAnswer(context.Context, Answer) error                    { return nil }
func (NopRecorder) RecordEnd(context.Context, Summary) error                      { return nil }
func (NopRecorder) RecordFailure(context.Context, string, error) error            { return nil }
