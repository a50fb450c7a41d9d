package game

import (
	"time"

	"github.com/abhisek/internsim/internal/scenario"
)

// PointsPerStage is awarded for each stage answered correctly.
const PointsPerStage = 100

// FetchFailedMessage is the user-facing text shown when no scenario could
// be loaded. The cause is never shown to the player.
const FetchFailedMessage = "Failed to load scenario. Please check your API key."

// Phase is the coarse state of a session.
type Phase int

const (
	PhaseIdle      Phase = iota // No session started yet
	PhaseLoading                // Waiting for the scenario provider
	PhaseError                  // Provider failed; only a restart leaves this phase
	PhaseReady                  // Serving the stage at CurrentStageIndex
	PhaseCompleted              // Last stage answered correctly
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseReady:
		return "ready"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// State is a read-only view of the controller.
type State struct {
	Phase      Phase
	Generation uint64
	SessionID  string

	// Scenario is nil unless the phase is Ready or Completed.
	Scenario *scenario.Scenario

	CurrentStageIndex int
	Completed         bool
	Score             int
	Mistakes          int

	// History is reserved. No transition writes to it.
	History []string

	// SelectedOption is the option awaiting acknowledgement, if any.
	SelectedOption  *scenario.Option
	FeedbackVisible bool

	// ErrorMessage is set in PhaseError.
	ErrorMessage string
}

// Loading reports whether the provider fetch is still pending.
func (s State) Loading() bool { return s.Phase == PhaseLoading }

// Outcome describes the effect of an acknowledged answer.
type Outcome struct {
	Correct    bool
	StageIndex int // stage the answer was given on
	Advanced   bool
	Completed  bool
	Points     int
}

// Summary is the end-of-session report.
type Summary struct {
	SessionID     string
	Title         string
	BossName      string
	Score         int
	Mistakes      int
	StagesCleared int
	TotalStages   int
	Completed     bool
	Duration      time.Duration
}

// Flawless reports whether the session was completed without a mistake.
func (s Summary) Flawless() bool {
	return s.Completed && s.Mistakes == 0
}
