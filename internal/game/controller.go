package game

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/internsim/internal/scenario"
)

// Ticket identifies one fetch attempt. Results carrying an older
// generation are discarded by Resolve.
type Ticket struct {
	Generation uint64
	SessionID  string
}

// Result is the outcome of a provider fetch for a ticket.
type Result struct {
	Generation uint64
	SessionID  string
	Scenario   *scenario.Scenario
	Err        error
}

// Fetch performs the single provider call for t. It touches no controller
// state and may run on any goroutine.
func Fetch(ctx context.Context, p scenario.Provider, t Ticket) Result {
	s, err := p.Fetch(ctx)
	return Result{
		Generation: t.Generation,
		SessionID:  t.SessionID,
		Scenario:   s,
		Err:        err,
	}
}

// Controller is the session state machine. It has a single writer: all
// methods must be called from the same goroutine (in the TUI, Bubble Tea's
// Update loop). It is not safe for concurrent use.
type Controller struct {
	phase      Phase
	generation uint64
	sessionID  string
	scenario   *scenario.Scenario

	stageIndex int
	score      int
	mistakes   int
	history    []string

	selected        *scenario.Option
	feedbackVisible bool

	errMsg  string
	lastErr error

	startedAt   time.Time
	completedAt time.Time

	validators []scenario.Validator
	recorder   Recorder
	logger     *slog.Logger
	now        func() time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithRecorder sets the recorder notified of session events.
func WithRecorder(r Recorder) Option {
	return func(c *Controller) { c.recorder = r }
}

// WithLogger sets the logger for transition traces.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithValidators replaces the scenario validator chain run on Resolve.
// Called with no validators it restores the default chain; a session
// always needs a playable scenario, so validation cannot be switched off.
func WithValidators(v ...scenario.Validator) Option {
	return func(c *Controller) {
		if len(v) == 0 {
			v = scenario.DefaultValidators()
		}
		c.validators = v
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// New creates an idle Controller.
func New(opts ...Option) *Controller {
	c := &Controller{
		validators: scenario.DefaultValidators(),
		recorder:   NopRecorder{},
		logger:     slog.Default(),
		now:        time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Begin starts a new session: it discards any previous scenario and
// progress, bumps the generation and enters PhaseLoading. The caller must
// run Fetch for the returned ticket and hand the result to Resolve.
func (c *Controller) Begin() Ticket {
	if c.phase == PhaseReady {
		c.record(func(ctx context.Context) error { return c.recorder.RecordEnd(ctx, c.Summary()) })
	}

	c.generation++
	c.sessionID = uuid.NewString()
	c.phase = PhaseLoading
	c.scenario = nil
	c.stageIndex = 0
	c.score = 0
	c.mistakes = 0
	c.history = nil
	c.selected = nil
	c.feedbackVisible = false
	c.errMsg = ""
	c.lastErr = nil
	c.startedAt = time.Time{}
	c.completedAt = time.Time{}

	c.logger.Debug("session loading", "generation", c.generation, "session_id", c.sessionID)
	return Ticket{Generation: c.generation, SessionID: c.sessionID}
}

// Resolve applies a fetch result. It returns false, leaving the state
// untouched, when the result belongs to an earlier generation or the
// session is no longer loading.
func (c *Controller) Resolve(r Result) bool {
	if r.Generation != c.generation || c.phase != PhaseLoading {
		c.logger.Debug("discarding stale scenario result",
			"result_generation", r.Generation,
			"current_generation", c.generation,
			"phase", c.phase.String())
		return false
	}

	err := r.Err
	if err == nil && r.Scenario == nil {
		err = errors.New("provider returned no scenario")
	}
	if err == nil {
		err = scenario.Validate(r.Scenario, c.validators...)
	}
	if err != nil {
		c.phase = PhaseError
		c.errMsg = FetchFailedMessage
		c.lastErr = &FetchError{Generation: r.Generation, Err: err}
		c.logger.Warn("scenario fetch failed", "session_id", c.sessionID, "error", err)
		c.record(func(ctx context.Context) error { return c.recorder.RecordFailure(ctx, c.sessionID, err) })
		return true
	}

	c.scenario = r.Scenario
	c.phase = PhaseReady
	c.startedAt = c.now()
	c.logger.Debug("session ready",
		"session_id", c.sessionID,
		"title", r.Scenario.Title,
		"stages", len(r.Scenario.Stages))
	c.record(func(ctx context.Context) error { return c.recorder.RecordStart(ctx, c.sessionID, r.Scenario) })
	return true
}

// Start runs Begin, Fetch and Resolve in one blocking call.
// It returns the wrapped fetch error when the session ends up in PhaseError.
func (c *Controller) Start(ctx context.Context, p scenario.Provider) error {
	t := c.Begin()
	c.Resolve(Fetch(ctx, p, t))
	if c.phase == PhaseError {
		return c.lastErr
	}
	return nil
}

// SelectOption marks the option with the given ID as chosen and shows its
// feedback. Score and mistakes are untouched until AcknowledgeFeedback.
func (c *Controller) SelectOption(optionID string) error {
	stage, err := c.answerableStage()
	if err != nil {
		return err
	}
	opt, ok := stage.Option(optionID)
	if !ok {
		return ErrUnknownOption
	}
	c.selected = &opt
	c.feedbackVisible = true
	return nil
}

// SelectIndex is SelectOption by 0-based position within the current stage.
func (c *Controller) SelectIndex(i int) error {
	stage, err := c.answerableStage()
	if err != nil {
		return err
	}
	if i < 0 || i >= len(stage.Options) {
		return ErrUnknownOption
	}
	return c.SelectOption(stage.Options[i].ID)
}

func (c *Controller) answerableStage() (scenario.Stage, error) {
	if c.phase != PhaseReady {
		return scenario.Stage{}, ErrNotReady
	}
	if c.selected != nil || c.feedbackVisible {
		return scenario.Stage{}, ErrFeedbackPending
	}
	return c.scenario.Stages[c.stageIndex], nil
}

// AcknowledgeFeedback applies the pending answer. A correct answer scores
// PointsPerStage and advances to the next stage, or completes the session
// on the last stage. A wrong answer counts a mistake and the same stage is
// presented again.
func (c *Controller) AcknowledgeFeedback() (Outcome, error) {
	if c.selected == nil {
		return Outcome{}, ErrNoSelection
	}

	opt := *c.selected
	out := Outcome{Correct: opt.IsCorrect, StageIndex: c.stageIndex}
	stage := c.scenario.Stages[c.stageIndex]

	if opt.IsCorrect {
		c.score += PointsPerStage
		out.Points = PointsPerStage
		if c.stageIndex < len(c.scenario.Stages)-1 {
			c.stageIndex++
			out.Advanced = true
		} else {
			c.phase = PhaseCompleted
			c.completedAt = c.now()
			out.Completed = true
		}
	} else {
		c.mistakes++
	}

	c.selected = nil
	c.feedbackVisible = false

	c.logger.Debug("answer acknowledged",
		"session_id", c.sessionID,
		"stage", out.StageIndex,
		"correct", out.Correct,
		"score", c.score,
		"mistakes", c.mistakes)

	c.record(func(ctx context.Context) error {
		return c.recorder.RecordAnswer(ctx, Answer{
			SessionID:  c.sessionID,
			StageIndex: out.StageIndex,
			StageID:    stage.ID,
			StageType:  string(stage.Type),
			OptionID:   opt.ID,
			Correct:    opt.IsCorrect,
			Score:      c.score,
			Mistakes:   c.mistakes,
		})
	})
	if out.Completed {
		c.record(func(ctx context.Context) error { return c.recorder.RecordEnd(ctx, c.Summary()) })
	}

	return out, nil
}

// State returns a snapshot of the controller.
func (c *Controller) State() State {
	s := State{
		Phase:             c.phase,
		Generation:        c.generation,
		SessionID:         c.sessionID,
		Scenario:          c.scenario,
		CurrentStageIndex: c.stageIndex,
		Completed:         c.phase == PhaseCompleted,
		Score:             c.score,
		Mistakes:          c.mistakes,
		FeedbackVisible:   c.feedbackVisible,
		ErrorMessage:      c.errMsg,
	}
	if c.history != nil {
		s.History = append([]string(nil), c.history...)
	}
	if c.selected != nil {
		opt := *c.selected
		s.SelectedOption = &opt
	}
	return s
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase { return c.phase }

// Err returns the wrapped cause of the last fetch failure, or nil.
func (c *Controller) Err() error { return c.lastErr }

// CurrentStage returns the stage being served. It reports false while no
// scenario is loaded.
func (c *Controller) CurrentStage() (scenario.Stage, bool) {
	if c.scenario == nil {
		return scenario.Stage{}, false
	}
	return c.scenario.Stages[c.stageIndex], true
}

// Summary reports the session's progress so far.
func (c *Controller) Summary() Summary {
	sum := Summary{
		SessionID:     c.sessionID,
		Score:         c.score,
		Mistakes:      c.mistakes,
		StagesCleared: c.score / PointsPerStage,
		Completed:     c.phase == PhaseCompleted,
	}
	if c.scenario != nil {
		sum.Title = c.scenario.Title
		sum.BossName = c.scenario.BossName
		sum.TotalStages = len(c.scenario.Stages)
	}
	if !c.startedAt.IsZero() {
		end := c.completedAt
		if end.IsZero() {
			end = c.now()
		}
		sum.Duration = end.Sub(c.startedAt)
	}
	return sum
}

// record notifies the recorder. Recording is best-effort and never
// affects the session.
func (c *Controller) record(fn func(ctx context.Context) error) {
	if err := fn(context.Background()); err != nil {
		c.logger.Warn("failed to record session event", "session_id", c.sessionID, "error", err)
	}
}
