package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested event does not exist.
var ErrNotFound = errors.New("event not found")

// QueryOpts filters and pages event queries. Results are ordered newest
// first.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // LLM events only
}

// LLMRequestEventData is one recorded LLM call.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM call.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates token use for one purpose or model.
type LLMUsage struct {
	Key          string
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
	LatencyMs    int64 // total
}

// Session event actions.
const (
	SessionStart = "start"
	SessionEnd   = "end"
	SessionError = "error"
)

// SessionEventData is a session lifecycle event.
type SessionEventData struct {
	SessionID    string
	Action       string
	Title        string
	BossName     string
	TotalStages  int
	Score        int
	Mistakes     int
	Completed    bool
	DurationMs   int64
	ErrorMessage string
}

// AnswerEventData is one acknowledged answer.
type AnswerEventData struct {
	SessionID  string
	StageIndex int
	StageID    int
	StageType  string
	OptionID   string
	Correct    bool
	Score      int
	Mistakes   int
}

// SessionOutcome folds the events of one session ID.
type SessionOutcome struct {
	SessionID    string
	StartedAt    time.Time
	Title        string
	BossName     string
	TotalStages  int
	Answers      int
	Score        int
	Mistakes     int
	Completed    bool
	Failed       bool
	ErrorMessage string
	Duration     time.Duration
}

// EventRepo appends to and reads the event log.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)

	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// QuerySessions returns one outcome per session, newest first.
	QuerySessions(ctx context.Context, opts QueryOpts) ([]SessionOutcome, error)
}
