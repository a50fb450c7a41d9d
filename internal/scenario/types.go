package scenario

import "context"

// StageType categorises a challenge stage.
type StageType string

const (
	StageObservation StageType = "Observation and Identification"
	StageAction      StageType = "Action and Correction"
	StageValidation  StageType = "Validation and Explanation"
)

// StageTypes lists the stage categories in playthrough order.
var StageTypes = []StageType{StageObservation, StageAction, StageValidation}

// Valid reports whether t is one of the known stage categories.
func (t StageType) Valid() bool {
	switch t {
	case StageObservation, StageAction, StageValidation:
		return true
	}
	return false
}

// Scenario is the full content package for one playthrough.
// It is never mutated after it has been handed to a session.
type Scenario struct {
	Title    string   `json:"title"`
	Role     string   `json:"role"`
	BossName string   `json:"bossName"`
	Brief    string   `json:"brief"`
	Dataset  []Record `json:"dataset"`
	Stages   []Stage  `json:"stages"`
}

// Stage is one multiple-choice challenge within a scenario.
type Stage struct {
	ID                 int       `json:"id"`
	Type               StageType `json:"type"`
	Question           string    `json:"question"`
	Options            []Option  `json:"options"`
	CorrectExplanation string    `json:"correctExplanation"`
}

// Option is one selectable answer within a stage.
type Option struct {
	ID             string `json:"id"`
	Text           string `json:"text"`
	IsCorrect      bool   `json:"isCorrect"`
	Feedback       string `json:"feedback"`
	BusinessImpact string `json:"businessImpact"`
}

// Option returns the option with the given ID.
func (s Stage) Option(id string) (Option, bool) {
	for _, o := range s.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// HasCorrectOption reports whether at least one option is marked correct.
func (s Stage) HasCorrectOption() bool {
	for _, o := range s.Options {
		if o.IsCorrect {
			return true
		}
	}
	return false
}

// Provider supplies a scenario for a new session.
// Implementations own any retry, timeout or caching policy.
type Provider interface {
	Fetch(ctx context.Context) (*Scenario, error)
}

// ProviderFunc adapts a plain function to the Provider interface.
type ProviderFunc func(ctx context.Context) (*Scenario, error)

// Fetch calls f(ctx).
func (f ProviderFunc) Fetch(ctx context.Context) (*Scenario, error) {
	return f(ctx)
}
