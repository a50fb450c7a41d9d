package scenario

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/internsim/internal/llm"
)

// LLMProvider implements Provider using an llm.Provider.
type LLMProvider struct {
	provider llm.Provider
	config   Config
}

var _ Provider = (*LLMProvider)(nil)

// NewLLMProvider creates a new LLMProvider with the given provider and config.
func NewLLMProvider(provider llm.Provider, cfg Config) *LLMProvider {
	return &LLMProvider{provider: provider, config: cfg}
}

// scenarioOutput is the raw LLM response before conversion and validation.
type scenarioOutput struct {
	Title    string         `json:"title"`
	Role     string         `json:"role"`
	BossName string         `json:"boss_name"`
	Brief    string         `json:"brief"`
	Dataset  []recordOutput `json:"dataset"`
	Stages   []stageOutput  `json:"stages"`
}

type recordOutput struct {
	Fields []fieldOutput `json:"fields"`
}

type fieldOutput struct {
	Name   string  `json:"name"`
	Kind   string  `json:"kind"`
	Text   string  `json:"text"`
	Number float64 `json:"number"`
}

type stageOutput struct {
	ID                 int            `json:"id"`
	Type               string         `json:"type"`
	Question           string         `json:"question"`
	Options            []optionOutput `json:"options"`
	CorrectExplanation string         `json:"correct_explanation"`
}

type optionOutput struct {
	ID             string `json:"id"`
	Text           string `json:"text"`
	IsCorrect      bool   `json:"is_correct"`
	Feedback       string `json:"feedback"`
	BusinessImpact string `json:"business_impact"`
}

// Fetch generates one scenario.
func (p *LLMProvider) Fetch(ctx context.Context) (*Scenario, error) {
	ctx = llm.WithPurpose(ctx, "scenario-gen")
	if p.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.Timeout)
		defer cancel()
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(p.config)},
		},
		Schema:      ScenarioSchema,
		MaxTokens:   p.config.MaxTokens,
		Temperature: p.config.Temperature,
	}

	resp, err := p.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw scenarioOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	s, err := raw.toScenario()
	if err != nil {
		return nil, err
	}

	if err := Validate(s, p.config.Validators...); err != nil {
		return nil, err
	}
	return s, nil
}

func (o scenarioOutput) toScenario() (*Scenario, error) {
	s := &Scenario{
		Title:    o.Title,
		Role:     o.Role,
		BossName: o.BossName,
		Brief:    o.Brief,
	}

	for i, r := range o.Dataset {
		rec := Record{Fields: make([]Field, 0, len(r.Fields))}
		for _, f := range r.Fields {
			var v Value
			switch f.Kind {
			case "text":
				v = Text(f.Text)
			case "number":
				v = Number(f.Number)
			case "absent", "null":
				v = Absent()
			default:
				return nil, &ValidationError{
					Validator: "dataset",
					Message:   fmt.Sprintf("record %d field %q: unknown kind %q", i+1, f.Name, f.Kind),
				}
			}
			rec.Fields = append(rec.Fields, Field{Name: f.Name, Value: v})
		}
		s.Dataset = append(s.Dataset, rec)
	}

	for _, st := range o.Stages {
		stage := Stage{
			ID:                 st.ID,
			Type:               StageType(st.Type),
			Question:           st.Question,
			CorrectExplanation: st.CorrectExplanation,
		}
		for _, opt := range st.Options {
			stage.Options = append(stage.Options, Option{
				ID:             opt.ID,
				Text:           opt.Text,
				IsCorrect:      opt.IsCorrect,
				Feedback:       opt.Feedback,
				BusinessImpact: opt.BusinessImpact,
			})
		}
		s.Stages = append(s.Stages, stage)
	}

	return s, nil
}
