package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/internsim/internal/game"
	"github.com/abhisek/internsim/internal/logging"
	"github.com/abhisek/internsim/internal/scenario"
)

func previewScenario() *scenario.Scenario {
	return &scenario.Scenario{
		Title:    "Inventory Drift",
		Role:     "Data Analytics Intern",
		BossName: "Dana Whitfield",
		Brief:    "Stock counts disagree with the warehouse. Find out why.",
		Dataset: []scenario.Record{
			scenario.NewRecord(
				scenario.Field{Name: "sku", Value: scenario.Text("SKU-1")},
				scenario.Field{Name: "on_hand", Value: scenario.Absent()},
			),
		},
		Stages: []scenario.Stage{
			{
				ID: 1, Type: scenario.StageObservation, Question: "What stands out?",
				Options: []scenario.Option{
					{ID: "a", Text: "Missing on_hand", IsCorrect: true, Feedback: "Good eye."},
					{ID: "b", Text: "Nothing", Feedback: "Look again."},
				},
			},
			{
				ID: 2, Type: scenario.StageAction, Question: "What now?",
				Options: []scenario.Option{
					{ID: "a", Text: "Recount SKU-1", IsCorrect: true, BusinessImpact: "Avoids a stockout."},
				},
			},
		},
	}
}

func TestPlayText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "flawless",
			input: "1\n1\n",
			want:  []string{"Internship Completed!", "Total Score: 200", "Mistakes: Flawless", "Dana Whitfield", "Avoids a stockout."},
		},
		{
			name:  "mistake and bad input",
			input: "2\nseven\n1\n1\n",
			want:  []string{"Look again.", "Please enter a number between 1 and 2.", "Total Score: 200", "Mistakes: 1"},
		},
		{
			name:  "input closed",
			input: "1\n",
			want:  []string{"Stage 2 of 2", "(input closed)"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := scenario.ProviderFunc(func(context.Context) (*scenario.Scenario, error) {
				return previewScenario(), nil
			})
			var out bytes.Buffer
			if err := playText(context.Background(), strings.NewReader(tt.input), &out, p, logging.Discard()); err != nil {
				t.Fatalf("playText: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out.String(), w) {
					t.Errorf("output missing %q:\n%s", w, out.String())
				}
			}
		})
	}
}

func TestPlayText_FetchFailure(t *testing.T) {
	p := scenario.ProviderFunc(func(context.Context) (*scenario.Scenario, error) {
		return nil, errors.New("no key")
	})
	var out bytes.Buffer
	err := playText(context.Background(), strings.NewReader(""), &out, p, logging.Discard())
	if !errors.Is(err, game.ErrScenarioFetch) {
		t.Fatalf("err = %v, want ErrScenarioFetch", err)
	}
	if !strings.Contains(out.String(), game.FetchFailedMessage) {
		t.Errorf("output should show the failure message:\n%s", out.String())
	}
}

func TestPlainDataset(t *testing.T) {
	got := plainDataset(previewScenario().Dataset)
	for _, w := range []string{"sku", "on_hand", "SKU-1", "null"} {
		if !strings.Contains(got, w) {
			t.Errorf("table missing %q:\n%s", w, got)
		}
	}
}
