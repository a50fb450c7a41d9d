package desk

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/internsim/internal/game"
	"github.com/abhisek/internsim/internal/router"
	"github.com/abhisek/internsim/internal/scenario"
)

func testScenario(title string) *scenario.Scenario {
	return &scenario.Scenario{
		Title:    title,
		Role:     "Data Analytics Intern",
		BossName: "Priya Raman",
		Brief:    "Leadership thinks churn jumped last quarter.",
		Dataset: []scenario.Record{
			scenario.NewRecord(
				scenario.Field{Name: "account", Value: scenario.Text("ACME-7")},
				scenario.Field{Name: "mrr", Value: scenario.Number(1200)},
			),
			scenario.NewRecord(
				scenario.Field{Name: "account", Value: scenario.Text("BETA-2")},
				scenario.Field{Name: "mrr", Value: scenario.Absent()},
			),
		},
		Stages: []scenario.Stage{
			{
				ID:       1,
				Type:     scenario.StageObservation,
				Question: "Which record needs attention first?",
				Options: []scenario.Option{
					{ID: "a", Text: "BETA-2 has no MRR", IsCorrect: true, Feedback: "Right, a null MRR skews the average."},
					{ID: "b", Text: "ACME-7 pays too much", Feedback: "High MRR is not an error."},
				},
				CorrectExplanation: "Missing values hide revenue.",
			},
			{
				ID:       2,
				Type:     scenario.StageAction,
				Question: "How do you handle the missing MRR?",
				Options: []scenario.Option{
					{ID: "a", Text: "Drop the account", Feedback: "You just lost a customer from the report."},
					{ID: "b", Text: "Flag it and ask billing", IsCorrect: true, Feedback: "Billing confirms the value."},
				},
			},
		},
	}
}

func newTestDesk(p scenario.Provider) *DeskScreen {
	logger := slog.New(slog.DiscardHandler)
	return New(p, game.New(game.WithLogger(logger)), logger)
}

// run executes cmd and returns the messages it produces, flattening
// batches. Spinner ticks are dropped so the loop terminates.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, run(c)...)
		}
		return out
	case spinner.TickMsg, nil:
		return nil
	default:
		return []tea.Msg{msg}
	}
}

// feed delivers messages to d, following up on any commands they return.
// Router messages are returned instead of delivered.
func feed(d *DeskScreen, msgs []tea.Msg) []tea.Msg {
	var out []tea.Msg
	for len(msgs) > 0 {
		msg := msgs[0]
		msgs = msgs[1:]
		switch msg.(type) {
		case router.PushScreenMsg, router.PopScreenMsg, router.ReplaceScreenMsg:
			out = append(out, msg)
			continue
		}
		_, cmd := d.Update(msg)
		msgs = append(msgs, run(cmd)...)
	}
	return out
}

func press(d *DeskScreen, k tea.KeyPressMsg) []tea.Msg {
	return feed(d, []tea.Msg{k})
}

func keyText(s string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: []rune(s)[0], Text: s}
}

func ctrlR() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl}
}

func staticProvider(s *scenario.Scenario) scenario.Provider {
	return scenario.ProviderFunc(func(context.Context) (*scenario.Scenario, error) {
		return s, nil
	})
}

func TestDesk_LoadsScenario(t *testing.T) {
	d := newTestDesk(staticProvider(testScenario("Churn Audit")))

	initCmd := d.Init()
	if d.ctrl.Phase() != game.PhaseLoading {
		t.Fatalf("phase = %v, want loading", d.ctrl.Phase())
	}
	if !strings.Contains(d.View(100, 40), "Initializing Virtual Workspace") {
		t.Error("loading view missing caption")
	}
	if _, ok := d.Score(); ok {
		t.Error("no score while loading")
	}

	feed(d, run(initCmd))
	if d.ctrl.Phase() != game.PhaseReady {
		t.Fatalf("phase = %v, want ready", d.ctrl.Phase())
	}

	for _, width := range []int{80, 120} {
		view := d.View(width, 40)
		for _, want := range []string{"Churn Audit", "Priya Raman · Your Manager", "STAGE 1 OF 2", "BETA-2", "null", "Mistakes: 0"} {
			if !strings.Contains(view, want) {
				t.Errorf("width %d: view missing %q", width, want)
			}
		}
	}
}

func TestDesk_StaleResultAfterRestart(t *testing.T) {
	calls := 0
	p := scenario.ProviderFunc(func(context.Context) (*scenario.Scenario, error) {
		calls++
		if calls == 1 {
			return testScenario("First"), nil
		}
		return testScenario("Second"), nil
	})
	d := newTestDesk(p)

	first := run(d.Init())
	_, restart := d.Update(ctrlR())
	second := run(restart)

	feed(d, second)
	feed(d, first)

	st := d.ctrl.State()
	if st.Phase != game.PhaseReady || st.Scenario.Title != "Second" {
		t.Errorf("phase = %v, title = %q; want the restarted session", st.Phase, st.Scenario.Title)
	}
}

func TestDesk_ProviderFailureAndRetry(t *testing.T) {
	fail := true
	p := scenario.ProviderFunc(func(context.Context) (*scenario.Scenario, error) {
		if fail {
			return nil, errors.New("quota exceeded")
		}
		return testScenario("Recovered"), nil
	})
	d := newTestDesk(p)
	feed(d, run(d.Init()))

	if d.ctrl.Phase() != game.PhaseError {
		t.Fatalf("phase = %v, want error", d.ctrl.Phase())
	}
	view := d.View(100, 40)
	for _, want := range []string{"System Overload", "Failed to load scenario", "Retry Connection"} {
		if !strings.Contains(view, want) {
			t.Errorf("error view missing %q", want)
		}
	}
	if strings.Contains(view, "quota exceeded") {
		t.Error("the cause must not reach the player")
	}

	// Answer keys do nothing in the error phase.
	press(d, keyText("1"))
	if d.ctrl.Phase() != game.PhaseError {
		t.Fatal("error phase should only be left by a restart")
	}

	fail = false
	press(d, keyText("r"))
	if d.ctrl.Phase() != game.PhaseReady {
		t.Errorf("phase = %v after retry, want ready", d.ctrl.Phase())
	}
}

func TestDesk_Walkthrough(t *testing.T) {
	d := newTestDesk(staticProvider(testScenario("Churn Audit")))
	feed(d, run(d.Init()))

	// Wrong answer on stage 1.
	press(d, keyText("2"))
	if !d.ctrl.State().FeedbackVisible {
		t.Fatal("choosing an option should show feedback")
	}
	if view := d.View(100, 40); !strings.Contains(view, "Not quite") || !strings.Contains(view, "High MRR is not an error.") {
		t.Errorf("feedback view missing verdict or feedback:\n%s", view)
	}
	press(d, keyText(" "))
	st := d.ctrl.State()
	if st.CurrentStageIndex != 0 || st.Mistakes != 1 || st.Score != 0 {
		t.Fatalf("after wrong answer: stage %d mistakes %d score %d", st.CurrentStageIndex, st.Mistakes, st.Score)
	}
	if d.options.Cursor != 1 {
		t.Errorf("retried stage should keep the cursor, got %d", d.options.Cursor)
	}

	// Correct answer via arrows and Enter.
	press(d, tea.KeyPressMsg{Code: tea.KeyUp})
	press(d, tea.KeyPressMsg{Code: tea.KeyEnter})
	if view := d.View(100, 40); !strings.Contains(view, "Correct!") || !strings.Contains(view, "Missing values hide revenue.") {
		t.Errorf("feedback view missing verdict or explanation:\n%s", view)
	}
	press(d, keyText("x"))
	if got := d.ctrl.State().CurrentStageIndex; got != 1 {
		t.Fatalf("stage = %d, want 1", got)
	}
	if d.options.Cursor != 0 {
		t.Error("a new stage should reset the cursor")
	}

	press(d, keyText("2"))
	out := press(d, keyText(" "))
	if len(out) != 1 {
		t.Fatalf("expected the review to open, got %v", out)
	}
	push, ok := out[0].(router.PushScreenMsg)
	if !ok || push.Screen.Title() != "Performance Review" {
		t.Fatalf("expected push of the review screen, got %#v", out[0])
	}

	score, ok := d.Score()
	if !ok || score.Points != 200 || score.Mistakes != 1 {
		t.Errorf("Score() = %+v, %v", score, ok)
	}

	// Enter reopens the review after it was closed.
	out = press(d, tea.KeyPressMsg{Code: tea.KeyEnter})
	if len(out) != 1 {
		t.Errorf("enter on completed desk should reopen the review")
	}
}

func TestDesk_NewAssignmentFromReview(t *testing.T) {
	calls := 0
	p := scenario.ProviderFunc(func(context.Context) (*scenario.Scenario, error) {
		calls++
		return testScenario("Churn Audit"), nil
	})
	d := newTestDesk(p)
	feed(d, run(d.Init()))

	feed(d, run(d.newAssignment()))
	if calls != 2 {
		t.Errorf("provider called %d times, want 2", calls)
	}
	st := d.ctrl.State()
	if st.Phase != game.PhaseReady || st.Score != 0 || st.CurrentStageIndex != 0 {
		t.Errorf("new assignment should start fresh, got %+v", st)
	}
}

func TestDesk_KeyHints(t *testing.T) {
	d := newTestDesk(staticProvider(testScenario("Churn Audit")))
	initCmd := d.Init()
	if got := d.KeyHints()[0].Description; got != "Restart" {
		t.Errorf("loading hint = %q", got)
	}
	feed(d, run(initCmd))
	if got := d.KeyHints()[0].Description; got != "Answer" {
		t.Errorf("ready hint = %q", got)
	}
	press(d, keyText("1"))
	if got := d.KeyHints()[0].Key; got != "any key" {
		t.Errorf("feedback hint = %q", got)
	}
}

// drive delivers msgs through r the way the program loop does, one at a
// time and in order, following up on returned commands.
func drive(r *router.Router, msgs []tea.Msg) {
	for len(msgs) > 0 {
		msg := msgs[0]
		msgs = msgs[1:]
		msgs = append(msgs, run(r.Update(msg))...)
	}
}

func TestDesk_NewAssignmentWaitsForReviewToClose(t *testing.T) {
	calls := 0
	p := scenario.ProviderFunc(func(context.Context) (*scenario.Scenario, error) {
		calls++
		return testScenario("Churn Audit"), nil
	})
	d := newTestDesk(p)
	r := router.New(d)
	drive(r, run(d.Init()))

	for _, k := range []string{"1", "c", "2", "c"} {
		drive(r, []tea.Msg{keyText(k)})
	}
	if r.Depth() != 2 || r.Active().Title() != "Performance Review" {
		t.Fatalf("expected the review on top, got depth %d", r.Depth())
	}

	msgs := run(r.Update(tea.KeyPressMsg{Code: tea.KeyEnter}))
	if d.ctrl.Phase() != game.PhaseCompleted || calls != 1 {
		t.Fatalf("no fetch may start while the review is on top (phase %v, %d fetches)", d.ctrl.Phase(), calls)
	}

	drive(r, msgs)
	if r.Depth() != 1 {
		t.Fatalf("review should be popped, depth %d", r.Depth())
	}
	if calls != 2 {
		t.Errorf("provider called %d times, want 2", calls)
	}
	st := d.ctrl.State()
	if st.Phase != game.PhaseReady || st.Score != 0 || st.CurrentStageIndex != 0 {
		t.Errorf("new assignment should be ready and fresh, got %+v", st)
	}
}
