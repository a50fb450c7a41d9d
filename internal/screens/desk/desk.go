package desk

import (
	"context"
	"log/slog"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/internsim/internal/game"
	"github.com/abhisek/internsim/internal/router"
	"github.com/abhisek/internsim/internal/scenario"
	"github.com/abhisek/internsim/internal/screen"
	"github.com/abhisek/internsim/internal/screens/summary"
	"github.com/abhisek/internsim/internal/ui/components"
	"github.com/abhisek/internsim/internal/ui/layout"
)

const loadingCaption = "Initializing Virtual Workspace..."

// DeskScreen is the intern's workspace: it loads a scenario, serves its
// stages and hands over to the performance review on completion.
type DeskScreen struct {
	provider scenario.Provider
	ctrl     *game.Controller
	logger   *slog.Logger

	loading components.Loading
	options components.OptionList
	retry   components.Button

	// optionsFor is the stage index the option list was built for.
	optionsFor int
}

var (
	_ screen.Screen          = (*DeskScreen)(nil)
	_ screen.KeyHintProvider = (*DeskScreen)(nil)
	_ screen.ScoreProvider   = (*DeskScreen)(nil)
)

// New creates a DeskScreen. The controller must not be shared with
// another screen.
func New(provider scenario.Provider, ctrl *game.Controller, logger *slog.Logger) *DeskScreen {
	if logger == nil {
		logger = slog.Default()
	}
	d := &DeskScreen{
		provider:   provider,
		ctrl:       ctrl,
		logger:     logger,
		optionsFor: -1,
	}
	d.retry = components.NewButton("r", "Retry Connection", true, d.begin)
	return d
}

func (d *DeskScreen) Init() tea.Cmd {
	return d.begin()
}

func (d *DeskScreen) Title() string {
	return "Workspace"
}

// begin starts a fresh session and the fetch for it. Any result still in
// flight for an earlier session is ignored when it lands.
func (d *DeskScreen) begin() tea.Cmd {
	ticket := d.ctrl.Begin()
	d.loading = components.NewLoading(loadingCaption)
	d.optionsFor = -1

	provider := d.provider
	fetch := func() tea.Msg {
		return scenarioLoadedMsg{result: game.Fetch(context.Background(), provider, ticket)}
	}
	return tea.Batch(fetch, d.loading.Tick())
}

// newAssignment is handed to the summary screen.
func (d *DeskScreen) newAssignment() tea.Cmd {
	return d.begin()
}

func (d *DeskScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case scenarioLoadedMsg:
		if d.ctrl.Resolve(msg.result) {
			d.syncOptions()
		}
		return d, nil

	case spinner.TickMsg:
		if d.ctrl.Phase() != game.PhaseLoading {
			return d, nil
		}
		var cmd tea.Cmd
		d.loading, cmd = d.loading.Update(msg)
		return d, cmd

	case components.OptionChosenMsg:
		if err := d.ctrl.SelectIndex(msg.Index); err != nil {
			d.logger.Debug("option ignored", "index", msg.Index, "error", err)
		}
		return d, nil

	case tea.KeyPressMsg:
		return d.handleKey(msg)
	}
	return d, nil
}

func (d *DeskScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if msg.String() == "ctrl+r" {
		return d, d.begin()
	}

	switch d.ctrl.Phase() {
	case game.PhaseError:
		var cmd tea.Cmd
		d.retry, cmd = d.retry.Update(msg)
		return d, cmd

	case game.PhaseReady:
		if d.ctrl.State().FeedbackVisible {
			return d, d.acknowledge()
		}
		var cmd tea.Cmd
		d.options, cmd = d.options.Update(msg)
		return d, cmd

	case game.PhaseCompleted:
		if msg.String() == "enter" {
			return d, d.review()
		}
	}
	return d, nil
}

func (d *DeskScreen) acknowledge() tea.Cmd {
	out, err := d.ctrl.AcknowledgeFeedback()
	if err != nil {
		d.logger.Debug("acknowledge ignored", "error", err)
		return nil
	}
	if out.Completed {
		return d.review()
	}
	d.syncOptions()
	return nil
}

// review opens the performance review for the current session.
func (d *DeskScreen) review() tea.Cmd {
	s := summary.New(d.ctrl.Summary(), d.newAssignment)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: s}
	}
}

// syncOptions rebuilds the option list when the stage changed. A retried
// stage keeps its cursor.
func (d *DeskScreen) syncOptions() {
	stage, ok := d.ctrl.CurrentStage()
	if !ok {
		return
	}
	idx := d.ctrl.State().CurrentStageIndex
	if idx == d.optionsFor {
		return
	}
	labels := make([]string, len(stage.Options))
	for i, o := range stage.Options {
		labels[i] = o.Text
	}
	d.options = components.NewOptionList(labels)
	d.optionsFor = idx
}

func (d *DeskScreen) Score() (layout.Score, bool) {
	switch d.ctrl.Phase() {
	case game.PhaseReady, game.PhaseCompleted:
		st := d.ctrl.State()
		return layout.Score{Points: st.Score, Mistakes: st.Mistakes}, true
	}
	return layout.Score{}, false
}

func (d *DeskScreen) KeyHints() []layout.KeyHint {
	switch d.ctrl.Phase() {
	case game.PhaseLoading:
		return []layout.KeyHint{
			{Key: "Ctrl+R", Description: "Restart"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	case game.PhaseError:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	case game.PhaseCompleted:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Review"},
			{Key: "Ctrl+R", Description: "New assignment"},
		}
	}
	if d.ctrl.State().FeedbackVisible {
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-9", Description: "Answer"},
		{Key: "↑↓ Enter", Description: "Choose"},
		{Key: "Ctrl+R", Description: "Restart"},
	}
}
