package desk

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/internsim/internal/game"
	"github.com/abhisek/internsim/internal/scenario"
	"github.com/abhisek/internsim/internal/ui/components"
	"github.com/abhisek/internsim/internal/ui/theme"
)

// wideLayout is the width at which the dataset and the challenge sit side
// by side.
const wideLayout = 100

func (d *DeskScreen) View(width, height int) string {
	switch d.ctrl.Phase() {
	case game.PhaseIdle, game.PhaseLoading:
		return d.renderLoading(width, height)
	case game.PhaseError:
		return d.renderError(width, height)
	case game.PhaseCompleted:
		return renderCompleted(width, height)
	}

	st := d.ctrl.State()
	if st.FeedbackVisible && st.SelectedOption != nil {
		return d.renderFeedback(st, width, height)
	}
	return d.renderStage(st, width, height)
}

func (d *DeskScreen) renderLoading(width, height int) string {
	sub := lipgloss.NewStyle().
		Width(min(width-8, 60)).
		Align(lipgloss.Center).
		Inherit(theme.Hint).
		Render("Fetching dataset from corporate servers, setting up analytics environment, and awaiting boss briefing.")
	content := lipgloss.JoinVertical(lipgloss.Center, d.loading.View(), "", sub)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (d *DeskScreen) renderError(width, height int) string {
	card := theme.Card.
		BorderForeground(theme.Error).
		Width(min(width-8, 64)).
		Align(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center,
			theme.Incorrect.Render("System Overload"),
			"",
			theme.Body.Render(d.ctrl.State().ErrorMessage),
			"",
			d.retry.View(),
		))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func renderCompleted(width, height int) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		theme.Correct.Render("Assignment delivered."),
		"",
		theme.Hint.Render("Press Enter to open your performance review."),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (d *DeskScreen) renderStage(st game.State, width, height int) string {
	s := st.Scenario
	stage := s.Stages[st.CurrentStageIndex]
	inner := width - 4

	heading := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(s.Title),
		theme.Hint.Render(s.Role),
	)
	memo := theme.Memo.Width(inner).Render(
		theme.Label.Render(s.BossName+" · Your Manager") + "\n" +
			theme.Body.Italic(true).Render("\""+s.Brief+"\""))
	track := components.NewStageTrack(st.CurrentStageIndex, len(s.Stages), false, inner)

	top := lipgloss.JoinVertical(lipgloss.Left, heading, "", memo, "")
	bottom := "\n" + track.View()

	if width >= wideLayout {
		left := inner*3/5 - 1
		right := inner - left - 2
		challenge := d.renderChallenge(stage, st, len(s.Stages), right)
		rows := tableRows(height - lipgloss.Height(top) - lipgloss.Height(bottom))
		data := renderDataset(s.Dataset, rows, left)
		body := lipgloss.JoinHorizontal(lipgloss.Top, data, "  ", challenge)
		return indent(lipgloss.JoinVertical(lipgloss.Left, top, body, bottom))
	}

	challenge := d.renderChallenge(stage, st, len(s.Stages), inner)
	rows := tableRows(height - lipgloss.Height(top) - lipgloss.Height(challenge) - lipgloss.Height(bottom) - 1)
	data := renderDataset(s.Dataset, rows, inner)
	return indent(lipgloss.JoinVertical(lipgloss.Left, top, data, "", challenge, bottom))
}

func (d *DeskScreen) renderChallenge(stage scenario.Stage, st game.State, total, width int) string {
	header := theme.Label.Render(fmt.Sprintf("STAGE %d OF %d", st.CurrentStageIndex+1, total)) +
		theme.Hint.Render("  "+string(stage.Type))
	question := lipgloss.NewStyle().
		Width(width - 6).
		Foreground(theme.Text).
		Bold(true).
		Render(stage.Question)
	mistakes := theme.Hint.Render(fmt.Sprintf("Mistakes: %d", st.Mistakes))

	return theme.Card.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		question,
		"",
		d.options.View(width-6),
		"",
		mistakes,
	))
}

func (d *DeskScreen) renderFeedback(st game.State, width, height int) string {
	opt := st.SelectedOption
	stage := st.Scenario.Stages[st.CurrentStageIndex]
	cardWidth := min(width-8, 76)
	textWidth := cardWidth - 6
	wrap := lipgloss.NewStyle().Width(textWidth)

	verdict := theme.Incorrect.Render("✗ Not quite")
	border := theme.Error
	if opt.IsCorrect {
		verdict = theme.Correct.Render("✓ Correct!")
		border = theme.Success
	}

	parts := []string{
		verdict,
		"",
		theme.Hint.Render("You chose"),
		wrap.Inherit(theme.Body).Render(opt.Text),
		"",
		wrap.Inherit(theme.Body).Render(opt.Feedback),
	}
	if opt.BusinessImpact != "" {
		parts = append(parts, "",
			theme.Label.Render("Business impact"),
			wrap.Foreground(theme.Accent).Render(opt.BusinessImpact))
	}
	if opt.IsCorrect && stage.CorrectExplanation != "" {
		parts = append(parts, "",
			theme.Label.Render("Why it matters"),
			wrap.Foreground(theme.TextDim).Render(stage.CorrectExplanation))
	}
	parts = append(parts, "", theme.Hint.Render("Press any key to continue"))

	card := theme.Card.
		BorderForeground(border).
		Width(cardWidth).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

// tableRows is how many records fit in the given height, leaving room for
// the table border, header and overflow line.
func tableRows(avail int) int {
	return max(avail-5, 3)
}

func renderDataset(records []scenario.Record, rows, width int) string {
	label := theme.Label.Render(fmt.Sprintf("DATASET  %d records", len(records)))
	return lipgloss.JoinVertical(lipgloss.Left, label, components.NewDatasetTable(records, rows, width).View())
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}
