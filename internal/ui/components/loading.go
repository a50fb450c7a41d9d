package components

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/internsim/internal/ui/theme"
)

// Loading is a spinner with a caption.
type Loading struct {
	Caption string
	spinner spinner.Model
}

func NewLoading(caption string) Loading {
	return Loading{
		Caption: caption,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
		),
	}
}

// Tick starts the animation.
func (l Loading) Tick() tea.Cmd {
	return l.spinner.Tick
}

func (l Loading) Update(msg tea.Msg) (Loading, tea.Cmd) {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return l, cmd
}

func (l Loading) View() string {
	return l.spinner.View() + " " + theme.Body.Render(l.Caption)
}
