package welcome

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/internsim/internal/router"
	"github.com/abhisek/internsim/internal/screen"
	"github.com/abhisek/internsim/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	pitchAt      = 400 * time.Millisecond
	stepsAt      = 900 * time.Millisecond
	revealDur    = 1500 * time.Millisecond
)

const (
	tagline = "Internship Simulator"
	pitch   = "Step into the shoes of a Data Analytics Intern. You've just been handed a messy dataset " +
		"and a high-stakes business problem. Your decisions will either lead to growth or costly mistakes."
)

var steps = []string{
	"Observe the noisy business data",
	"Clean and process under pressure",
	"Validate insights for the boardroom",
}

type tickMsg time.Time

// WelcomeScreen is the title card. It reveals the pitch line by line and
// hands over to the desk on any key.
type WelcomeScreen struct {
	deskFactory  func() screen.Screen
	elapsed      time.Duration
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that replaces itself with deskFactory().
func New(deskFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{deskFactory: deskFactory}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed >= revealDur {
			return w, nil
		}
		w.elapsed += tickInterval
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	desk := w.deskFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: desk}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	textWidth := min(width-8, 72)

	sections := []string{
		RenderBanner(width),
		"",
		theme.Title.Render(tagline),
	}

	if w.elapsed >= pitchAt {
		body := lipgloss.NewStyle().
			Width(textWidth).
			Foreground(theme.TextDim).
			Align(lipgloss.Center).
			Render(pitch)
		sections = append(sections, "", body)
	}

	if w.elapsed >= stepsAt {
		var list strings.Builder
		for i, s := range steps {
			num := lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.Secondary).Render(fmt.Sprintf(" %d ", i+1))
			list.WriteString(num + "  " + theme.Body.Render(s) + "\n")
		}
		sections = append(sections, "", strings.TrimRight(list.String(), "\n"))
	}

	if w.elapsed >= revealDur {
		sections = append(sections, "", "",
			theme.ButtonActive.Render("Start My Internship"),
			"",
			theme.Hint.Render("press any key to continue"))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
