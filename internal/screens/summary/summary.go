package summary

import (
	"fmt"
	"image/color"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/internsim/internal/game"
	"github.com/abhisek/internsim/internal/router"
	"github.com/abhisek/internsim/internal/screen"
	"github.com/abhisek/internsim/internal/ui/components"
	"github.com/abhisek/internsim/internal/ui/layout"
	"github.com/abhisek/internsim/internal/ui/theme"
)

// SummaryScreen is the end-of-internship report card.
type SummaryScreen struct {
	summary game.Summary
	menu    components.Menu
}

var (
	_ screen.Screen          = (*SummaryScreen)(nil)
	_ screen.KeyHintProvider = (*SummaryScreen)(nil)
	_ screen.ScoreProvider   = (*SummaryScreen)(nil)
)

// New creates a SummaryScreen. onNewAssignment runs when the player asks
// for another scenario, once the screen has been popped.
func New(sum game.Summary, onNewAssignment func() tea.Cmd) *SummaryScreen {
	s := &SummaryScreen{summary: sum}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Start New Assignment", Action: func() tea.Cmd {
			return func() tea.Msg { return router.PopScreenMsg{Then: onNewAssignment} }
		}},
		{Label: "Clock Out", Action: func() tea.Cmd { return tea.Quit }},
	})
	return s
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Performance Review"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back to desk"},
	}
}

func (s *SummaryScreen) Score() (layout.Score, bool) {
	return layout.Score{Points: s.summary.Score, Mistakes: s.summary.Mistakes}, true
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	textWidth := min(width-8, 64)

	heading := "Internship Completed!"
	subtitle := "You've successfully navigated the complexities of corporate data."
	if !sum.Completed {
		heading = "Assignment Closed"
		subtitle = fmt.Sprintf("You cleared %d of %d stages.", sum.StagesCleared, sum.TotalStages)
	}

	mistakes := fmt.Sprintf("%d", sum.Mistakes)
	mistakesColor := theme.Error
	if sum.Flawless() {
		mistakes = "Flawless"
		mistakesColor = theme.Success
	}

	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		statBox("TOTAL SCORE", fmt.Sprintf("%d", sum.Score), theme.Primary),
		"  ",
		statBox("MISTAKES", mistakes, mistakesColor),
	)

	boss := sum.BossName
	if boss == "" {
		boss = "your manager"
	}
	closing := lipgloss.NewStyle().
		Width(textWidth).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Your manager, %s, is impressed with your attention to detail. "+
			"These skills are the foundation of a great Data Analyst.", boss))

	sections := []string{
		lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(heading),
		theme.Subtitle.Render(subtitle),
		"",
		stats,
		"",
	}
	if sum.Title != "" {
		sections = append(sections, theme.Hint.Render(fmt.Sprintf("%s  ·  %s", sum.Title, formatDuration(sum.Duration))), "")
	}
	sections = append(sections, closing, "", "", s.menu.View())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}

func statBox(label, value string, valueColor color.Color) string {
	body := theme.Hint.Render(label) + "\n" +
		lipgloss.NewStyle().Foreground(valueColor).Bold(true).Render(value)
	return theme.Card.Width(22).Align(lipgloss.Center).Render(body)
}

func formatDuration(d time.Duration) string {
	secs := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
