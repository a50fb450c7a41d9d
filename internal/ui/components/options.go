package components

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/internsim/internal/ui/theme"
)

// OptionChosenMsg is emitted when an option is picked from an OptionList.
type OptionChosenMsg struct {
	Index int
}

// OptionList is a numbered answer picker. Options are chosen with their
// number key, or with the arrows and Enter.
type OptionList struct {
	Labels []string
	Cursor int
}

func NewOptionList(labels []string) OptionList {
	return OptionList{Labels: labels}
}

func (l OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(l.Labels) == 0 {
		return l, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if l.Cursor > 0 {
			l.Cursor--
		}
		return l, nil
	case "down", "j":
		if l.Cursor < len(l.Labels)-1 {
			l.Cursor++
		}
		return l, nil
	case "enter":
		return l, choose(l.Cursor)
	}

	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(l.Labels) {
		l.Cursor = n - 1
		return l, choose(l.Cursor)
	}
	return l, nil
}

func choose(i int) tea.Cmd {
	return func() tea.Msg { return OptionChosenMsg{Index: i} }
}

// View renders the options, wrapping long text under its number.
func (l OptionList) View(width int) string {
	textWidth := width - 6
	if textWidth < 20 {
		textWidth = 20
	}

	var b strings.Builder
	for i, label := range l.Labels {
		prefix := "  "
		style := theme.Unselected
		if i == l.Cursor {
			prefix = "▸ "
			style = theme.Selected
		}
		num := fmt.Sprintf("%s%d) ", prefix, i+1)
		body := lipgloss.NewStyle().Width(textWidth).Render(label)
		b.WriteString(style.Render(lipgloss.JoinHorizontal(lipgloss.Top, num, body)))
		b.WriteString("\n")
	}
	b.WriteString(theme.Hint.Render(fmt.Sprintf("Select (1-%d) or use arrows + Enter", len(l.Labels))))
	return b.String()
}
