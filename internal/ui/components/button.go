package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/internsim/internal/ui/theme"
)

// Button is a keyed action such as "[R] Restart". It fires on its key, or
// on Enter while active.
type Button struct {
	Key     string
	Label   string
	Active  bool
	OnPress func() tea.Cmd
}

func NewButton(key, label string, active bool, onPress func() tea.Cmd) Button {
	return Button{Key: key, Label: label, Active: active, OnPress: onPress}
}

func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || b.OnPress == nil {
		return b, nil
	}
	switch k := kmsg.String(); {
	case k == b.Key, b.Active && k == "enter":
		return b, b.OnPress()
	}
	return b, nil
}

func (b Button) View() string {
	label := "[" + b.Key + "] " + b.Label
	if b.Active {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}
