package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/internsim/internal/ui/layout"
)

// Screen is one full-window view managed by the router.
type Screen interface {
	// Init returns an initial command when the screen enters the stack.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// ScoreProvider is implemented by screens that have a running score to
// show in the header. ok is false while there is nothing to show.
type ScoreProvider interface {
	Score() (score layout.Score, ok bool)
}
