package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/internsim/internal/router"
	"github.com/abhisek/internsim/internal/screen"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "desk" }
func (s *stubScreen) Title() string                           { return "Desk" }

func newTestWelcome() (*WelcomeScreen, *int) {
	calls := 0
	return New(func() screen.Screen {
		calls++
		return &stubScreen{}
	}), &calls
}

func sendTicks(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for i := 0; i < n; i++ {
		_, cmd = w.Update(tickMsg(time.Now()))
	}
	return cmd
}

func TestReveal(t *testing.T) {
	w, _ := newTestWelcome()

	view := w.View(100, 40)
	if !strings.Contains(view, "Internship Simulator") {
		t.Error("tagline should be visible from the start")
	}
	if strings.Contains(view, "Step into the shoes") {
		t.Error("pitch should not be visible yet")
	}

	sendTicks(w, 4)
	view = w.View(100, 40)
	if !strings.Contains(view, "Step into the shoes") {
		t.Error("pitch should be visible after 400ms")
	}
	if strings.Contains(view, "Observe the noisy business data") {
		t.Error("steps should not be visible yet")
	}

	sendTicks(w, 5)
	view = w.View(100, 40)
	for _, s := range steps {
		if !strings.Contains(view, s) {
			t.Errorf("missing step %q", s)
		}
	}

	sendTicks(w, 6)
	if !strings.Contains(w.View(100, 40), "Start My Internship") {
		t.Error("start button should be visible once revealed")
	}
}

func TestTicksStopAfterReveal(t *testing.T) {
	w, calls := newTestWelcome()

	if cmd := sendTicks(w, 16); cmd != nil {
		t.Error("ticking should stop once the reveal finishes")
	}
	if w.elapsed != revealDur {
		t.Errorf("elapsed = %v, want %v", w.elapsed, revealDur)
	}
	if *calls != 0 {
		t.Error("desk should not be built without a keypress")
	}
}

func TestAnyKeyReplacesWithDesk(t *testing.T) {
	w, calls := newTestWelcome()
	sendTicks(w, 2)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' ', Text: " "})
	if cmd == nil {
		t.Fatal("keypress should transition, even mid-reveal")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if msg.Screen.Title() != "Desk" {
		t.Errorf("replaced with %q", msg.Screen.Title())
	}

	if _, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("second keypress should not transition again")
	}
	if *calls != 1 {
		t.Errorf("factory called %d times, want 1", *calls)
	}
}

func TestCompactBanner(t *testing.T) {
	if !strings.Contains(RenderBanner(40), "I N T E R N S I M") {
		t.Error("narrow terminals should get the compact banner")
	}
}
