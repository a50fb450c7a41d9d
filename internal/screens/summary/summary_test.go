package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/internsim/internal/game"
	"github.com/abhisek/internsim/internal/router"
)

func testSummary() game.Summary {
	return game.Summary{
		SessionID:     "s-1",
		Title:         "Quarterly Sales Cleanup",
		BossName:      "Dana Whitfield",
		Score:         300,
		Mistakes:      2,
		StagesCleared: 3,
		TotalStages:   3,
		Completed:     true,
		Duration:      7*time.Minute + 5*time.Second,
	}
}

func TestSummaryScreen_View(t *testing.T) {
	view := New(testSummary(), nil).View(100, 40)
	for _, want := range []string{
		"Internship Completed!",
		"300",
		"Your manager, Dana Whitfield, is impressed",
		"7:05",
		"Start New Assignment",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "Flawless") {
		t.Error("two mistakes is not flawless")
	}
}

func TestSummaryScreen_Flawless(t *testing.T) {
	sum := testSummary()
	sum.Mistakes = 0
	if !strings.Contains(New(sum, nil).View(100, 40), "Flawless") {
		t.Error("expected Flawless")
	}
}

func TestSummaryScreen_EnterStartsNewAssignment(t *testing.T) {
	called := 0
	s := New(testSummary(), func() tea.Cmd {
		called++
		return nil
	})

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	pop, ok := cmd().(router.PopScreenMsg)
	if !ok {
		t.Fatal("expected PopScreenMsg")
	}
	if called != 0 {
		t.Fatal("new assignment must wait until the review is popped")
	}
	if pop.Then == nil {
		t.Fatal("pop should carry the new assignment")
	}
	pop.Then()
	if called != 1 {
		t.Errorf("new assignment callback ran %d times", called)
	}
}

func TestSummaryScreen_ClockOut(t *testing.T) {
	s := New(testSummary(), nil)
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestSummaryScreen_Score(t *testing.T) {
	score, ok := New(testSummary(), nil).Score()
	if !ok || score.Points != 300 || score.Mistakes != 2 {
		t.Errorf("Score() = %+v, %v", score, ok)
	}
}
