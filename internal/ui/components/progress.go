package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/internsim/internal/ui/theme"
)

// StageTrack shows how far through a scenario the player is: one segment
// per stage, cleared stages filled.
type StageTrack struct {
	Total   int
	Current int // 0-based index of the stage being served
	Done    bool
	Width   int
}

func NewStageTrack(current, total int, done bool, width int) StageTrack {
	return StageTrack{Total: total, Current: current, Done: done, Width: width}
}

// Percent is the share of stages cleared.
func (p StageTrack) Percent() float64 {
	if p.Total == 0 {
		return 0
	}
	cleared := p.Current
	if p.Done {
		cleared = p.Total
	}
	return float64(cleared) / float64(p.Total)
}

func (p StageTrack) View() string {
	if p.Total <= 0 {
		return ""
	}

	label := fmt.Sprintf("  %3d%%", int(p.Percent()*100))
	barWidth := p.Width - len(label)
	seg := (barWidth - (p.Total - 1)) / p.Total
	if seg < 2 {
		seg = 2
	}

	parts := make([]string, p.Total)
	for i := range parts {
		block := strings.Repeat("━", seg)
		switch {
		case p.Done || i < p.Current:
			parts[i] = theme.ProgressDone.Render(block)
		case i == p.Current:
			parts[i] = theme.ProgressCurrent.Render(block)
		default:
			parts[i] = theme.ProgressTodo.Render(block)
		}
	}
	return strings.Join(parts, " ") + theme.Hint.Render(label)
}
