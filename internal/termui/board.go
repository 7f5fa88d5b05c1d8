package termui

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/joeycumines/npcmind/internal/goap"
)

// Board collects goal reports from every planner. It is safe for concurrent
// use.
type Board struct {
	mu   sync.RWMutex
	rows map[string][]goap.GoalReport
}

var _ goap.Reporter = (*Board)(nil)

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{rows: make(map[string][]goap.GoalReport)}
}

// ReportGoals implements goap.Reporter.
func (b *Board) ReportGoals(agentID string, goals []goap.GoalReport) {
	rows := append([]goap.GoalReport(nil), goals...)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rows[agentID] = rows
}

// Agents returns the IDs that have reported, sorted.
func (b *Board) Agents() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, 0, len(b.rows))
	for id := range b.rows {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Goals returns the last report of agentID.
func (b *Board) Goals(agentID string) ([]goap.GoalReport, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	rows, ok := b.rows[agentID]
	return append([]goap.GoalReport(nil), rows...), ok
}

// Render draws every agent's goal table. The selected agent is highlighted.
func (b *Board) Render(selected string) string {
	agents := b.Agents()
	if len(agents) == 0 {
		return dimStyle.Render("waiting for the first tick")
	}
	var s strings.Builder
	for i, id := range agents {
		if i > 0 {
			s.WriteByte('\n')
		}
		name := agentStyle
		if id == selected {
			name = selectedStyle
		}
		s.WriteString(name.Render(id))
		rows, _ := b.Goals(id)
		for _, r := range rows {
			status := pausedStyle
			if r.Status == goap.StatusRunning {
				status = runningStyle
			}
			fmt.Fprintf(&s, "\n  %-8s %s %4d",
				r.Name,
				status.Render(fmt.Sprintf("%-7s", r.Status)),
				r.Priority)
		}
	}
	return s.String()
}
