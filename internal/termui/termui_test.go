package termui

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joeycumines/npcmind/internal/awareness"
	"github.com/joeycumines/npcmind/internal/blackboard"
	"github.com/joeycumines/npcmind/internal/geom"
	"github.com/joeycumines/npcmind/internal/goap"
	"github.com/joeycumines/npcmind/internal/logging"
	"github.com/joeycumines/npcmind/internal/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) (Model, *sim.World, *logging.Ring) {
	t.Helper()
	ring := logging.NewRing(50, slog.LevelInfo)
	logger := slog.New(logging.Fanout(slog.NewTextHandler(io.Discard, nil), ring))
	board := NewBoard()
	w, err := sim.NewWorld(sim.DefaultSettings(), sim.WithLogger(logger), sim.WithReporter(board))
	require.NoError(t, err)
	t.Cleanup(w.Close)
	return New(w, board, ring), w, ring
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBoard_ReportAndRender(t *testing.T) {
	t.Parallel()

	b := NewBoard()
	assert.Contains(t, b.Render(""), "waiting")

	rows := []goap.GoalReport{
		{Name: "Idle", Kind: goap.GoalIdle, Status: goap.StatusPaused, Priority: 10},
		{Name: "Chase", Kind: goap.GoalChase, Status: goap.StatusRunning, Priority: 60},
	}
	b.ReportGoals("npc-2", rows)
	b.ReportGoals("npc-1", rows[:1])
	rows[0].Name = "mutated"

	assert.Equal(t, []string{"npc-1", "npc-2"}, b.Agents())
	got, ok := b.Goals("npc-2")
	require.True(t, ok)
	assert.Equal(t, "Idle", got[0].Name)
	_, ok = b.Goals("npc-9")
	assert.False(t, ok)

	out := b.Render("npc-2")
	assert.Contains(t, out, "npc-1")
	assert.Contains(t, out, "Running")
	assert.Contains(t, out, "Paused")
	assert.Contains(t, out, "60")
	assert.Less(t, strings.Index(out, "npc-1"), strings.Index(out, "npc-2"))
}

func TestGutter(t *testing.T) {
	t.Parallel()

	assert.Empty(t, gutter(10, 0, 0))

	for _, tc := range []struct {
		content, height, offset int
		thumbTop, thumbSize     int
	}{
		{content: 5, height: 10, offset: 0, thumbTop: 0, thumbSize: 10},
		{content: 20, height: 10, offset: 0, thumbTop: 0, thumbSize: 5},
		{content: 20, height: 10, offset: 10, thumbTop: 5, thumbSize: 5},
		{content: 20, height: 10, offset: 99, thumbTop: 5, thumbSize: 5},
		{content: 1000, height: 4, offset: 0, thumbTop: 0, thumbSize: 1},
	} {
		rows := strings.Split(gutter(tc.content, tc.height, tc.offset), "\n")
		require.Len(t, rows, tc.height)
		top, size := -1, 0
		for i, r := range rows {
			if !strings.Contains(r, "│") {
				if top < 0 {
					top = i
				}
				size++
			}
		}
		assert.Equal(t, tc.thumbTop, top, "%+v", tc)
		assert.Equal(t, tc.thumbSize, size, "%+v", tc)
	}
}

func TestModel_TickStepsUnlessPaused(t *testing.T) {
	t.Parallel()

	m, w, _ := newTestModel(t)
	require.NotNil(t, m.Init())

	m, cmd := update(t, m, tickMsg(time.Now()))
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, w.Stats().Ticks)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.True(t, m.Paused())
	m, _ = update(t, m, tickMsg(time.Now()))
	assert.Equal(t, 1, w.Stats().Ticks)

	m, _ = update(t, m, runes("n"))
	assert.Equal(t, 2, w.Stats().Ticks)

	m, _ = update(t, m, runes("p"))
	assert.False(t, m.Paused())
	_, _ = update(t, m, runes("n"))
	assert.Equal(t, 2, w.Stats().Ticks)
}

func TestModel_Quit(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestModel(t)
	for _, key := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		_, cmd := update(t, m, key)
		require.NotNil(t, cmd, key.String())
		assert.IsType(t, tea.QuitMsg{}, cmd(), key.String())
	}
}

func TestModel_SpeedBounds(t *testing.T) {
	t.Parallel()

	m, w, _ := newTestModel(t)
	for range 10 {
		m, _ = update(t, m, runes("+"))
	}
	assert.Equal(t, float64(maxSpeed), m.Speed())
	assert.Equal(t, w.Settings().Tick/maxSpeed, m.interval())

	for range 10 {
		m, _ = update(t, m, runes("-"))
	}
	assert.Equal(t, minSpeed, m.Speed())
}

func TestModel_SelectWraps(t *testing.T) {
	t.Parallel()

	m, w, _ := newTestModel(t)
	n := len(w.NPCs())
	require.Equal(t, 3, n)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, n-1, m.Selected())
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, m.Selected())
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, m.Selected())
}

func TestModel_LogScroll(t *testing.T) {
	t.Parallel()

	m, _, ring := newTestModel(t)
	logger := slog.New(ring)
	for i := range 20 {
		logger.Info("event", "i", i)
	}
	total := ring.Len()

	for range 100 {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	}
	assert.Equal(t, total-defaultLogLines, m.logOffset)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, total-defaultLogLines-1, m.logOffset)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	assert.Zero(t, m.logOffset)
}

func TestModel_View(t *testing.T) {
	t.Parallel()

	m, w, _ := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 160, Height: 40})
	view := m.View()
	assert.Contains(t, view, "npcmind")
	assert.Contains(t, view, "waiting for the first tick")
	assert.Contains(t, view, "[Sim] world created")

	for range 5 {
		m, _ = update(t, m, tickMsg(time.Now()))
	}
	view = m.View()
	assert.Contains(t, view, "tick 5")
	for _, n := range w.NPCs() {
		assert.Contains(t, view, n.Name())
	}
	assert.Contains(t, view, "Idle")
	assert.Contains(t, view, "Awareness")
	assert.Contains(t, view, "q quit")
}

func TestModel_AwarenessReadsBlackboard(t *testing.T) {
	t.Parallel()

	m, w, _ := newTestModel(t)
	m, _ = update(t, m, tickMsg(time.Now()))

	bb := w.NPCs()[0].Blackboard()
	kind, ok := bb.Get(blackboard.KeyActiveGoal).(goap.GoalKind)
	require.True(t, ok)
	action, ok := bb.GetString(blackboard.KeyActiveAction)
	require.True(t, ok)
	assert.Contains(t, m.View(), "("+kind.String()+": "+action+")")

	bb.Set(blackboard.KeyPosition, geom.Vec3{X: 4, Z: -2})
	bb.Set(blackboard.KeyRecords, []awareness.Record{
		{Key: "ghost", Score: 1.25, Position: geom.Vec3{X: 1}},
	})
	bb.Set(blackboard.KeyLastEvent, awareness.EventDetected)
	bb.Set(blackboard.KeyLastTarget, awareness.Key("ghost"))

	view := m.View()
	assert.Contains(t, view, geom.Vec3{X: 4, Z: -2}.String())
	assert.Contains(t, view, "detected ghost")
	assert.Contains(t, view, "ghost      ?")
	assert.Contains(t, view, "1.25")
	assert.NotContains(t, view, "nothing sensed")
}
