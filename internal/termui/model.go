package termui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joeycumines/npcmind/internal/awareness"
	"github.com/joeycumines/npcmind/internal/logging"
	"github.com/joeycumines/npcmind/internal/sim"
)

const (
	minSpeed = 0.25
	maxSpeed = 16

	defaultLogLines = 8
	// chromeLines is the height of everything except the event pane.
	chromeLines = 4
)

type tickMsg time.Time

// Model is the bubbletea model of the debug board. It steps the world on
// every tick unless paused.
type Model struct {
	world *sim.World
	board *Board
	ring  *logging.Ring

	paused    bool
	speed     float64
	selected  int
	logOffset int
	width     int
	height    int
}

var _ tea.Model = Model{}

// New returns a board over world. board must be the reporter the world's
// agents export to; ring may be nil.
func New(world *sim.World, board *Board, ring *logging.Ring) Model {
	return Model{
		world: world,
		board: board,
		ring:  ring,
		speed: 1,
	}
}

// Paused reports whether the simulation is paused.
func (m Model) Paused() bool { return m.paused }

// Speed returns the simulation speed multiplier.
func (m Model) Speed() float64 { return m.speed }

// Selected returns the index of the NPC whose awareness is shown.
func (m Model) Selected() int { return m.selected }

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval(), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) interval() time.Duration {
	return time.Duration(float64(m.world.Settings().Tick) / m.speed)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if !m.paused {
			m.world.Step()
		}
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case " ", "p":
			m.paused = !m.paused
		case "n":
			if m.paused {
				m.world.Step()
			}
		case "+", "=":
			m.speed = min(maxSpeed, m.speed*2)
		case "-", "_":
			m.speed = max(minSpeed, m.speed/2)
		case "tab", "right", "l":
			if n := len(m.world.NPCs()); n > 0 {
				m.selected = (m.selected + 1) % n
			}
		case "shift+tab", "left", "h":
			if n := len(m.world.NPCs()); n > 0 {
				m.selected = (m.selected + n - 1) % n
			}
		case "up", "k":
			m.logOffset = min(m.logOffset+1, m.maxLogOffset())
		case "down", "j":
			m.logOffset = max(0, m.logOffset-1)
		case "end", "G":
			m.logOffset = 0
		}
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	selected := ""
	npcs := m.world.NPCs()
	if m.selected < len(npcs) {
		selected = npcs[m.selected].Name()
	}

	goals := panelStyle.Render(titleStyle.Render("Goals") + "\n" + m.board.Render(selected))
	aware := panelStyle.Render(titleStyle.Render("Awareness") + "\n" + m.awarenessView())
	body := lipgloss.JoinHorizontal(lipgloss.Top, goals, " ", aware)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		body,
		m.eventsView(lipgloss.Height(body)),
		dimStyle.Render("space pause · n step · +/- speed · tab agent · ↑/↓ scroll · q quit"),
	)
}

func (m Model) headerView() string {
	stats := m.world.Stats()
	state := ""
	if m.paused {
		state = warnStyle.Render(" [paused]")
	}
	return titleStyle.Render("npcmind") + fmt.Sprintf("  t=%.1fs  tick %d  speed x%g  sounds %d",
		m.world.Now().Seconds(), stats.Ticks, m.speed, stats.Sounds) + state
}

func (m Model) awarenessView() string {
	npcs := m.world.NPCs()
	if len(npcs) == 0 {
		return dimStyle.Render("no agents")
	}
	n := npcs[min(m.selected, len(npcs)-1)]

	v := readAgent(n.Blackboard())
	var s strings.Builder
	fmt.Fprintf(&s, "%s at %s", selectedStyle.Render(n.Name()), v.position)
	if v.goal != "" {
		fmt.Fprintf(&s, " (%s: %s)", v.goal, v.action)
	}
	if v.lastEvent != awareness.EventNone {
		fmt.Fprintf(&s, "\n%s %s %s", dimStyle.Render("last"), v.lastEvent, v.lastKey)
	}
	records := v.records
	if len(records) == 0 {
		s.WriteString("\n" + dimStyle.Render("nothing sensed"))
		return s.String()
	}
	fmt.Fprintf(&s, "\n%-10s %-10s %-14s %5s  %s", "key", "target", "band", "score", "position")
	for _, r := range records {
		target := string(r.Target)
		if target == "" {
			target = "?"
		}
		fmt.Fprintf(&s, "\n%-10s %-10s %-14s %5.2f  %s", r.Key, target, r.Band(), r.Score, r.Position)
	}
	return s.String()
}

func (m Model) logLines() int {
	return defaultLogLines
}

func (m Model) maxLogOffset() int {
	if m.ring == nil {
		return 0
	}
	return max(0, m.ring.Len()-m.logLines())
}

func (m Model) eventsView(bodyHeight int) string {
	lines := m.logLines()
	if m.height > 0 {
		lines = max(1, m.height-bodyHeight-chromeLines)
	}
	if m.ring == nil {
		return dimStyle.Render("event log disabled")
	}

	entries := m.ring.Recent(0)
	offset := min(m.logOffset, max(0, len(entries)-lines))
	end := len(entries) - offset
	start := max(0, end-lines)

	rows := make([]string, 0, lines)
	for _, e := range entries[start:end] {
		rows = append(rows, formatEntry(e))
	}
	for len(rows) < lines {
		rows = append(rows, "")
	}
	text := strings.Join(rows, "\n")
	if m.width > 2 {
		text = lipgloss.NewStyle().MaxWidth(m.width - 2).Render(text)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, gutter(len(entries), lines, start), " ", text)
}

func formatEntry(e logging.Entry) string {
	line := e.Time.Format("15:04:05") + " " + e.String()
	switch {
	case e.Level >= slog.LevelError:
		return errorStyle.Render(line)
	case e.Level >= slog.LevelWarn:
		return warnStyle.Render(line)
	default:
		return line
	}
}
