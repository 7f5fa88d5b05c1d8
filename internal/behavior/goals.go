package behavior

import (
	"math"

	"github.com/joeycumines/npcmind/internal/awareness"
	"github.com/joeycumines/npcmind/internal/geom"
	"github.com/joeycumines/npcmind/internal/goap"
)

var (
	_ goap.Goal = (*IdleGoal)(nil)
	_ goap.Goal = (*WanderGoal)(nil)
	_ goap.Goal = (*ChaseGoal)(nil)
)

// Targeter is implemented by goals that carry a destination for their action.
type Targeter interface {
	MoveTarget() (geom.Vec3, bool)
}

// goalBase tracks the linked action.
type goalBase struct {
	body   Body
	linked goap.Action
}

func (g *goalBase) OnTick() {}

func (g *goalBase) OnActivated(a goap.Action) { g.linked = a }

func (g *goalBase) OnDeactivated() { g.linked = nil }

// Linked returns the action currently pursuing the goal, if any.
func (g *goalBase) Linked() goap.Action { return g.linked }

// IdleGoal is always runnable at a fixed priority.
type IdleGoal struct {
	goalBase
	priority int
}

// NewIdleGoal returns an idle goal at the configured priority.
func NewIdleGoal(body Body, s IdleSettings) *IdleGoal {
	return &IdleGoal{goalBase: goalBase{body: body}, priority: s.Priority}
}

func (g *IdleGoal) Kind() goap.GoalKind { return goap.GoalIdle }
func (g *IdleGoal) Name() string        { return "Idle" }
func (g *IdleGoal) Priority() int       { return g.priority }
func (g *IdleGoal) CanRun() bool        { return true }

// WanderGoal builds an urge to move while the agent stands still.
type WanderGoal struct {
	goalBase
	settings WanderSettings
	urge     float64
}

// NewWanderGoal returns a wander goal whose urge starts at zero.
func NewWanderGoal(body Body, s WanderSettings) *WanderGoal {
	return &WanderGoal{goalBase: goalBase{body: body}, settings: s}
}

func (g *WanderGoal) Kind() goap.GoalKind { return goap.GoalWander }
func (g *WanderGoal) Name() string        { return "Wander" }
func (g *WanderGoal) CanRun() bool        { return true }

// Urge returns the current unfloored urge.
func (g *WanderGoal) Urge() float64 { return g.urge }

// Priority is the urge rounded down.
func (g *WanderGoal) Priority() int {
	return int(math.Floor(g.urge))
}

func (g *WanderGoal) OnTick() {
	dt := g.body.FrameDelta().Seconds()
	if g.body.Mover().IsMoving() {
		g.urge -= g.settings.DecayRate * dt
	} else {
		g.urge += g.settings.BuildRate * dt
	}
	if g.urge < 0 {
		g.urge = 0
	}
}

func (g *WanderGoal) OnActivated(a goap.Action) {
	g.goalBase.OnActivated(a)
	g.urge = float64(g.settings.Priority)
}

// ChaseGoal pursues the strongest sufficiently-aware record. A held record is
// kept until its score drops below StopAwareness or it is forgotten.
type ChaseGoal struct {
	goalBase
	settings ChaseSettings
	held     awareness.Key
	target   geom.Vec3
}

// NewChaseGoal returns a chase goal that holds no record until it ticks.
func NewChaseGoal(body Body, s ChaseSettings) *ChaseGoal {
	return &ChaseGoal{goalBase: goalBase{body: body}, settings: s}
}

func (g *ChaseGoal) Kind() goap.GoalKind { return goap.GoalChase }
func (g *ChaseGoal) Name() string        { return "Chase" }
func (g *ChaseGoal) CanRun() bool        { return g.held != "" }

// Priority is -1 while nothing is held.
func (g *ChaseGoal) Priority() int {
	if !g.CanRun() {
		return -1
	}
	return g.settings.Priority
}

// Held returns the key of the record being chased.
func (g *ChaseGoal) Held() (awareness.Key, bool) {
	return g.held, g.held != ""
}

// MoveTarget returns the last known position of the held record.
func (g *ChaseGoal) MoveTarget() (geom.Vec3, bool) {
	return g.target, g.held != ""
}

func (g *ChaseGoal) OnTick() {
	view := g.body.Awareness()
	if g.held != "" {
		r, ok := view.Lookup(g.held)
		if !ok || r.Score < g.settings.StopAwareness {
			g.held = ""
		} else {
			g.target = r.Position
		}
	}
	if g.held == "" {
		if r, ok := view.Strongest(); ok && r.Score >= g.settings.MinAwareness {
			g.held, g.target = r.Key, r.Position
		}
	}
}
