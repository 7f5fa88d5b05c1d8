package behavior

import (
	bt "github.com/joeycumines/go-behaviortree"
	"github.com/joeycumines/npcmind/internal/geom"
	"github.com/joeycumines/npcmind/internal/goap"
)

var (
	_ goap.Action = (*IdleAction)(nil)
	_ goap.Action = (*WanderAction)(nil)
	_ goap.Action = (*ChaseAction)(nil)
)

// actionBase tracks the linked goal.
type actionBase struct {
	body   Body
	linked goap.Goal
}

func (a *actionBase) Cost() float64 { return 0 }

func (a *actionBase) OnActivated(g goap.Goal) { a.linked = g }

func (a *actionBase) OnDeactivated() { a.linked = nil }

func (a *actionBase) OnTick() {}

// leaf wraps fn as a behavior tree leaf: true is Success, false Failure.
func leaf(fn func() bool) bt.Node {
	return bt.New(func([]bt.Node) (bt.Status, error) {
		if fn() {
			return bt.Success, nil
		}
		return bt.Failure, nil
	})
}

// IdleAction stops the agent and waits.
type IdleAction struct {
	actionBase
}

func NewIdleAction(body Body) *IdleAction {
	return &IdleAction{actionBase{body: body}}
}

func (a *IdleAction) Name() string                    { return "Idle" }
func (a *IdleAction) SupportedGoals() []goap.GoalKind { return []goap.GoalKind{goap.GoalIdle} }

func (a *IdleAction) OnActivated(g goap.Goal) {
	a.actionBase.OnActivated(g)
	a.body.Mover().Cancel()
}

// WanderAction walks to random locations within range, picking a new one
// each time the previous is reached.
type WanderAction struct {
	actionBase
	searchRange float64
	destination geom.Vec3
	node        bt.Node
}

func NewWanderAction(body Body, s WanderSettings) *WanderAction {
	a := &WanderAction{actionBase: actionBase{body: body}, searchRange: s.SearchRange}
	a.node = bt.New(bt.Selector,
		leaf(func() bool { return !a.body.Mover().AtDestination() }),
		leaf(a.pick),
	)
	return a
}

func (a *WanderAction) Name() string                    { return "Wander" }
func (a *WanderAction) SupportedGoals() []goap.GoalKind { return []goap.GoalKind{goap.GoalWander} }

// Destination returns the location last picked.
func (a *WanderAction) Destination() geom.Vec3 { return a.destination }

func (a *WanderAction) OnActivated(g goap.Goal) {
	a.actionBase.OnActivated(g)
	a.pick()
}

func (a *WanderAction) OnTick() {
	_, _ = a.node.Tick()
}

func (a *WanderAction) pick() bool {
	m := a.body.Mover()
	a.destination = m.PickLocationInRange(a.searchRange)
	return m.MoveTo(a.destination)
}

// ChaseAction moves toward the linked goal's target every tick.
type ChaseAction struct {
	actionBase
	goal   Targeter
	target geom.Vec3
	node   bt.Node
}

func NewChaseAction(body Body) *ChaseAction {
	a := &ChaseAction{actionBase: actionBase{body: body}}
	a.node = bt.New(bt.Sequence,
		leaf(a.acquire),
		leaf(func() bool { return a.body.Mover().MoveTo(a.target) }),
	)
	return a
}

func (a *ChaseAction) Name() string                    { return "Chase" }
func (a *ChaseAction) SupportedGoals() []goap.GoalKind { return []goap.GoalKind{goap.GoalChase} }

func (a *ChaseAction) OnActivated(g goap.Goal) {
	a.actionBase.OnActivated(g)
	a.goal, _ = g.(Targeter)
	_, _ = a.node.Tick()
}

func (a *ChaseAction) OnDeactivated() {
	a.actionBase.OnDeactivated()
	a.goal = nil
}

func (a *ChaseAction) OnTick() {
	_, _ = a.node.Tick()
}

func (a *ChaseAction) acquire() bool {
	if a.goal == nil {
		return false
	}
	pos, ok := a.goal.MoveTarget()
	if ok {
		a.target = pos
	}
	return ok
}
