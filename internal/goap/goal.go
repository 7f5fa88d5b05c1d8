package goap

// GoalKind tags the closed set of goals an agent can pursue.
type GoalKind int

const (
	GoalIdle GoalKind = iota
	GoalWander
	GoalChase
)

// GoalKinds lists every kind in declaration order.
var GoalKinds = []GoalKind{GoalIdle, GoalWander, GoalChase}

func (k GoalKind) String() string {
	switch k {
	case GoalIdle:
		return "idle"
	case GoalWander:
		return "wander"
	case GoalChase:
		return "chase"
	default:
		return "unknown"
	}
}

// Goal is a behavior intent. Priority is recomputed every tick; a negative
// priority makes the goal ineligible.
type Goal interface {
	Kind() GoalKind
	Name() string
	Priority() int
	CanRun() bool
	// OnTick is called every tick whether or not the goal is active.
	OnTick()
	OnActivated(action Action)
	OnDeactivated()
}

// Action is executable behavior that satisfies one or more goal kinds. Lower
// cost is preferred.
type Action interface {
	Name() string
	SupportedGoals() []GoalKind
	Cost() float64
	OnActivated(goal Goal)
	OnDeactivated()
	// OnTick is called once per tick while the action is active.
	OnTick()
}

// Supports reports whether a lists kind among its supported goals.
func Supports(a Action, kind GoalKind) bool {
	for _, k := range a.SupportedGoals() {
		if k == kind {
			return true
		}
	}
	return false
}
