package behavior

import (
	"github.com/joeycumines/npcmind/internal/blackboard"
	"github.com/joeycumines/npcmind/internal/goap"
)

// Goals returns the goal catalog in tie-break order.
func Goals(body Body, s Settings) []goap.Goal {
	return []goap.Goal{
		NewIdleGoal(body, s.Idle),
		NewWanderGoal(body, s.Wander),
		NewChaseGoal(body, s.Chase),
	}
}

// Actions returns the action catalog.
func Actions(body Body, s Settings) []goap.Action {
	return []goap.Action{
		NewIdleAction(body),
		NewWanderAction(body, s.Wander),
		NewChaseAction(body),
	}
}

// NewPlanner builds a planner over the full catalog.
func NewPlanner(body Body, s Settings, bb *blackboard.Blackboard, opts ...goap.PlannerOption) *goap.Planner {
	return goap.NewPlanner(Goals(body, s), goap.NewCatalog(bb, Actions(body, s)...), opts...)
}
