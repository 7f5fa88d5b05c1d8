package termui

import (
	"github.com/joeycumines/npcmind/internal/awareness"
	"github.com/joeycumines/npcmind/internal/blackboard"
	"github.com/joeycumines/npcmind/internal/geom"
	"github.com/joeycumines/npcmind/internal/goap"
)

// agentView is one agent's published state, as read from its blackboard.
type agentView struct {
	position  geom.Vec3
	goal      string
	action    string
	records   []awareness.Record
	lastEvent awareness.Event
	lastKey   awareness.Key
}

func readAgent(bb *blackboard.Blackboard) agentView {
	snap := bb.Snapshot()
	var v agentView
	v.position, _ = snap[blackboard.KeyPosition].(geom.Vec3)
	if kind, ok := snap[blackboard.KeyActiveGoal].(goap.GoalKind); ok {
		v.goal = kind.String()
	}
	v.action, _ = snap[blackboard.KeyActiveAction].(string)
	v.records, _ = snap[blackboard.KeyRecords].([]awareness.Record)
	v.lastEvent, _ = snap[blackboard.KeyLastEvent].(awareness.Event)
	v.lastKey, _ = snap[blackboard.KeyLastTarget].(awareness.Key)
	return v
}
