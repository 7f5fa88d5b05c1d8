package agent

import (
	"github.com/joeycumines/npcmind/internal/awareness"
	"github.com/joeycumines/npcmind/internal/blackboard"
)

func (a *Agent) OnSuspicious(r awareness.Record) { a.crossed(awareness.EventSuspicious, r) }

func (a *Agent) OnDetected(r awareness.Record) { a.crossed(awareness.EventDetected, r) }

func (a *Agent) OnFullyDetected(r awareness.Record) { a.crossed(awareness.EventFullyDetected, r) }

func (a *Agent) OnLostSuspicion(r awareness.Record) { a.crossed(awareness.EventLostSuspicion, r) }

func (a *Agent) OnLostDetect(r awareness.Record) { a.crossed(awareness.EventLostDetect, r) }

func (a *Agent) OnFullyLost(r awareness.Record) { a.crossed(awareness.EventFullyLost, r) }

func (a *Agent) crossed(ev awareness.Event, r awareness.Record) {
	a.bb.Set(blackboard.KeyLastEvent, ev)
	a.bb.Set(blackboard.KeyLastTarget, r.Key)

	level := a.logger.Debug
	if ev == awareness.EventFullyDetected || ev == awareness.EventFullyLost {
		level = a.logger.Info
	}
	level("[Agent] awareness "+ev.String(),
		"key", r.Key,
		"target", r.Target,
		"score", r.Score,
		"position", r.Position.String())

	awareness.Dispatch(a.observer, ev, r)
}
