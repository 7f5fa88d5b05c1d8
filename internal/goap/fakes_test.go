package goap

import "fmt"

type journal struct {
	entries []string
}

func (j *journal) add(format string, args ...any) {
	j.entries = append(j.entries, fmt.Sprintf(format, args...))
}

func (j *journal) take() []string {
	out := j.entries
	j.entries = nil
	return out
}

type fakeGoal struct {
	name     string
	kind     GoalKind
	priority int
	runnable bool
	ticks    int
	log      *journal
}

func (g *fakeGoal) Kind() GoalKind { return g.kind }
func (g *fakeGoal) Name() string   { return g.name }
func (g *fakeGoal) Priority() int  { return g.priority }
func (g *fakeGoal) CanRun() bool   { return g.runnable }
func (g *fakeGoal) OnTick()        { g.ticks++ }

func (g *fakeGoal) OnActivated(a Action) {
	g.log.add("%s.activated(%s)", g.name, a.Name())
}

func (g *fakeGoal) OnDeactivated() {
	g.log.add("%s.deactivated", g.name)
}

type fakeAction struct {
	name  string
	kinds []GoalKind
	cost  float64
	ticks int
	log   *journal
}

func (a *fakeAction) Name() string               { return a.name }
func (a *fakeAction) SupportedGoals() []GoalKind { return a.kinds }
func (a *fakeAction) Cost() float64              { return a.cost }

func (a *fakeAction) OnActivated(g Goal) {
	a.log.add("%s.activated(%s)", a.name, g.Name())
}

func (a *fakeAction) OnDeactivated() {
	a.log.add("%s.deactivated", a.name)
}

func (a *fakeAction) OnTick() {
	a.ticks++
	a.log.add("%s.tick", a.name)
}
