package goap

import (
	"log/slog"

	bt "github.com/joeycumines/go-behaviortree"
	pabtpkg "github.com/joeycumines/go-pabt"
	"github.com/joeycumines/npcmind/internal/blackboard"
)

// GoalStatus is the presentation state of a goal.
type GoalStatus int

const (
	StatusPaused GoalStatus = iota
	StatusRunning
)

func (s GoalStatus) String() string {
	if s == StatusRunning {
		return "Running"
	}
	return "Paused"
}

// GoalReport is one row of the per-tick goal export.
type GoalReport struct {
	Name     string
	Kind     GoalKind
	Status   GoalStatus
	Priority int
}

// Reporter receives the goal export after every tick. It must not block.
type Reporter interface {
	ReportGoals(agentID string, goals []GoalReport)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(agentID string, goals []GoalReport)

func (f ReporterFunc) ReportGoals(agentID string, goals []GoalReport) {
	f(agentID, goals)
}

// Planner owns the active goal and action of one agent.
type Planner struct {
	id       string
	goals    []Goal
	catalog  *Catalog
	logger   *slog.Logger
	reporter Reporter

	activeGoal   Goal
	activeAction *planAction
	plan         *pabtpkg.IPlan

	warned map[GoalKind]bool
}

// PlannerOption configures a Planner.
type PlannerOption func(*Planner)

// WithReporter sets the goal export target. id identifies the agent in
// reports.
func WithReporter(id string, r Reporter) PlannerOption {
	return func(p *Planner) {
		p.id = id
		p.reporter = r
	}
}

// WithPlannerLogger sets the logger.
func WithPlannerLogger(logger *slog.Logger) PlannerOption {
	return func(p *Planner) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPlanner creates a planner over goals, in priority tie-break order, and
// the actions in catalog.
func NewPlanner(goals []Goal, catalog *Catalog, opts ...PlannerOption) *Planner {
	if catalog == nil {
		catalog = NewCatalog(nil)
	}
	for _, g := range goals {
		if g == nil {
			panic("goap.NewPlanner: nil goal")
		}
	}
	p := &Planner{
		goals:   append([]Goal(nil), goals...),
		catalog: catalog,
		logger:  slog.Default(),
		warned:  make(map[GoalKind]bool),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ActiveGoal returns the active goal, or nil when idle.
func (p *Planner) ActiveGoal() Goal {
	return p.activeGoal
}

// ActiveAction returns the active action, or nil when idle.
func (p *Planner) ActiveAction() Action {
	if p.activeAction == nil {
		return nil
	}
	return p.activeAction.action
}

// Goals returns the goals in tie-break order.
func (p *Planner) Goals() []Goal {
	return append([]Goal(nil), p.goals...)
}

// Catalog returns the planner's catalog.
func (p *Planner) Catalog() *Catalog {
	return p.catalog
}

// Tick runs one planning step.
func (p *Planner) Tick() {
	for _, g := range p.goals {
		g.OnTick()
	}

	goal, action := p.selectBest()
	p.transition(goal, action)

	p.catalog.clearServiced()
	if p.plan != nil {
		status, err := p.tickPlan()
		switch {
		case err != nil:
			p.logger.Error("[Planner] action tick failed",
				"agent", p.id,
				"action", p.activeAction.action.Name(),
				"error", err)
		case status != bt.Running:
			p.logger.Debug("[Planner] action settled",
				"agent", p.id,
				"action", p.activeAction.action.Name(),
				"status", status)
		}
	}

	p.publish()
	p.report()
}

// selectBest returns the winning goal and its cheapest action, or nils.
func (p *Planner) selectBest() (Goal, *planAction) {
	var (
		best     Goal
		priority int
	)
	for _, g := range p.goals {
		if !g.CanRun() {
			continue
		}
		pr := g.Priority()
		if pr < 0 {
			continue
		}
		if best == nil || pr > priority {
			best, priority = g, pr
		}
	}
	if best == nil {
		return nil, nil
	}
	action := p.catalog.best(best.Kind())
	if action == nil {
		if !p.warned[best.Kind()] {
			p.warned[best.Kind()] = true
			p.logger.Warn("[Planner] no action supports goal",
				"agent", p.id,
				"goal", best.Name(),
				"kind", best.Kind())
		}
		return nil, nil
	}
	return best, action
}

func (p *Planner) transition(goal Goal, action *planAction) {
	switch {
	case p.activeGoal == nil:
		if goal == nil {
			return
		}
		p.activate(goal, action)

	case p.activeGoal == goal:
		if p.activeAction == action {
			return
		}
		if p.activeAction != nil {
			p.activeAction.action.OnDeactivated()
		}
		p.activeAction = action
		p.plan = p.newPlan(goal)
		action.action.OnActivated(goal)
		p.logger.Debug("[Planner] action switched",
			"agent", p.id,
			"goal", goal.Name(),
			"action", action.action.Name())

	default:
		if p.activeAction != nil {
			p.activeAction.action.OnDeactivated()
		}
		p.activeGoal.OnDeactivated()
		p.logger.Debug("[Planner] goal deactivated", "agent", p.id, "goal", p.activeGoal.Name())
		p.activeGoal, p.activeAction, p.plan = nil, nil, nil
		if goal != nil {
			p.activate(goal, action)
		}
	}
}

func (p *Planner) activate(goal Goal, action *planAction) {
	p.activeGoal, p.activeAction = goal, action
	p.plan = p.newPlan(goal)
	goal.OnActivated(action.action)
	action.action.OnActivated(goal)
	p.logger.Debug("[Planner] goal activated",
		"agent", p.id,
		"goal", goal.Name(),
		"action", action.action.Name())
}

// maxExpansions bounds the plan ticks spent refining before an action runs.
const maxExpansions = 4

// newPlan builds the PA-BT plan servicing goal. The catalog orders relevant
// actions by cost, so the plan falls back to the selected action first.
func (p *Planner) newPlan(goal Goal) *pabtpkg.IPlan {
	plan, err := pabtpkg.INew(p.catalog, []pabtpkg.IConditions{{Achieve(goal.Kind())}})
	if err != nil {
		p.logger.Error("[Planner] failed to build plan",
			"agent", p.id,
			"goal", goal.Name(),
			"error", err)
		return nil
	}
	return plan
}

// tickPlan ticks the plan until an action node has run. A tick that only
// expands the plan runs no action and is repeated.
func (p *Planner) tickPlan() (bt.Status, error) {
	for range maxExpansions {
		status, err := p.plan.Node().Tick()
		if err != nil || status != bt.Running || p.plan.Running() {
			return status, err
		}
	}
	return bt.Running, nil
}

func (p *Planner) publish() {
	bb := p.catalog.Blackboard()
	if p.activeGoal == nil {
		bb.Delete(blackboard.KeyActiveGoal)
		bb.Delete(blackboard.KeyActiveAction)
		return
	}
	bb.Set(blackboard.KeyActiveGoal, p.activeGoal.Kind())
	bb.Set(blackboard.KeyActiveAction, p.activeAction.action.Name())
}

func (p *Planner) report() {
	if p.reporter == nil {
		return
	}
	rows := make([]GoalReport, 0, len(p.goals))
	for _, g := range p.goals {
		status := StatusPaused
		if g == p.activeGoal {
			status = StatusRunning
		}
		rows = append(rows, GoalReport{
			Name:     g.Name(),
			Kind:     g.Kind(),
			Status:   status,
			Priority: g.Priority(),
		})
	}
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warn("[Planner] reporter panicked", "agent", p.id, "panic", r)
		}
	}()
	p.reporter.ReportGoals(p.id, rows)
}
