package goap

import (
	"fmt"
	"sort"

	bt "github.com/joeycumines/go-behaviortree"
	pabtpkg "github.com/joeycumines/go-pabt"
	"github.com/joeycumines/npcmind/internal/blackboard"
)

var (
	_ pabtpkg.IState    = (*Catalog)(nil)
	_ pabtpkg.IAction   = (*planAction)(nil)
	_ pabtpkg.Condition = goalCondition{}
	_ pabtpkg.Effect    = goalEffect{}
)

// Catalog is the set of actions available to one agent, exposed as a PA-BT
// state over the agent's blackboard. The state variable of a goal kind is set
// when an action supporting it runs, and cleared at the start of every tick.
type Catalog struct {
	bb      *blackboard.Blackboard
	actions []*planAction
}

// NewCatalog builds a catalog backed by bb. Action order is significant for
// cost ties. A nil bb gets a private blackboard.
func NewCatalog(bb *blackboard.Blackboard, actions ...Action) *Catalog {
	if bb == nil {
		bb = new(blackboard.Blackboard)
	}
	c := &Catalog{bb: bb}
	for _, a := range actions {
		if a == nil {
			panic("goap.NewCatalog: nil action")
		}
		c.actions = append(c.actions, newPlanAction(bb, a))
	}
	return c
}

// Blackboard returns the backing blackboard.
func (c *Catalog) Blackboard() *blackboard.Blackboard {
	return c.bb
}

// Len returns the number of actions.
func (c *Catalog) Len() int {
	return len(c.actions)
}

// Variable implements pabtpkg.IState. Keys must be strings; missing keys
// yield (nil, nil).
func (c *Catalog) Variable(key any) (any, error) {
	k, ok := key.(string)
	if !ok {
		return nil, fmt.Errorf("unsupported key type: %T", key)
	}
	return c.bb.Get(k), nil
}

// Actions implements pabtpkg.IState. An action is relevant if one of its
// effects has the failed condition's key and satisfies it. Relevant actions
// are ordered by cost, keeping catalog order on ties, so the plan falls back
// from the cheapest. A nil condition returns every action in catalog order.
func (c *Catalog) Actions(failed pabtpkg.Condition) ([]pabtpkg.IAction, error) {
	type ranked struct {
		action *planAction
		cost   float64
	}
	found := make([]ranked, 0, len(c.actions))
	for _, a := range c.actions {
		if failed == nil {
			found = append(found, ranked{action: a})
		} else if relevant(a, failed) {
			found = append(found, ranked{action: a, cost: a.action.Cost()})
		}
	}
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].cost < found[j].cost
	})
	out := make([]pabtpkg.IAction, 0, len(found))
	for _, r := range found {
		out = append(out, r.action)
	}
	return out, nil
}

func relevant(a pabtpkg.IAction, failed pabtpkg.Condition) bool {
	for _, e := range a.Effects() {
		if e.Key() == failed.Key() && failed.Match(e.Value()) {
			return true
		}
	}
	return false
}

// best returns the cheapest action supporting kind, or nil.
func (c *Catalog) best(kind GoalKind) *planAction {
	found, _ := c.Actions(Achieve(kind))
	if len(found) == 0 {
		return nil
	}
	return found[0].(*planAction)
}

// clearServiced resets every goal variable ahead of a tick.
func (c *Catalog) clearServiced() {
	for _, a := range c.actions {
		for _, e := range a.effects {
			c.bb.Delete(e.Key().(string))
		}
	}
}

// servicedKey is the blackboard variable set while an action supporting kind
// runs.
func servicedKey(kind GoalKind) string {
	return "goap.serviced." + kind.String()
}

// Achieve returns the condition "an action serviced kind this tick".
func Achieve(kind GoalKind) pabtpkg.Condition {
	return goalCondition{kind: kind}
}

type goalCondition struct {
	kind GoalKind
}

func (c goalCondition) Key() any { return servicedKey(c.kind) }

func (c goalCondition) Match(value any) bool {
	v, _ := value.(bool)
	return v
}

type goalEffect struct {
	kind GoalKind
}

func (e goalEffect) Key() any   { return servicedKey(e.kind) }
func (e goalEffect) Value() any { return true }

// planAction adapts an Action to pabtpkg.IAction. Its node ticks the action,
// marks its goal kinds serviced and stays Running; actions finish only by
// being deactivated.
type planAction struct {
	action  Action
	effects pabtpkg.Effects
	node    bt.Node
}

func newPlanAction(bb *blackboard.Blackboard, a Action) *planAction {
	p := &planAction{action: a}
	seen := make(map[GoalKind]bool)
	for _, k := range a.SupportedGoals() {
		if !seen[k] {
			seen[k] = true
			p.effects = append(p.effects, goalEffect{kind: k})
		}
	}
	p.node = bt.New(func(children []bt.Node) (bt.Status, error) {
		p.action.OnTick()
		for _, e := range p.effects {
			bb.Set(e.Key().(string), e.Value())
		}
		return bt.Running, nil
	})
	return p
}

func (p *planAction) Conditions() []pabtpkg.IConditions { return nil }
func (p *planAction) Effects() pabtpkg.Effects          { return p.effects }
func (p *planAction) Node() bt.Node                     { return p.node }
