// Package goap selects and drives an agent's goal and action.
//
// Every tick the Planner refreshes all goals, picks the runnable goal with the
// highest non-negative priority, asks the Catalog for the cheapest action
// supporting that goal's kind, and moves the active pair through the
// activation lifecycle. Only the active action is ticked.
//
// The Catalog is a go-pabt state. Each goal kind has a "serviced" variable,
// and each action advertises the kinds it supports as effects on those
// variables. Activating a goal builds a PA-BT plan for its condition; the
// variables are cleared every tick, so the plan refines to the relevant
// actions, cheapest first, and ticks the selected one through its
// go-behaviortree node.
//
// Exact priority ties keep the goal that appears first in the planner's goal
// list; equal costs keep the action that appears first in the catalog.
package goap
