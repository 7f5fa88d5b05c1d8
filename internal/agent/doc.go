// Package agent assembles one NPC: an awareness engine fed by vision, hearing
// and proximity sensors, and a goal planner driving a movement collaborator.
//
// An Agent is single-threaded. Tick runs the whole perception and decision
// pipeline for one frame:
//
//	BeginFrame -> hearing drain -> vision -> proximity -> decay -> planner
//
// Crossing notifications from the engine land on the Agent itself, which
// records the latest event on its blackboard and forwards it to an optional
// observer.
package agent
