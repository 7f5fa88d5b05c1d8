// Package behavior implements the closed goal and action catalog: Idle,
// Wander and Chase.
//
// Goals and actions read the agent through a Body and move it through a
// Mover. Action bodies are go-behaviortree nodes.
package behavior
