// Package termui is the interactive debug board for a running world: the goal
// table of every agent, the awareness records of the selected agent, and the
// most recent log events.
package termui
