// Package sensor turns world state into awareness reports.
//
// A Registry enumerates detectable targets and a HearingBus fans sounds out
// to every subscribed Hearing sensor. Vision, Hearing and Proximity report
// into a Sink, normally an awareness.Engine, once per tick. Geometry beyond
// range and cone tests is delegated: line of sight is a LineOfSight callback.
package sensor
