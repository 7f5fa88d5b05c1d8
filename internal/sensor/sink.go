package sensor

import (
	"github.com/joeycumines/npcmind/internal/awareness"
	"github.com/joeycumines/npcmind/internal/geom"
)

// Sink receives sensor reports.
type Sink interface {
	ReportVision(target awareness.TargetID, position geom.Vec3, delta, floor float64) awareness.Event
	ReportHearing(source awareness.Key, position geom.Vec3, category awareness.SoundCategory, intensity float64) awareness.Event
	ReportProximity(target awareness.TargetID, position geom.Vec3) awareness.Event
}

var _ Sink = (*awareness.Engine)(nil)

// Eye is the sensing agent's own geometry.
type Eye interface {
	// Self is the agent's own target ID, skipped by every sensor.
	Self() awareness.TargetID
	EyeLocation() geom.Vec3
	// EyeDirection is a unit vector.
	EyeDirection() geom.Vec3
}
