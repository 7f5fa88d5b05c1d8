package behavior

import (
	"time"

	"github.com/joeycumines/npcmind/internal/awareness"
	"github.com/joeycumines/npcmind/internal/geom"
)

// Mover is the movement capability goals and actions drive.
type Mover interface {
	// MoveTo sets a destination and reports whether it was accepted.
	MoveTo(destination geom.Vec3) bool
	// Cancel stops any current movement.
	Cancel()
	IsMoving() bool
	// AtDestination reports whether the last accepted destination has been
	// reached.
	AtDestination() bool
	Position() geom.Vec3
	// PickLocationInRange returns a reachable location within r of the
	// current position.
	PickLocationInRange(r float64) geom.Vec3
}

// Body is the agent as seen by goals and actions.
type Body interface {
	Mover() Mover
	Awareness() awareness.View
	FrameDelta() time.Duration
}
