package sim

import (
	"math"
	"math/rand"
	"time"

	"github.com/joeycumines/npcmind/internal/behavior"
	"github.com/joeycumines/npcmind/internal/geom"
)

var _ behavior.Mover = (*Walker)(nil)

// Walker moves in a straight line toward its destination at a fixed speed.
// Positions stay inside a square of half-width Bounds centered on the origin,
// on the Y=0 plane.
type Walker struct {
	pos     geom.Vec3
	dest    geom.Vec3
	facing  geom.Vec3
	speed   float64
	arrive  float64
	bounds  float64
	moving  bool
	arrived bool
	rng     *rand.Rand
}

// NewWalker places a walker at pos. A bounds of zero or less disables
// clamping.
func NewWalker(pos geom.Vec3, speed, arriveRadius, bounds float64, rng *rand.Rand) *Walker {
	w := &Walker{
		speed:  speed,
		arrive: arriveRadius,
		bounds: bounds,
		facing: geom.Vec3{Z: 1},
		rng:    rng,
	}
	w.pos = w.clamp(pos)
	w.dest = w.pos
	return w
}

// MoveTo cancels the current movement, turns toward destination and heads
// for it. A destination within the arrive radius counts as reached without
// moving. It is rejected when the walker cannot move.
func (w *Walker) MoveTo(destination geom.Vec3) bool {
	w.Cancel()
	if w.speed <= 0 {
		return false
	}
	w.dest = w.clamp(destination)
	w.arrived = false
	w.moving = true
	w.face(w.dest)
	if w.within() {
		w.stop()
	}
	return true
}

// Cancel stops in place. The destination is kept but not reached.
func (w *Walker) Cancel() {
	w.moving = false
}

// IsMoving reports whether the walker is heading for its destination.
func (w *Walker) IsMoving() bool { return w.moving }

// AtDestination reports whether the last destination was reached.
func (w *Walker) AtDestination() bool { return w.arrived }

// Position returns the current position.
func (w *Walker) Position() geom.Vec3 { return w.pos }

// Facing is the direction of the last step taken or destination accepted.
func (w *Walker) Facing() geom.Vec3 { return w.facing }

// Destination returns the last accepted destination.
func (w *Walker) Destination() geom.Vec3 { return w.dest }

// SetSpeed changes the walking speed.
func (w *Walker) SetSpeed(speed float64) { w.speed = speed }

// PickLocationInRange picks a point up to r away on each horizontal axis.
func (w *Walker) PickLocationInRange(r float64) geom.Vec3 {
	offset := geom.Vec3{
		X: (w.rng.Float64()*2 - 1) * r,
		Z: (w.rng.Float64()*2 - 1) * r,
	}
	return w.clamp(w.pos.Add(offset))
}

// Step advances the walker by dt and returns the distance covered.
func (w *Walker) Step(dt time.Duration) float64 {
	if !w.moving {
		return 0
	}
	next := w.pos.MoveTowards(w.dest, w.speed*dt.Seconds())
	moved := next.Sub(w.pos)
	w.face(next)
	w.pos = next
	if w.within() {
		w.stop()
	}
	return moved.Length()
}

func (w *Walker) within() bool {
	return w.pos.Distance(w.dest) <= w.arrive
}

func (w *Walker) face(p geom.Vec3) {
	if dir := p.Sub(w.pos).Normalize(); dir != geom.Zero {
		w.facing = dir
	}
}

func (w *Walker) stop() {
	w.moving = false
	w.arrived = true
}

func (w *Walker) clamp(p geom.Vec3) geom.Vec3 {
	if w.bounds <= 0 {
		return p
	}
	return geom.Vec3{
		X: math.Max(-w.bounds, math.Min(w.bounds, p.X)),
		Y: 0,
		Z: math.Max(-w.bounds, math.Min(w.bounds, p.Z)),
	}
}
