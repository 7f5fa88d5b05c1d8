package awareness

import (
	"math"
	"time"

	"github.com/joeycumines/npcmind/internal/geom"
)

// Score boundaries.
const (
	MinScore      = 0.0
	DetectedScore = 1.0
	MaxScore      = 2.0
)

// Key identifies a record. Vision and proximity reports are keyed by target,
// hearing reports by the identity of the sound source.
type Key string

// TargetID identifies a detectable entity. The empty TargetID means the
// identity is unknown, e.g. for sound-only evidence.
type TargetID string

// Band classifies a score.
type Band int

const (
	BandUntracked Band = iota
	BandSuspicious
	BandDetected
	BandFullyDetected
)

// BandOf returns the band a score falls in.
func BandOf(score float64) Band {
	switch {
	case score >= MaxScore:
		return BandFullyDetected
	case score >= DetectedScore:
		return BandDetected
	case score > MinScore:
		return BandSuspicious
	default:
		return BandUntracked
	}
}

func (b Band) String() string {
	switch b {
	case BandUntracked:
		return "untracked"
	case BandSuspicious:
		return "suspicious"
	case BandDetected:
		return "detected"
	case BandFullyDetected:
		return "fully-detected"
	default:
		return "unknown"
	}
}

// Record is the fused awareness state for one key.
type Record struct {
	Key        Key
	Target     TargetID
	Position   geom.Vec3
	LastSensed time.Duration
	Score      float64
}

// Band returns the band of the record's score.
func (r Record) Band() Band {
	return BandOf(r.Score)
}

// LocationTrusted reports whether Position may be treated as the target's
// actual location.
func (r Record) LocationTrusted() bool {
	return r.Score >= DetectedScore
}

func (r *Record) update(target TargetID, position geom.Vec3, now time.Duration, delta, floor float64) Event {
	old := r.Score
	if target != "" {
		r.Target = target
	}
	r.Position = position
	r.LastSensed = now
	r.Score = clampScore(math.Max(r.Score, floor) + delta)
	return raised(old, r.Score)
}

// decay returns the crossing event, if any, and whether the record is spent.
// A record inside the grace window is not modified at all.
func (r *Record) decay(now, grace time.Duration, amount float64) (Event, bool) {
	if now-r.LastSensed < grace {
		return EventNone, false
	}
	old := r.Score
	r.Score = clampScore(old - amount)
	return lowered(old, r.Score), r.Score <= MinScore
}

func raised(old, cur float64) Event {
	crossed := (old < MaxScore && cur >= MaxScore) ||
		(old < DetectedScore && cur >= DetectedScore) ||
		old <= MinScore
	if !crossed {
		return EventNone
	}
	switch {
	case cur >= MaxScore:
		return EventFullyDetected
	case cur >= DetectedScore:
		return EventDetected
	default:
		return EventSuspicious
	}
}

func lowered(old, cur float64) Event {
	switch {
	case cur <= MinScore:
		return EventFullyLost
	case old >= DetectedScore && cur < DetectedScore:
		return EventLostDetect
	case old >= MaxScore && cur < MaxScore:
		return EventLostSuspicion
	default:
		return EventNone
	}
}

// clampScore pins v to [MinScore, MaxScore]. The lower bound is returned
// exactly, so removal checks never need an epsilon. NaN collapses to
// MinScore.
func clampScore(v float64) float64 {
	switch {
	case math.IsNaN(v), v <= MinScore:
		return MinScore
	case v >= MaxScore:
		return MaxScore
	default:
		return v
	}
}
