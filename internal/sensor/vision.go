package sensor

import (
	"math"
	"time"

	"github.com/joeycumines/npcmind/internal/awareness"
	"github.com/joeycumines/npcmind/internal/geom"
)

// LineOfSight reports whether target at to is visible from from.
type LineOfSight func(from, to geom.Vec3, target awareness.TargetID) bool

// VisionSettings configures a Vision sensor.
type VisionSettings struct {
	Range float64
	// ConeAngle is the half angle of the view cone, in degrees.
	ConeAngle float64
	Floor     float64
	BuildRate float64
	Curve     string
}

// DefaultVisionSettings returns the stock tuning.
func DefaultVisionSettings() VisionSettings {
	return VisionSettings{
		Range:     30,
		ConeAngle: 60,
		Floor:     1,
		BuildRate: 10,
		Curve:     DefaultCurve,
	}
}

// Vision reports targets inside the view cone with clear line of sight.
type Vision struct {
	settings VisionSettings
	cosCone  float64
	curve    *Curve
	registry *Registry
	eye      Eye
	los      LineOfSight
}

// NewVision builds a vision sensor. A nil los treats every target in the
// cone as visible.
func NewVision(settings VisionSettings, registry *Registry, eye Eye, los LineOfSight) (*Vision, error) {
	curve, err := NewCurve(settings.Curve)
	if err != nil {
		return nil, err
	}
	return &Vision{
		settings: settings,
		cosCone:  math.Cos(settings.ConeAngle * math.Pi / 180),
		curve:    curve,
		registry: registry,
		eye:      eye,
		los:      los,
	}, nil
}

// Sense reports every visible target to sink and returns how many were seen.
func (v *Vision) Sense(sink Sink, dt time.Duration) int {
	from := v.eye.EyeLocation()
	dir := v.eye.EyeDirection()
	self := v.eye.Self()
	rangeSq := v.settings.Range * v.settings.Range

	seen := 0
	for _, d := range v.registry.All() {
		id := d.ID()
		if id == self {
			continue
		}
		pos := d.Position()
		to := pos.Sub(from)
		if to.LengthSquared() > rangeSq {
			continue
		}
		dot := to.Normalize().Dot(dir)
		if dot < v.cosCone {
			continue
		}
		if v.los != nil && !v.los(from, pos, id) {
			continue
		}
		weight := v.curve.Eval(CurveEnv{Dot: dot, Distance: v.fraction(to.Length())})
		sink.ReportVision(id, pos, weight*v.settings.BuildRate*dt.Seconds(), v.settings.Floor)
		seen++
	}
	return seen
}

func (v *Vision) fraction(distance float64) float64 {
	if v.settings.Range <= 0 {
		return 0
	}
	return distance / v.settings.Range
}
