package sensor

// Proximity reports every target within range regardless of facing.
type Proximity struct {
	registry   *Registry
	eye        Eye
	rangeLimit float64
}

// NewProximity returns a sensor over registry that reports targets within
// proximityRange of eye.
func NewProximity(registry *Registry, eye Eye, proximityRange float64) *Proximity {
	return &Proximity{registry: registry, eye: eye, rangeLimit: proximityRange}
}

// Sense reports nearby targets to sink and returns how many were reported.
func (p *Proximity) Sense(sink Sink) int {
	from := p.eye.EyeLocation()
	self := p.eye.Self()
	n := 0
	for _, d := range p.registry.All() {
		if d.ID() == self {
			continue
		}
		pos := d.Position()
		if pos.Distance(from) > p.rangeLimit {
			continue
		}
		sink.ReportProximity(d.ID(), pos)
		n++
	}
	return n
}
