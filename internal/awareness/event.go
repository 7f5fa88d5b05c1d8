package awareness

// Event is a band crossing produced by a report or a decay step.
type Event int

const (
	EventNone Event = iota
	EventSuspicious
	EventDetected
	EventFullyDetected
	EventLostSuspicion
	EventLostDetect
	EventFullyLost
)

func (e Event) String() string {
	switch e {
	case EventNone:
		return "none"
	case EventSuspicious:
		return "suspicious"
	case EventDetected:
		return "detected"
	case EventFullyDetected:
		return "fully-detected"
	case EventLostSuspicion:
		return "lost-suspicion"
	case EventLostDetect:
		return "lost-detect"
	case EventFullyLost:
		return "fully-lost"
	default:
		return "unknown"
	}
}

// Raised reports whether e is an upward crossing.
func (e Event) Raised() bool {
	return e >= EventSuspicious && e <= EventFullyDetected
}

// Lowered reports whether e is a downward crossing.
func (e Event) Lowered() bool {
	return e >= EventLostSuspicion && e <= EventFullyLost
}

// Listener receives crossing notifications from an Engine. The record passed
// is a copy taken right after the change that caused the event.
type Listener interface {
	OnSuspicious(r Record)
	OnDetected(r Record)
	OnFullyDetected(r Record)
	OnLostSuspicion(r Record)
	OnLostDetect(r Record)
	OnFullyLost(r Record)
}

// NopListener ignores every notification. Embed it to implement a subset.
type NopListener struct{}

func (NopListener) OnSuspicious(Record)    {}
func (NopListener) OnDetected(Record)      {}
func (NopListener) OnFullyDetected(Record) {}
func (NopListener) OnLostSuspicion(Record) {}
func (NopListener) OnLostDetect(Record)    {}
func (NopListener) OnFullyLost(Record)     {}

var _ Listener = NopListener{}

// ListenerFunc adapts a single function to Listener.
type ListenerFunc func(e Event, r Record)

func (f ListenerFunc) OnSuspicious(r Record)    { f(EventSuspicious, r) }
func (f ListenerFunc) OnDetected(r Record)      { f(EventDetected, r) }
func (f ListenerFunc) OnFullyDetected(r Record) { f(EventFullyDetected, r) }
func (f ListenerFunc) OnLostSuspicion(r Record) { f(EventLostSuspicion, r) }
func (f ListenerFunc) OnLostDetect(r Record)    { f(EventLostDetect, r) }
func (f ListenerFunc) OnFullyLost(r Record)     { f(EventFullyLost, r) }

// Dispatch delivers e to the matching Listener method. EventNone and a nil
// listener are no-ops.
func Dispatch(l Listener, e Event, r Record) {
	if l == nil {
		return
	}
	switch e {
	case EventSuspicious:
		l.OnSuspicious(r)
	case EventDetected:
		l.OnDetected(r)
	case EventFullyDetected:
		l.OnFullyDetected(r)
	case EventLostSuspicion:
		l.OnLostSuspicion(r)
	case EventLostDetect:
		l.OnLostDetect(r)
	case EventFullyLost:
		l.OnFullyLost(r)
	}
}

// SoundCategory tags a hearing report.
type SoundCategory int

const (
	SoundFootstep SoundCategory = iota
	SoundJump
)

func (c SoundCategory) String() string {
	switch c {
	case SoundFootstep:
		return "footstep"
	case SoundJump:
		return "jump"
	default:
		return "unknown"
	}
}
