package sensor

import (
	"sync"

	"github.com/joeycumines/npcmind/internal/awareness"
	"github.com/joeycumines/npcmind/internal/geom"
)

// Sound is one emitted noise.
type Sound struct {
	Source    awareness.Key
	Position  geom.Vec3
	Category  awareness.SoundCategory
	Intensity float64
}

// Listener receives sounds from a HearingBus.
type Listener interface {
	OnSound(s Sound)
}

// HearingBus delivers every emitted sound to every subscriber, in
// subscription order.
type HearingBus struct {
	mu     sync.Mutex
	nextID int
	subs   []subscription
}

type subscription struct {
	id int
	l  Listener
}

// NewHearingBus returns an empty bus.
func NewHearingBus() *HearingBus {
	return &HearingBus{}
}

// Subscribe registers l and returns a function that removes it.
func (b *HearingBus) Subscribe(l Listener) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, l: l})
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Emit delivers s to every subscriber.
func (b *HearingBus) Emit(s Sound) {
	b.mu.Lock()
	subs := append([]subscription(nil), b.subs...)
	b.mu.Unlock()
	for _, sub := range subs {
		sub.l.OnSound(s)
	}
}

// Len returns the number of subscribers.
func (b *HearingBus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Hearing queues sounds within range until the owning agent drains them on
// its next tick.
type Hearing struct {
	eye         Eye
	rangeLimit  float64
	mu          sync.Mutex
	queue       []Sound
	unsubscribe func()
}

// NewHearing subscribes a hearing sensor to bus. A nil bus yields a sensor
// that only hears sounds passed to OnSound directly.
func NewHearing(bus *HearingBus, eye Eye, hearingRange float64) *Hearing {
	h := &Hearing{eye: eye, rangeLimit: hearingRange}
	if bus != nil {
		h.unsubscribe = bus.Subscribe(h)
	}
	return h
}

// OnSound implements Listener.
func (h *Hearing) OnSound(s Sound) {
	if s.Source == awareness.Key(h.eye.Self()) {
		return
	}
	if s.Position.Distance(h.eye.EyeLocation()) > h.rangeLimit {
		return
	}
	h.mu.Lock()
	h.queue = append(h.queue, s)
	h.mu.Unlock()
}

// Pending returns the number of queued sounds.
func (h *Hearing) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.queue)
}

// Drain reports queued sounds to sink in arrival order and empties the
// queue.
func (h *Hearing) Drain(sink Sink) int {
	h.mu.Lock()
	queue := h.queue
	h.queue = nil
	h.mu.Unlock()
	for _, s := range queue {
		sink.ReportHearing(s.Source, s.Position, s.Category, s.Intensity)
	}
	return len(queue)
}

// Close unsubscribes from the bus.
func (h *Hearing) Close() {
	if h.unsubscribe != nil {
		h.unsubscribe()
		h.unsubscribe = nil
	}
}
