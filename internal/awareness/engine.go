package awareness

import (
	"log/slog"
	"sort"
	"time"

	"github.com/joeycumines/npcmind/internal/geom"
)

// Clock supplies simulation time.
type Clock interface {
	Now() time.Duration
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Duration

func (f ClockFunc) Now() time.Duration {
	return f()
}

// Channel configures a sensing channel whose delta the engine derives itself.
type Channel struct {
	// Floor is the minimum score a single report guarantees before its delta
	// is added.
	Floor float64
	// BuildRate is the score gained per second of exposure.
	BuildRate float64
}

// Settings configures an Engine.
type Settings struct {
	// DecayDelay is the grace window after a report during which the record
	// does not decay.
	DecayDelay time.Duration
	// DecayRate is the score lost per second outside the grace window.
	DecayRate float64

	Hearing   Channel
	Proximity Channel
}

// DefaultSettings returns the stock tuning.
func DefaultSettings() Settings {
	return Settings{
		DecayDelay: 100 * time.Millisecond,
		DecayRate:  0.1,
		Hearing:    Channel{Floor: 0, BuildRate: 0.5},
		Proximity:  Channel{Floor: 0, BuildRate: 1},
	}
}

// View is the read-only face of an Engine handed to goals and actions.
type View interface {
	Lookup(key Key) (Record, bool)
	Records() []Record
	Strongest() (Record, bool)
	Len() int
}

// Transition describes one decay crossing.
type Transition struct {
	Event   Event
	Record  Record
	Removed bool
}

// Engine owns the awareness records of a single agent.
type Engine struct {
	settings Settings
	clock    Clock
	listener Listener
	logger   *slog.Logger
	records  map[Key]*Record
	dt       time.Duration
}

var _ View = (*Engine)(nil)

// Option configures an Engine.
type Option func(*Engine)

// WithListener sets the crossing listener.
func WithListener(l Listener) Option {
	return func(e *Engine) {
		e.listener = l
	}
}

// WithLogger sets the logger used for crossing diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an engine reading time from clock. A nil clock is an
// assembly fault and panics.
func NewEngine(clock Clock, settings Settings, opts ...Option) *Engine {
	if clock == nil {
		panic("awareness.NewEngine: clock cannot be nil")
	}
	e := &Engine{
		settings: settings,
		clock:    clock,
		logger:   slog.Default(),
		records:  make(map[Key]*Record),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetListener replaces the crossing listener.
func (e *Engine) SetListener(l Listener) {
	e.listener = l
}

// Settings returns the engine configuration.
func (e *Engine) Settings() Settings {
	return e.settings
}

// BeginFrame records the frame delta used by channel deltas and decay. It must
// be called once per tick before any report.
func (e *Engine) BeginFrame(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	e.dt = dt
}

// FrameDelta returns the delta recorded by BeginFrame.
func (e *Engine) FrameDelta() time.Duration {
	return e.dt
}

// Update merges a single report into the record for key, creating it when
// needed. An empty target leaves any previously known identity in place.
func (e *Engine) Update(key Key, target TargetID, position geom.Vec3, delta, floor float64) Event {
	r, ok := e.records[key]
	if !ok {
		r = &Record{Key: key}
		e.records[key] = r
	}
	ev := r.update(target, position, e.clock.Now(), delta, floor)
	if ev != EventNone {
		e.notify(ev, *r)
	}
	return ev
}

// ReportVision merges a vision report. The caller computes delta from the
// view geometry and supplies the vision floor.
func (e *Engine) ReportVision(target TargetID, position geom.Vec3, delta, floor float64) Event {
	return e.Update(Key(target), target, position, delta, floor)
}

// ReportHearing merges a sound heard from source. Hearing never identifies a
// target.
func (e *Engine) ReportHearing(source Key, position geom.Vec3, category SoundCategory, intensity float64) Event {
	ch := e.settings.Hearing
	delta := intensity * ch.BuildRate * e.dt.Seconds()
	e.logger.Debug("[Awareness] heard", "source", source, "category", category, "intensity", intensity)
	return e.Update(source, "", position, delta, ch.Floor)
}

// ReportProximity merges a proximity report for target.
func (e *Engine) ReportProximity(target TargetID, position geom.Vec3) Event {
	ch := e.settings.Proximity
	return e.Update(Key(target), target, position, ch.BuildRate*e.dt.Seconds(), ch.Floor)
}

// Decay runs the per-tick decay pass over every record, in key order. Spent
// records are deleted only after all records have been evaluated.
func (e *Engine) Decay() []Transition {
	if len(e.records) == 0 {
		return nil
	}
	now := e.clock.Now()
	amount := e.settings.DecayRate * e.dt.Seconds()

	var (
		out   []Transition
		spent []Key
	)
	for _, key := range e.keys() {
		r := e.records[key]
		ev, gone := r.decay(now, e.settings.DecayDelay, amount)
		if gone {
			spent = append(spent, key)
		}
		if ev == EventNone {
			continue
		}
		out = append(out, Transition{Event: ev, Record: *r, Removed: gone})
		e.notify(ev, *r)
	}
	for _, key := range spent {
		delete(e.records, key)
	}
	return out
}

// Lookup returns a copy of the record for key.
func (e *Engine) Lookup(key Key) (Record, bool) {
	r, ok := e.records[key]
	if !ok {
		return Record{}, false
	}
	return *r, true
}

// Records returns copies of every record sorted by key.
func (e *Engine) Records() []Record {
	out := make([]Record, 0, len(e.records))
	for _, key := range e.keys() {
		out = append(out, *e.records[key])
	}
	return out
}

// Strongest returns the record with the highest score. Ties go to the lowest
// key.
func (e *Engine) Strongest() (Record, bool) {
	var (
		best  *Record
		found bool
	)
	for _, key := range e.keys() {
		r := e.records[key]
		if !found || r.Score > best.Score {
			best, found = r, true
		}
	}
	if !found {
		return Record{}, false
	}
	return *best, true
}

// Len returns the number of tracked records.
func (e *Engine) Len() int {
	return len(e.records)
}

func (e *Engine) keys() []Key {
	keys := make([]Key, 0, len(e.records))
	for k := range e.records {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (e *Engine) notify(ev Event, r Record) {
	e.logger.Debug("[Awareness] crossing",
		"key", r.Key,
		"target", r.Target,
		"event", ev,
		"score", r.Score)
	Dispatch(e.listener, ev, r)
}
