package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/joeycumines/npcmind/internal/agent"
	"github.com/joeycumines/npcmind/internal/awareness"
	"github.com/joeycumines/npcmind/internal/geom"
	"github.com/joeycumines/npcmind/internal/goap"
	"github.com/joeycumines/npcmind/internal/sensor"
)

// Sound intensities.
const (
	WalkIntensity = 1.0
	RunIntensity  = 2.0
	JumpIntensity = 2.0
)

// runChance is the probability a target runs to its next destination.
const runChance = 0.25

// Target is a wandering detectable entity.
type Target struct {
	id        awareness.TargetID
	walker    *Walker
	running   bool
	sinceStep time.Duration
}

var _ sensor.Detectable = (*Target)(nil)

func (t *Target) ID() awareness.TargetID { return t.id }
func (t *Target) Position() geom.Vec3    { return t.walker.Position() }

// Running reports whether the target is running to its destination.
func (t *Target) Running() bool { return t.running }

// NPC is an agent and the walker it drives.
type NPC struct {
	*agent.Agent
	walker *Walker
}

// Walker returns the NPC's mover.
func (n *NPC) Walker() *Walker { return n.walker }

// Stats counts what happened in a world.
type Stats struct {
	Ticks  int
	Sounds int
	Jumps  int
	Events map[awareness.Event]int
}

// World owns the registry, the hearing bus, the targets and the NPCs.
type World struct {
	settings Settings
	now      time.Duration
	rng      *rand.Rand
	registry *sensor.Registry
	bus      *sensor.HearingBus
	targets  []*Target
	npcs     []*NPC
	logger   *slog.Logger
	reporter goap.Reporter
	observer awareness.Listener
	stats    Stats
}

var _ awareness.Clock = (*World)(nil)

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger handed to every agent.
func WithLogger(logger *slog.Logger) Option {
	return func(w *World) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithReporter exports every agent's goal table.
func WithReporter(r goap.Reporter) Option {
	return func(w *World) {
		w.reporter = r
	}
}

// WithObserver receives every crossing of every agent.
func WithObserver(l awareness.Listener) Option {
	return func(w *World) {
		w.observer = l
	}
}

// NewWorld builds a world from s. The same settings always produce the same
// world and the same run.
func NewWorld(s Settings, opts ...Option) (*World, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	w := &World{
		settings: s,
		rng:      rand.New(rand.NewSource(s.Seed)),
		registry: sensor.NewRegistry(),
		bus:      sensor.NewHearingBus(),
		logger:   slog.Default(),
		stats:    Stats{Events: make(map[awareness.Event]int)},
	}
	for _, opt := range opts {
		opt(w)
	}

	half := s.WorldSize / 2
	for i := range s.Targets {
		t := &Target{
			id:     awareness.TargetID(fmt.Sprintf("target-%02d", i+1)),
			walker: NewWalker(w.randomPoint(), s.TargetSpeed, s.ArriveRadius, half, w.rng),
		}
		if err := w.registry.Register(t); err != nil {
			return nil, err
		}
		w.targets = append(w.targets, t)
	}

	for i := range s.NPCs {
		id, err := uuid.NewRandomFromReader(w.rng)
		if err != nil {
			return nil, fmt.Errorf("sim: npc id: %w", err)
		}
		walker := NewWalker(w.randomPoint(), s.NPCSpeed, s.ArriveRadius, half, w.rng)
		agentOpts := []agent.Option{
			agent.WithID(id.String()),
			agent.WithName(fmt.Sprintf("npc-%d", i+1)),
			agent.WithLogger(w.logger),
			agent.WithObserver(awareness.ListenerFunc(w.tally)),
		}
		if w.reporter != nil {
			agentOpts = append(agentOpts, agent.WithReporter(w.reporter))
		}
		a, err := agent.New(walker, agent.Environment{
			Clock:    w,
			Registry: w.registry,
			Bus:      w.bus,
		}, s.Agent, agentOpts...)
		if err != nil {
			w.Close()
			return nil, err
		}
		w.npcs = append(w.npcs, &NPC{Agent: a, walker: walker})
	}
	sort.Slice(w.npcs, func(i, j int) bool { return w.npcs[i].ID() < w.npcs[j].ID() })

	w.logger.Info("[Sim] world created",
		"seed", s.Seed,
		"npcs", len(w.npcs),
		"targets", len(w.targets),
		"size", s.WorldSize)
	return w, nil
}

// Now implements awareness.Clock.
func (w *World) Now() time.Duration { return w.now }

// Settings returns the world configuration.
func (w *World) Settings() Settings { return w.settings }

// NPCs returns the agents in tick order.
func (w *World) NPCs() []*NPC { return append([]*NPC(nil), w.npcs...) }

// Targets returns the targets in ID order.
func (w *World) Targets() []*Target { return append([]*Target(nil), w.targets...) }

// Registry returns the detectable target registry.
func (w *World) Registry() *sensor.Registry { return w.registry }

// Bus returns the hearing bus.
func (w *World) Bus() *sensor.HearingBus { return w.bus }

// Stats returns a copy of the counters.
func (w *World) Stats() Stats {
	out := w.stats
	out.Events = make(map[awareness.Event]int, len(w.stats.Events))
	for k, v := range w.stats.Events {
		out.Events[k] = v
	}
	return out
}

// Step advances the world by one fixed tick: targets move and make noise,
// then every NPC senses, plans and moves, in ID order.
func (w *World) Step() {
	dt := w.settings.Tick
	w.now += dt
	for _, t := range w.targets {
		w.stepTarget(t, dt)
	}
	for _, n := range w.npcs {
		n.Tick(dt)
		n.walker.Step(dt)
	}
	w.stats.Ticks++
}

// Run steps the world ticks times, stopping early when ctx is done.
func (w *World) Run(ctx context.Context, ticks int) error {
	for range ticks {
		if err := ctx.Err(); err != nil {
			return err
		}
		w.Step()
	}
	return nil
}

// Close detaches every agent from the hearing bus.
func (w *World) Close() {
	for _, n := range w.npcs {
		n.Close()
	}
}

func (w *World) stepTarget(t *Target, dt time.Duration) {
	if !t.walker.IsMoving() {
		t.running = w.rng.Float64() < runChance
		speed := w.settings.TargetSpeed
		if t.running {
			speed *= 2
		}
		t.walker.SetSpeed(speed)
		t.walker.MoveTo(t.walker.PickLocationInRange(w.settings.WorldSize / 4))
		t.sinceStep = 0
	}

	if t.walker.Step(dt) > 0 {
		interval, intensity := w.settings.StepInterval, WalkIntensity
		if t.running {
			interval, intensity = interval/2, RunIntensity
		}
		t.sinceStep += dt
		if interval > 0 && t.sinceStep >= interval {
			t.sinceStep -= interval
			w.emit(t, awareness.SoundFootstep, intensity)
		}
	}

	if w.rng.Float64() < w.settings.JumpChance {
		w.stats.Jumps++
		w.emit(t, awareness.SoundJump, JumpIntensity)
	}
}

func (w *World) emit(t *Target, category awareness.SoundCategory, intensity float64) {
	w.stats.Sounds++
	w.bus.Emit(sensor.Sound{
		Source:    awareness.Key(t.id),
		Position:  t.Position(),
		Category:  category,
		Intensity: intensity,
	})
}

func (w *World) tally(e awareness.Event, r awareness.Record) {
	w.stats.Events[e]++
	awareness.Dispatch(w.observer, e, r)
}

func (w *World) randomPoint() geom.Vec3 {
	half := w.settings.WorldSize / 2
	return geom.Vec3{
		X: (w.rng.Float64()*2 - 1) * half,
		Z: (w.rng.Float64()*2 - 1) * half,
	}
}
