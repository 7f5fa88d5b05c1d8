package agent

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/joeycumines/npcmind/internal/awareness"
	"github.com/joeycumines/npcmind/internal/behavior"
	"github.com/joeycumines/npcmind/internal/blackboard"
	"github.com/joeycumines/npcmind/internal/geom"
	"github.com/joeycumines/npcmind/internal/goap"
	"github.com/joeycumines/npcmind/internal/sensor"
)

var (
	// ErrNoMover is returned by New when the movement collaborator is missing.
	ErrNoMover = errors.New("agent: mover cannot be nil")
	// ErrNoClock is returned by New when the environment has no clock.
	ErrNoClock = errors.New("agent: clock cannot be nil")
)

// Forward is the facing used when the mover does not report one.
var Forward = geom.Vec3{Z: 1}

// Facer is implemented by movers that know which way the agent looks.
type Facer interface {
	Facing() geom.Vec3
}

// Settings tunes every part of an agent.
type Settings struct {
	Awareness      awareness.Settings
	Vision         sensor.VisionSettings
	HearingRange   float64
	ProximityRange float64
	Behavior       behavior.Settings
}

// DefaultSettings returns the stock tuning.
func DefaultSettings() Settings {
	return Settings{
		Awareness:      awareness.DefaultSettings(),
		Vision:         sensor.DefaultVisionSettings(),
		HearingRange:   20,
		ProximityRange: 3,
		Behavior:       behavior.DefaultSettings(),
	}
}

// Environment is the world an agent senses.
type Environment struct {
	Clock awareness.Clock
	// Registry lists the detectable targets. Nil means an empty world.
	Registry *sensor.Registry
	// Bus delivers sounds. Nil disables hearing.
	Bus *sensor.HearingBus
	// LineOfSight gates vision. Nil treats every target in the cone as
	// visible.
	LineOfSight sensor.LineOfSight
}

// Agent is one NPC.
type Agent struct {
	id       string
	name     string
	mover    behavior.Mover
	logger   *slog.Logger
	observer awareness.Listener
	reporter goap.Reporter
	bb       *blackboard.Blackboard

	engine    *awareness.Engine
	vision    *sensor.Vision
	hearing   *sensor.Hearing
	proximity *sensor.Proximity
	planner   *goap.Planner

	ticks uint64
}

var (
	_ behavior.Body      = (*Agent)(nil)
	_ sensor.Eye         = (*Agent)(nil)
	_ awareness.Listener = (*Agent)(nil)
)

// Option configures an Agent.
type Option func(*Agent)

// WithID overrides the generated identity.
func WithID(id string) Option {
	return func(a *Agent) {
		if id != "" {
			a.id = id
		}
	}
}

// WithName sets the display name. It defaults to the ID.
func WithName(name string) Option {
	return func(a *Agent) {
		a.name = name
	}
}

// WithLogger sets the logger shared by the agent, its engine and its planner.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Agent) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithObserver receives every crossing after the agent has handled it.
func WithObserver(l awareness.Listener) Option {
	return func(a *Agent) {
		a.observer = l
	}
}

// WithReporter exports the planner's goal table after every tick.
func WithReporter(r goap.Reporter) Option {
	return func(a *Agent) {
		a.reporter = r
	}
}

// New assembles an agent around mover.
func New(mover behavior.Mover, env Environment, settings Settings, opts ...Option) (*Agent, error) {
	if mover == nil {
		return nil, ErrNoMover
	}
	if env.Clock == nil {
		return nil, ErrNoClock
	}
	if env.Registry == nil {
		env.Registry = sensor.NewRegistry()
	}

	a := &Agent{
		id:     uuid.NewString(),
		mover:  mover,
		logger: slog.Default(),
		bb:     new(blackboard.Blackboard),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.name == "" {
		a.name = a.id
	}
	a.logger = a.logger.With("agent", a.name)

	vision, err := sensor.NewVision(settings.Vision, env.Registry, a, env.LineOfSight)
	if err != nil {
		return nil, fmt.Errorf("agent %s: vision: %w", a.name, err)
	}
	a.vision = vision
	a.hearing = sensor.NewHearing(env.Bus, a, settings.HearingRange)
	a.proximity = sensor.NewProximity(env.Registry, a, settings.ProximityRange)
	a.engine = awareness.NewEngine(env.Clock, settings.Awareness,
		awareness.WithListener(a),
		awareness.WithLogger(a.logger))

	plannerOpts := []goap.PlannerOption{goap.WithPlannerLogger(a.logger)}
	if a.reporter != nil {
		plannerOpts = append(plannerOpts, goap.WithReporter(a.name, a.reporter))
	}
	a.planner = behavior.NewPlanner(a, settings.Behavior, a.bb, plannerOpts...)

	a.bb.Set(blackboard.KeyPosition, mover.Position())
	return a, nil
}

// ID returns the agent's identity.
func (a *Agent) ID() string { return a.id }

// Name returns the display name.
func (a *Agent) Name() string { return a.name }

// Engine returns the awareness engine.
func (a *Agent) Engine() *awareness.Engine { return a.engine }

// Planner returns the goal planner.
func (a *Agent) Planner() *goap.Planner { return a.planner }

// Blackboard returns the agent's published state.
func (a *Agent) Blackboard() *blackboard.Blackboard { return a.bb }

// Hearing returns the hearing sensor.
func (a *Agent) Hearing() *sensor.Hearing { return a.hearing }

// Ticks returns the number of completed ticks.
func (a *Agent) Ticks() uint64 { return a.ticks }

// Tick runs one frame of perception and decision making.
func (a *Agent) Tick(dt time.Duration) {
	if a.mover == nil {
		panic("agent.Tick: mover cannot be nil")
	}
	a.engine.BeginFrame(dt)
	heard := a.hearing.Drain(a.engine)
	seen := a.vision.Sense(a.engine, dt)
	near := a.proximity.Sense(a.engine)
	lost := a.engine.Decay()
	a.planner.Tick()

	a.bb.Set(blackboard.KeyRecords, a.engine.Records())
	a.bb.Set(blackboard.KeyPosition, a.mover.Position())
	a.ticks++

	if heard+seen+near > 0 || len(lost) > 0 {
		a.logger.Debug("[Agent] tick",
			"tick", a.ticks,
			"heard", heard,
			"seen", seen,
			"near", near,
			"transitions", len(lost))
	}
}

// Close detaches the agent from its hearing bus.
func (a *Agent) Close() {
	a.hearing.Close()
}

// Mover implements behavior.Body.
func (a *Agent) Mover() behavior.Mover { return a.mover }

// Awareness implements behavior.Body.
func (a *Agent) Awareness() awareness.View { return a.engine }

// FrameDelta implements behavior.Body.
func (a *Agent) FrameDelta() time.Duration { return a.engine.FrameDelta() }

// Self implements sensor.Eye.
func (a *Agent) Self() awareness.TargetID { return awareness.TargetID(a.id) }

// EyeLocation implements sensor.Eye.
func (a *Agent) EyeLocation() geom.Vec3 { return a.mover.Position() }

// EyeDirection implements sensor.Eye.
func (a *Agent) EyeDirection() geom.Vec3 {
	if f, ok := a.mover.(Facer); ok {
		if dir := f.Facing().Normalize(); dir != geom.Zero {
			return dir
		}
	}
	return Forward
}
