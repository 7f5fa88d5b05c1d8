package agent

import (
	"testing"
	"time"

	"github.com/joeycumines/npcmind/internal/awareness"
	"github.com/joeycumines/npcmind/internal/blackboard"
	"github.com/joeycumines/npcmind/internal/geom"
	"github.com/joeycumines/npcmind/internal/goap"
	"github.com/joeycumines/npcmind/internal/sensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMover struct {
	pos    geom.Vec3
	facing geom.Vec3
	dest   geom.Vec3
	moving bool
	moves  []geom.Vec3
}

func (m *stubMover) MoveTo(d geom.Vec3) bool {
	m.moves = append(m.moves, d)
	m.dest, m.moving = d, true
	return true
}

func (m *stubMover) Cancel()                               { m.moving = false }
func (m *stubMover) IsMoving() bool                        { return m.moving }
func (m *stubMover) AtDestination() bool                   { return !m.moving && m.pos == m.dest }
func (m *stubMover) Position() geom.Vec3                   { return m.pos }
func (m *stubMover) PickLocationInRange(float64) geom.Vec3 { return m.pos }
func (m *stubMover) Facing() geom.Vec3                     { return m.facing }

type target struct {
	id  awareness.TargetID
	pos geom.Vec3
}

func (t *target) ID() awareness.TargetID { return t.id }
func (t *target) Position() geom.Vec3    { return t.pos }

type clock struct{ now time.Duration }

func (c *clock) Now() time.Duration { return c.now }

type events struct {
	awareness.NopListener
	got []awareness.Event
}

func (e *events) OnSuspicious(awareness.Record)    { e.got = append(e.got, awareness.EventSuspicious) }
func (e *events) OnFullyDetected(awareness.Record) { e.got = append(e.got, awareness.EventFullyDetected) }
func (e *events) OnFullyLost(awareness.Record)     { e.got = append(e.got, awareness.EventFullyLost) }

type fixture struct {
	agent    *Agent
	mover    *stubMover
	clock    *clock
	registry *sensor.Registry
	bus      *sensor.HearingBus
	events   *events
}

func newFixture(t *testing.T, settings Settings, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		mover:    &stubMover{facing: geom.Vec3{Z: 1}},
		clock:    &clock{now: time.Second},
		registry: sensor.NewRegistry(),
		bus:      sensor.NewHearingBus(),
		events:   &events{},
	}
	opts = append([]Option{WithID("npc-1"), WithObserver(f.events)}, opts...)
	a, err := New(f.mover, Environment{
		Clock:    f.clock,
		Registry: f.registry,
		Bus:      f.bus,
	}, settings, opts...)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	f.agent = a
	return f
}

func (f *fixture) tick() {
	f.clock.now += 100 * time.Millisecond
	f.agent.Tick(100 * time.Millisecond)
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	_, err := New(nil, Environment{Clock: &clock{}}, DefaultSettings())
	assert.ErrorIs(t, err, ErrNoMover)

	_, err = New(&stubMover{}, Environment{}, DefaultSettings())
	assert.ErrorIs(t, err, ErrNoClock)

	s := DefaultSettings()
	s.Vision.Curve = " "
	_, err = New(&stubMover{}, Environment{Clock: &clock{}}, s)
	assert.ErrorIs(t, err, sensor.ErrEmptyCurve)
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	a, err := New(&stubMover{}, Environment{Clock: &clock{}}, DefaultSettings())
	require.NoError(t, err)
	defer a.Close()

	assert.Len(t, a.ID(), 36)
	assert.Equal(t, a.ID(), a.Name())
	assert.Equal(t, awareness.TargetID(a.ID()), a.Self())
	assert.Equal(t, Forward, a.EyeDirection())
	assert.True(t, a.Blackboard().Has(blackboard.KeyPosition))
}

func TestTick_PanicsWithoutMover(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { (&Agent{}).Tick(time.Second) })
}

func TestTick_IdleInEmptyWorld(t *testing.T) {
	t.Parallel()

	f := newFixture(t, DefaultSettings())
	f.tick()

	require.NotNil(t, f.agent.Planner().ActiveGoal())
	assert.Equal(t, goap.GoalIdle, f.agent.Planner().ActiveGoal().Kind())
	assert.Zero(t, f.agent.Engine().Len())
	assert.Equal(t, uint64(1), f.agent.Ticks())
	assert.Equal(t, goap.GoalIdle, f.agent.Blackboard().Get(blackboard.KeyActiveGoal))
}

func TestTick_SightingStartsChase(t *testing.T) {
	t.Parallel()

	f := newFixture(t, DefaultSettings())
	player := &target{id: "player", pos: geom.Vec3{Z: 10}}
	require.NoError(t, f.registry.Register(player))

	f.tick()

	r, ok := f.agent.Engine().Lookup("player")
	require.True(t, ok)
	assert.Equal(t, awareness.MaxScore, r.Score)
	assert.Equal(t, []awareness.Event{awareness.EventFullyDetected}, f.events.got)
	assert.Equal(t, awareness.EventFullyDetected, f.agent.Blackboard().Get(blackboard.KeyLastEvent))
	assert.Equal(t, awareness.Key("player"), f.agent.Blackboard().Get(blackboard.KeyLastTarget))

	require.NotNil(t, f.agent.Planner().ActiveGoal())
	assert.Equal(t, goap.GoalChase, f.agent.Planner().ActiveGoal().Kind())
	require.NotEmpty(t, f.mover.moves)
	assert.Equal(t, player.pos, f.mover.moves[len(f.mover.moves)-1])

	records, ok := f.agent.Blackboard().Get(blackboard.KeyRecords).([]awareness.Record)
	require.True(t, ok)
	assert.Len(t, records, 1)
}

func TestTick_TargetBehindIsNotSeen(t *testing.T) {
	t.Parallel()

	f := newFixture(t, DefaultSettings())
	require.NoError(t, f.registry.Register(&target{id: "player", pos: geom.Vec3{Z: -10}}))
	f.tick()

	assert.Zero(t, f.agent.Engine().Len())
}

func TestTick_OwnRegistrationIgnored(t *testing.T) {
	t.Parallel()

	f := newFixture(t, DefaultSettings())
	require.NoError(t, f.registry.Register(&target{id: f.agent.Self(), pos: geom.Vec3{}}))
	f.tick()

	assert.Zero(t, f.agent.Engine().Len())
}

func TestTick_HearingDrainedOnTick(t *testing.T) {
	t.Parallel()

	f := newFixture(t, DefaultSettings())
	f.bus.Emit(sensor.Sound{Source: "footsteps", Position: geom.Vec3{X: 5}, Category: awareness.SoundFootstep, Intensity: 2})
	f.bus.Emit(sensor.Sound{Source: awareness.Key(f.agent.Self()), Category: awareness.SoundJump, Intensity: 2})
	f.bus.Emit(sensor.Sound{Source: "far", Position: geom.Vec3{X: 500}, Intensity: 2})
	assert.Equal(t, 1, f.agent.Hearing().Pending())

	f.tick()

	assert.Zero(t, f.agent.Hearing().Pending())
	r, ok := f.agent.Engine().Lookup("footsteps")
	require.True(t, ok)
	assert.Empty(t, r.Target)
	assert.InDelta(t, 0.1, r.Score, 1e-9)
	assert.Equal(t, []awareness.Event{awareness.EventSuspicious}, f.events.got)
	assert.Equal(t, goap.GoalIdle, f.agent.Planner().ActiveGoal().Kind())
}

func TestTick_ForgetsVanishedTarget(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	s.Awareness.DecayRate = 10
	f := newFixture(t, s)
	require.NoError(t, f.registry.Register(&target{id: "player", pos: geom.Vec3{Z: 10}}))
	f.tick()
	require.Equal(t, goap.GoalChase, f.agent.Planner().ActiveGoal().Kind())

	f.registry.Deregister("player")
	for i := 0; i < 10 && f.agent.Engine().Len() > 0; i++ {
		f.tick()
	}

	assert.Zero(t, f.agent.Engine().Len())
	assert.Contains(t, f.events.got, awareness.EventFullyLost)
	assert.NotEqual(t, goap.GoalChase, f.agent.Planner().ActiveGoal().Kind())
}

func TestTick_ReportsGoals(t *testing.T) {
	t.Parallel()

	var (
		gotID   string
		gotRows []goap.GoalReport
	)
	f := newFixture(t, DefaultSettings(),
		WithName("guard"),
		WithReporter(goap.ReporterFunc(func(id string, rows []goap.GoalReport) {
			gotID, gotRows = id, rows
		})))
	f.tick()

	assert.Equal(t, "guard", gotID)
	require.Len(t, gotRows, 3)
	assert.Equal(t, "Idle", gotRows[0].Name)
	assert.Equal(t, goap.StatusRunning, gotRows[0].Status)
	assert.Equal(t, goap.StatusPaused, gotRows[2].Status)
}

func TestEyeDirection_FallsBackOnZeroFacing(t *testing.T) {
	t.Parallel()

	f := newFixture(t, DefaultSettings())
	f.mover.facing = geom.Vec3{}
	assert.Equal(t, Forward, f.agent.EyeDirection())

	f.mover.facing = geom.Vec3{X: 3}
	assert.Equal(t, geom.Vec3{X: 1}, f.agent.EyeDirection())
}
