package sim

import (
	"fmt"
	"time"

	"github.com/joeycumines/npcmind/internal/agent"
	"github.com/joeycumines/npcmind/internal/awareness"
	"github.com/joeycumines/npcmind/internal/behavior"
	"github.com/joeycumines/npcmind/internal/config"
	"github.com/joeycumines/npcmind/internal/sensor"
)

// Settings configures a World and every agent in it.
type Settings struct {
	Seed    int64
	NPCs    int
	Targets int
	// Tick is the fixed simulation step.
	Tick time.Duration
	// Ticks is how many steps a headless run takes.
	Ticks int
	// WorldSize is the side length of the square world.
	WorldSize    float64
	NPCSpeed     float64
	TargetSpeed  float64
	ArriveRadius float64
	// StepInterval is the time between footstep sounds of a walking target.
	StepInterval time.Duration
	// JumpChance is the probability per tick that a target jumps.
	JumpChance float64

	Agent agent.Settings
}

// DefaultSettings returns the stock world.
func DefaultSettings() Settings {
	return Settings{
		Seed:         1,
		NPCs:         3,
		Targets:      2,
		Tick:         100 * time.Millisecond,
		Ticks:        600,
		WorldSize:    40,
		NPCSpeed:     3,
		TargetSpeed:  2,
		ArriveRadius: 0.25,
		StepInterval: 500 * time.Millisecond,
		JumpChance:   0.02,
		Agent:        agent.DefaultSettings(),
	}
}

// SettingsFromConfig resolves every option through the default schema, so env
// overrides and defaults apply. A nil cfg yields the schema defaults.
func SettingsFromConfig(cfg *config.Config) (Settings, error) {
	r := resolver{schema: config.DefaultSchema(), cfg: cfg}

	s := Settings{
		Seed:         r.getInt64("sim", "seed"),
		NPCs:         r.getInt("sim", "npcs"),
		Targets:      r.getInt("sim", "targets"),
		Tick:         r.getDuration("sim", "tick"),
		Ticks:        r.getInt("sim", "ticks"),
		WorldSize:    r.getFloat("sim", "world-size"),
		NPCSpeed:     r.getFloat("sim", "npc-speed"),
		TargetSpeed:  r.getFloat("sim", "target-speed"),
		ArriveRadius: r.getFloat("sim", "arrive-radius"),
		StepInterval: r.getDuration("sim", "step-interval"),
		JumpChance:   r.getFloat("sim", "jump-chance"),
		Agent: agent.Settings{
			Awareness: awareness.Settings{
				DecayDelay: r.getDuration("awareness", "decay-delay"),
				DecayRate:  r.getFloat("awareness", "decay-rate"),
				Hearing: awareness.Channel{
					Floor:     r.getFloat("hearing", "floor"),
					BuildRate: r.getFloat("hearing", "build-rate"),
				},
				Proximity: awareness.Channel{
					Floor:     r.getFloat("proximity", "floor"),
					BuildRate: r.getFloat("proximity", "build-rate"),
				},
			},
			Vision: sensor.VisionSettings{
				Range:     r.getFloat("vision", "range"),
				ConeAngle: r.getFloat("vision", "cone-angle"),
				Floor:     r.getFloat("vision", "floor"),
				BuildRate: r.getFloat("vision", "build-rate"),
				Curve:     r.schema.ResolveIn(cfg, "vision", "curve"),
			},
			HearingRange:   r.getFloat("hearing", "range"),
			ProximityRange: r.getFloat("proximity", "range"),
			Behavior: behavior.Settings{
				Idle: behavior.IdleSettings{
					Priority: r.getInt("idle", "priority"),
				},
				Wander: behavior.WanderSettings{
					Priority:    r.getInt("wander", "priority"),
					BuildRate:   r.getFloat("wander", "build-rate"),
					DecayRate:   r.getFloat("wander", "decay-rate"),
					SearchRange: r.getFloat("wander", "search-range"),
				},
				Chase: behavior.ChaseSettings{
					Priority:      r.getInt("chase", "priority"),
					MinAwareness:  r.getFloat("chase", "min-awareness"),
					StopAwareness: r.getFloat("chase", "stop-awareness"),
				},
			},
		},
	}
	if r.err != nil {
		return Settings{}, r.err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate rejects settings a World cannot run with.
func (s Settings) Validate() error {
	switch {
	case s.NPCs < 0:
		return fmt.Errorf("sim: npcs must not be negative, got %d", s.NPCs)
	case s.Targets < 0:
		return fmt.Errorf("sim: targets must not be negative, got %d", s.Targets)
	case s.Tick <= 0:
		return fmt.Errorf("sim: tick must be positive, got %s", s.Tick)
	case s.Ticks < 0:
		return fmt.Errorf("sim: ticks must not be negative, got %d", s.Ticks)
	case s.WorldSize <= 0:
		return fmt.Errorf("sim: world-size must be positive, got %g", s.WorldSize)
	case s.JumpChance < 0 || s.JumpChance > 1:
		return fmt.Errorf("sim: jump-chance must be within [0, 1], got %g", s.JumpChance)
	}
	return nil
}

// resolver keeps the first lookup error so a whole settings tree can be read
// before checking.
type resolver struct {
	schema *config.ConfigSchema
	cfg    *config.Config
	err    error
}

func (r *resolver) getFloat(section, key string) float64 {
	v, err := r.schema.Float(r.cfg, section, key)
	r.keep(err)
	return v
}

func (r *resolver) getInt(section, key string) int {
	v, err := r.schema.Int(r.cfg, section, key)
	r.keep(err)
	return v
}

func (r *resolver) getInt64(section, key string) int64 {
	v, err := r.schema.Int64(r.cfg, section, key)
	r.keep(err)
	return v
}

func (r *resolver) getDuration(section, key string) time.Duration {
	v, err := r.schema.Duration(r.cfg, section, key)
	r.keep(err)
	return v
}

func (r *resolver) keep(err error) {
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("config: %w", err)
	}
}
