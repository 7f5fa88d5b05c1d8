package behavior

// Settings tunes the catalog.
type Settings struct {
	Idle   IdleSettings
	Wander WanderSettings
	Chase  ChaseSettings
}

// IdleSettings tunes the idle goal.
type IdleSettings struct {
	Priority int
}

// WanderSettings tunes the wander goal and action.
type WanderSettings struct {
	// Priority is the urge the goal resets to when activated.
	Priority int
	// BuildRate is the urge gained per second while standing still.
	BuildRate float64
	// DecayRate is the urge lost per second while moving.
	DecayRate float64
	// SearchRange bounds the distance of each picked destination.
	SearchRange float64
}

// ChaseSettings tunes the chase goal.
type ChaseSettings struct {
	Priority int
	// MinAwareness is the score a record needs before the chase starts.
	MinAwareness float64
	// StopAwareness is the score below which a held target is dropped.
	StopAwareness float64
}

// DefaultSettings returns the stock tuning.
func DefaultSettings() Settings {
	return Settings{
		Idle: IdleSettings{Priority: 10},
		Wander: WanderSettings{
			Priority:    30,
			BuildRate:   1,
			DecayRate:   0.1,
			SearchRange: 10,
		},
		Chase: ChaseSettings{
			Priority:      60,
			MinAwareness:  1.5,
			StopAwareness: 1,
		},
	}
}
