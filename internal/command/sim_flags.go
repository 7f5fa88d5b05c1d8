package command

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/joeycumines/npcmind/internal/config"
	"github.com/joeycumines/npcmind/internal/sim"
)

// simFlags are the world flags shared by run and watch.
type simFlags struct {
	overrides [][2]string
	seed      *int64
}

func (f *simFlags) setup(fs *flag.FlagSet) {
	fs.Func("set", "Override a config option for this run, as key=value (repeatable, e.g. vision.range=12)", func(s string) error {
		key, value, ok := strings.Cut(s, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return fmt.Errorf("expected key=value, got %q", s)
		}
		f.overrides = append(f.overrides, [2]string{key, strings.TrimSpace(value)})
		return nil
	})
	fs.Func("seed", "Random seed (overrides config and NPCMIND_SEED)", func(s string) error {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid seed %q", s)
		}
		f.seed = &v
		return nil
	})
}

// resolve applies the overrides on a copy of cfg and maps the result onto
// world settings.
func (f *simFlags) resolve(cfg *config.Config) (sim.Settings, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	cfg = cfg.Clone()
	schema := config.DefaultSchema()
	for _, kv := range f.overrides {
		section, name := splitKey(kv[0])
		if err := schema.Check(section, name, kv[1]); err != nil {
			return sim.Settings{}, fmt.Errorf("invalid override %s=%s: %w", kv[0], kv[1], err)
		}
		cfg.SetSectionOption(section, name, kv[1])
	}
	s, err := sim.SettingsFromConfig(cfg)
	if err != nil {
		return sim.Settings{}, err
	}
	if f.seed != nil {
		s.Seed = *f.seed
	}
	return s, nil
}
