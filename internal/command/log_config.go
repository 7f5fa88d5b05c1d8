package command

import (
	"flag"
	"fmt"

	"github.com/joeycumines/npcmind/internal/config"
	"github.com/joeycumines/npcmind/internal/logging"
)

// logFlags are the logging flags shared by the simulation commands. Empty or
// zero values fall back to configuration.
type logFlags struct {
	level      string
	format     string
	file       string
	bufferSize int
}

func (f *logFlags) setup(fs *flag.FlagSet) {
	fs.StringVar(&f.level, "log-level", "", "Log level: debug, info, warn, error (default from config)")
	fs.StringVar(&f.format, "log-format", "", "Log format: text, json (default from config)")
	fs.StringVar(&f.file, "log-file", "", "Write logs to this file instead of stderr")
	fs.IntVar(&f.bufferSize, "log-buffer", 0, "Number of log entries kept for the event pane")
}

// logConfig is the resolved logging setup.
type logConfig struct {
	options    logging.Options
	bufferSize int
}

// resolveLogConfig resolves each setting flag → env → config → default.
func resolveLogConfig(flags logFlags, cfg *config.Config) (logConfig, error) {
	schema := config.DefaultSchema()
	pick := func(flagValue, key string) string {
		if flagValue != "" {
			return flagValue
		}
		return schema.Resolve(cfg, key)
	}
	pickInt := func(flagValue int, key string) (int, error) {
		if flagValue > 0 {
			return flagValue, nil
		}
		return schema.Int(cfg, "", key)
	}

	var lc logConfig
	lc.options.Level = pick(flags.level, "log.level")
	if _, err := logging.ParseLevel(lc.options.Level); err != nil {
		return lc, err
	}
	lc.options.Format = pick(flags.format, "log.format")
	lc.options.File = pick(flags.file, "log.file")

	var err error
	if lc.options.MaxSizeMB, err = pickInt(0, "log.max-size-mb"); err != nil {
		return lc, err
	}
	if lc.options.MaxFiles, err = pickInt(0, "log.max-files"); err != nil {
		return lc, err
	}
	if lc.bufferSize, err = pickInt(flags.bufferSize, "log.buffer-size"); err != nil {
		return lc, err
	}
	if lc.options.MaxSizeMB <= 0 {
		return lc, fmt.Errorf("log.max-size-mb must be positive, got %d", lc.options.MaxSizeMB)
	}
	if lc.options.MaxFiles < 0 {
		return lc, fmt.Errorf("log.max-files must not be negative, got %d", lc.options.MaxFiles)
	}
	return lc, nil
}
