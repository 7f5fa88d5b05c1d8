package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// OptionType represents the expected type of a configuration option value.
type OptionType string

const (
	// TypeString is a plain string value (the default for all config values).
	TypeString OptionType = "string"
	// TypeBool is a boolean value (true/false/yes/no/1/0/on/off).
	TypeBool OptionType = "bool"
	// TypeInt is an integer value.
	TypeInt OptionType = "int"
	// TypeFloat is a decimal value.
	TypeFloat OptionType = "float"
	// TypeDuration is a Go time.Duration value (e.g. "100ms", "2s").
	TypeDuration OptionType = "duration"
)

// ConfigOption declares a single configuration option with its type, default,
// documentation, and environment variable override.
type ConfigOption struct {
	// Key is the option name as it appears in the config file (kebab-case).
	Key string
	// Type is the expected value type for validation.
	Type OptionType
	// Default is the default value as a string, or "" for no default.
	Default string
	// Description is a human-readable description of the option.
	Description string
	// Section is "" for global options, or a section name.
	Section string
	// EnvVar is the environment variable that overrides this option, or "".
	EnvVar string
}

// ConfigSchema declares the expected configuration options. It drives
// validation, documentation, typed getters and env var mapping.
type ConfigSchema struct {
	options []*ConfigOption
	// bySection indexes options by section then key; globals live under "".
	bySection map[string]map[string]*ConfigOption
}

// NewSchema creates a new empty ConfigSchema.
func NewSchema() *ConfigSchema {
	return &ConfigSchema{
		bySection: make(map[string]map[string]*ConfigOption),
	}
}

// Register adds a ConfigOption to the schema. Duplicate keys within the same
// section are overwritten (last registration wins).
func (s *ConfigSchema) Register(opt ConfigOption) {
	ref := new(ConfigOption)
	*ref = opt
	s.options = append(s.options, ref)
	if s.bySection[opt.Section] == nil {
		s.bySection[opt.Section] = make(map[string]*ConfigOption)
	}
	s.bySection[opt.Section][opt.Key] = ref
}

// RegisterAll adds multiple ConfigOptions to the schema.
func (s *ConfigSchema) RegisterAll(opts []ConfigOption) {
	for _, opt := range opts {
		s.Register(opt)
	}
}

// Lookup returns the ConfigOption for a key in a given section ("" for
// global), or nil.
func (s *ConfigSchema) Lookup(section, key string) *ConfigOption {
	return s.bySection[section][key]
}

// HasSection reports whether any option is registered under section.
func (s *ConfigSchema) HasSection(section string) bool {
	return section != "" && len(s.bySection[section]) > 0
}

// GlobalOptions returns all registered global options.
func (s *ConfigSchema) GlobalOptions() []ConfigOption {
	return s.SectionOptions("")
}

// SectionOptions returns all options registered for section, in
// registration order.
func (s *ConfigSchema) SectionOptions(section string) []ConfigOption {
	var out []ConfigOption
	for _, o := range s.options {
		if o.Section == section {
			out = append(out, *o)
		}
	}
	return out
}

// Sections returns the registered non-empty section names in registration
// order.
func (s *ConfigSchema) Sections() []string {
	seen := make(map[string]bool)
	var out []string
	for _, o := range s.options {
		if o.Section != "" && !seen[o.Section] {
			seen[o.Section] = true
			out = append(out, o.Section)
		}
	}
	return out
}

// Resolve returns the effective value for a global key.
func (s *ConfigSchema) Resolve(c *Config, key string) string {
	return s.ResolveIn(c, "", key)
}

// ResolveIn returns the effective value for key in section by checking, in
// order: (1) the option's environment variable, (2) the config value, (3) the
// schema default. A nil config skips step 2.
func (s *ConfigSchema) ResolveIn(c *Config, section, key string) string {
	opt := s.Lookup(section, key)
	if opt != nil && opt.EnvVar != "" {
		if v, ok := os.LookupEnv(opt.EnvVar); ok {
			return v
		}
	}
	if c != nil {
		if v, ok := c.GetSectionOption(section, key); ok {
			return v
		}
	}
	if opt != nil {
		return opt.Default
	}
	return ""
}

// Float resolves section.key as a float64.
func (s *ConfigSchema) Float(c *Config, section, key string) (float64, error) {
	v := s.ResolveIn(c, section, key)
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, optionError(section, key, "float", v)
	}
	return f, nil
}

// Int resolves section.key as an int.
func (s *ConfigSchema) Int(c *Config, section, key string) (int, error) {
	v := s.ResolveIn(c, section, key)
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, optionError(section, key, "int", v)
	}
	return i, nil
}

// Int64 resolves section.key as an int64.
func (s *ConfigSchema) Int64(c *Config, section, key string) (int64, error) {
	v := s.ResolveIn(c, section, key)
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, optionError(section, key, "int", v)
	}
	return i, nil
}

// Duration resolves section.key as a time.Duration.
func (s *ConfigSchema) Duration(c *Config, section, key string) (time.Duration, error) {
	v := s.ResolveIn(c, section, key)
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, optionError(section, key, "duration", v)
	}
	return d, nil
}

// Bool resolves section.key as a bool.
func (s *ConfigSchema) Bool(c *Config, section, key string) (bool, error) {
	v := s.ResolveIn(c, section, key)
	b, err := parseBool(v)
	if err != nil {
		return false, optionError(section, key, "bool", v)
	}
	return b, nil
}

func optionError(section, key, want, got string) error {
	if section == "" {
		return fmt.Errorf("option %q: expected %s, got %q", key, want, got)
	}
	return fmt.Errorf("option %q in [%s]: expected %s, got %q", key, section, want, got)
}

// ValidateConfig checks a loaded Config against the schema and returns a
// sorted list of human-readable issues: unknown options, unknown sections
// and type mismatches.
func ValidateConfig(c *Config, s *ConfigSchema) []string {
	var issues []string

	for key, value := range c.Global {
		opt := s.Lookup("", key)
		if opt == nil {
			issues = append(issues, fmt.Sprintf("unknown global option: %q (value: %q)", key, value))
			continue
		}
		if err := validateType(opt.Type, value); err != nil {
			issues = append(issues, fmt.Sprintf("global option %q: %v", key, err))
		}
	}

	for section, opts := range c.Sections {
		if !s.HasSection(section) {
			issues = append(issues, fmt.Sprintf("unknown section: [%s]", section))
			continue
		}
		for key, value := range opts {
			opt := s.Lookup(section, key)
			if opt == nil {
				issues = append(issues, fmt.Sprintf("unknown option in [%s]: %q (value: %q)", section, key, value))
				continue
			}
			if err := validateType(opt.Type, value); err != nil {
				issues = append(issues, fmt.Sprintf("option %q in [%s]: %v", key, section, err))
			}
		}
	}

	sort.Strings(issues)
	return issues
}

// Check reports whether value is acceptable for section.key.
func (s *ConfigSchema) Check(section, key, value string) error {
	opt := s.Lookup(section, key)
	if opt == nil {
		if section == "" {
			return fmt.Errorf("unknown option %q", key)
		}
		return fmt.Errorf("unknown option %q in [%s]", key, section)
	}
	if err := validateType(opt.Type, value); err != nil {
		if section == "" {
			return fmt.Errorf("option %q: %w", key, err)
		}
		return fmt.Errorf("option %q in [%s]: %w", key, section, err)
	}
	return nil
}

func validateType(t OptionType, value string) error {
	switch t {
	case TypeString, "":
		return nil
	case TypeBool:
		if _, err := parseBool(value); err != nil {
			return fmt.Errorf("expected bool, got %q", value)
		}
	case TypeInt:
		if _, err := strconv.Atoi(value); err != nil {
			return fmt.Errorf("expected int, got %q", value)
		}
	case TypeFloat:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return fmt.Errorf("expected float, got %q", value)
		}
	case TypeDuration:
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("expected duration, got %q", value)
		}
	default:
		return fmt.Errorf("unknown option type %q", t)
	}
	return nil
}

// --- Typed getter methods on Config (global scope) ---

// GetString returns the global option value for key, or "" if not set.
func (c *Config) GetString(key string) string {
	v, _ := c.GetGlobalOption(key)
	return v
}

// GetInt returns the global option value for key parsed as an integer, or 0.
func (c *Config) GetInt(key string) int {
	v, ok := c.GetGlobalOption(key)
	if !ok {
		return 0
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return i
}

// GetBool returns the global option value for key parsed as a boolean, or
// false.
func (c *Config) GetBool(key string) bool {
	v, ok := c.GetGlobalOption(key)
	if !ok {
		return false
	}
	b, err := parseBool(v)
	if err != nil {
		return false
	}
	return b
}

// --- Help text generation ---

// FormatHelp returns a human-readable reference of all registered options,
// grouped by section.
func (s *ConfigSchema) FormatHelp() string {
	var b strings.Builder

	if globals := s.GlobalOptions(); len(globals) > 0 {
		b.WriteString("Global Options:\n")
		for _, o := range globals {
			writeOptionHelp(&b, o)
		}
	}

	for _, sec := range s.Sections() {
		fmt.Fprintf(&b, "\n[%s] Options:\n", sec)
		for _, o := range s.SectionOptions(sec) {
			writeOptionHelp(&b, o)
		}
	}

	return b.String()
}

func writeOptionHelp(b *strings.Builder, o ConfigOption) {
	fmt.Fprintf(b, "  %-24s %s", o.Key, o.Description)
	parts := make([]string, 0, 3)
	if o.Type != "" && o.Type != TypeString {
		parts = append(parts, fmt.Sprintf("type: %s", o.Type))
	}
	if o.Default != "" {
		parts = append(parts, fmt.Sprintf("default: %s", o.Default))
	}
	if o.EnvVar != "" {
		parts = append(parts, fmt.Sprintf("env: %s", o.EnvVar))
	}
	if len(parts) > 0 {
		fmt.Fprintf(b, " (%s)", strings.Join(parts, ", "))
	}
	b.WriteString("\n")
}

// --- Default schema ---

// DefaultSchema returns the canonical schema declaring every known option.
func DefaultSchema() *ConfigSchema {
	s := NewSchema()
	s.RegisterAll(defaultGlobalOptions())
	s.RegisterAll(defaultSectionOptions())
	return s
}

func defaultGlobalOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "log.level", Type: TypeString, Default: "info", Description: "Log level: debug, info, warn, error", EnvVar: "NPCMIND_LOG_LEVEL"},
		{Key: "log.format", Type: TypeString, Default: "text", Description: "Log format: text, json"},
		{Key: "log.file", Type: TypeString, Default: "", Description: "Log file path", EnvVar: "NPCMIND_LOG_FILE"},
		{Key: "log.max-size-mb", Type: TypeInt, Default: "10", Description: "Max log file size in MB before rotation"},
		{Key: "log.max-files", Type: TypeInt, Default: "5", Description: "Max number of rotated log backup files"},
		{Key: "log.buffer-size", Type: TypeInt, Default: "500", Description: "In-memory log buffer size (entries)"},
	}
}

func defaultSectionOptions() []ConfigOption {
	return []ConfigOption{
		{Section: "awareness", Key: "decay-delay", Type: TypeDuration, Default: "100ms", Description: "Grace window after a report before decay starts"},
		{Section: "awareness", Key: "decay-rate", Type: TypeFloat, Default: "0.1", Description: "Awareness lost per second outside the grace window"},

		{Section: "vision", Key: "range", Type: TypeFloat, Default: "30", Description: "Vision cone range"},
		{Section: "vision", Key: "cone-angle", Type: TypeFloat, Default: "60", Description: "Vision cone half angle in degrees"},
		{Section: "vision", Key: "floor", Type: TypeFloat, Default: "1", Description: "Minimum awareness guaranteed by a sighting"},
		{Section: "vision", Key: "build-rate", Type: TypeFloat, Default: "10", Description: "Awareness gained per second of sighting"},
		{Section: "vision", Key: "curve", Type: TypeString, Default: "dot", Description: "Sensitivity expression over dot and distance"},

		{Section: "hearing", Key: "range", Type: TypeFloat, Default: "20", Description: "Hearing range"},
		{Section: "hearing", Key: "floor", Type: TypeFloat, Default: "0", Description: "Minimum awareness guaranteed by a sound"},
		{Section: "hearing", Key: "build-rate", Type: TypeFloat, Default: "0.5", Description: "Awareness gained per unit of sound intensity per second"},

		{Section: "proximity", Key: "range", Type: TypeFloat, Default: "3", Description: "Proximity detection range"},
		{Section: "proximity", Key: "floor", Type: TypeFloat, Default: "0", Description: "Minimum awareness guaranteed by proximity"},
		{Section: "proximity", Key: "build-rate", Type: TypeFloat, Default: "1", Description: "Awareness gained per second in proximity"},

		{Section: "idle", Key: "priority", Type: TypeInt, Default: "10", Description: "Idle goal priority"},

		{Section: "wander", Key: "priority", Type: TypeInt, Default: "30", Description: "Wander urge on activation"},
		{Section: "wander", Key: "build-rate", Type: TypeFloat, Default: "1", Description: "Urge gained per second while still"},
		{Section: "wander", Key: "decay-rate", Type: TypeFloat, Default: "0.1", Description: "Urge lost per second while moving"},
		{Section: "wander", Key: "search-range", Type: TypeFloat, Default: "10", Description: "Max distance of a wander destination"},

		{Section: "chase", Key: "priority", Type: TypeInt, Default: "60", Description: "Chase goal priority"},
		{Section: "chase", Key: "min-awareness", Type: TypeFloat, Default: "1.5", Description: "Awareness needed to start a chase"},
		{Section: "chase", Key: "stop-awareness", Type: TypeFloat, Default: "1", Description: "Awareness below which a chase ends"},

		{Section: "sim", Key: "seed", Type: TypeInt, Default: "1", Description: "Random seed", EnvVar: "NPCMIND_SEED"},
		{Section: "sim", Key: "npcs", Type: TypeInt, Default: "3", Description: "Number of NPC agents"},
		{Section: "sim", Key: "targets", Type: TypeInt, Default: "2", Description: "Number of wandering targets"},
		{Section: "sim", Key: "tick", Type: TypeDuration, Default: "100ms", Description: "Simulation step"},
		{Section: "sim", Key: "ticks", Type: TypeInt, Default: "600", Description: "Steps run by the run command"},
		{Section: "sim", Key: "world-size", Type: TypeFloat, Default: "40", Description: "Side length of the square world"},
		{Section: "sim", Key: "npc-speed", Type: TypeFloat, Default: "3", Description: "NPC walking speed per second"},
		{Section: "sim", Key: "target-speed", Type: TypeFloat, Default: "2", Description: "Target walking speed per second"},
		{Section: "sim", Key: "arrive-radius", Type: TypeFloat, Default: "0.25", Description: "Distance at which a destination counts as reached"},
		{Section: "sim", Key: "step-interval", Type: TypeDuration, Default: "500ms", Description: "Time between target footsteps"},
		{Section: "sim", Key: "jump-chance", Type: TypeFloat, Default: "0.02", Description: "Per-step chance a target jumps"},
	}
}
