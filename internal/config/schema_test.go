package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaRegisterAndLookup(t *testing.T) {
	t.Parallel()

	s := NewSchema()
	s.RegisterAll([]ConfigOption{
		{Key: "a", Type: TypeInt, Default: "1"},
		{Section: "x", Key: "a", Type: TypeFloat, Default: "0.5"},
		{Section: "y", Key: "b"},
	})

	require.NotNil(t, s.Lookup("", "a"))
	assert.Equal(t, TypeInt, s.Lookup("", "a").Type)
	assert.Equal(t, TypeFloat, s.Lookup("x", "a").Type)
	assert.Nil(t, s.Lookup("x", "b"))
	assert.Nil(t, s.Lookup("z", "a"))

	assert.True(t, s.HasSection("x"))
	assert.False(t, s.HasSection("z"))
	assert.False(t, s.HasSection(""))
	assert.Equal(t, []string{"x", "y"}, s.Sections())
	assert.Len(t, s.GlobalOptions(), 1)
}

func TestSchemaDuplicateOverwrites(t *testing.T) {
	t.Parallel()

	s := NewSchema()
	s.Register(ConfigOption{Section: "x", Key: "k", Default: "1"})
	s.Register(ConfigOption{Section: "x", Key: "k", Default: "2"})
	assert.Equal(t, "2", s.Lookup("x", "k").Default)
}

func TestSchemaResolveIn(t *testing.T) {
	s := NewSchema()
	s.Register(ConfigOption{Section: "sim", Key: "seed", Type: TypeInt, Default: "1", EnvVar: "NPCMIND_TEST_SEED"})
	s.Register(ConfigOption{Key: "log.level", Default: "info"})

	c := NewConfig()
	assert.Equal(t, "1", s.ResolveIn(c, "sim", "seed"))
	assert.Equal(t, "1", s.ResolveIn(nil, "sim", "seed"))
	assert.Equal(t, "info", s.Resolve(c, "log.level"))
	assert.Equal(t, "", s.ResolveIn(c, "sim", "missing"))

	c.SetSectionOption("sim", "seed", "7")
	c.SetGlobalOption("log.level", "debug")
	assert.Equal(t, "7", s.ResolveIn(c, "sim", "seed"))
	assert.Equal(t, "debug", s.Resolve(c, "log.level"))

	t.Setenv("NPCMIND_TEST_SEED", "99")
	assert.Equal(t, "99", s.ResolveIn(c, "sim", "seed"))
}

func TestSchemaTypedGetters(t *testing.T) {
	t.Parallel()

	s := DefaultSchema()
	c := NewConfig()
	c.SetSectionOption("vision", "range", "12.5")
	c.SetSectionOption("wander", "priority", "forty")

	f, err := s.Float(c, "vision", "range")
	require.NoError(t, err)
	assert.Equal(t, 12.5, f)

	f, err = s.Float(c, "chase", "min-awareness")
	require.NoError(t, err)
	assert.Equal(t, 1.5, f)

	d, err := s.Duration(c, "awareness", "decay-delay")
	require.NoError(t, err)
	assert.Equal(t, 100*time.Millisecond, d)

	i, err := s.Int(c, "idle", "priority")
	require.NoError(t, err)
	assert.Equal(t, 10, i)

	_, err = s.Int(c, "wander", "priority")
	assert.EqualError(t, err, `option "priority" in [wander]: expected int, got "forty"`)

	_, err = s.Bool(c, "", "log.level")
	assert.EqualError(t, err, `option "log.level": expected bool, got "info"`)

	n, err := s.Int64(c, "sim", "seed")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestValidateConfig_AllDefaultsValid(t *testing.T) {
	t.Parallel()

	s := DefaultSchema()
	c := NewConfig()
	for _, sec := range append([]string{""}, s.Sections()...) {
		for _, o := range s.SectionOptions(sec) {
			c.SetSectionOption(sec, o.Key, o.Default)
		}
	}
	assert.Empty(t, ValidateConfig(c, s))
}

func TestValidateType(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		typ   OptionType
		value string
		ok    bool
	}{
		{TypeString, "anything", true},
		{"", "", true},
		{TypeBool, "yes", true},
		{TypeBool, "maybe", false},
		{TypeInt, "-3", true},
		{TypeInt, "3.5", false},
		{TypeFloat, "3.5", true},
		{TypeFloat, "1e-3", true},
		{TypeFloat, "x", false},
		{TypeDuration, "250ms", true},
		{TypeDuration, "250", false},
		{"weird", "x", false},
	} {
		err := validateType(tc.typ, tc.value)
		assert.Equal(t, tc.ok, err == nil, "%s %q", tc.typ, tc.value)
	}
}

func TestGlobalGetters(t *testing.T) {
	t.Parallel()

	c := NewConfig()
	c.SetGlobalOption("n", "4")
	c.SetGlobalOption("bad", "x")
	c.SetGlobalOption("on", "on")

	assert.Equal(t, 4, c.GetInt("n"))
	assert.Zero(t, c.GetInt("bad"))
	assert.Zero(t, c.GetInt("missing"))
	assert.True(t, c.GetBool("on"))
	assert.False(t, c.GetBool("bad"))
	assert.Equal(t, "", c.GetString("missing"))
}

func TestFormatHelp(t *testing.T) {
	t.Parallel()

	help := DefaultSchema().FormatHelp()
	assert.True(t, strings.HasPrefix(help, "Global Options:\n"))
	for _, sec := range []string{"awareness", "vision", "hearing", "proximity", "idle", "wander", "chase", "sim"} {
		assert.Contains(t, help, "["+sec+"] Options:")
	}
	assert.Contains(t, help, "env: NPCMIND_LOG_LEVEL")
	assert.Contains(t, help, "type: duration, default: 100ms")
	assert.Less(t, strings.Index(help, "[awareness]"), strings.Index(help, "[sim]"))

	assert.Empty(t, NewSchema().FormatHelp())
}

func TestSchemaCheck(t *testing.T) {
	t.Parallel()

	s := DefaultSchema()
	assert.NoError(t, s.Check("vision", "range", "12"))
	assert.NoError(t, s.Check("", "log.level", "debug"))
	assert.EqualError(t, s.Check("vision", "range", "far"), `option "range" in [vision]: expected float, got "far"`)
	assert.EqualError(t, s.Check("vision", "colour", "x"), `unknown option "colour" in [vision]`)
	assert.EqualError(t, s.Check("", "verbose", "x"), `unknown option "verbose"`)
	assert.EqualError(t, s.Check("", "log.max-files", "x"), `option "log.max-files": expected int, got "x"`)
}
