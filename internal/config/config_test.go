package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigParsing(t *testing.T) {
	configContent := `# Global options
log.level debug

[vision]
range 25
curve dot * (1 - distance)

[chase]
min-awareness 1.75`

	config, err := LoadFromReader(strings.NewReader(configContent))
	require.NoError(t, err)
	assert.Empty(t, config.Warnings)

	v, ok := config.GetGlobalOption("log.level")
	assert.True(t, ok)
	assert.Equal(t, "debug", v)

	v, ok = config.GetSectionOption("vision", "curve")
	assert.True(t, ok)
	assert.Equal(t, "dot * (1 - distance)", v)

	v, ok = config.GetSectionOption("chase", "min-awareness")
	assert.True(t, ok)
	assert.Equal(t, "1.75", v)

	_, ok = config.GetSectionOption("nonexistent", "option")
	assert.False(t, ok)

	assert.Equal(t, []string{"chase", "vision"}, config.SectionNames())
}

func TestEmptyConfig(t *testing.T) {
	config, err := LoadFromReader(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, config.Global)
	assert.Empty(t, config.Sections)
	assert.False(t, config.HasWarnings())
}

func TestConfigWithCommentsAndBlankLines(t *testing.T) {
	configContent := `# comment

  log.format json
# section
[sim]
   # indented comment
seed 42
`
	config, err := LoadFromReader(strings.NewReader(configContent))
	require.NoError(t, err)
	assert.Equal(t, "json", config.GetString("log.format"))
	v, _ := config.GetSectionOption("sim", "seed")
	assert.Equal(t, "42", v)
}

func TestConfigMalformedHeaders(t *testing.T) {
	_, err := LoadFromReader(strings.NewReader("[vision\nrange 1"))
	assert.ErrorContains(t, err, "line 1")

	_, err = LoadFromReader(strings.NewReader("log.level info\n[ ]"))
	assert.ErrorContains(t, err, "line 2: empty section header")
}

func TestConfigWarnings(t *testing.T) {
	configContent := `colour always
[vision]
range far
[graphics]
quality high`

	config, err := LoadFromReader(strings.NewReader(configContent))
	require.NoError(t, err)
	require.True(t, config.HasWarnings())
	assert.Equal(t, []string{
		`option "range" in [vision]: expected float, got "far"`,
		`unknown global option: "colour" (value: "always")`,
		`unknown section: [graphics]`,
	}, config.GetWarnings())
}

func TestConfigSet(t *testing.T) {
	config := NewConfig()
	config.Set("vision.range", "12")
	config.Set("log.level", "warn")
	config.Set("plain", "x")

	v, ok := config.GetSectionOption("vision", "range")
	assert.True(t, ok)
	assert.Equal(t, "12", v)
	assert.Equal(t, "warn", config.GetString("log.level"))
	assert.Equal(t, "x", config.GetString("plain"))
	assert.NotContains(t, config.Sections, "log")
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()

	config, err := LoadFromPath(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Empty(t, config.Global)

	path := filepath.Join(dir, "config")
	require.NoError(t, os.WriteFile(path, []byte("[idle]\npriority 5\n"), 0o600))
	config, err = LoadFromPath(path)
	require.NoError(t, err)
	v, _ := config.GetSectionOption("idle", "priority")
	assert.Equal(t, "5", v)

	link := filepath.Join(dir, "link")
	if err := os.Symlink(path, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	_, err = LoadFromPath(link)
	assert.True(t, errors.Is(err, ErrSymlink))
}

func TestLoad_UsesEnvPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte("log.level error\n"), 0o600))
	t.Setenv("NPCMIND_CONFIG", path)

	config, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "error", config.GetString("log.level"))
}

func TestConfigClone(t *testing.T) {
	config := NewConfig()
	config.Set("vision.range", "12")
	config.Set("log.level", "debug")
	config.Warnings = append(config.Warnings, "w")

	clone := config.Clone()
	clone.Set("vision.range", "99")
	clone.Set("log.level", "error")

	v, _ := config.GetSectionOption("vision", "range")
	assert.Equal(t, "12", v)
	assert.Equal(t, "debug", config.GetString("log.level"))
	assert.Equal(t, []string{"w"}, clone.GetWarnings())
}
