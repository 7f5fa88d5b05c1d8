package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"Error":   slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("verbose")
	assert.EqualError(t, err, "invalid log level: verbose")
}

func TestNew_Formats(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h, err := New(&buf, FormatJSON, slog.LevelInfo)
	require.NoError(t, err)
	slog.New(h).Info("[Sim] step", "tick", 3)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "[Sim] step", line["msg"])
	assert.Equal(t, 3.0, line["tick"])

	buf.Reset()
	h, err = New(&buf, "", slog.LevelWarn)
	require.NoError(t, err)
	slog.New(h).Info("hidden")
	slog.New(h).Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")

	_, err = New(&buf, "xml", slog.LevelInfo)
	assert.Error(t, err)
}

func TestRing_KeepsNewest(t *testing.T) {
	t.Parallel()

	ring := NewRing(3, slog.LevelDebug)
	logger := slog.New(ring)
	assert.Empty(t, ring.Recent(0))

	for _, m := range []string{"a", "b", "c", "d", "e"} {
		logger.Info(m)
	}

	assert.Equal(t, 3, ring.Len())
	assert.Equal(t, []string{"c", "d", "e"}, messages(ring.Recent(0)))
	assert.Equal(t, []string{"d", "e"}, messages(ring.Recent(2)))
	assert.Equal(t, []string{"c", "d", "e"}, messages(ring.Recent(10)))

	ring.Clear()
	assert.Zero(t, ring.Len())
	logger.Info("f")
	assert.Equal(t, []string{"f"}, messages(ring.Recent(0)))
}

func TestRing_LevelAttrsAndGroups(t *testing.T) {
	t.Parallel()

	ring := NewRing(10, slog.LevelInfo)
	logger := slog.New(ring).With("agent", "npc-1").WithGroup("awareness")
	logger.Debug("dropped")
	logger.Info("[Awareness] crossing", "event", "detected")

	got := ring.Recent(0)
	require.Len(t, got, 1)
	assert.Equal(t, slog.LevelInfo, got[0].Level)
	assert.Equal(t, "[Awareness] crossing agent=npc-1 awareness.event=detected", got[0].String())
}

func TestFanout(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	text, err := New(&buf, FormatText, slog.LevelWarn)
	require.NoError(t, err)
	ring := NewRing(10, slog.LevelDebug)

	logger := slog.New(Fanout(text, nil, ring)).With("k", "v")
	logger.Debug("quiet")
	logger.Warn("loud")

	assert.Equal(t, []string{"quiet", "loud"}, messages(ring.Recent(0)))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), "k=v")

	assert.False(t, Fanout().Enabled(t.Context(), slog.LevelError))
}

func TestSetup_FileAndRing(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "npcmind.log")
	ring := NewRing(5, slog.LevelDebug)
	var fallback bytes.Buffer

	logger, closer, err := Setup(Options{Level: "debug", File: path, Ring: ring}, &fallback)
	require.NoError(t, err)
	logger.Debug("[Agent] tick")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[Agent] tick")
	assert.Empty(t, fallback.String())
	assert.Equal(t, 1, ring.Len())

	_, _, err = Setup(Options{Level: "loud"}, &fallback)
	assert.Error(t, err)
}

func TestRotatingFile_Rotates(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test.log")
	w, err := OpenRotating(path, 1, 2)
	require.NoError(t, err)
	w.limit = 20

	line := func(c string) []byte { return []byte(strings.Repeat(c, 14) + "\n") }
	for _, c := range []string{"a", "b", "c", "d"} {
		n, err := w.Write(line(c))
		require.NoError(t, err)
		require.Equal(t, 15, n)
	}
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	read := func(p string) string {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		return string(data)
	}
	assert.Equal(t, string(line("d")), read(path))
	assert.Equal(t, string(line("c")), read(path+".1"))
	assert.Equal(t, string(line("b")), read(path+".2"))
	_, err = os.Stat(path + ".3")
	assert.True(t, os.IsNotExist(err))

	_, err = w.Write(line("e"))
	assert.ErrorIs(t, err, os.ErrClosed)
}

func TestRotatingFile_ZeroBackupsTruncates(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test.log")
	w, err := OpenRotating(path, 0, -1)
	require.NoError(t, err)
	assert.Equal(t, int64(1<<20), w.limit)
	w.limit = 10

	_, err = w.Write([]byte("12345678\n"))
	require.NoError(t, err)
	_, err = w.Write([]byte("abcdefgh\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "abcdefgh\n", string(data))
	_, err = os.Stat(path + ".1")
	assert.True(t, os.IsNotExist(err))
}

func TestRotatingFile_AppendsToExisting(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test.log")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))

	w, err := OpenRotating(path, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(4), w.size)
	_, err = w.Write([]byte("new\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old\nnew\n", string(data))
}

func messages(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Message
	}
	return out
}
