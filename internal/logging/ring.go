package logging

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Entry is one captured record.
type Entry struct {
	Time    time.Time
	Level   slog.Level
	Message string
	Attrs   []slog.Attr
}

// String renders the attributes as key=value pairs.
func (e Entry) String() string {
	var b strings.Builder
	b.WriteString(e.Message)
	for _, a := range e.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteByte('=')
		b.WriteString(a.Value.String())
	}
	return b.String()
}

// Ring is a bounded in-memory slog.Handler. The oldest entries are dropped
// once the capacity is reached.
type Ring struct {
	store *ringStore
	level slog.Leveler
	attrs []slog.Attr
	group string
}

type ringStore struct {
	mu      sync.RWMutex
	entries []Entry
	next    int
	full    bool
}

var _ slog.Handler = (*Ring)(nil)

// NewRing returns a ring holding up to size entries at or above level.
func NewRing(size int, level slog.Leveler) *Ring {
	if size <= 0 {
		size = 1000
	}
	if level == nil {
		level = slog.LevelInfo
	}
	return &Ring{
		store: &ringStore{entries: make([]Entry, size)},
		level: level,
	}
}

func (h *Ring) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *Ring) Handle(_ context.Context, record slog.Record) error {
	attrs := make([]slog.Attr, 0, len(h.attrs)+record.NumAttrs())
	attrs = append(attrs, h.attrs...)
	record.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, h.qualify(a))
		return true
	})
	h.store.push(Entry{
		Time:    record.Time,
		Level:   record.Level,
		Message: record.Message,
		Attrs:   attrs,
	})
	return nil
}

func (h *Ring) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append([]slog.Attr(nil), h.attrs...)
	for _, a := range attrs {
		c.attrs = append(c.attrs, h.qualify(a))
	}
	return &c
}

func (h *Ring) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := *h
	c.group = h.qualifyKey(name)
	return &c
}

func (h *Ring) qualify(a slog.Attr) slog.Attr {
	a.Key = h.qualifyKey(a.Key)
	return a
}

func (h *Ring) qualifyKey(k string) string {
	if h.group == "" {
		return k
	}
	return h.group + "." + k
}

// Recent returns up to n of the newest entries, oldest first. n <= 0 returns
// everything held.
func (h *Ring) Recent(n int) []Entry {
	return h.store.recent(n)
}

// Len returns the number of entries held.
func (h *Ring) Len() int {
	s := h.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.full {
		return len(s.entries)
	}
	return s.next
}

// Clear drops every entry.
func (h *Ring) Clear() {
	s := h.store
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.entries)
	s.next, s.full = 0, false
}

func (s *ringStore) push(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[s.next] = e
	s.next++
	if s.next == len(s.entries) {
		s.next, s.full = 0, true
	}
}

func (s *ringStore) recent(n int) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	size := s.next
	if s.full {
		size = len(s.entries)
	}
	if n <= 0 || n > size {
		n = size
	}
	out := make([]Entry, n)
	start := s.next - n
	for i := range out {
		idx := start + i
		if idx < 0 {
			idx += len(s.entries)
		}
		out[i] = s.entries[idx]
	}
	return out
}
