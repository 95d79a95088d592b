// Package logging provides an in-memory rolling log mirrored to an external
// sink. The buffer is purely observational: nothing consults it for control
// decisions.
package logging

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Entry is one captured log record.
type Entry struct {
	Time    time.Time      `json:"timestamp"`
	Level   slog.Level     `json:"level"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// ring is the bounded append-only sequence shared by a MemoryHandler and all
// handlers derived from it via WithAttrs/WithGroup. Appends are mutex-guarded
// so concurrent operations never corrupt it.
type ring struct {
	mu      sync.Mutex
	max     int
	entries []Entry
}

func (r *ring) append(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, e)
	if len(r.entries) > r.max {
		r.entries = r.entries[len(r.entries)-r.max:]
	}
}

func (r *ring) snapshot() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// MemoryHandler is a slog.Handler that appends every record to a bounded
// in-memory ring while forwarding it to the wrapped sink handler.
type MemoryHandler struct {
	next  slog.Handler
	store *ring
	attrs []slog.Attr
}

var _ slog.Handler = (*MemoryHandler)(nil)

// NewMemoryHandler wraps next with an in-memory ring holding up to max
// entries. max values below 1 fall back to a single-entry ring.
func NewMemoryHandler(next slog.Handler, max int) *MemoryHandler {
	if max < 1 {
		max = 1
	}
	return &MemoryHandler{
		next:  next,
		store: &ring{max: max},
	}
}

// Enabled defers to the sink so the ring captures the same records the sink
// emits.
func (h *MemoryHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle appends the record to the ring and forwards it to the sink.
func (h *MemoryHandler) Handle(ctx context.Context, record slog.Record) error {
	data := make(map[string]any, record.NumAttrs()+len(h.attrs))
	for _, a := range h.attrs {
		data[a.Key] = a.Value.Resolve().Any()
	}
	record.Attrs(func(a slog.Attr) bool {
		data[a.Key] = a.Value.Resolve().Any()
		return true
	})

	h.store.append(Entry{
		Time:    record.Time,
		Level:   record.Level,
		Message: record.Message,
		Data:    data,
	})

	return h.next.Handle(ctx, record)
}

// WithAttrs returns a handler sharing the same ring, carrying the extra attrs.
func (h *MemoryHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &MemoryHandler{
		next:  h.next.WithAttrs(attrs),
		store: h.store,
		attrs: merged,
	}
}

// WithGroup returns a handler sharing the same ring. Grouping is applied only
// to the sink; ring entries keep flat keys.
func (h *MemoryHandler) WithGroup(name string) slog.Handler {
	return &MemoryHandler{
		next:  h.next.WithGroup(name),
		store: h.store,
		attrs: h.attrs,
	}
}

// Entries returns a copy of the buffered entries, oldest first.
func (h *MemoryHandler) Entries() []Entry {
	return h.store.snapshot()
}
