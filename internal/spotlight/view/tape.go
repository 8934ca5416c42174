package view

import (
	"sync"

	"github.com/tbessa/spotlight/internal/spotlight"
)

// Tape maintains a bounded ring buffer of recent service events for the
// diagnostics panel.
type Tape struct {
	mu    sync.RWMutex
	buf   []spotlight.Event
	size  int
	start int
	count int
}

// NewTape creates a Tape with the given capacity.
func NewTape(capacity int) *Tape {
	if capacity <= 0 {
		capacity = 100
	}
	return &Tape{
		buf:  make([]spotlight.Event, capacity),
		size: capacity,
	}
}

// Append adds an event to the tape, overwriting the oldest when full.
func (t *Tape) Append(ev spotlight.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.count < t.size {
		t.buf[(t.start+t.count)%t.size] = ev
		t.count++
		return
	}
	t.buf[t.start] = ev
	t.start = (t.start + 1) % t.size
}

// Latest returns the last n events in chronological order (oldest first).
// Returns a copy (not internal references).
func (t *Tape) Latest(n int) []spotlight.Event {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if n <= 0 || t.count == 0 {
		return nil
	}
	if n > t.count {
		n = t.count
	}

	out := make([]spotlight.Event, n)
	first := (t.start + (t.count - n)) % t.size
	for i := 0; i < n; i++ {
		out[i] = t.buf[(first+i)%t.size]
	}
	return out
}

// Count returns the number of events in the tape.
func (t *Tape) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.count
}
