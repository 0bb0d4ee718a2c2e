package render

import "sync/atomic"

// Ticket is a cancellation epoch a playback scheduler bumps every time it
// reschedules a render, so a timer callback left over from a superseded
// frame can tell it's stale and no-op instead of drawing over newer work.
// This replaces the self-rescheduling one-shot timer's own ticket counter
// with a single atomic integer any caller can check.
type Ticket struct {
	epoch atomic.Uint64
}

// Next bumps the epoch and returns the new value; callers hand this value
// to the scheduled render callback.
func (t *Ticket) Next() uint64 { return t.epoch.Add(1) }

// Current returns the epoch without advancing it.
func (t *Ticket) Current() uint64 { return t.epoch.Load() }

// Stale reports whether issued no longer matches the current epoch, i.e.
// a newer render has been scheduled since the caller obtained issued.
func (t *Ticket) Stale(issued uint64) bool { return issued != t.epoch.Load() }
