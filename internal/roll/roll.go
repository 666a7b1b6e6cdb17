/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package roll implements the rolling-interval bookkeeping shared by the
// stats and profiler engines: a lock-free current/previous pair per metric,
// rolled over on a round-down interval boundary. Both engines differ only
// in the payload they accumulate, so the CAS machinery lives here once.
package roll

import (
	"time"

	"github.com/nabbar/termcore/atomic"
)

// state is the value held in the atomic cell. It must stay a comparable
// struct of comparable fields so atomic.Value[T].CompareAndSwap can compare
// it by ==. expiring is a sentinel set by the goroutine that won the race to
// roll the window over; anyone else observing it spins until the roll
// completes. primed is false until the first real rollover has happened;
// before that, current is the only real data there is.
type state[P comparable] struct {
	start    int64 // interval start, unix nanoseconds, rounded down to len
	current  P
	previous P
	primed   bool
	expiring bool
}

// Window holds one metric's rolling current/previous pair for a single
// interval length. A length of 0 means "cumulative since start": Update
// never rolls over and Read always returns current.
type Window[P comparable] struct {
	cell atomic.Value[state[P]]
	len  int64 // nanoseconds
	zero P
	now  func() time.Time
}

// NewWindow creates a window of the given interval length. now is the clock
// to use; pass time.Now in production and an injectable func in tests.
func NewWindow[P comparable](length time.Duration, zero P, now func() time.Time) *Window[P] {
	w := &Window[P]{
		cell: atomic.NewValue[state[P]](),
		len:  int64(length),
		zero: zero,
		now:  now,
	}
	w.cell.Store(state[P]{start: w.roundDown(now().UnixNano()), current: zero, previous: zero})
	return w
}

func (w *Window[P]) roundDown(nowNano int64) int64 {
	if w.len <= 0 {
		return 0
	}
	return nowNano - (nowNano % w.len)
}

// Update applies merge to the current bucket's payload, rolling the window
// over first if the interval has elapsed. merge receives the zero payload
// right after a rollover, and the live payload otherwise.
func (w *Window[P]) Update(merge func(cur P) P) {
	for {
		s := w.cell.Load()

		if s.expiring {
			continue // another goroutine is mid-rollover; spin
		}

		nowNano := w.now().UnixNano()

		if w.len > 0 && nowNano >= s.start+w.len {
			expiring := s
			expiring.expiring = true
			if !w.cell.CompareAndSwap(s, expiring) {
				continue
			}

			next := state[P]{
				start:    w.roundDown(nowNano),
				current:  merge(w.zero),
				previous: s.current,
				primed:   true,
			}
			if nowNano >= s.start+2*w.len {
				next.previous = w.zero // the interval just completed saw no writes
			}
			w.cell.Store(next)
			return
		}

		next := s
		next.current = merge(s.current)
		if !w.cell.CompareAndSwap(s, next) {
			continue
		}
		return
	}
}

// Read returns the payload visible for the current moment, per the
// three-way rule (spec §4.5): let k be the number of whole interval lengths
// elapsed since the bucket's start.
//
//   - k == 0: the bucket is still live. If a prior rollover has already
//     happened (primed), the just-completed bucket is shown instead of the
//     partial one now accumulating, so a poller never sees a value reset to
//     a small number mid-interval; before the first rollover ever, there is
//     no completed bucket yet, so the live one is the only real data.
//   - k == 1: one full interval has elapsed with no further write to roll
//     it; current is therefore already frozen and safe to show directly.
//   - k >= 2: the metric has gone quiet for two full intervals; reads as
//     zero.
func (w *Window[P]) Read() P {
	s := w.cell.Load()
	for s.expiring {
		s = w.cell.Load()
	}

	if w.len <= 0 {
		return s.current
	}

	k := (w.now().UnixNano() - s.start) / w.len
	switch {
	case k <= 0:
		if s.primed {
			return s.previous
		}
		return s.current
	case k == 1:
		return s.current
	default:
		return w.zero
	}
}

// Reset clears both buckets and re-anchors the interval start on now.
func (w *Window[P]) Reset() {
	w.cell.Store(state[P]{start: w.roundDown(w.now().UnixNano()), current: w.zero, previous: w.zero})
}
