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

// Package profiler implements the profiler engine (spec §4.6): named
// sections accumulate duration samples over the same rolling intervals the
// stats engine uses, via the shared internal/roll window primitive.
package profiler

import (
	"time"

	"github.com/nabbar/termcore/atomic"
	"github.com/nabbar/termcore/duration"
	"github.com/nabbar/termcore/internal/roll"
)

// Sample is the accumulated payload for one section within one interval.
// Min/Max are in the zero state (Min == 0, Max == 0) until the first
// sample lands; callers should treat Samples == 0 as "no data" rather than
// trusting Min/Max directly.
type Sample struct {
	Samples int64
	Elapsed time.Duration
	Min     time.Duration
	Max     time.Duration
}

func mergeSample(cur Sample, delta time.Duration) Sample {
	next := Sample{
		Samples: cur.Samples + 1,
		Elapsed: cur.Elapsed + delta,
		Min:     delta,
		Max:     delta,
	}
	if cur.Samples > 0 {
		if cur.Min < delta {
			next.Min = cur.Min
		}
		if cur.Max > delta {
			next.Max = cur.Max
		}
	}
	return next
}

type section struct {
	windows []*roll.Window[Sample]
}

// Engine tracks named sections across a fixed set of intervals.
type Engine struct {
	intervals []duration.Duration
	now       func() time.Time
	sections  atomic.MapTyped[string, *section]
}

// New creates a profiler engine rolling over the given intervals.
func New(intervals []duration.Duration, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{
		intervals: intervals,
		now:       now,
		sections:  atomic.NewMapTyped[string, *section](),
	}
}

func (e *Engine) newSection() *section {
	s := &section{windows: make([]*roll.Window[Sample], len(e.intervals))}
	for i, iv := range e.intervals {
		s.windows[i] = roll.NewWindow[Sample](iv.Time(), Sample{}, e.now)
	}
	return s
}

func (e *Engine) get(name string) *section {
	if s, ok := e.sections.Load(name); ok {
		return s
	}
	s, _ := e.sections.LoadOrStore(name, e.newSection())
	return s
}

// Instance is a scoped handle obtained by Begin and closed by Release,
// which records the elapsed duration into every configured interval.
type Instance struct {
	section *section
	start   time.Time
	now     func() time.Time
}

// Begin names a section and starts timing it. Sections are created lazily
// on first use; there is no separate pre-registration step.
func (e *Engine) Begin(name string) *Instance {
	return &Instance{section: e.get(name), start: e.now(), now: e.now}
}

// Release records the elapsed time since Begin into every interval. It is
// safe, and expected, to call from a defer so release happens on every exit
// path including panics.
func (i *Instance) Release() {
	delta := i.now().Sub(i.start)
	for _, w := range i.section.windows {
		w.Update(func(cur Sample) Sample { return mergeSample(cur, delta) })
	}
}

// Get reads the named section's sample for the given interval.
func (e *Engine) Get(name string, interval duration.Duration) (Sample, bool) {
	s, found := e.sections.Load(name)
	if !found {
		return Sample{}, false
	}
	for i, iv := range e.intervals {
		if iv == interval {
			return s.windows[i].Read(), true
		}
	}
	return Sample{}, false
}

// Reset clears the named section's state across every interval.
func (e *Engine) Reset(name string) {
	if s, ok := e.sections.Load(name); ok {
		for _, w := range s.windows {
			w.Reset()
		}
	}
}

// PerSecond returns the number of samples recorded per second of the
// interval's length, computed at read time from Samples and the interval.
// A zero-length interval yields 0.
func PerSecond(s Sample, interval duration.Duration) float64 {
	return rate(s, interval.Time().Seconds())
}

// PerMinute is PerSecond scaled to a per-minute rate.
func PerMinute(s Sample, interval duration.Duration) float64 {
	return rate(s, interval.Time().Minutes())
}

// PerHour is PerSecond scaled to a per-hour rate.
func PerHour(s Sample, interval duration.Duration) float64 {
	return rate(s, interval.Time().Hours())
}

func rate(s Sample, units float64) float64 {
	if units <= 0 {
		return 0
	}
	return float64(s.Samples) / units
}
