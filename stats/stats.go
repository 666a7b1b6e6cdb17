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

// Package stats implements the statistics engine (spec §4.5): named
// counters and peaks tracked over a configurable set of rolling intervals,
// with lock-free rollover built on the internal/roll window primitive.
package stats

import (
	"fmt"
	"time"

	"github.com/nabbar/termcore/atomic"
	"github.com/nabbar/termcore/duration"
	"github.com/nabbar/termcore/internal/roll"
)

// Kind distinguishes a metric's aggregation rule. Calling Increase/Increment
// on a Peak metric, or Peak on a Counter metric, is undefined behavior per
// spec §4.5 and is not detected here.
type Kind uint8

const (
	Counter Kind = iota
	Peak
)

func (k Kind) String() string {
	switch k {
	case Peak:
		return "peak"
	default:
		return "counter"
	}
}

type metric struct {
	kind    Kind
	windows []*roll.Window[int64]
}

// Engine tracks metrics across a fixed set of intervals, shared by every
// metric name registered on it. Intervals are configured once at
// construction; a zero-length interval is the since-start cumulative
// bucket (spec §4.5).
type Engine struct {
	intervals []duration.Duration
	now       func() time.Time
	metrics   atomic.MapTyped[string, *metric]
}

// New creates an engine rolling over the given intervals. now defaults to
// time.Now when nil; tests may inject a controllable clock.
func New(intervals []duration.Duration, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{
		intervals: intervals,
		now:       now,
		metrics:   atomic.NewMapTyped[string, *metric](),
	}
}

func (e *Engine) newMetric(kind Kind) *metric {
	m := &metric{kind: kind, windows: make([]*roll.Window[int64], len(e.intervals))}
	for i, iv := range e.intervals {
		m.windows[i] = roll.NewWindow[int64](iv.Time(), 0, e.now)
	}
	return m
}

func (e *Engine) get(name string, kind Kind) *metric {
	if m, ok := e.metrics.Load(name); ok {
		return m
	}
	m, _ := e.metrics.LoadOrStore(name, e.newMetric(kind))
	return m
}

// Increase adds value (must be ≥ 0) to the named counter's current bucket
// in every configured interval.
func (e *Engine) Increase(name string, value int64) error {
	if value < 0 {
		return fmt.Errorf("stats: negative increase %d for %q", value, name)
	}
	m := e.get(name, Counter)
	for _, w := range m.windows {
		w.Update(func(cur int64) int64 { return cur + value })
	}
	return nil
}

// Increment is Increase(name, 1).
func (e *Engine) Increment(name string) error {
	return e.Increase(name, 1)
}

// Peak records value as a candidate new maximum for the named metric in
// every configured interval.
func (e *Engine) Peak(name string, value int64) error {
	if value < 0 {
		return fmt.Errorf("stats: negative peak %d for %q", value, name)
	}
	m := e.get(name, Peak)
	for _, w := range m.windows {
		w.Update(func(cur int64) int64 {
			if value > cur {
				return value
			}
			return cur
		})
	}
	return nil
}

// Get reads the named metric's current value for the given interval. ok is
// false if the metric has never been written or the interval is not one
// this engine was configured with.
func (e *Engine) Get(name string, interval duration.Duration) (value int64, ok bool) {
	m, found := e.metrics.Load(name)
	if !found {
		return 0, false
	}
	for i, iv := range e.intervals {
		if iv == interval {
			return m.windows[i].Read(), true
		}
	}
	return 0, false
}

// Reset replaces every interval state for the named metric with a blank
// state anchored at now.
func (e *Engine) Reset(name string) {
	if m, ok := e.metrics.Load(name); ok {
		for _, w := range m.windows {
			w.Reset()
		}
	}
}

// ResetAll resets every known metric.
func (e *Engine) ResetAll() {
	for _, name := range e.Names() {
		e.Reset(name)
	}
}

// KindOf reports the aggregation kind a metric was first created with.
func (e *Engine) KindOf(name string) (Kind, bool) {
	m, ok := e.metrics.Load(name)
	if !ok {
		return 0, false
	}
	return m.kind, true
}

// Names lists every metric registered so far. Order is unspecified.
func (e *Engine) Names() []string {
	var names []string
	e.metrics.Range(func(key string, _ *metric) bool {
		names = append(names, key)
		return true
	})
	return names
}
