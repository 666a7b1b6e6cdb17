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

package registry

import (
	"github.com/hashicorp/go-multierror"
)

// Snapshot is the neutral, ordered capture of every persist-marked static
// variable's current text value (spec §6 persistence). Entries are ordered
// by variable name, case-insensitively.
type Snapshot []SnapshotEntry

// SnapshotEntry pairs a variable name with its captured text. Text is the
// zero value and HasValue is false when the variable reported no value at
// capture time.
type SnapshotEntry struct {
	Name     string
	Text     string
	HasValue bool
}

// Capture walks the static namespace's persist-marked variables and records
// their current text value, ordered by name (case-insensitive).
func (r *Registry) Capture() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var snap Snapshot
	for _, n := range sortedNames(r.static.variables) {
		v := r.static.variables[n]
		if !v.Persist {
			continue
		}
		if !v.Readable() {
			snap = append(snap, SnapshotEntry{Name: v.Name, HasValue: false})
			continue
		}
		text, ok := v.Get()
		snap = append(snap, SnapshotEntry{Name: v.Name, Text: text, HasValue: ok})
	}
	return snap
}

// Restore replays a Snapshot by calling Set (or Clear, when HasValue is
// false) for each entry in saved order. Per-variable failures are
// aggregated with go-multierror and do not abort the batch (spec §6: restore
// errors are reported per-variable and do not abort the batch).
func (r *Registry) Restore(snap Snapshot) error {
	var errs *multierror.Error

	for _, entry := range snap {
		res, ok := r.Lookup(entry.Name)
		if !ok || res.Variable == nil {
			errs = multierror.Append(errs, &restoreError{name: entry.Name, reason: "unknown variable"})
			continue
		}

		if !entry.HasValue {
			if res.Variable.Clear != nil {
				res.Variable.Clear()
			}
			continue
		}

		if res.Variable.Set == nil {
			errs = multierror.Append(errs, &restoreError{name: entry.Name, reason: "read-only variable"})
			continue
		}

		if !res.Variable.Set(entry.Text) {
			errs = multierror.Append(errs, &restoreError{name: entry.Name, reason: "invalid value " + entry.Text})
		}
	}

	return errs.ErrorOrNil()
}

type restoreError struct {
	name   string
	reason string
}

func (e *restoreError) Error() string {
	return "restore " + e.name + ": " + e.reason
}
