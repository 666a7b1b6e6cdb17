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

import "weak"

// weakHandle type-erases a weak.Pointer[T] so kindState can hold instances
// of any host type behind one field. Strengthen returns the live instance
// as `any`, or ok=false if it has been garbage collected — at which point
// the caller is expected to reap the slot (spec §3: "named instances whose
// weak handle has expired are lazily reaped on any mutating or enumerating
// operation").
type weakHandle struct {
	strengthen func() (any, bool)
	// equals reports whether the handle was built from the same pointer as
	// another instance, used by DetachDefault's "only if still pointing to
	// the given instance" rule without requiring a type parameter there.
	equals func(instance any) bool
}

// newWeakHandle builds a weakHandle from a concrete instance pointer. It is
// a free function (not a Registry method) because Go methods cannot carry
// their own type parameters.
func newWeakHandle[T any](instance *T) *weakHandle {
	wp := weak.Make(instance)
	return &weakHandle{
		strengthen: func() (any, bool) {
			if p := wp.Value(); p != nil {
				return any(p), true
			}
			return nil, false
		},
		equals: func(other any) bool {
			op, ok := other.(*T)
			if !ok {
				return false
			}
			return wp.Value() == op
		},
	}
}

// alive reports whether the handle's target has not yet been collected.
func (h *weakHandle) alive() bool {
	if h == nil {
		return false
	}
	_, ok := h.strengthen()
	return ok
}
