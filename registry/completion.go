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
	"sort"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// candidates builds the full, sorted, de-duplicated completion universe:
// static command names, static variable names suffixed with "=", and kind
// names suffixed with "." so a user can tab into "Cache." before typing the
// member name.
//
// Names are gathered in three runs (commands, variables, kinds) and the
// whole slice is then sorted case-insensitively; a bitset marks which
// positions collide case-insensitively with their predecessor, so the final
// pass drops duplicates in one sweep instead of the repeated full-slice
// scan a naive dedup would need.
func (r *Registry) candidates() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	raw := make([]string, 0, len(r.static.commands)+len(r.static.variables)+len(r.kinds))
	for _, n := range sortedNames(r.static.commands) {
		raw = append(raw, r.static.commands[n].Name)
	}
	for _, n := range sortedNames(r.static.variables) {
		raw = append(raw, r.static.variables[n].Name+"=")
	}
	for k := range r.kinds {
		raw = append(raw, k+".")
	}
	sort.Slice(raw, func(i, j int) bool { return strings.ToLower(raw[i]) < strings.ToLower(raw[j]) })

	dup := bitset.New(uint(len(raw)))
	for i := 1; i < len(raw); i++ {
		if strings.EqualFold(raw[i], raw[i-1]) {
			dup.Set(uint(i))
		}
	}

	out := make([]string, 0, len(raw))
	for i, c := range raw {
		if !dup.Test(uint(i)) {
			out = append(out, c)
		}
	}
	return out
}

// Complete returns the next completion candidate whose case-insensitive
// form is strictly greater than last, among those matching prefix.
// hasLast=false (last="") returns the first match; a last greater than
// every candidate wraps around to the first (spec §4.1, §8 completion
// monotonicity).
func (r *Registry) Complete(prefix string, last string, hasLast bool) (string, bool) {
	var matches []string
	lp := strings.ToLower(prefix)
	for _, c := range r.candidates() {
		if strings.HasPrefix(strings.ToLower(c), lp) {
			matches = append(matches, c)
		}
	}
	if len(matches) == 0 {
		return "", false
	}

	if !hasLast {
		return matches[0], true
	}

	ll := strings.ToLower(last)
	for _, m := range matches {
		if strings.ToLower(m) > ll {
			return m, true
		}
	}
	return matches[0], true
}
