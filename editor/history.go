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

package editor

// DefaultHistoryCapacity is the default bound on recalled input lines
// (spec §3: 1024×4 entries).
const DefaultHistoryCapacity = 1024 * 4

// History is a bounded, newest-first record of submitted lines. No
// duplicate collapsing: the same line submitted twice yields two entries.
type History struct {
	capacity int
	entries  []string // entries[0] is newest
}

// NewHistory creates a history bounded at capacity entries. A capacity ≤ 0
// falls back to DefaultHistoryCapacity.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &History{capacity: capacity}
}

// Add inserts line at position 0, evicting the oldest entry if the history
// is at capacity.
func (h *History) Add(line string) {
	h.entries = append([]string{line}, h.entries...)
	if len(h.entries) > h.capacity {
		h.entries = h.entries[:h.capacity]
	}
}

// Len reports the number of recalled entries.
func (h *History) Len() int {
	return len(h.entries)
}

// At returns the entry at newest-first index i.
func (h *History) At(i int) (string, bool) {
	if i < 0 || i >= len(h.entries) {
		return "", false
	}
	return h.entries[i], true
}

// CopyHistory appends up to maxCount most-recent records, oldest-to-newest,
// to destination and returns the number written (spec §6).
func (h *History) CopyHistory(destination func(line string), maxCount int) int {
	n := len(h.entries)
	if maxCount >= 0 && maxCount < n {
		n = maxCount
	}
	for i := n - 1; i >= 0; i-- {
		destination(h.entries[i])
	}
	return n
}
