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

// Package terminalio defines the ITerminal logging port (spec §6) consumed
// by the dispatcher. Its default implementation is the logadapter
// sub-package, backed by a logrus.FieldLogger.
package terminalio

import "github.com/nabbar/termcore/termlevel"

// Handle identifies one open, nested log section (spec §6). Sections must
// be balanced by the consumer: every BeginSection call needs a matching
// EndSection before its parent section closes.
type Handle uint64

// ITerminal is the logging capability the dispatcher is built against. It
// never depends on a concrete sink: a host may back it with structured
// logging, a bare console, or a test double that records calls.
type ITerminal interface {
	// Log records one line at the given severity. message is a
	// fmt.Sprintf-style format string applied to args.
	Log(severity termlevel.Level, message string, args ...interface{})

	// BeginSection opens a nested scope titled title and returns a handle
	// to close it. Sections may nest arbitrarily.
	BeginSection(title string) Handle

	// EndSection closes the section identified by handle.
	EndSection(handle Handle)

	// LogError records err at severity Error, alongside a formatted
	// message giving the call-site's own context.
	LogError(err error, message string, args ...interface{})

	// Flush drains any buffered output. Sinks with no buffering treat it
	// as a no-op.
	Flush() error
}
