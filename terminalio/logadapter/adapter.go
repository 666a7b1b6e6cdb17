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

// Package logadapter implements terminalio.ITerminal on top of a
// sirupsen/logrus entry, the structured-logging library the rest of the
// terminal core's ambient stack is built on.
package logadapter

import (
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/nabbar/termcore/termlevel"
	"github.com/nabbar/termcore/terminalio"
)

// Adapter backs terminalio.ITerminal with a logrus.FieldLogger. Nested
// sections are tracked as a title stack; every log line is prefixed with
// the path of currently open sections, so output nests the same way the
// source console's hierarchical printing would.
type Adapter struct {
	log logrus.FieldLogger

	mu       sync.Mutex
	sections []sectionFrame
	nextID   uint64
}

type sectionFrame struct {
	id    terminalio.Handle
	title string
}

// New wraps an existing logrus.FieldLogger as an ITerminal.
func New(log logrus.FieldLogger) *Adapter {
	return &Adapter{log: log}
}

func (a *Adapter) prefix() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.sections) == 0 {
		return ""
	}
	titles := make([]string, len(a.sections))
	for i, f := range a.sections {
		titles[i] = f.title
	}
	return "[" + strings.Join(titles, "/") + "] "
}

// Log renders message at severity. message/args are formatted in isolation
// before the section prefix (which may itself contain '%', e.g. a title
// like "50% done") is attached as literal text, so neither the prefix nor
// any substituted argument value is ever reinterpreted as a format verb.
// Critical is deliberately routed to Errorf rather than logrus's Fatalf/
// Panicf: a terminal log call must never have the side effect of exiting
// or panicking the host process.
func (a *Adapter) Log(severity termlevel.Level, message string, args ...interface{}) {
	line := a.prefix() + fmt.Sprintf(message, args...)
	switch severity.Logrus() {
	case logrus.WarnLevel:
		a.log.Warnf("%s", line)
	case logrus.InfoLevel:
		a.log.Infof("%s", line)
	case logrus.DebugLevel, logrus.TraceLevel:
		a.log.Debugf("%s", line)
	default:
		a.log.Errorf("%s", line)
	}
}

func (a *Adapter) BeginSection(title string) terminalio.Handle {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nextID++
	id := terminalio.Handle(a.nextID)
	a.sections = append(a.sections, sectionFrame{id: id, title: title})
	return id
}

// EndSection closes handle and, defensively, any section opened after it
// that was never itself closed (an unbalanced caller should not wedge the
// section stack open for the rest of the run).
func (a *Adapter) EndSection(handle terminalio.Handle) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := len(a.sections) - 1; i >= 0; i-- {
		if a.sections[i].id == handle {
			a.sections = a.sections[:i]
			return
		}
	}
}

func (a *Adapter) LogError(err error, message string, args ...interface{}) {
	line := a.prefix() + fmt.Sprintf(message, args...)
	a.log.WithError(err).Errorf("%s", line)
}

// Flush is a no-op: logrus writes to its configured output synchronously,
// so there is nothing buffered to drain here.
func (a *Adapter) Flush() error {
	return nil
}

var _ terminalio.ITerminal = (*Adapter)(nil)
