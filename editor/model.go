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

// Package editor implements the interactive line editor (spec §4.4): caret
// movement, insert/delete, history navigation, and tab-completion cycling,
// as a bubbletea model in the style of cobra's prompt model.
package editor

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Completer mirrors registry.Registry.Complete: the next case-insensitive
// candidate strictly after last (or the first, if hasLast is false).
type Completer func(prefix, last string, hasLast bool) (string, bool)

// Model is the editor's state machine. It implements tea.Model so a host
// can drive it directly inside a bubbletea program, or call Update by hand
// from any other event loop (see cmd/termdemo).
type Model struct {
	prompt        string
	promptWidth   int
	viewportWidth int

	line   []rune
	caret  int
	offset int // viewport_offset

	history      *History
	historyIdx   int // -1 = not navigating
	historyStash []rune

	partialActive   bool
	partial         string
	lastComplete    string
	hasLastComplete bool

	complete Completer
	onSubmit func(line string)
}

// NewModel creates an editor with the given prompt (its rune count is the
// prompt width), visible column width (80 when not positive), history,
// completer, and submit callback.
func NewModel(prompt string, viewportWidth int, history *History, complete Completer, onSubmit func(string)) *Model {
	if viewportWidth <= 0 {
		viewportWidth = 80
	}
	return &Model{
		prompt:        prompt,
		promptWidth:   len([]rune(prompt)),
		viewportWidth: viewportWidth,
		history:       history,
		historyIdx:    -1,
		complete:      complete,
		onSubmit:      onSubmit,
	}
}

func (m *Model) Init() tea.Cmd { return nil }

// Line returns the current line content.
func (m *Model) Line() string { return string(m.line) }

// Caret returns the current caret position (rune index into Line()).
func (m *Model) Caret() int { return m.caret }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if keyMsg.Type != tea.KeyTab {
		m.partialActive = false
	}

	switch keyMsg.Type {
	case tea.KeyEnter:
		m.submit()
	case tea.KeyUp:
		m.historyOlder()
	case tea.KeyDown:
		m.historyNewer()
	case tea.KeyLeft:
		if m.caret > 0 {
			m.caret--
		}
		m.adjustViewport()
	case tea.KeyRight:
		if m.caret < len(m.line) {
			m.caret++
		}
		m.adjustViewport()
	case tea.KeyHome:
		m.caret = 0
		m.adjustViewport()
	case tea.KeyEnd:
		m.caret = len(m.line)
		m.adjustViewport()
	case tea.KeyBackspace:
		if m.caret > 0 {
			m.line = append(m.line[:m.caret-1], m.line[m.caret:]...)
			m.caret--
			m.adjustViewport()
		}
	case tea.KeyDelete:
		if m.caret < len(m.line) {
			m.line = append(m.line[:m.caret], m.line[m.caret+1:]...)
		}
	case tea.KeyEsc:
		m.clearLine()
	case tea.KeyTab:
		m.cycleComplete()
	case tea.KeyRunes:
		m.insert(keyMsg.Runes)
	case tea.KeySpace:
		m.insert([]rune(" "))
	}

	return m, nil
}

func (m *Model) View() string {
	runes := m.line
	end := m.offset + m.viewportWidth
	if end > len(runes) {
		end = len(runes)
	}
	visible := string(runes[m.offset:end])
	return m.prompt + visible
}

// CaretColumn is the caret's displayed column, per spec §4.4's display
// invariant: caret - viewport_offset + prompt_width.
func (m *Model) CaretColumn() int {
	return m.caret - m.offset + m.promptWidth
}

func (m *Model) insert(r []rune) {
	if len(r) == 0 {
		return
	}
	tail := append([]rune{}, m.line[m.caret:]...)
	m.line = append(append(m.line[:m.caret:m.caret], r...), tail...)
	m.caret += len(r)
	m.adjustViewport()
}

func (m *Model) clearLine() {
	m.line = nil
	m.caret = 0
	m.offset = 0
	m.historyIdx = -1
}

func (m *Model) submit() {
	line := string(m.line)
	if line != "" && m.history != nil {
		m.history.Add(line)
	}
	if m.onSubmit != nil {
		m.onSubmit(line)
	}
	m.clearLine()
}

// adjustViewport slides the viewport so the caret is always within
// [offset, offset+width), per spec §4.4's display invariant.
func (m *Model) adjustViewport() {
	if m.caret < m.offset {
		m.offset = m.caret
	}
	if m.caret >= m.offset+m.viewportWidth {
		m.offset = m.caret - m.viewportWidth + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *Model) setLine(s string) {
	m.line = []rune(s)
	m.caret = len(m.line)
	m.offset = 0
	m.adjustViewport()
}

func (m *Model) historyOlder() {
	if m.history == nil || m.history.Len() == 0 {
		return
	}
	if m.historyIdx == -1 {
		m.historyStash = append([]rune{}, m.line...)
	}
	if m.historyIdx+1 >= m.history.Len() {
		return // cap at the oldest entry
	}
	m.historyIdx++
	line, _ := m.history.At(m.historyIdx)
	m.setLine(line)
}

func (m *Model) historyNewer() {
	if m.historyIdx == -1 {
		return // cap at the newest (live) line
	}
	m.historyIdx--
	if m.historyIdx == -1 {
		m.setLine(string(m.historyStash))
		return
	}
	line, _ := m.history.At(m.historyIdx)
	m.setLine(line)
}

// cycleComplete implements spec §4.4's Tab semantics: the first Tab
// snapshots the current line as the completion prefix; subsequent Tabs
// cycle candidates via complete(partial, last, hasLast).
func (m *Model) cycleComplete() {
	if m.complete == nil {
		return
	}
	if !m.partialActive {
		m.partial = string(m.line)
		m.hasLastComplete = false
		m.partialActive = true
	}

	cand, ok := m.complete(m.partial, m.lastComplete, m.hasLastComplete)
	if !ok {
		return
	}
	m.lastComplete = cand
	m.hasLastComplete = true
	m.setLine(cand)
	m.partialActive = true // setLine's caret reset must not clear the partial snapshot
}
