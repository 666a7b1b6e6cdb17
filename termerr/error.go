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

package termerr

import (
	"errors"
	"fmt"
	"path"
	"runtime"
	"strings"
)

// Error is the terminal core's error type: a Code, a message, the frame it
// was raised from, and an optional parent (the handler's own error, for
// InvocationFailed).
type Error struct {
	code   Code
	msg    string
	file   string
	line   int
	parent error
}

// New builds an Error for the given code and message, capturing the caller's
// frame. parent may be nil.
func New(code Code, parent error, format string, args ...interface{}) *Error {
	e := &Error{
		code:   code,
		msg:    fmt.Sprintf(format, args...),
		parent: parent,
	}

	if _, file, line, ok := runtime.Caller(1); ok {
		e.file = trimPkgPath(file)
		e.line = line
	}

	return e
}

func trimPkgPath(file string) string {
	if i := strings.LastIndex(file, "/termerr/"); i != -1 {
		return file[i+1:]
	}
	return path.Base(file)
}

// Code returns the error's classification.
func (e *Error) Code() Code { return e.code }

// File and Line report where the error was raised, for log-line context.
func (e *Error) File() string { return e.file }
func (e *Error) Line() int    { return e.line }

// Error implements the error interface. It includes the parent's message,
// if any, so a single %v renders the full chain.
func (e *Error) Error() string {
	if e.parent != nil {
		return fmt.Sprintf("%s: %s: %s", e.code, e.msg, e.parent.Error())
	}
	return fmt.Sprintf("%s: %s", e.code, e.msg)
}

// Unwrap exposes the parent error to errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.parent }

// Is reports whether target is a *Error with the same Code, matching on
// classification rather than identity — this lets callers write
// errors.Is(err, termerr.New(termerr.BadArity, nil, "")) style checks, but
// the idiomatic form is HasCode below.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.code == e.code
	}
	return false
}

// HasCode reports whether err is, or wraps, a termerr.Error with the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.code == code
	}
	return false
}

// Get returns err as a *Error if it is one (directly or via Unwrap chain).
func Get(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
