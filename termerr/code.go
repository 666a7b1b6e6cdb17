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

// Package termerr implements the terminal core's error taxonomy (spec §7)
// as coded, stack-traced errors in the style of the host's errors package,
// trimmed to the kinds the dispatcher actually raises.
package termerr

// Code classifies a dispatch-time failure. Values are stable and may be
// compared with Is/HasCode; they are not HTTP-style codes, just a small
// closed set.
type Code uint16

const (
	// UnknownName: lookup failed for a command or variable name.
	UnknownName Code = iota + 1
	// BadArity: no overload matches the argument count.
	BadArity
	// ConversionFailed: an argument could not be converted to the parameter type.
	ConversionFailed
	// InvocationFailed: the handler panicked or returned an error.
	InvocationFailed
	// Cancelled: an async command observed cancellation.
	Cancelled
	// InstanceExpired: the resolved instance's weak handle was empty.
	InstanceExpired
	// ReadOnlyVariable: Set was invoked on a variable without a setter.
	ReadOnlyVariable
)

// String returns a short human-readable name for the code.
func (c Code) String() string {
	switch c {
	case UnknownName:
		return "unknown name"
	case BadArity:
		return "bad arity"
	case ConversionFailed:
		return "conversion failed"
	case InvocationFailed:
		return "invocation failed"
	case Cancelled:
		return "cancelled"
	case InstanceExpired:
		return "instance expired"
	case ReadOnlyVariable:
		return "read-only variable"
	default:
		return "unknown error"
	}
}
