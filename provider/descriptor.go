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

// Package provider defines the host-authored surface (spec §6) that replaces
// runtime reflection scanning: a host declares a type's bindings in code via
// a Descriptor, and hands it to the registry at startup. Nothing here
// touches reflection; Callable and Get/Set are plain closures supplied by
// the host.
package provider

import "context"

// Callable is a command handler. A synchronous command may ignore ctx; an
// asynchronous one observes ctx for cancellation and reports completion by
// returning.
//
// args holds only the command's *external* parameters — the framework never
// injects a receiver or cancellation token through this slice (spec §3).
type Callable func(ctx context.Context, args []interface{}) error

// Async marks whether a Callable should be dispatched on a path that awaits
// completion under a cancellation token sourced from the host (spec §4.3).
type Async bool

const (
	ModeSync  Async = false
	ModeAsync Async = true
)

// Parameter describes one external (non-injected) argument of a command.
type Parameter struct {
	Name string
	// Type names the converter in the shared convert.Registry used to turn
	// a single text token into a reflect-free value for this parameter.
	Type string
}

// Command is one overload of a command name. Several Commands sharing a
// Name form the overload set the registry stores as a BindingSet.
type Command struct {
	Name        string
	Description string
	Parameters  []Parameter
	Callable    Callable
	Mode        Async
}

// Getter reads a variable's current value and renders it as text.
type Getter func() (text string, hasValue bool)

// Setter attempts to apply a text value to a variable; ok is false on a
// conversion failure (spec §7 ConversionFailed).
type Setter func(text string) (ok bool)

// Clearer resets a variable to its default/unset state. A variable without
// a Clearer cannot be cleared (spec §3).
type Clearer func()

// Variable is one named, typed, observable piece of host state.
type Variable struct {
	Name        string
	Description string
	Type        string
	Get         Getter
	Set         Setter // nil => read-only (ReadOnlyVariable on Set attempt)
	Clear       Clearer
	Persist     bool
}

// Descriptor is a host-authored description of one type (spec §6). Static
// descriptors (Static=true) hoist their Commands/Variables into the
// process-global namespace; non-static ones become per-instance bindings
// under KindName.
type Descriptor struct {
	KindName  string
	IsDefault bool
	Static    bool
	Commands  []Command
	Variables []Variable
}
