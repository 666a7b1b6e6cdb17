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

// Package dispatch implements the terminal core's dispatcher (spec §4.3):
// it resolves a parsed line against the registry, converts arguments via
// the type-converter registry, invokes the matching overload, and reports
// failures through the ITerminal port per the taxonomy in spec §7.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nabbar/termcore/convert"
	"github.com/nabbar/termcore/parser"
	"github.com/nabbar/termcore/provider"
	"github.com/nabbar/termcore/registry"
	"github.com/nabbar/termcore/termerr"
	"github.com/nabbar/termcore/termlevel"
	"github.com/nabbar/termcore/terminalio"
)

// Dispatcher is the dispatch engine over one Registry/converter pair. The
// zero value is not usable; construct with New.
type Dispatcher struct {
	reg  *registry.Registry
	conv *convert.Registry
	term terminalio.ITerminal

	mu       sync.Mutex
	debugger bool
	state    State
	last     State
}

// New builds a Dispatcher over reg (names/instances), conv (argument
// conversion), and term (the logging port failures and help text go
// through).
func New(reg *registry.Registry, conv *convert.Registry, term terminalio.ITerminal) *Dispatcher {
	return &Dispatcher{reg: reg, conv: conv, term: term}
}

// SetDebugger toggles debugger mode (spec §7): when on, a panicking
// Callable is allowed to keep unwinding instead of being converted into an
// InvocationFailed error, so an attached debugger breaks at the original
// panic site.
func (d *Dispatcher) SetDebugger(on bool) {
	d.mu.Lock()
	d.debugger = on
	d.mu.Unlock()
}

// State reports the dispatcher's current stage. Outside of a Callable it is
// always Idle, since Dispatch runs a full line to completion before
// returning (spec §4.3: "re-entrant only between lines").
func (d *Dispatcher) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// LastOutcome reports the terminal state (Completed or Failed) the most
// recent Dispatch call reached, or Idle if Dispatch has never been called.
func (d *Dispatcher) LastOutcome() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}

func (d *Dispatcher) setState(s State) {
	d.mu.Lock()
	d.state = s
	if s == Completed || s == Failed {
		d.last = s
	}
	d.mu.Unlock()
}

// Dispatch runs one input line to completion: split, resolve, convert,
// invoke, report. It always returns to Idle before returning control, per
// the line-level state machine (spec §4.3). A blank line is a no-op.
func (d *Dispatcher) Dispatch(ctx context.Context, line string) error {
	defer d.setState(Idle)

	d.setState(Parsing)
	name, delim, remainder := parser.SplitNameAndRemainder(line)
	if name == "" {
		return nil
	}

	d.setState(Resolving)
	if delim == '=' {
		return d.dispatchAssign(ctx, name, remainder)
	}
	return d.dispatchNameOrRead(ctx, name, remainder)
}

// dispatchAssign implements the registry's overload-resolution algorithm
// step 2: the input contained '=' at position > 0.
func (d *Dispatcher) dispatchAssign(ctx context.Context, name, remainder string) error {
	res, ok := d.reg.Lookup(name)
	if !ok || res.Variable == nil {
		return d.fail(termlevel.WarningLevel, termerr.New(termerr.UnknownName, nil, "unknown variable %q", name))
	}
	if res.Expired {
		return d.fail(termlevel.ErrorLevel, termerr.New(termerr.InstanceExpired, nil, "instance for variable %q has expired", name))
	}
	if !res.Variable.Writable() {
		return d.fail(termlevel.ErrorLevel, termerr.New(termerr.ReadOnlyVariable, nil, "variable %q has no setter", name))
	}

	d.setState(Converting)
	if _, ok := d.conv.Convert(res.Variable.Type, remainder); !ok {
		return d.fail(termlevel.WarningLevel, termerr.New(termerr.ConversionFailed, nil, "invalid value, type %s", res.Variable.Type))
	}
	if !res.Variable.Set(remainder) {
		return d.fail(termlevel.WarningLevel, termerr.New(termerr.ConversionFailed, nil, "invalid value, type %s", res.Variable.Type))
	}

	d.setState(Completed)
	return nil
}

// dispatchNameOrRead implements steps 3-7: command lookup, falling back to
// a variable read, falling back to overload resolution by arity and
// try-convert-each.
func (d *Dispatcher) dispatchNameOrRead(ctx context.Context, name, remainder string) error {
	res, ok := d.reg.Lookup(name)
	if !ok {
		return d.fail(termlevel.WarningLevel, termerr.New(termerr.UnknownName, nil, "unknown command or variable %q", name))
	}

	if res.Commands == nil {
		return d.readVariable(name, res)
	}

	if res.Expired {
		return d.fail(termlevel.ErrorLevel, termerr.New(termerr.InstanceExpired, nil, "instance for %q has expired", name))
	}

	return d.invokeOverload(ctx, name, res, remainder)
}

func (d *Dispatcher) readVariable(name string, res registry.Resolution) error {
	if res.Expired {
		return d.fail(termlevel.ErrorLevel, termerr.New(termerr.InstanceExpired, nil, "instance for variable %q has expired", name))
	}
	if !res.Variable.Readable() {
		d.term.Log(termlevel.InfoLevel, "no value")
		d.setState(Completed)
		return nil
	}
	if text, has := res.Variable.Get(); has {
		d.term.Log(termlevel.InfoLevel, "%s", text)
	} else {
		d.term.Log(termlevel.InfoLevel, "no value")
	}
	d.setState(Completed)
	return nil
}

// invokeOverload implements overload resolution steps 4-7. Steps 4 and 5
// collapse into one loop: tokenizing an empty remainder yields zero tokens,
// so an arity-0 overload is selected by the same arity match a populated
// remainder would use.
func (d *Dispatcher) invokeOverload(ctx context.Context, name string, res registry.Resolution, remainder string) error {
	tokens := parser.Tokenize(remainder)

	d.setState(Converting)
	for _, b := range res.Commands.Bindings {
		if b.Arity() != len(tokens) {
			continue
		}
		args, ok := convertArgs(d.conv, b.Parameters, tokens)
		if !ok {
			continue // ConversionFailed: local, silent, try next overload
		}
		return d.invoke(ctx, b, args, res.Receiver)
	}

	// Step 6: fall back to a whole-remainder arity-1 overload.
	if remainder != "" {
		for _, b := range res.Commands.Bindings {
			if b.Arity() != 1 {
				continue
			}
			v, ok := d.conv.Convert(b.Parameters[0].Type, remainder)
			if !ok {
				continue
			}
			return d.invoke(ctx, b, []interface{}{v}, res.Receiver)
		}
	}

	// Step 7: nothing matched; show help and report BadArity.
	err := termerr.New(termerr.BadArity, nil, "no overload of %q matches %d argument(s)", name, len(tokens))
	d.term.Log(termlevel.WarningLevel, "%s", err.Error())
	d.term.Log(termlevel.InfoLevel, "%s", d.reg.HelpText(name))
	d.setState(Failed)
	return err
}

func convertArgs(conv *convert.Registry, params []provider.Parameter, tokens []string) ([]interface{}, bool) {
	args := make([]interface{}, len(params))
	for i, p := range params {
		v, ok := conv.Convert(p.Type, tokens[i])
		if !ok {
			return nil, false
		}
		args[i] = v
	}
	return args, true
}

// invoke calls b.Callable, attaching res.Receiver to the context so a
// kind-level handler can recover its own instance (spec §3; see
// provider.WithReceiver), and classifies whatever comes back.
func (d *Dispatcher) invoke(ctx context.Context, b registry.Binding, args []interface{}, receiver any) error {
	d.setState(Invoking)

	callCtx := provider.WithReceiver(ctx, receiver)
	err := d.safeCall(callCtx, b.Callable, args)
	if err == nil {
		d.setState(Completed)
		return nil
	}

	if errors.Is(err, context.Canceled) {
		cerr := termerr.New(termerr.Cancelled, err, "command cancelled")
		d.term.Log(termlevel.WarningLevel, "%s", cerr.Error())
		d.setState(Failed)
		return cerr
	}

	terr, ok := termerr.Get(err)
	if !ok {
		terr = termerr.New(termerr.InvocationFailed, err, "handler returned an error")
	}
	d.term.Log(termlevel.ErrorLevel, "%s", terr.Error())
	d.setState(Failed)
	return terr
}

// safeCall runs fn and recovers a panic into an InvocationFailed error,
// unless debugger mode is set, in which case the panic is allowed to keep
// unwinding past Dispatch (spec §7 debugger mode).
func (d *Dispatcher) safeCall(ctx context.Context, fn provider.Callable, args []interface{}) (err error) {
	d.mu.Lock()
	debugger := d.debugger
	d.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			if debugger {
				panic(r)
			}
			err = termerr.New(termerr.InvocationFailed, fmt.Errorf("%v", r), "handler panicked")
		}
	}()
	return fn(ctx, args)
}

// fail logs err at severity and transitions to Failed.
func (d *Dispatcher) fail(severity termlevel.Level, err *termerr.Error) error {
	d.term.Log(severity, "%s", err.Error())
	d.setState(Failed)
	return err
}
