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

// Package registry implements the terminal core's binding registry (spec
// §4.1): the discovery-and-lookup structure mapping command names, variable
// names, and instance names to handler metadata.
//
// Static members declared by a provider.Descriptor with Static=true are
// hoisted into a process-global namespace; non-static members live under
// their kind and are resolved against whichever instance (default or named)
// the caller's path selects. Instances are held weakly via the standard
// library's weak package, the idiomatic Go counterpart to the source's weak
// reference facility (spec §9).
package registry

import (
	"sort"
	"strings"
	"sync"

	"github.com/nabbar/termcore/provider"
)

// Binding is one overload of a command, bound to its owning type's kind.
type Binding struct {
	Name        string
	Description string
	Parameters  []provider.Parameter
	Callable    provider.Callable
	Async       provider.Async
}

// Arity returns the number of external parameters this overload accepts.
func (b Binding) Arity() int { return len(b.Parameters) }

// BindingSet is the overload set for one case-insensitive command name.
// Overloads are kept in declaration order; ties during resolution are
// broken by that order (spec §3).
type BindingSet struct {
	Name     string
	Bindings []Binding
}

// VariableBinding exposes one host variable.
type VariableBinding struct {
	Name        string
	Description string
	Type        string
	Get         provider.Getter
	Set         provider.Setter
	Clear       provider.Clearer
	Persist     bool
}

// Readable reports whether the variable has a getter.
func (v VariableBinding) Readable() bool { return v.Get != nil }

// Clearable reports whether the variable can be cleared.
func (v VariableBinding) Clearable() bool { return v.Clear != nil }

// Writable reports whether the variable can be set.
func (v VariableBinding) Writable() bool { return v.Set != nil }

// typeMembers holds one provider.Descriptor's own bindings, scoped either
// to the global static namespace or to one kind's instance namespace.
type typeMembers struct {
	commands  map[string]*BindingSet
	variables map[string]*VariableBinding
}

func newTypeMembers() *typeMembers {
	return &typeMembers{
		commands:  make(map[string]*BindingSet),
		variables: make(map[string]*VariableBinding),
	}
}

// kindState is everything the registry tracks for one kind: the merged
// instance-scope bindings declared by any descriptor under that kind, plus
// the live instance table.
type kindState struct {
	mu        sync.RWMutex
	members   *typeMembers
	isDefault bool // at least one descriptor under this kind was IsDefault
	def       *weakHandle
	named     map[string]*weakHandle
}

func newKindState() *kindState {
	return &kindState{
		members: newTypeMembers(),
		named:   make(map[string]*weakHandle),
	}
}

// sortedNames returns the keys of a string-keyed map in case-insensitive
// lexicographic order, used throughout lookup/completion for determinism.
func sortedNames[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i]) < strings.ToLower(out[j]) })
	return out
}
