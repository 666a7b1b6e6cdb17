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
	"fmt"
	"strings"
	"sync"

	"github.com/nabbar/termcore/provider"
)

// Registry owns all metadata (types, commands, variables) and the live map
// of instances (spec §4.1). Registration is single-writer / multi-reader;
// the instance tables are mutated under a per-kind lock, and reads proceed
// against a snapshot of the name -> weak-handle mapping.
type Registry struct {
	mu sync.RWMutex

	static *typeMembers // process-global hoisted namespace

	kinds map[string]*kindState // lowercase kind name -> state
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		static: newTypeMembers(),
		kinds:  make(map[string]*kindState),
	}
}

func lower(s string) string { return strings.ToLower(s) }

func (r *Registry) kindFor(name string) *kindState {
	k := lower(name)
	if ks, ok := r.kinds[k]; ok {
		return ks
	}
	ks := newKindState()
	r.kinds[k] = ks
	return ks
}

// RegisterType scans a provider.Descriptor and builds its binding sets.
// Static descriptors hoist their members into the global namespace;
// non-static descriptors contribute to their kind's instance-scope
// namespace. Returns an error if a variable name is already taken in the
// target namespace, static or the kind's (spec §4.1); commands may always
// be overloaded. Members handled before the duplicate stay registered.
func (r *Registry) RegisterType(d provider.Descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var target *typeMembers
	if d.Static {
		target = r.static
	} else {
		ks := r.kindFor(d.KindName)
		if d.IsDefault {
			ks.isDefault = true
		}
		target = ks.members
	}

	for _, c := range d.Commands {
		key := lower(c.Name)
		set, ok := target.commands[key]
		if !ok {
			set = &BindingSet{Name: c.Name}
			target.commands[key] = set
		}
		set.Bindings = append(set.Bindings, Binding{
			Name:        c.Name,
			Description: c.Description,
			Parameters:  c.Parameters,
			Callable:    c.Callable,
			Async:       c.Mode,
		})
	}

	for _, v := range d.Variables {
		key := lower(v.Name)
		if _, exists := target.variables[key]; exists {
			return fmt.Errorf("registry: duplicate variable %q in kind %q", v.Name, d.KindName)
		}
		target.variables[key] = &VariableBinding{
			Name:        v.Name,
			Description: v.Description,
			Type:        v.Type,
			Get:         v.Get,
			Set:         v.Set,
			Clear:       v.Clear,
			Persist:     v.Persist,
		}
	}

	return nil
}

// AttachDefault stores instance weakly as the default receiver for kind.
// Attaching a default swaps atomically: any previously attached default is
// simply replaced.
func AttachDefault[T any](r *Registry, kind string, instance *T) {
	r.mu.Lock()
	ks := r.kindFor(kind)
	r.mu.Unlock()

	ks.mu.Lock()
	ks.def = newWeakHandle(instance)
	ks.mu.Unlock()
}

// AttachNamed stores instance weakly under name within kind. Attaching a
// named instance replaces any prior binding with the same name.
func AttachNamed[T any](r *Registry, kind, name string, instance *T) {
	r.mu.Lock()
	ks := r.kindFor(kind)
	r.mu.Unlock()

	h := newWeakHandle(instance)

	ks.mu.Lock()
	ks.named[lower(name)] = h
	ks.mu.Unlock()
}

// DetachDefault removes the default instance for kind, but only if it still
// points at instance (idempotent: a no-op otherwise, including when kind is
// unknown or the default was already cleared).
func DetachDefault[T any](r *Registry, kind string, instance *T) {
	r.mu.RLock()
	ks, ok := r.kinds[lower(kind)]
	r.mu.RUnlock()
	if !ok {
		return
	}

	ks.mu.Lock()
	defer ks.mu.Unlock()
	if ks.def != nil && ks.def.equals(instance) {
		ks.def = nil
	}
}

// DetachNamed removes the named instance from kind, if present. Idempotent.
func (r *Registry) DetachNamed(kind, name string) {
	r.mu.RLock()
	ks, ok := r.kinds[lower(kind)]
	r.mu.RUnlock()
	if !ok {
		return
	}

	ks.mu.Lock()
	delete(ks.named, lower(name))
	ks.mu.Unlock()
}

// reapExpired drops named instances whose weak handle has expired. Only
// Lookup calls it, on the kind it resolves against; attaching and detaching
// do not reap.
func (ks *kindState) reapExpired() {
	ks.mu.Lock()
	defer ks.mu.Unlock()
	for name, h := range ks.named {
		if !h.alive() {
			delete(ks.named, name)
		}
	}
}

// Resolution is the outcome of a successful Lookup.
type Resolution struct {
	Commands *BindingSet
	Variable *VariableBinding
	// Receiver is the bound instance for non-static resolutions, or nil
	// for resolutions against the static namespace.
	Receiver any
	// Expired is true when the kind's default instance had already been
	// collected at lookup time (spec §7 InstanceExpired). An expired named
	// instance is reaped before resolution, so its lookup fails instead.
	Expired bool
}

// parsedPath is "cmd", "kind.cmd", or "kind(name).cmd" broken into parts.
type parsedPath struct {
	bare     bool
	kind     string
	instance string
	named    bool
	member   string
}

func parsePath(path string) parsedPath {
	dot := strings.IndexByte(path, '.')
	if dot < 0 {
		return parsedPath{bare: true, member: path}
	}

	left := path[:dot]
	member := path[dot+1:]

	if p := strings.IndexByte(left, '('); p >= 0 && strings.HasSuffix(left, ")") {
		return parsedPath{
			kind:     left[:p],
			instance: left[p+1 : len(left)-1],
			named:    true,
			member:   member,
		}
	}

	return parsedPath{kind: left, member: member}
}

// Lookup resolves "cmd", "kind.cmd", or "kind(name).cmd" to a command set
// or variable plus optional receiver (spec §4.1).
func (r *Registry) Lookup(path string) (Resolution, bool) {
	pp := parsePath(path)

	if pp.bare {
		return r.lookupStatic(pp.member)
	}

	r.mu.RLock()
	ks, ok := r.kinds[lower(pp.kind)]
	r.mu.RUnlock()
	if !ok {
		return Resolution{}, false
	}

	ks.reapExpired()

	var (
		handle *weakHandle
	)

	ks.mu.RLock()
	if pp.named {
		handle = ks.named[lower(pp.instance)]
	} else {
		handle = ks.def
	}
	members := ks.members
	ks.mu.RUnlock()

	if handle == nil {
		return Resolution{}, false
	}

	receiver, alive := handle.strengthen()
	res := Resolution{Receiver: receiver, Expired: !alive}

	key := lower(pp.member)
	if set, ok := members.commands[key]; ok {
		res.Commands = set
		return res, true
	}
	if v, ok := members.variables[key]; ok {
		res.Variable = v
		return res, true
	}
	return Resolution{}, false
}

func (r *Registry) lookupStatic(name string) (Resolution, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := lower(name)
	if set, ok := r.static.commands[key]; ok {
		return Resolution{Commands: set}, true
	}
	if v, ok := r.static.variables[key]; ok {
		return Resolution{Variable: v}, true
	}
	return Resolution{}, false
}

// LookupVariable is a convenience over Lookup for the read-variable
// fallback path (spec §4.1 step 3): it never matches a command set.
func (r *Registry) LookupVariable(path string) (*VariableBinding, any, bool) {
	res, ok := r.Lookup(path)
	if !ok || res.Variable == nil {
		return nil, nil, false
	}
	return res.Variable, res.Receiver, true
}
