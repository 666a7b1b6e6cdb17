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

// Package convert is the terminal core's type-converter registry (spec
// §4.3): a map from a parameter's declared type name to a string -> value
// function, extensible by the host. It ships the minimum converter set the
// spec requires (integers of all standard widths, float, bool, string,
// UUID, RFC3339 time, and enum-by-name-or-int), built on
// github.com/google/uuid for the GUID form.
package convert

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Func converts a single text token into a value. ok is false if the token
// cannot be represented as the target type; this is the local, silent
// failure the dispatcher uses to try the next overload (spec §4.3).
type Func func(token string) (value interface{}, ok bool)

// Registry is a thread-safe name -> Func table. The zero value is not
// usable; use NewRegistry.
type Registry struct {
	mu sync.RWMutex
	m  map[string]Func
}

// NewRegistry returns a Registry pre-populated with the spec-mandated
// built-in converters.
func NewRegistry() *Registry {
	r := &Registry{m: make(map[string]Func, 32)}
	r.registerBuiltins()
	return r
}

// Register installs or replaces the converter for a type name. Type names
// are matched case-sensitively against the Parameter.Type string a host
// declares in its provider.Descriptor.
func (r *Registry) Register(typeName string, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[typeName] = fn
}

// Convert looks up the converter for typeName and applies it to token.
// ok is false both when the type is unknown and when the token fails to
// parse — the dispatcher treats both as ConversionFailed.
func (r *Registry) Convert(typeName, token string) (interface{}, bool) {
	r.mu.RLock()
	fn, found := r.m[typeName]
	r.mu.RUnlock()

	if !found {
		return nil, false
	}
	return fn(token)
}

// Has reports whether typeName has a registered converter.
func (r *Registry) Has(typeName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, found := r.m[typeName]
	return found
}

func (r *Registry) registerBuiltins() {
	r.m["string"] = func(s string) (interface{}, bool) { return s, true }

	r.m["bool"] = func(s string) (interface{}, bool) {
		switch strings.ToLower(s) {
		case "true", "yes", "1":
			return true, true
		case "false", "no", "0":
			return false, true
		default:
			return nil, false
		}
	}

	r.m["int"] = intConverter(0)
	r.m["int8"] = intConverter(8)
	r.m["int16"] = intConverter(16)
	r.m["int32"] = intConverter(32)
	r.m["int64"] = intConverter(64)

	r.m["uint"] = uintConverter(0)
	r.m["uint8"] = uintConverter(8)
	r.m["uint16"] = uintConverter(16)
	r.m["uint32"] = uintConverter(32)
	r.m["uint64"] = uintConverter(64)

	r.m["float32"] = func(s string) (interface{}, bool) {
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return nil, false
		}
		return float32(v), true
	}
	r.m["float64"] = func(s string) (interface{}, bool) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false
		}
		return v, true
	}

	r.m["uuid"] = func(s string) (interface{}, bool) {
		v, err := uuid.Parse(s)
		if err != nil {
			return nil, false
		}
		return v, true
	}

	r.m["time"] = func(s string) (interface{}, bool) {
		v, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, false
		}
		return v, true
	}
}

func intConverter(bits int) Func {
	if bits == 0 {
		bits = 64
	}
	return func(s string) (interface{}, bool) {
		v, err := strconv.ParseInt(s, 10, bits)
		if err != nil {
			return nil, false
		}
		switch bits {
		case 8:
			return int8(v), true
		case 16:
			return int16(v), true
		case 32:
			return int32(v), true
		default:
			return v, true
		}
	}
}

func uintConverter(bits int) Func {
	if bits == 0 {
		bits = 64
	}
	return func(s string) (interface{}, bool) {
		v, err := strconv.ParseUint(s, 10, bits)
		if err != nil {
			return nil, false
		}
		switch bits {
		case 8:
			return uint8(v), true
		case 16:
			return uint16(v), true
		case 32:
			return uint32(v), true
		default:
			return v, true
		}
	}
}

// RegisterEnum installs a converter for an enumeration named typeName.
// names maps each case-insensitive enum label to its integer value; the
// converter also accepts a bare integer string that falls within the map's
// values, so "Warn" and "3" both resolve to WarnLevel-style enums.
func (r *Registry) RegisterEnum(typeName string, names map[string]int64) {
	lower := make(map[string]int64, len(names))
	valid := make(map[int64]struct{}, len(names))
	for k, v := range names {
		lower[strings.ToLower(k)] = v
		valid[v] = struct{}{}
	}

	r.Register(typeName, func(s string) (interface{}, bool) {
		if v, ok := lower[strings.ToLower(s)]; ok {
			return v, true
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			if _, ok := valid[n]; ok {
				return n, true
			}
		}
		return nil, false
	})
}
