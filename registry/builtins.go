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
	"context"
	"fmt"
	"strings"

	"github.com/nabbar/termcore/provider"
)

// HelpText renders the registered static commands, or a single command's
// overloads when name is non-empty. This backs the "help" builtin and the
// automatic help display the dispatcher triggers on UnknownName/BadArity
// (spec §4.1 step 7, §7 policy) — a supplemented feature (SPEC_FULL.md §6),
// not present in the distilled spec.md as a concrete command.
func (r *Registry) HelpText(name string) string {
	if name == "" {
		r.mu.RLock()
		names := sortedNames(r.static.commands)
		var b strings.Builder
		b.WriteString("available commands:\n")
		for _, n := range names {
			set := r.static.commands[n]
			b.WriteString("  ")
			b.WriteString(set.Name)
			if len(set.Bindings) > 0 && set.Bindings[0].Description != "" {
				b.WriteString(" - ")
				b.WriteString(set.Bindings[0].Description)
			}
			b.WriteString("\n")
		}
		r.mu.RUnlock()
		return b.String()
	}

	// Lookup covers both the static namespace and kind-scoped commands
	// (e.g. "Cache.set"), unlike a direct r.static.commands index.
	res, ok := r.Lookup(name)
	if !ok || res.Commands == nil {
		return fmt.Sprintf("no such command: %s\n", name)
	}
	set := res.Commands

	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n", set.Name)
	for _, ov := range set.Bindings {
		b.WriteString("  ")
		b.WriteString(set.Name)
		b.WriteString("(")
		for i, p := range ov.Parameters {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.Name)
			b.WriteString(" ")
			b.WriteString(p.Type)
		}
		b.WriteString(")")
		if ov.Description != "" {
			b.WriteString(" - ")
			b.WriteString(ov.Description)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RegisterBuiltins hoists the help command into the static namespace. print
// receives the rendered help text; a host wires this to its ITerminal port.
func (r *Registry) RegisterBuiltins(print func(string)) error {
	return r.RegisterType(provider.Descriptor{
		Static: true,
		Commands: []provider.Command{
			{
				Name:        "help",
				Description: "list available commands",
				Callable: func(_ context.Context, _ []interface{}) error {
					print(r.HelpText(""))
					return nil
				},
			},
			{
				Name:        "help",
				Description: "describe one command's overloads",
				Parameters:  []provider.Parameter{{Name: "name", Type: "string"}},
				Callable: func(_ context.Context, args []interface{}) error {
					name, _ := args[0].(string)
					print(r.HelpText(name))
					return nil
				},
			},
		},
	})
}
