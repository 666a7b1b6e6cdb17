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

// Command termdemo hosts the terminal core end to end: a registry seeded
// with a couple of sample kinds, a dispatcher wired to a logger-backed
// ITerminal, and a bubbletea-driven line editor reading commands from the
// controlling terminal.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/nabbar/termcore/convert"
	"github.com/nabbar/termcore/dispatch"
	"github.com/nabbar/termcore/editor"
	"github.com/nabbar/termcore/provider"
	"github.com/nabbar/termcore/registry"
	"github.com/nabbar/termcore/termlevel"
	"github.com/nabbar/termcore/terminalio/logadapter"
)

type greeter struct {
	name string
}

func (g *greeter) descriptor() provider.Descriptor {
	return provider.Descriptor{
		KindName:  "greeter",
		IsDefault: true,
		Commands: []provider.Command{
			{
				Name:        "hello",
				Description: "print a greeting",
				Callable: func(ctx context.Context, args []interface{}) error {
					self, _ := provider.ReceiverFromContext(ctx)
					g := self.(*greeter)
					fmt.Printf("hello, %s\n", g.name)
					return nil
				},
			},
		},
		Variables: []provider.Variable{
			{
				Name: "name",
				Type: "string",
				Get:  func() (string, bool) { return g.name, g.name != "" },
				Set:  func(text string) bool { g.name = text; return true },
			},
		},
	}
}

func builtinDescriptor() provider.Descriptor {
	return provider.Descriptor{
		Static: true,
		Commands: []provider.Command{
			{
				Name:        "exit",
				Description: "leave termdemo",
				Callable: func(ctx context.Context, args []interface{}) error {
					os.Exit(0)
					return nil
				},
			},
		},
	}
}

func main() {
	reg := registry.New()
	conv := convert.NewRegistry()

	log := logrus.New()
	log.SetLevel(logrus.InfoLevel)
	term := logadapter.New(log)

	if err := reg.RegisterBuiltins(func(s string) { term.Log(termlevel.InfoLevel, "%s", s) }); err != nil {
		fmt.Fprintln(os.Stderr, "registering builtins:", err)
		os.Exit(1)
	}
	if err := reg.RegisterType(builtinDescriptor()); err != nil {
		fmt.Fprintln(os.Stderr, "registering builtins:", err)
		os.Exit(1)
	}

	g := &greeter{name: "world"}
	if err := reg.RegisterType(g.descriptor()); err != nil {
		fmt.Fprintln(os.Stderr, "registering greeter:", err)
		os.Exit(1)
	}
	registry.AttachDefault(reg, "greeter", g)

	d := dispatch.New(reg, conv, term)

	hist := editor.NewHistory(0)
	onSubmit := func(line string) {
		if line == "" {
			return
		}
		_ = d.Dispatch(context.Background(), line)
	}
	model := editor.NewModel("termdemo> ", 100, hist, reg.Complete, onSubmit)

	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "termdemo:", err)
		os.Exit(1)
	}
}
