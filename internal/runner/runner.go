// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package runner implements the fsmctl CLI surface: subcommand dispatch,
// flag parsing, file loading, and verdict reporting over the fsm engines.
package runner

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/projectdiscovery/gologger"
	errorutil "github.com/projectdiscovery/utils/errors"

	"github.com/stolo93/finite-automata"
)

// Options holds a parsed invocation: the subcommand, its positional file
// arguments, and the relation flavor to use where applicable.
type Options struct {
	Command    string
	Files      []string
	OutDir     string
	Simulation bool // true: --simulation (default); false: --identity
}

// Parse parses args (normally os.Args[1:]) into Options. The first element
// selects the subcommand; goflags' named/grouped-flag model has no
// positional-argument primitive, so each subcommand gets its own
// flag.FlagSet parsing just the --simulation/--identity switch, which may
// appear before, between or after the file arguments; the positional
// arguments are collected from FlagSet.Args() between parses.
func Parse(args []string) (*Options, error) {
	if len(args) == 0 {
		return nil, errorutil.NewWithTag("fsmctl", "missing subcommand: print|universal|inclusion|all_final")
	}

	opts := &Options{Command: args[0], Simulation: true}
	fs := flag.NewFlagSet(opts.Command, flag.ContinueOnError)
	fs.BoolVar(&opts.Simulation, "simulation", true, "use simulation-based subsumption")
	identity := fs.Bool("identity", false, "use identity subsumption instead of simulation")
	var rest []string
	remaining := args[1:]
	for {
		if err := fs.Parse(remaining); err != nil {
			return nil, errorutil.NewWithTag("fsmctl", err.Error())
		}
		if fs.NArg() == 0 {
			break
		}
		rest = append(rest, fs.Arg(0))
		remaining = fs.Args()[1:]
	}
	if *identity {
		opts.Simulation = false
	}

	switch opts.Command {
	case "print", "universal":
		if len(rest) == 0 {
			return nil, errorutil.NewWithTag("fsmctl", "usage: "+opts.Command+" <files...>")
		}
		opts.Files = rest
	case "inclusion":
		if len(rest) != 2 {
			return nil, errorutil.NewWithTag("fsmctl", "usage: inclusion <fileA> <fileB>")
		}
		opts.Files = rest
	case "all_final":
		if len(rest) < 2 {
			return nil, errorutil.NewWithTag("fsmctl", "usage: all_final <dir> <files...>")
		}
		opts.OutDir = rest[0]
		opts.Files = rest[1:]
	default:
		return nil, errorutil.NewWithTag("fsmctl", "unknown subcommand: "+opts.Command)
	}

	return opts, nil
}

// Run executes the parsed command and returns the process exit code.
func (o *Options) Run() int {
	switch o.Command {
	case "print":
		return o.runPrint()
	case "universal":
		return o.runUniversal()
	case "inclusion":
		return o.runInclusion()
	case "all_final":
		return o.runAllFinal()
	default:
		gologger.Error().Msgf("unknown subcommand: %s", o.Command)
		return 1
	}
}

func loadFile(path string) (*fsm.NFA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errorutil.NewWithTag("fsmctl", "reading "+path+": "+err.Error())
	}
	n, err := fsm.Load(string(data))
	if err != nil {
		return nil, errorutil.NewWithTag("fsmctl", "parsing "+path+": "+err.Error())
	}
	return n, nil
}

func (o *Options) runPrint() int {
	for _, path := range o.Files {
		n, err := loadFile(path)
		if err != nil {
			gologger.Error().Msgf("%s: %s", path, err)
			return 1
		}
		gologger.Print().Msgf("%s", fsm.Print(n))
	}
	return 0
}

func (o *Options) relationFor(n *fsm.NFA) *fsm.Relation {
	if o.Simulation {
		return fsm.Simulate(n)
	}
	return fsm.Identity(n.Size())
}

func (o *Options) runUniversal() int {
	for _, path := range o.Files {
		n, err := loadFile(path)
		if err != nil {
			gologger.Error().Msgf("%s: %s", path, err)
			return 1
		}
		n.Prune()
		verdict := fsm.IsUniversal(n, o.relationFor(n))
		gologger.Info().Msgf("%s: universal=%t", path, verdict)
	}
	return 0
}

func (o *Options) runInclusion() int {
	a, err := loadFile(o.Files[0])
	if err != nil {
		gologger.Error().Msgf("%s: %s", o.Files[0], err)
		return 1
	}
	b, err := loadFile(o.Files[1])
	if err != nil {
		gologger.Error().Msgf("%s: %s", o.Files[1], err)
		return 1
	}
	a.Prune()
	b.Prune()

	union, _ := a.Union(b)
	verdict := fsm.IsIncluded(a, b, o.relationFor(union))
	gologger.Info().Msgf("%s <= %s: included=%t", o.Files[0], o.Files[1], verdict)
	return 0
}

// runAllFinal copies each input file into OutDir, marking every state
// final -- the all_final transform named in the CLI surface.
func (o *Options) runAllFinal() int {
	if err := os.MkdirAll(o.OutDir, 0o755); err != nil {
		gologger.Error().Msgf("creating %s: %s", o.OutDir, err)
		return 1
	}
	for _, path := range o.Files {
		n, err := loadFile(path)
		if err != nil {
			gologger.Error().Msgf("%s: %s", path, err)
			return 1
		}
		for _, s := range n.States() {
			n.MarkFinal(n.StateName(s))
		}
		out := filepath.Join(o.OutDir, filepath.Base(path))
		if err := os.WriteFile(out, []byte(fsm.Print(n)), 0o644); err != nil {
			gologger.Error().Msgf("writing %s: %s", out, err)
			return 1
		}
		gologger.Info().Msgf("%s -> %s", path, out)
	}
	return 0
}
