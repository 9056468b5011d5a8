// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fsm

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	errorutil "github.com/projectdiscovery/utils/errors"
	"modernc.org/strutil"
)

// Load parses the VTF-like textual format described in the file-format
// section of the external interfaces: a leading "@"-line naming the
// automaton type is skipped, "%Name"/"%States"/"%Initial"/"%Final"/
// "%Alphabet" lines populate the corresponding sets, and any other
// non-empty line is a transition "src sym dst". Comments start with "#"
// and run to end of line; references to undeclared states or symbols on
// a transition line are auto-declared, never rejected.
func Load(text string) (*NFA, error) {
	n := NewNFA()
	var pending []string // %Initial / %Final lines, applied after %States

	sawType := false
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := cleanLine(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case line[0] == '@':
			if sawType {
				return nil, errorutil.NewWithTag("fsm", "unexpected second '@' type line")
			}
			sawType = true

		case strings.HasPrefix(line, "%Name"):
			n.Name = strings.TrimSpace(line[len("%Name"):])

		case strings.HasPrefix(line, "%States"):
			for _, tok := range fields(line, "%States") {
				n.InsertState(tok)
			}

		case strings.HasPrefix(line, "%Initial"), strings.HasPrefix(line, "%Final"):
			// Postponed: the states they name may not have been declared
			// yet if %States appears later in the file.
			pending = append(pending, line)

		case strings.HasPrefix(line, "%Alphabet"):
			for _, tok := range fields(line, "%Alphabet") {
				n.InsertSymbol(tok)
			}

		default:
			tok := strings.Fields(line)
			if len(tok) != 3 {
				return nil, errorutil.NewWithTag("fsm", fmt.Sprintf("malformed transition line: %q", line))
			}
			n.InsertTransition(tok[0], tok[1], tok[2])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errorutil.NewWithTag("fsm", fmt.Sprintf("reading input: %v", err))
	}

	for _, line := range pending {
		switch {
		case strings.HasPrefix(line, "%Initial"):
			for _, tok := range fields(line, "%Initial") {
				n.MarkInitial(tok)
			}
		case strings.HasPrefix(line, "%Final"):
			for _, tok := range fields(line, "%Final") {
				n.MarkFinal(tok)
			}
		}
	}

	return n, nil
}

// cleanLine strips a trailing "#"-comment and surrounding whitespace.
func cleanLine(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

func fields(line, prefix string) []string {
	return strings.Fields(line[len(prefix):])
}

// Print renders n in the VTF-like textual format: %Name (if set), %States,
// %Alphabet, %Initial, %Final, a blank line, then one "src sym dst" line
// per transition in state/alphabet order.
func Print(n *NFA) string {
	var b bytes.Buffer

	if n.Name != "" {
		fmt.Fprintf(&b, "%%Name %s\n", n.Name)
	}

	fmt.Fprint(&b, "%States")
	for _, s := range n.States() {
		fmt.Fprintf(&b, " %s", n.StateName(s))
	}
	b.WriteByte('\n')

	fmt.Fprint(&b, "%Alphabet")
	for _, a := range n.Symbols() {
		fmt.Fprintf(&b, " %s", n.SymbolName(a))
	}
	b.WriteByte('\n')

	fmt.Fprint(&b, "%Initial")
	for _, s := range n.Initial() {
		fmt.Fprintf(&b, " %s", n.StateName(s))
	}
	b.WriteByte('\n')

	fmt.Fprint(&b, "%Final")
	for _, s := range n.Final() {
		fmt.Fprintf(&b, " %s", n.StateName(s))
	}
	b.WriteByte('\n')

	b.WriteByte('\n')
	for _, s1 := range n.States() {
		for _, a := range n.Symbols() {
			for _, s2 := range n.Post(s1, a) {
				fmt.Fprintf(&b, "%s %s %s\n", n.StateName(s1), n.SymbolName(a), n.StateName(s2))
			}
		}
	}

	return b.String()
}

// Format pretty-prints relation against n's state-name dictionary: a
// header row of state names, then one row per state with a 0/1 cell for
// every column, indented with strutil.IndentFormatter the way the
// teacher's State.String formats transition fan-out.
func (r *Relation) Format(n *NFA) string {
	var b bytes.Buffer
	f := strutil.IndentFormatter(&b, "\t")

	states := n.States()

	f.Format("   ")
	for _, s := range states {
		f.Format(" %s", n.StateName(s))
	}
	f.Format("\n%i")
	for _, i := range states {
		f.Format("%s", n.StateName(i))
		for _, j := range states {
			bit := 0
			if r.Get(i, j) {
				bit = 1
			}
			f.Format(" %d", bit)
		}
		f.Format("\n")
	}
	f.Format("%u")

	return b.String()
}
