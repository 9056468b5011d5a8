// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/projectdiscovery/gologger"

	"github.com/stolo93/finite-automata/internal/runner"
)

func main() {
	opts, err := runner.Parse(os.Args[1:])
	if err != nil {
		gologger.Error().Msgf("%s", err)
		os.Exit(1)
	}
	os.Exit(opts.Run())
}
