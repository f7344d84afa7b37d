// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

// Lisp is a small Scheme-like interpreter built around a tagged value
// representation and a copying garbage collector. Source files named on
// the command line are loaded first; then an interactive prompt reads one
// expression per line.
//
// Each input runs through read, expand, and eval, and the interpreter
// collects garbage between top-level expressions, the only point at which
// collection is safe.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/dataronio/lisp-interpreter/lisp"
)

var (
	prompt  = flag.String("prompt", "> ", "interactive prompt")
	collect = flag.Bool("gc", true, "collect garbage between top-level expressions")
)

const historyFile = ".lisp_history"

func main() {
	flag.Parse()
	ctx := lisp.NewContext()
	defer ctx.Shutdown()
	for _, file := range flag.Args() {
		load(ctx, file)
	}
	repl(ctx)
}

// load reads, expands, and evaluates the named source file.
func load(ctx *lisp.Context, path string) {
	v, err := ctx.ReadPath(path)
	if err == nil {
		v, err = ctx.Expand(v)
	}
	if err == nil {
		_, err = ctx.Eval(v, ctx.GlobalEnv())
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", path, err)
		os.Exit(1)
	}
	if *collect {
		ctx.Collect(lisp.Null())
	}
}

func repl(ctx *lisp.Context) {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	for {
		line, err := ln.Prompt(*prompt)
		if err == liner.ErrPromptAborted {
			continue
		}
		if err != nil {
			fmt.Println()
			return
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)
		result, err := eval(ctx, line)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		fmt.Println(result)
		if *collect {
			ctx.Collect(lisp.Null())
		}
	}
}

func eval(ctx *lisp.Context, src string) (lisp.Value, error) {
	v, err := ctx.Read(src)
	if err != nil {
		return lisp.Null(), err
	}
	v, err = ctx.Expand(v)
	if err != nil {
		return lisp.Null(), err
	}
	return ctx.Eval(v, ctx.GlobalEnv())
}
