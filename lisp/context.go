// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

package lisp

// A Context holds the state of one interpreter: the two heaps, the
// interning symbol table, the global environment, and the lambda
// identifier counter. All state lives here; there is no process-global
// interpreter state. A Context is not safe for concurrent use.
type Context struct {
	heap          heap
	toHeap        heap
	symbols       Value // symbol table
	global        Value // global environment
	lambdaCounter int
}

func newContext(symbolTableSize int) *Context {
	ctx := &Context{}
	ctx.heap.init()
	ctx.toHeap.init()
	ctx.symbols = ctx.MakeTable(symbolTableSize)
	ctx.global = Null()
	return ctx
}

// NewContext returns a context with the standard builtins installed in
// the global environment.
func NewContext() *Context {
	ctx := newContext(512)
	table := ctx.MakeTable(256)
	ctx.TableSet(table, ctx.MakeSymbol("NULL"), Null())
	registerBuiltins(ctx, table)
	ctx.global = ctx.MakeEnv(table)
	return ctx
}

// NewReaderContext returns a context that can read and expand programs
// but has no global environment or builtins.
func NewReaderContext() *Context {
	return newContext(512)
}

// Shutdown releases both heaps. The context must not be used afterwards.
func (ctx *Context) Shutdown() {
	ctx.heap.reset(0)
	ctx.toHeap.reset(0)
}

// GlobalEnv returns the global environment. The host may register further
// primitives by defining (symbol, MakeFunc(...)) entries in its head
// frame.
func (ctx *Context) GlobalEnv() Value {
	return ctx.global
}
