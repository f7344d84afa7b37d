// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

package lisp

import "testing"

// Allocate a long list, keep only its tail half as the root, and collect:
// the kept half survives intact and the heap shrinks to roughly the live
// set.
func TestCollectDropsGarbage(t *testing.T) {
	ctx := NewContext()
	var root Value
	l := Null()
	for i := 0; i < 10000; i++ {
		l = ctx.Cons(MakeInt(int64(i)), l)
		if i == 5000 {
			root = l
		}
	}
	before := ctx.heap.size

	root = ctx.Collect(root)

	if got := Length(root); got != 5001 {
		t.Fatalf("retained list length = %d, expected 5001", got)
	}
	n := int64(5000)
	for it := root; !it.IsNull(); it = Cdr(it) {
		if Car(it).Int() != n {
			t.Fatalf("element = %s, expected %d", Car(it), n)
		}
		n--
	}
	if ctx.heap.size >= before*3/4 {
		t.Errorf("heap size %d after collection, %d before", ctx.heap.size, before)
	}
}

// Global definitions are roots and survive collection.
func TestCollectKeepsGlobals(t *testing.T) {
	ctx := NewContext()
	evalString(t, ctx, "(define x 42)")
	evalString(t, ctx, "(define l (list 1 2 3))")
	ctx.Collect(Null())
	if got := evalString(t, ctx, "x"); got.Int() != 42 {
		t.Errorf("x = %s after collection", got)
	}
	if got := evalString(t, ctx, "l"); got.String() != "(1 2 3)" {
		t.Errorf("l = %s after collection", got)
	}
}

// Symbol identity is preserved: a root symbol still compares equal to a
// fresh interning of the same name.
func TestCollectKeepsInterning(t *testing.T) {
	ctx := NewContext()
	sym := ctx.MakeSymbol("marker")
	sym = ctx.Collect(sym)
	if !Eq(sym, ctx.MakeSymbol("MARKER")) {
		t.Errorf("interned symbol lost its identity across collection")
	}
}

// A closure's captured environment moves with it.
func TestCollectKeepsClosures(t *testing.T) {
	ctx := NewContext()
	evalString(t, ctx, "(define (mk) (define c 0) (lambda () (set! c (+ c 1)) c))")
	evalString(t, ctx, "(define tick (mk))")
	evalString(t, ctx, "(tick)")
	ctx.Collect(Null())
	if got := evalString(t, ctx, "(tick)"); got.Int() != 2 {
		t.Errorf("(tick) = %s after collection, expected 2", got)
	}
}

// Evaluation proceeds normally across repeated collections.
func TestCollectBetweenExpressions(t *testing.T) {
	ctx := NewContext()
	evalString(t, ctx, "(define (fib n) (if (< n 2) n (+ (fib (- n 1)) (fib (- n 2)))))")
	for i := 0; i < 5; i++ {
		if got := evalString(t, ctx, "(fib 10)"); got.Int() != 55 {
			t.Fatalf("(fib 10) = %s", got)
		}
		ctx.Collect(Null())
	}
}

// An overfull table is rehashed to capacity 3*size-1 while it moves; an
// underfull one shrinks the same way. Entries stay reachable either way.
func TestCollectResizesTables(t *testing.T) {
	ctx := NewContext()
	tbl := ctx.MakeTable(1)
	for i := 0; i < 10; i++ {
		ctx.TableSet(tbl, ctx.MakeSymbol(symbolName(i)), MakeInt(int64(i)))
	}
	tbl = ctx.Collect(tbl)
	if got := tbl.block.table.capacity; got != 29 {
		t.Errorf("grown capacity = %d, expected 29", got)
	}
	for i := 0; i < 10; i++ {
		pair := TableGet(tbl, ctx.MakeSymbol(symbolName(i)))
		if pair.IsNull() || Cdr(pair).Int() != int64(i) {
			t.Fatalf("entry %d lost in resize: %s", i, pair)
		}
	}

	sparse := ctx.MakeTable(64)
	ctx.TableSet(sparse, ctx.MakeSymbol("only"), MakeInt(7))
	sparse = ctx.Collect(sparse)
	if got := sparse.block.table.capacity; got != 2 {
		t.Errorf("shrunk capacity = %d, expected 2", got)
	}
	if pair := TableGet(sparse, ctx.MakeSymbol("only")); Cdr(pair).Int() != 7 {
		t.Errorf("entry lost in shrink: %s", pair)
	}
}

func symbolName(i int) string {
	const letters = "abcdefghij"
	return "sym-" + string(letters[i%len(letters)]) + string(rune('0'+i%10))
}

// A block bigger than the default page gets a page of its own.
func TestLargeAllocation(t *testing.T) {
	ctx := NewReaderContext()
	big := make([]byte, 3*pageSize)
	for i := range big {
		big[i] = 'x'
	}
	s := ctx.MakeString(string(big))
	s = ctx.Collect(s)
	if len(s.Text()) != 3*pageSize {
		t.Errorf("large string truncated to %d bytes", len(s.Text()))
	}
}

// Shutdown empties both heaps.
func TestShutdown(t *testing.T) {
	ctx := NewContext()
	evalString(t, ctx, "(define x (list 1 2 3))")
	ctx.Shutdown()
	if ctx.heap.size != 0 || ctx.toHeap.size != 0 {
		t.Errorf("heaps not empty after shutdown: %d, %d", ctx.heap.size, ctx.toHeap.size)
	}
}
