// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

package lisp

import "testing"

// Interning: one symbol block per case-folded name, so equality is
// identity.
func TestInterning(t *testing.T) {
	ctx := NewReaderContext()
	a := ctx.MakeSymbol("foo")
	b := ctx.MakeSymbol("FOO")
	c := ctx.MakeSymbol("Foo")
	if !Eq(a, b) || !Eq(b, c) {
		t.Errorf("case variants interned as distinct symbols")
	}
	if a.Symbol() != "FOO" {
		t.Errorf("stored name = %q, expected folded form", a.Symbol())
	}
	if d := ctx.MakeSymbol("bar"); Eq(a, d) {
		t.Errorf("distinct names interned as the same symbol")
	}
}

func TestTableSetGet(t *testing.T) {
	ctx := NewReaderContext()
	tbl := ctx.MakeTable(4)
	key := ctx.MakeSymbol("k")
	ctx.TableSet(tbl, key, MakeInt(1))
	ctx.TableSet(tbl, key, MakeInt(2)) // overwrite, not a second entry
	if got := tbl.block.table.size; got != 1 {
		t.Errorf("table size = %d after overwrite, expected 1", got)
	}
	if pair := TableGet(tbl, key); Cdr(pair).Int() != 2 {
		t.Errorf("entry = %s, expected value 2", pair)
	}
	if pair := TableGet(tbl, ctx.MakeSymbol("missing")); !pair.IsNull() {
		t.Errorf("missing key returned %s", pair)
	}
}

func TestEnvScoping(t *testing.T) {
	ctx := NewReaderContext()
	x := ctx.MakeSymbol("x")
	outer := ctx.MakeEnv(ctx.MakeTable(4))
	ctx.EnvDefine(outer, x, MakeInt(1))
	inner := ctx.EnvExtend(outer, ctx.MakeTable(4))

	// Lookup walks out to the enclosing frame.
	if pair := EnvLookup(inner, x); Cdr(pair).Int() != 1 {
		t.Fatalf("lookup through frames = %s", pair)
	}

	// define shadows in the head frame only.
	ctx.EnvDefine(inner, x, MakeInt(2))
	if pair := EnvLookup(inner, x); Cdr(pair).Int() != 2 {
		t.Errorf("inner binding = %s, expected 2", pair)
	}
	if pair := EnvLookup(outer, x); Cdr(pair).Int() != 1 {
		t.Errorf("outer binding disturbed: %s", pair)
	}

	// set! rebinds the nearest frame that already binds the symbol.
	y := ctx.MakeSymbol("y")
	ctx.EnvDefine(outer, y, MakeInt(10))
	EnvSet(inner, y, MakeInt(20))
	if pair := EnvLookup(outer, y); Cdr(pair).Int() != 20 {
		t.Errorf("set! missed the binding frame: %s", pair)
	}
}

var navTests = []struct {
	path string
	out  string
}{
	{"car", "1"},
	{"cdr", "((2 3) 4)"},
	{"cadr", "(2 3)"},
	{"caadr", "2"},
	{"cddr", "(4)"},
	{"CADR", "(2 3)"}, // path decoding is case-insensitive
	{"xr", "NIL"},
	{"cax", "NIL"},
	{"c", "NIL"},
}

func TestNav(t *testing.T) {
	ctx := NewReaderContext()
	l := readString(t, ctx, "(1 (2 3) 4)")
	for _, test := range navTests {
		if got := Nav(l, test.path).String(); got != test.out {
			t.Errorf("nav %q = %s, expected %s", test.path, got, test.out)
		}
	}
}

func TestListOps(t *testing.T) {
	ctx := NewReaderContext()
	l := ctx.List(MakeInt(1), MakeInt(2), MakeInt(3))
	if got := Length(l); got != 3 {
		t.Errorf("length = %d", got)
	}
	if got := At(l, 1).Int(); got != 2 {
		t.Errorf("at 1 = %d", got)
	}
	if !At(l, 9).IsNull() {
		t.Errorf("at past the end not null")
	}

	appended := ctx.Append(l, ctx.List(MakeInt(4)))
	if got := appended.String(); got != "(1 2 3 4)" {
		t.Errorf("append = %s", got)
	}
	// Append copies its first argument's spine.
	if got := l.String(); got != "(1 2 3)" {
		t.Errorf("append mutated its argument: %s", got)
	}

	if got := ReverseInPlace(l).String(); got != "(3 2 1)" {
		t.Errorf("reverse! = %s", got)
	}

	// A dotted tail stops the spine count.
	dotted := ctx.Cons(MakeInt(1), MakeInt(2))
	if got := Length(dotted); got != 1 {
		t.Errorf("dotted length = %d", got)
	}
}

func TestAssoc(t *testing.T) {
	ctx := NewReaderContext()
	a, b := ctx.MakeSymbol("a"), ctx.MakeSymbol("b")
	l := ctx.List(ctx.Cons(a, MakeInt(1)), ctx.Cons(b, MakeInt(2)))
	if pair := Assoc(l, b); Cdr(pair).Int() != 2 {
		t.Errorf("assoc = %s", pair)
	}
	if pair := Assoc(l, ctx.MakeSymbol("c")); !pair.IsNull() {
		t.Errorf("assoc of missing key = %s", pair)
	}
	alist := ctx.List(ctx.List(a, MakeInt(1)), ctx.List(b, MakeInt(2)))
	if got := ForKey(alist, b); got.Int() != 2 {
		t.Errorf("for-key = %s", got)
	}
}

func TestIntFloatProjection(t *testing.T) {
	if got := MakeFloat(2.9).Int(); got != 2 {
		t.Errorf("float->int = %d, expected truncation to 2", got)
	}
	if got := MakeInt(2).Float(); got != 2.0 {
		t.Errorf("int->float = %v", got)
	}
}
