// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

package lisp

import (
	"hash/adler32"
	"strings"
)

// Hash tables are open-addressed by bucket with chained entries, each
// bucket a list of (key . value) pairs. Resizing happens only inside the
// collector (gc.go); between collections a table may run over the ideal
// load factor.

// MakeTable allocates a table with the given bucket count.
func (ctx *Context) MakeTable(capacity int) Value {
	b := ctx.heap.alloc(tableSize(capacity), TypeTable, gcClear)
	b.table = tableData{
		capacity: capacity,
		entries:  make([]Value, capacity),
	}
	return Value{typ: TypeTable, block: b}
}

// TableSet binds symbol to value, overwriting an existing entry's value
// cell or prepending a fresh entry to the bucket.
func (ctx *Context) TableSet(t, symbol, value Value) {
	table := &t.mustBlock(TypeTable).table
	index := symbol.mustBlock(TypeSymbol).hash % uint32(table.capacity)
	pair := Assoc(table.entries[index], symbol)
	if pair.IsNull() {
		pair = ctx.Cons(symbol, value)
		table.entries[index] = ctx.Cons(pair, table.entries[index])
		table.size++
	} else {
		pair.block.cdr = value
	}
}

// TableGet returns the (key . value) entry for symbol, or Null.
func TableGet(t, symbol Value) Value {
	table := &t.mustBlock(TypeTable).table
	index := symbol.mustBlock(TypeSymbol).hash % uint32(table.capacity)
	return Assoc(table.entries[index], symbol)
}

// tableGetFolded probes by pre-folded name during interning, before a
// symbol block exists to compare against.
func tableGetFolded(t Value, folded string, hash uint32) Value {
	table := &t.mustBlock(TypeTable).table
	index := hash % uint32(table.capacity)
	for it := table.entries[index]; !it.IsNull(); it = Cdr(it) {
		pair := Car(it)
		if Car(pair).Symbol() == folded {
			return pair
		}
	}
	return Null()
}

// MakeSymbol interns a symbol. The name is case-folded, hashed once with
// Adler-32, and looked up in the context's symbol table; at most one
// symbol block exists per folded name, so symbol equality afterwards is
// block identity.
func (ctx *Context) MakeSymbol(name string) Value {
	folded := strings.ToUpper(name)
	hash := adler32.Checksum([]byte(folded))
	if pair := tableGetFolded(ctx.symbols, folded, hash); !pair.IsNull() {
		return Car(pair)
	}
	b := ctx.heap.alloc(symbolSize(folded), TypeSymbol, gcClear)
	b.hash = hash
	b.text = folded
	sym := Value{typ: TypeSymbol, block: b}
	ctx.TableSet(ctx.symbols, sym, Null())
	return sym
}
