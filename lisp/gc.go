// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

package lisp

// Cheney-style copying collection. Roots move first, then the to-space is
// scanned linearly: relocating a block's interior values appends their
// targets to the to-space, so whole structures are handled in one pass
// without an explicit worklist. Tables reshape while they move; the fresh
// bucket cells are born VISITED so the scan does not reprocess them.

// Collect relocates everything reachable from the symbol table, the
// global environment, and root into the to-space, swaps the heaps, and
// returns root's new address. Any other Value held by the host is invalid
// afterwards.
func (ctx *Context) Collect(root Value) Value {
	to := &ctx.toHeap

	ctx.symbols = gcMove(ctx.symbols, to)
	ctx.global = gcMove(ctx.global, to)
	result := gcMove(root, to)

	for p := to.first; p != nil; p = p.next {
		// gcMove appends while we scan; len is re-read every iteration.
		for i := 0; i < len(p.blocks); i++ {
			b := p.blocks[i]
			if b.flags&gcVisited != 0 {
				continue
			}
			switch b.typ {
			case TypePair:
				b.car = gcMove(b.car, to)
				b.cdr = gcMove(b.cdr, to)
			case TypeLambda:
				b.lambda.params = gcMove(b.lambda.params, to)
				b.lambda.body = gcMove(b.lambda.body, to)
				b.lambda.env = gcMove(b.lambda.env, to)
			}
			b.flags |= gcVisited
		}
	}

	from := ctx.heap
	ctx.heap = ctx.toHeap
	ctx.toHeap = from
	ctx.toHeap.reset(ctx.heap.size)
	return result
}

func gcMove(v Value, to *heap) Value {
	switch v.typ {
	case TypePair, TypeSymbol, TypeString, TypeLambda:
		b := v.block
		if b.flags&gcMoved == 0 {
			dest := to.alloc(b.size, b.typ, gcClear)
			dest.car, dest.cdr = b.car, b.cdr
			dest.hash = b.hash
			dest.text = b.text
			dest.lambda = b.lambda
			b.forward = dest
			b.flags = gcMoved
		}
		v.block = b.forward
		return v
	case TypeTable:
		b := v.block
		if b.flags&gcMoved == 0 {
			t := &b.table
			// Reshape when the load factor drifts outside [0.1, 0.75].
			newCapacity := t.capacity
			if load := float64(t.size) / float64(t.capacity); load > 0.75 || load < 0.1 {
				newCapacity = t.size*3 - 1
				if newCapacity < 1 {
					newCapacity = 1
				}
			}
			dest := to.alloc(tableSize(newCapacity), TypeTable, gcClear)
			dest.table = tableData{
				size:     t.size,
				capacity: newCapacity,
				entries:  make([]Value, newCapacity),
			}
			b.forward = dest
			b.flags = gcMoved
			for i := 0; i < t.capacity; i++ {
				for it := t.entries[i]; !it.IsNull(); it = Cdr(it) {
					index := i
					if newCapacity != t.capacity {
						index = int(Car(Car(it)).block.hash % uint32(newCapacity))
					}
					pair := gcMove(Car(it), to)
					cell := to.alloc(pairSize, TypePair, gcVisited)
					cell.car = pair
					cell.cdr = dest.table.entries[index]
					dest.table.entries[index] = Value{typ: TypePair, block: cell}
				}
			}
		}
		v.block = b.forward
		return v
	}
	return v
}
