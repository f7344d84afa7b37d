// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

// Package lisp is an embeddable interpreter for a small Scheme-like
// S-expression language. A Context owns two paged heaps, an interning
// symbol table, and a global environment; programs flow through
// Read, Expand, and Eval, and the host reclaims memory with Collect,
// a copying collector that relocates every live value.
package lisp

import "fmt"

// Type tags a Value.
type Type int

const (
	TypeNull Type = iota
	TypeFloat
	TypeInt
	TypePair
	TypeSymbol
	TypeString
	TypeLambda
	TypeFunc
	TypeTable
)

var typeNames = [...]string{
	TypeNull:   "NULL",
	TypeFloat:  "FLOAT",
	TypeInt:    "INT",
	TypePair:   "PAIR",
	TypeSymbol: "SYMBOL",
	TypeString: "STRING",
	TypeLambda: "LAMBDA",
	TypeFunc:   "FUNCTION",
	TypeTable:  "TABLE",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "INVALID"
	}
	return typeNames[t]
}

// Func is the signature of a host callback. It receives the evaluated
// argument list and may allocate through the context. A non-nil error
// unwinds the enclosing evaluation.
type Func func(args Value, ctx *Context) (Value, error)

// Primitive pairs a host callback with the name it prints under.
// Primitives are immediates; they live outside the collected heaps.
type Primitive struct {
	Name string
	Fn   Func
}

// A Value is a tagged union. Null, Int, Float, and Func carry their
// payload inline; the heap kinds point at a block owned by a Context.
// Values are copied freely; the block pointer is the identity.
type Value struct {
	typ   Type
	num   int64
	fnum  float64
	prim  *Primitive
	block *block
}

// Null returns the empty value, which also terminates every proper list.
func Null() Value { return Value{} }

// MakeInt returns an integer immediate.
func MakeInt(n int64) Value { return Value{typ: TypeInt, num: n} }

// MakeFloat returns a floating-point immediate.
func MakeFloat(f float64) Value { return Value{typ: TypeFloat, fnum: f} }

// MakeFunc returns a primitive immediate wrapping a host callback.
func MakeFunc(name string, fn Func) Value {
	return Value{typ: TypeFunc, prim: &Primitive{Name: name, Fn: fn}}
}

// Type reports the tag of the value.
func (v Value) Type() Type { return v.typ }

// IsNull reports whether the value is Null.
func (v Value) IsNull() bool { return v.typ == TypeNull }

// Int projects the value onto an integer. Floats truncate; any other
// kind yields its raw integer payload (zero for heap values).
func (v Value) Int() int64 {
	if v.typ == TypeFloat {
		return int64(v.fnum)
	}
	return v.num
}

// Float projects the value onto a float, converting integers.
func (v Value) Float() float64 {
	if v.typ == TypeInt {
		return float64(v.num)
	}
	return v.fnum
}

// Symbol returns the case-folded name of a symbol.
func (v Value) Symbol() string { return v.mustBlock(TypeSymbol).text }

// Text returns the contents of a string.
func (v Value) Text() string { return v.mustBlock(TypeString).text }

func (v Value) mustBlock(t Type) *block {
	if v.typ != t {
		panic(fmt.Sprintf("lisp: %s used as %s", v.typ, t))
	}
	return v.block
}

// Eq reports identity equality: heap values are equal when they are the
// same block; immediates compare by payload. After interning this is the
// equality symbols are dispatched on.
func Eq(a, b Value) bool {
	if a.typ != b.typ {
		return false
	}
	switch a.typ {
	case TypeNull:
		return true
	case TypeInt:
		return a.num == b.num
	case TypeFloat:
		return a.fnum == b.fnum
	case TypeFunc:
		return a.prim == b.prim
	}
	return a.block == b.block
}

// Cons allocates a pair.
func (ctx *Context) Cons(car, cdr Value) Value {
	b := ctx.heap.alloc(pairSize, TypePair, gcClear)
	b.car = car
	b.cdr = cdr
	return Value{typ: TypePair, block: b}
}

// Car returns the head of a pair, or Null for anything else.
func Car(v Value) Value {
	if v.typ != TypePair {
		return Null()
	}
	return v.block.car
}

// Cdr returns the tail of a pair, or Null for anything else.
func Cdr(v Value) Value {
	if v.typ != TypePair {
		return Null()
	}
	return v.block.cdr
}

// SetCar replaces the head of a pair.
func SetCar(v, car Value) { v.mustBlock(TypePair).car = car }

// SetCdr replaces the tail of a pair.
func SetCdr(v, cdr Value) { v.mustBlock(TypePair).cdr = cdr }

// MakeString allocates a string block.
func (ctx *Context) MakeString(s string) Value {
	b := ctx.heap.alloc(stringSize(s), TypeString, gcClear)
	b.text = s
	return Value{typ: TypeString, block: b}
}

// MakeLambda allocates a lambda closing over env.
func (ctx *Context) MakeLambda(params, body, env Value) Value {
	b := ctx.heap.alloc(lambdaSize, TypeLambda, gcClear)
	b.lambda = lambdaData{
		id:     ctx.lambdaCounter,
		params: params,
		body:   body,
		env:    env,
	}
	ctx.lambdaCounter++
	return Value{typ: TypeLambda, block: b}
}

// A listBuilder appends to a list in constant time.
type listBuilder struct {
	front, back Value
}

func (l *listBuilder) append(ctx *Context, v Value) {
	cell := ctx.Cons(v, Null())
	if l.back.IsNull() {
		l.front = cell
	} else {
		l.back.block.cdr = cell
	}
	l.back = cell
}

// List builds a proper list of the arguments.
func (ctx *Context) List(items ...Value) Value {
	var l listBuilder
	for _, v := range items {
		l.append(ctx, v)
	}
	return l.front
}

// MakeList builds a list of n copies of x.
func (ctx *Context) MakeList(x Value, n int) Value {
	var l listBuilder
	for i := 0; i < n; i++ {
		l.append(ctx, x)
	}
	return l.front
}

// Append copies l and splices l2 onto the copy's tail.
func (ctx *Context) Append(l, l2 Value) Value {
	if l.IsNull() {
		return l
	}
	tail := ctx.Cons(Car(l), Null())
	start := tail
	for it := Cdr(l); !it.IsNull(); it = Cdr(it) {
		cell := ctx.Cons(Car(it), Null())
		tail.block.cdr = cell
		tail = cell
	}
	tail.block.cdr = l2
	return start
}

// At returns the i'th element of a list, or Null past the end.
func At(l Value, i int) Value {
	for ; i > 0; i-- {
		if l.typ != TypePair {
			return Null()
		}
		l = Cdr(l)
	}
	return Car(l)
}

// Length counts the pairs in the spine of a list.
func Length(l Value) int {
	n := 0
	for it := l; it.typ == TypePair; it = Cdr(it) {
		n++
	}
	return n
}

// Nav decodes a car/cdr path such as "cadr" and applies it to l,
// innermost operation first. A malformed path yields Null.
func Nav(l Value, path string) Value {
	if len(path) < 2 || upper(path[0]) != 'C' || upper(path[len(path)-1]) != 'R' {
		return Null()
	}
	for i := len(path) - 2; i >= 1; i-- {
		switch upper(path[i]) {
		case 'A':
			l = Car(l)
		case 'D':
			l = Cdr(l)
		default:
			return Null()
		}
	}
	return l
}

func upper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

// ReverseInPlace reverses a list by rewriting its cdr cells.
func ReverseInPlace(l Value) Value {
	p := Null()
	for l.typ == TypePair {
		next := Cdr(l)
		l.block.cdr = p
		p = l
		l = next
	}
	return p
}

// Assoc finds the entry pair whose car is Eq to key, or Null.
func Assoc(l, key Value) Value {
	for it := l; !it.IsNull(); it = Cdr(it) {
		pair := Car(it)
		if pair.typ == TypePair && Eq(Car(pair), key) {
			return pair
		}
	}
	return Null()
}

// ForKey returns the second element of the Assoc entry for key.
func ForKey(l, key Value) Value {
	return Car(Cdr(Assoc(l, key)))
}
