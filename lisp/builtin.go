// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

// This file contains the definitions of the builtin functions installed
// in a full interpreter context.

package lisp

import (
	"fmt"
	"os"
)

func registerBuiltins(ctx *Context, table Value) {
	for _, b := range []struct {
		name string
		fn   Func
	}{
		{"CONS", funcCons},
		{"CAR", funcCar},
		{"CDR", funcCdr},
		{"NAV", funcNav},
		{"EQ?", funcEq},
		{"NULL?", funcIsNull},
		{"LIST", funcList},
		{"APPEND", funcAppend},
		{"MAP", funcMap},
		{"NTH", funcNth},
		{"LENGTH", funcLength},
		{"REVERSE!", funcReverseInPlace},
		{"ASSOC", funcAssoc},
		{"DISPLAY", funcDisplay},
		{"NEWLINE", funcNewline},
		{"ASSERT", funcAssert},
		{"READ-PATH", funcReadPath},
		{"EXPAND", funcExpand},
		{"=", funcEquals},
		{"+", funcAdd},
		{"-", funcSub},
		{"*", funcMult},
		{"/", funcDivide},
		{"<", funcLess},
		{">", funcGreater},
		{"<=", funcLessEqual},
		{">=", funcGreaterEqual},
		{"EVEN?", funcEven},
		{"ODD?", funcOdd},
	} {
		ctx.TableSet(table, ctx.MakeSymbol(b.name), MakeFunc(b.name, b.fn))
	}
}

func badArg() error { return &Error{Kind: ErrBadArg} }

func boolInt(b bool) Value {
	if b {
		return MakeInt(1)
	}
	return MakeInt(0)
}

func funcCons(args Value, ctx *Context) (Value, error) {
	return ctx.Cons(Car(args), At(args, 1)), nil
}

func funcCar(args Value, ctx *Context) (Value, error) {
	return Car(Car(args)), nil
}

func funcCdr(args Value, ctx *Context) (Value, error) {
	return Cdr(Car(args)), nil
}

func funcNav(args Value, ctx *Context) (Value, error) {
	path := Car(args)
	if path.Type() != TypeString {
		return Null(), badArg()
	}
	return Nav(At(args, 1), path.Text()), nil
}

func funcEq(args Value, ctx *Context) (Value, error) {
	return boolInt(Eq(Car(args), At(args, 1))), nil
}

func funcIsNull(args Value, ctx *Context) (Value, error) {
	for it := args; !it.IsNull(); it = Cdr(it) {
		if !Car(it).IsNull() {
			return MakeInt(0), nil
		}
	}
	return MakeInt(1), nil
}

func funcList(args Value, ctx *Context) (Value, error) {
	return args, nil
}

func funcAppend(args Value, ctx *Context) (Value, error) {
	l := Car(args)
	if l.Type() != TypePair {
		return Null(), badArg()
	}
	for it := Cdr(args); !it.IsNull(); it = Cdr(it) {
		l = ctx.Append(l, Car(it))
	}
	return l, nil
}

// funcMap applies an operator to every element of one or more lists. Each
// element is quoted before application so it is passed as the value it
// already is, not re-evaluated.
func funcMap(args Value, ctx *Context) (Value, error) {
	op := Car(args)
	if op.Type() != TypeFunc && op.Type() != TypeLambda {
		return Null(), badArg()
	}
	lists := Cdr(args)
	n := Length(lists)
	if n == 0 {
		return Null(), nil
	}
	quote := ctx.MakeSymbol("QUOTE")
	var results listBuilder
	for it := lists; !it.IsNull(); it = Cdr(it) {
		var mapped listBuilder
		for elem := Car(it); !elem.IsNull(); elem = Cdr(elem) {
			expr := ctx.List(op, ctx.List(quote, Car(elem)))
			result, err := ctx.Eval(expr, ctx.GlobalEnv())
			if err != nil {
				return Null(), err
			}
			mapped.append(ctx, result)
		}
		results.append(ctx, mapped.front)
	}
	if n == 1 {
		return Car(results.front), nil
	}
	return results.front, nil
}

func funcNth(args Value, ctx *Context) (Value, error) {
	index := Car(args)
	if index.Int() < 0 {
		return Null(), &Error{Kind: ErrOutOfBounds}
	}
	return At(At(args, 1), int(index.Int())), nil
}

func funcLength(args Value, ctx *Context) (Value, error) {
	return MakeInt(int64(Length(Car(args)))), nil
}

func funcReverseInPlace(args Value, ctx *Context) (Value, error) {
	return ReverseInPlace(Car(args)), nil
}

func funcAssoc(args Value, ctx *Context) (Value, error) {
	return Assoc(Car(args), At(args, 1)), nil
}

func funcDisplay(args Value, ctx *Context) (Value, error) {
	l := Car(args)
	if l.Type() == TypeString {
		fmt.Print(l.Text())
	} else {
		fmt.Print(l)
	}
	return Null(), nil
}

func funcNewline(args Value, ctx *Context) (Value, error) {
	fmt.Println()
	return Null(), nil
}

// funcAssert receives the checked value and the quoted original form the
// expander preserved for this diagnostic.
func funcAssert(args Value, ctx *Context) (Value, error) {
	if Car(args).Int() != 1 {
		fmt.Fprintf(os.Stderr, "assertion: %s\n", At(args, 1))
		return Null(), badArg()
	}
	return Null(), nil
}

func funcReadPath(args Value, ctx *Context) (Value, error) {
	path := Car(args)
	if path.Type() != TypeString {
		return Null(), badArg()
	}
	return ctx.ReadPath(path.Text())
}

func funcExpand(args Value, ctx *Context) (Value, error) {
	return ctx.Expand(Car(args))
}

func funcEquals(args Value, ctx *Context) (Value, error) {
	first := Car(args)
	if first.IsNull() {
		return MakeInt(1), nil
	}
	for it := Cdr(args); !it.IsNull(); it = Cdr(it) {
		if Car(it).Int() != first.Int() {
			return MakeInt(0), nil
		}
	}
	return MakeInt(1), nil
}

// Arithmetic folds left over the arguments; the accumulator keeps the
// kind of the first operand.

func funcAdd(args Value, ctx *Context) (Value, error) {
	accum := Car(args)
	for it := Cdr(args); !it.IsNull(); it = Cdr(it) {
		switch accum.Type() {
		case TypeInt:
			accum.num += Car(it).Int()
		case TypeFloat:
			accum.fnum += Car(it).Float()
		}
	}
	return accum, nil
}

func funcSub(args Value, ctx *Context) (Value, error) {
	accum := Car(args)
	for it := Cdr(args); !it.IsNull(); it = Cdr(it) {
		switch accum.Type() {
		case TypeInt:
			accum.num -= Car(it).Int()
		case TypeFloat:
			accum.fnum -= Car(it).Float()
		default:
			return Null(), badArg()
		}
	}
	return accum, nil
}

func funcMult(args Value, ctx *Context) (Value, error) {
	accum := Car(args)
	for it := Cdr(args); !it.IsNull(); it = Cdr(it) {
		switch accum.Type() {
		case TypeInt:
			accum.num *= Car(it).Int()
		case TypeFloat:
			accum.fnum *= Car(it).Float()
		default:
			return Null(), badArg()
		}
	}
	return accum, nil
}

func funcDivide(args Value, ctx *Context) (Value, error) {
	accum := Car(args)
	for it := Cdr(args); !it.IsNull(); it = Cdr(it) {
		switch accum.Type() {
		case TypeInt:
			d := Car(it).Int()
			if d == 0 {
				return Null(), badArg()
			}
			accum.num /= d
		case TypeFloat:
			accum.fnum /= Car(it).Float()
		default:
			return Null(), badArg()
		}
	}
	return accum, nil
}

func funcLess(args Value, ctx *Context) (Value, error) {
	a := Car(args)
	b := At(args, 1)
	switch a.Type() {
	case TypeInt:
		return boolInt(a.Int() < b.Int()), nil
	case TypeFloat:
		return boolInt(a.Float() < b.Float()), nil
	}
	return Null(), badArg()
}

func funcGreater(args Value, ctx *Context) (Value, error) {
	a := Car(args)
	b := At(args, 1)
	switch a.Type() {
	case TypeInt:
		return boolInt(a.Int() > b.Int()), nil
	case TypeFloat:
		return boolInt(a.Float() > b.Float()), nil
	}
	return Null(), badArg()
}

func funcLessEqual(args Value, ctx *Context) (Value, error) {
	v, err := funcGreater(args, ctx)
	if err != nil {
		return Null(), err
	}
	return boolInt(v.Int() == 0), nil
}

func funcGreaterEqual(args Value, ctx *Context) (Value, error) {
	v, err := funcLess(args, ctx)
	if err != nil {
		return Null(), err
	}
	return boolInt(v.Int() == 0), nil
}

func funcEven(args Value, ctx *Context) (Value, error) {
	for it := args; !it.IsNull(); it = Cdr(it) {
		if Car(it).Int()&1 == 1 {
			return MakeInt(0), nil
		}
	}
	return MakeInt(1), nil
}

func funcOdd(args Value, ctx *Context) (Value, error) {
	for it := args; !it.IsNull(); it = Cdr(it) {
		if Car(it).Int()&1 == 0 {
			return MakeInt(0), nil
		}
	}
	return MakeInt(1), nil
}
