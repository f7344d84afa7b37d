// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

package lisp

import (
	"fmt"
	"os"
)

// The evaluator is a tree walker with a trampoline: tail positions in IF,
// BEGIN, and lambda application rebind x and env and continue the loop
// rather than recursing, so iterative programs run in constant stack.
// Recursion is reserved for sub-evaluations (predicates, operators,
// arguments).

// Eval evaluates an expanded expression under env.
func (ctx *Context) Eval(x, env Value) (v Value, err error) {
	defer catch(&v, &err)
	return ctx.eval(x, env), nil
}

// isTruthy reports the IF predicate: only integer zero is false.
func isTruthy(v Value) bool {
	return v.Type() != TypeInt || v.num != 0
}

func (ctx *Context) eval(x, env Value) Value {
	for {
		switch x.Type() {
		case TypeInt, TypeFloat, TypeString, TypeLambda, TypeNull, TypeFunc:
			return x
		case TypeSymbol:
			pair := EnvLookup(env, x)
			if pair.IsNull() {
				fmt.Fprintf(os.Stderr, "cannot find variable: %s\n", x.Symbol())
				raisef(ErrUnknownVar, x.Symbol())
			}
			return Cdr(pair)
		case TypePair:
			op := ""
			if head := Car(x); head.Type() == TypeSymbol {
				op = head.block.text
			}
			switch op {
			case "IF":
				if isTruthy(ctx.eval(At(x, 1), env)) {
					x = At(x, 2)
				} else {
					x = At(x, 3)
				}
			case "BEGIN":
				it := Cdr(x)
				if it.IsNull() {
					return it
				}
				for !Cdr(it).IsNull() {
					ctx.eval(Car(it), env)
					it = Cdr(it)
				}
				x = Car(it)
			case "QUOTE":
				return At(x, 1)
			case "DEFINE":
				value := ctx.eval(At(x, 2), env)
				ctx.EnvDefine(env, At(x, 1), value)
				return Null()
			case "SET!":
				EnvSet(env, At(x, 1), ctx.eval(At(x, 2), env))
				return Null()
			case "LAMBDA":
				return ctx.MakeLambda(At(x, 1), At(x, 2), env)
			default:
				operator := ctx.eval(Car(x), env)
				var args listBuilder
				for it := Cdr(x); !it.IsNull(); it = Cdr(it) {
					args.append(ctx, ctx.eval(Car(it), env))
				}
				switch operator.Type() {
				case TypeLambda:
					lam := operator.block.lambda
					frame := ctx.MakeTable(13)
					for key, val := lam.params, args.front; !key.IsNull(); key, val = Cdr(key), Cdr(val) {
						ctx.TableSet(frame, Car(key), Car(val))
					}
					x = lam.body
					env = ctx.EnvExtend(lam.env, frame)
				case TypeFunc:
					result, err := operator.prim.Fn(args.front, ctx)
					if err != nil {
						if lerr, ok := err.(*Error); ok {
							panic(lerr)
						}
						panic(&Error{Kind: ErrBadArg, Info: err.Error()})
					}
					return result
				default:
					fmt.Fprintf(os.Stderr, "apply error: not an operator %s\n", operator.Type())
					raise(ErrBadOp)
				}
			}
		default:
			raise(ErrUnknownEval)
		}
	}
}
