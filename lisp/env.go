// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

package lisp

import (
	"fmt"
	"os"
)

// An environment is a list of tables, innermost frame first. Extension
// conses a new frame onto an existing environment without mutating it, so
// a closure's captured chain stays stable.

// MakeEnv returns an environment with table as its only frame.
func (ctx *Context) MakeEnv(table Value) Value {
	return ctx.Cons(table, Null())
}

// EnvExtend returns env with a new innermost frame.
func (ctx *Context) EnvExtend(env, table Value) Value {
	return ctx.Cons(table, env)
}

// EnvLookup walks the frames and returns the (key . value) entry binding
// symbol, or Null if unbound.
func EnvLookup(env, symbol Value) Value {
	for it := env; !it.IsNull(); it = Cdr(it) {
		if pair := TableGet(Car(it), symbol); !pair.IsNull() {
			return pair
		}
	}
	return Null()
}

// EnvDefine binds symbol in the innermost frame.
func (ctx *Context) EnvDefine(env, symbol, value Value) {
	ctx.TableSet(Car(env), symbol, value)
}

// EnvSet stores into the nearest frame that already binds symbol. An
// unbound symbol is reported on the diagnostic stream and the store is
// dropped.
func EnvSet(env, symbol, value Value) {
	pair := EnvLookup(env, symbol)
	if pair.IsNull() {
		fmt.Fprintf(os.Stderr, "error: unknown variable: %s\n", symbol.Symbol())
		return
	}
	pair.block.cdr = value
}
