// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

package lisp

// The expander lowers surface forms to the primitive language the
// evaluator understands: IF, BEGIN, QUOTE, DEFINE, SET!, LAMBDA, and
// application. It rewrites and validates structure; it never evaluates.
// Expansion is idempotent: running it over its own output is a no-op.

// Expand rewrites surface forms in v to primitive forms.
func (ctx *Context) Expand(v Value) (out Value, err error) {
	defer catch(&out, &err)
	return ctx.expand(v), nil
}

func (ctx *Context) expand(v Value) Value {
	if v.Type() != TypePair {
		return v
	}
	op := ""
	if head := Car(v); head.Type() == TypeSymbol {
		op = head.block.text
	}
	switch op {
	case "QUOTE":
		// Quoted data is opaque; children are not recursed.
		if Length(v) != 2 {
			raise(ErrBadQuote)
		}
		return v
	case "DEFINE":
		return ctx.expandDefine(v)
	case "SET!":
		return ctx.expandSet(v)
	case "COND":
		return ctx.expandCond(v)
	case "AND":
		return ctx.expandAndOr(v, true)
	case "OR":
		return ctx.expandAndOr(v, false)
	case "LET":
		return ctx.expandLet(v)
	case "LAMBDA":
		return ctx.expandLambda(v)
	case "ASSERT":
		// (ASSERT expr) -> (ASSERT expr' (QUOTE expr)); the unexpanded
		// form rides along for the failure diagnostic. A three-element
		// assert already carries its quoted form and falls through.
		if Length(v) == 2 {
			statement := At(v, 1)
			quoted := ctx.List(ctx.MakeSymbol("QUOTE"), statement)
			return ctx.List(Car(v), ctx.expand(statement), quoted)
		}
	}
	// Ordinary application: expand each element in place.
	for it := v; it.Type() == TypePair; it = Cdr(it) {
		it.block.car = ctx.expand(Car(it))
	}
	return v
}

// expandEach expands the elements of a list into a fresh list.
func (ctx *Context) expandEach(l Value) Value {
	var out listBuilder
	for it := l; it.Type() == TypePair; it = Cdr(it) {
		out.append(ctx, ctx.expand(Car(it)))
	}
	return out.front
}

// (DEFINE (name p...) body...) -> (DEFINE name (LAMBDA (p...) body...))
// (DEFINE name expr)           -> recurse on expr
func (ctx *Context) expandDefine(v Value) Value {
	if Length(v) < 3 {
		raise(ErrBadDefine)
	}
	sig := At(v, 1)
	switch sig.Type() {
	case TypePair:
		name := Car(sig)
		if name.Type() != TypeSymbol {
			raise(ErrBadDefine)
		}
		body := Cdr(Cdr(v))
		lambda := ctx.Cons(ctx.MakeSymbol("LAMBDA"), ctx.Cons(Cdr(sig), body))
		return ctx.List(Car(v), name, ctx.expand(lambda))
	case TypeSymbol:
		return ctx.List(Car(v), sig, ctx.expand(At(v, 2)))
	}
	raise(ErrBadDefine)
	return Null()
}

// (SET! var expr) with var a symbol; recurse on expr.
func (ctx *Context) expandSet(v Value) Value {
	if Length(v) != 3 {
		raise(ErrBadSet)
	}
	variable := At(v, 1)
	if variable.Type() != TypeSymbol {
		raise(ErrBadSet)
	}
	return ctx.List(Car(v), variable, ctx.expand(At(v, 2)))
}

// (COND (p0 e0) ... (ELSE en)) right-folds into nested IFs. The ELSE
// branch, when present, becomes the innermost alternative; otherwise the
// innermost alternative is Null.
func (ctx *Context) expandCond(v Value) Value {
	var clauses []Value
	for it := Cdr(v); it.Type() == TypePair; it = Cdr(it) {
		clauses = append(clauses, Car(it))
	}
	if len(clauses) == 0 {
		raise(ErrBadCond)
	}
	outer := Null()
	last := clauses[len(clauses)-1]
	if last.Type() != TypePair || Length(last) != 2 {
		raise(ErrBadCond)
	}
	if pred := Car(last); pred.Type() == TypeSymbol && pred.block.text == "ELSE" {
		outer = ctx.expand(At(last, 1))
		clauses = clauses[:len(clauses)-1]
	}
	ifSym := ctx.MakeSymbol("IF")
	for i := len(clauses) - 1; i >= 0; i-- {
		clause := clauses[i]
		if clause.Type() != TypePair || Length(clause) != 2 {
			raise(ErrBadCond)
		}
		outer = ctx.List(ifSym, ctx.expand(Car(clause)), ctx.expand(At(clause, 1)), outer)
	}
	return outer
}

// (AND a0 ... an) -> (IF a0 (IF a1 ... (IF an 1 0) 0) 0)
// (OR  a0 ... an) -> (IF a0 1 (IF a1 1 ... (IF an 1 0)))
func (ctx *Context) expandAndOr(v Value, and bool) Value {
	var preds []Value
	for it := Cdr(v); it.Type() == TypePair; it = Cdr(it) {
		preds = append(preds, Car(it))
	}
	if len(preds) == 0 {
		if and {
			raise(ErrBadAnd)
		}
		raise(ErrBadOr)
	}
	ifSym := ctx.MakeSymbol("IF")
	outer := ctx.List(ifSym, ctx.expand(preds[len(preds)-1]), MakeInt(1), MakeInt(0))
	for i := len(preds) - 2; i >= 0; i-- {
		p := ctx.expand(preds[i])
		if and {
			outer = ctx.List(ifSym, p, outer, MakeInt(0))
		} else {
			outer = ctx.List(ifSym, p, MakeInt(1), outer)
		}
	}
	return outer
}

// (LET ((v0 e0) ...) body...) -> ((LAMBDA (v0 ...) body...) e0 ...)
func (ctx *Context) expandLet(v Value) Value {
	pairs := At(v, 1)
	if pairs.Type() != TypePair {
		raise(ErrBadLet)
	}
	var vars, exprs listBuilder
	for it := pairs; it.Type() == TypePair; it = Cdr(it) {
		binding := Car(it)
		if binding.Type() != TypePair || Length(binding) != 2 {
			raise(ErrBadLet)
		}
		key := Car(binding)
		if key.Type() != TypeSymbol {
			raise(ErrBadLet)
		}
		vars.append(ctx, key)
		exprs.append(ctx, ctx.expand(At(binding, 1)))
	}
	body := Cdr(Cdr(v))
	lambda := ctx.Cons(ctx.MakeSymbol("LAMBDA"), ctx.Cons(vars.front, body))
	return ctx.Cons(ctx.expand(lambda), exprs.front)
}

// A multi-expression lambda body is sequenced with BEGIN so the evaluator
// always sees a single body form.
func (ctx *Context) expandLambda(v Value) Value {
	params := At(v, 1)
	if params.Type() != TypePair && !params.IsNull() {
		raise(ErrBadLambda)
	}
	if Length(v) > 3 {
		begin := ctx.Cons(ctx.MakeSymbol("BEGIN"), ctx.expandEach(Cdr(Cdr(v))))
		return ctx.List(Car(v), params, begin)
	}
	return ctx.List(Car(v), params, ctx.expand(At(v, 2)))
}
