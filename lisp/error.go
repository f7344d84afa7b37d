// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

package lisp

// This file defines the error channel shared by the reader, the expander,
// and the evaluator. Deep failures unwind to the nearest public entry point
// through panic, the way parse errors do in a recursive-descent parser; the
// entry points recover and hand the caller a plain error value.

// ErrorKind enumerates every failure the interpreter can report.
type ErrorKind int

const (
	ErrNone ErrorKind = iota
	ErrFileOpen
	ErrParenUnexpected
	ErrParenExpected
	ErrBadToken
	ErrBadDefine
	ErrBadSet
	ErrBadCond
	ErrBadAnd
	ErrBadOr
	ErrBadLet
	ErrBadLambda
	ErrBadQuote
	ErrUnknownVar
	ErrBadOp
	ErrUnknownEval
	ErrBadArg
	ErrOutOfBounds
)

// String returns the fixed user-visible message for the kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrNone:
		return "none"
	case ErrFileOpen:
		return "file error: could not open file"
	case ErrParenUnexpected:
		return "syntax error: unexpected ) paren"
	case ErrParenExpected:
		return "syntax error: expected ) paren"
	case ErrBadToken:
		return "syntax error: bad token"
	case ErrBadDefine:
		return "expand error: bad define (define var x)"
	case ErrBadSet:
		return "expand error: bad set (set! var x)"
	case ErrBadCond:
		return "expand error: bad cond"
	case ErrBadAnd:
		return "expand error: bad and (and a b)"
	case ErrBadOr:
		return "expand error: bad or (or a b)"
	case ErrBadLet:
		return "expand error: bad let"
	case ErrBadLambda:
		return "expand error: bad lambda"
	case ErrBadQuote:
		return "expand error: bad quote (quote x)"
	case ErrUnknownVar:
		return "eval error: unknown variable"
	case ErrBadOp:
		return "eval error: application was not an operator"
	case ErrUnknownEval:
		return "eval error: got into a bad state"
	case ErrBadArg:
		return "func error: bad argument type"
	case ErrOutOfBounds:
		return "func error: index out of bounds"
	}
	return "unknown error code"
}

// Error is the error value returned by Read, Expand, and Eval.
// Info, when set, names the offender (a variable, a file path).
type Error struct {
	Kind ErrorKind
	Info string
}

func (e *Error) Error() string {
	if e.Info != "" {
		return e.Kind.String() + ": " + e.Info
	}
	return e.Kind.String()
}

// raise unwinds to the nearest public entry point.
func raise(kind ErrorKind) {
	panic(&Error{Kind: kind})
}

func raisef(kind ErrorKind, info string) {
	panic(&Error{Kind: kind, Info: info})
}

// catch recovers a raised *Error, leaving the result Null. Any other panic
// is an interpreter bug and is re-thrown.
func catch(v *Value, err *error) {
	switch e := recover().(type) {
	case nil:
	case *Error:
		*v = Null()
		*err = e
	default:
		panic(e)
	}
}
