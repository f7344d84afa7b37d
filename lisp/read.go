// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

package lisp

import (
	"io"
	"os"
	"strconv"
)

// The reader consumes tokens and builds S-expressions. Several top-level
// expressions are wrapped in a single (BEGIN ...) so the caller always
// gets one value back.

func (ctx *Context) parseAtom(lex *lexer) Value {
	length := lex.scanLen
	var v Value
	switch lex.token {
	case tokenInt:
		n, err := strconv.ParseInt(lex.tokenText(0, length), 10, 64)
		if err != nil {
			raise(ErrBadToken)
		}
		v = MakeInt(n)
	case tokenFloat:
		f, err := strconv.ParseFloat(lex.tokenText(0, length), 64)
		if err != nil {
			raise(ErrBadToken)
		}
		v = MakeFloat(f)
	case tokenString:
		// Offsets strip the surrounding quotes.
		v = ctx.MakeString(lex.tokenText(1, length-2))
	case tokenSymbol:
		v = ctx.MakeSymbol(lex.tokenText(0, length))
	default:
		raise(ErrBadToken)
	}
	lex.nextToken()
	return v
}

func (ctx *Context) parseExpr(lex *lexer) Value {
	switch lex.token {
	case tokenNone:
		raise(ErrParenExpected)
	case tokenLParen:
		var list listBuilder
		lex.nextToken()
		for lex.token != tokenRParen {
			list.append(ctx, ctx.parseExpr(lex))
		}
		lex.nextToken()
		return list.front
	case tokenRParen:
		raise(ErrParenUnexpected)
	case tokenQuote:
		lex.nextToken()
		return ctx.List(ctx.MakeSymbol("QUOTE"), ctx.parseExpr(lex))
	}
	return ctx.parseAtom(lex)
}

func (ctx *Context) parse(lex *lexer) Value {
	lex.nextToken()
	result := ctx.parseExpr(lex)
	if lex.token == tokenNone {
		return result
	}
	var list listBuilder
	list.append(ctx, ctx.MakeSymbol("BEGIN"))
	list.append(ctx, result)
	for lex.token != tokenNone {
		list.append(ctx, ctx.parseExpr(lex))
	}
	return list.front
}

// Read parses a program held in a string.
func (ctx *Context) Read(program string) (v Value, err error) {
	defer catch(&v, &err)
	return ctx.parse(newLexer(program)), nil
}

// ReadFile parses a program streamed from r.
func (ctx *Context) ReadFile(r io.Reader) (v Value, err error) {
	defer catch(&v, &err)
	return ctx.parse(newFileLexer(r)), nil
}

// ReadPath opens and parses the named file, closing it on every path out.
func (ctx *Context) ReadPath(path string) (Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return Null(), &Error{Kind: ErrFileOpen, Info: path}
	}
	defer f.Close()
	return ctx.ReadFile(f)
}
