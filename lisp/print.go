// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

package lisp

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// String returns the value as a formatted list, with dotted notation for
// improper tails.
func (v Value) String() string {
	var b strings.Builder
	v.buildString(&b, false)
	return b.String()
}

// Fprint writes the printed form of v to w.
func Fprint(w io.Writer, v Value) {
	io.WriteString(w, v.String())
}

// buildString is the internals of the String method. isCdr marks that we
// are continuing a list whose opening paren was already written.
func (v Value) buildString(b *strings.Builder, isCdr bool) {
	switch v.typ {
	case TypeNull:
		b.WriteString("NIL")
	case TypeInt:
		b.WriteString(strconv.FormatInt(v.num, 10))
	case TypeFloat:
		b.WriteString(formatFloat(v.fnum))
	case TypeSymbol:
		b.WriteString(v.block.text)
	case TypeString:
		b.WriteByte('"')
		b.WriteString(v.block.text)
		b.WriteByte('"')
	case TypeLambda:
		fmt.Fprintf(b, "lambda-%d", v.block.lambda.id)
	case TypeFunc:
		fmt.Fprintf(b, "function-%s", v.prim.Name)
	case TypeTable:
		b.WriteByte('{')
		for _, entry := range v.block.table.entries {
			if entry.IsNull() {
				continue
			}
			entry.buildString(b, false)
			b.WriteByte(' ')
		}
		b.WriteByte('}')
	case TypePair:
		if !isCdr {
			b.WriteByte('(')
		}
		Car(v).buildString(b, false)
		cdr := Cdr(v)
		if cdr.typ != TypePair {
			if !cdr.IsNull() {
				b.WriteString(" . ")
				cdr.buildString(b, false)
			}
			b.WriteByte(')')
		} else {
			b.WriteByte(' ')
			cdr.buildString(b, true)
		}
	}
}

// formatFloat keeps a decimal point in the output so the printed form
// reads back as a float.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
