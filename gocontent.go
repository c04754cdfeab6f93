// Shape templates for rendering generic types – nothing more!
// Copyright (C) 2020 Marcus Perlick
package typeshape

import (
	"fmt"
	"io"
)

// Generator is content computed at emit time, e.g. a resolver that only
// knows the final link target when output is written.
type Generator func(wr io.Writer) int

func (g Generator) Emit(wr io.Writer) int { return g(wr) }

type printfCnt struct {
	format string
	args   []interface{}
}

// Printf formats args with format when emitted. Markup sinks take the
// result as is.
func Printf(format string, args ...interface{}) Content {
	return printfCnt{format, args}
}

func (p printfCnt) Emit(wr io.Writer) int {
	return emitted(fmt.Fprintf(wr, p.format, p.args...))
}

// Print emits V in its default format.
type Print struct {
	V interface{}
}

func (p Print) Emit(wr io.Writer) int {
	return emitted(fmt.Fprint(wr, p.V))
}

// Data is content that is written as is. Unlike Str, markup sinks never
// escape Data.
type Data []byte

func (d Data) Emit(wr io.Writer) int {
	return emitted(wr.Write(d))
}

// emitted turns a standard write result into an Emit result.
func emitted(n int, err error) int {
	if err != nil {
		panic(EmitError{Count: n, Err: err})
	}
	return n
}
