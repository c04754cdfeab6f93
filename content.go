// Shape templates for rendering generic types – nothing more!
// Copyright (C) 2020 Marcus Perlick
package typeshape

import (
	"bytes"
	"io"
)

// Content provides the interface Emit that will write the content to
// an io.Writer.
//
// Different than the standard write methods, Emit only returns the
// number of bytes written. If an error occurs Emit should panic with
// that error wrapped into an EmitError. Use CatchEmit to switch back to
// standard (n int, err error) I/O results.
type Content interface {
	Emit(wr io.Writer) (wrbyte int)
}

type empty int

func (e empty) Emit(wr io.Writer) int {
	return 0
}

// Constant Empty can be used as empty Content, i.e. nothing will be emitted.
const Empty empty = 0

// Str is plain text content. Sinks that produce markup escape Str when it
// is appended, all other content is taken as is.
type Str string

func (s Str) Emit(wr io.Writer) int {
	return emitted(io.WriteString(wr, string(s)))
}

// Sink collects the content produced by a render.
type Sink interface {
	Append(c Content)
	// Fork returns a new, empty buffer of the same kind as the sink. It is
	// used to render the fragments that are handed to applied types.
	Fork() Buffer
}

// Buffer is a Sink that is Content itself.
type Buffer interface {
	Sink
	Content
}

// Seq is the plain text Buffer.
type Seq []Content

func (s *Seq) Append(c Content) {
	if c != nil {
		*s = append(*s, c)
	}
}

func (s *Seq) Fork() Buffer { return new(Seq) }

func (s Seq) Emit(wr io.Writer) (n int) {
	for _, c := range s {
		n += c.Emit(wr)
	}
	return n
}

// Len returns the number of content pieces in s.
func (s Seq) Len() int { return len(s) }

type joined struct {
	sep   Content
	parts []Content
}

// Join returns content that emits parts separated by sep.
func Join(sep Content, parts ...Content) Content {
	return joined{sep, parts}
}

func (j joined) Emit(wr io.Writer) (n int) {
	for i, p := range j.parts {
		if i > 0 {
			n += j.sep.Emit(wr)
		}
		n += p.Emit(wr)
	}
	return n
}

// String emits c into a string. It panics like Emit does.
func String(c Content) string {
	var buf bytes.Buffer
	c.Emit(&buf)
	return buf.String()
}

type EmitError struct {
	Count int
	Err   error
}

func (ee EmitError) Error() string {
	return ee.Err.Error()
}

func (ee EmitError) Unwrap() error { return ee.Err }

// CatchEmit emits c to wr and recovers the errors a render panics with.
func CatchEmit(c Content, wr io.Writer) (n int, err error) {
	err = Catch(func() { n = c.Emit(wr) })
	if ee, ok := err.(EmitError); ok {
		n = ee.Count
	}
	return n, err
}

// Catch calls f and returns the EmitError, *CycleError or *DepthError it
// panics with as error. Other panics are passed on.
func Catch(f func()) (err error) {
	defer func() {
		if rek := recover(); rek != nil {
			switch e := rek.(type) {
			case EmitError:
				err = e
			case *CycleError:
				err = e
			case *DepthError:
				err = e
			default:
				panic(rek)
			}
		}
	}()
	f()
	return nil
}
