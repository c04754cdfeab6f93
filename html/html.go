// Shape templates for rendering generic types – nothing more!
// Copyright (C) 2017-2020 Marcus Perlick
package html

import (
	"bytes"
	"errors"
	"io"
	"unicode/utf8"

	"github.com/fractalqb/typeshape"
)

var escapes = map[rune][]byte{
	'\000': []byte("\uFFFD"),
	'<':    []byte("&lt;"),
	'>':    []byte("&gt;"),
	'&':    []byte("&amp;"),
	'"':    []byte("&quot;"),
	'\'':   []byte("&apos;"),
}

// EscWriter HTML-escapes everything that is written to it before it is
// passed on to Escape. Multi-byte runes may be split across writes.
type EscWriter struct {
	Escape io.Writer
	buf    [utf8.UTFMax]byte
	wp     int
}

func (hew *EscWriter) Write(p []byte) (n int, err error) {
	for _, b := range p {
		hew.buf[hew.wp] = b
		hew.wp++
		buf := hew.buf[:hew.wp]
		if !utf8.FullRune(buf) {
			continue
		}
		hew.wp = 0
		r, _ := utf8.DecodeRune(buf)
		if r == utf8.RuneError {
			return n, errors.New("utf8 rune decoding error")
		}
		out, ok := escapes[r]
		if !ok {
			out = buf
		}
		i, err := hew.Escape.Write(out)
		n += i
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

func Esc(str string) string {
	buf := bytes.NewBuffer(nil)
	ewr := EscWriter{Escape: buf}
	if _, err := ewr.Write([]byte(str)); err != nil {
		panic(err)
	}
	return buf.String()
}

type Escaper struct {
	Cnt typeshape.Content
}

func (hc Escaper) Emit(wr io.Writer) int {
	esc := EscWriter{Escape: wr}
	return hc.Cnt.Emit(&esc)
}

// Seq is the Buffer for HTML output. Plain text (typeshape.Str) is escaped
// when it is appended, all other content is taken as markup.
type Seq struct {
	typeshape.Seq
}

func NewSeq() *Seq { return new(Seq) }

func (s *Seq) Append(c typeshape.Content) {
	if txt, ok := c.(typeshape.Str); ok {
		c = typeshape.Str(Esc(string(txt)))
	}
	s.Seq.Append(c)
}

func (s *Seq) Fork() typeshape.Buffer { return NewSeq() }
