// Shape templates for rendering generic types – nothing more!
// Copyright (C) 2020 Marcus Perlick
package typeshape

import (
	"strconv"
	"strings"
)

// Token is one parsed directive or literal span of a shape template. The
// set of tokens is closed: Literal, ClassLink, TypeArgument,
// TypePlaceholder and Application are the only implementations.
//
// String renders the token back into template syntax.
type Token interface {
	String() string
	sealed()
}

// Literal is text that is emitted verbatim.
type Literal struct {
	Text string
}

// ClassLink links to the type that owns the template, displayed with
// Label instead of the type's name.
type ClassLink struct {
	Label string
}

// TypeArgument emits the fully rendered type argument at Index (0-based).
type TypeArgument struct {
	Index int
}

// TypePlaceholder emits the outer fragment at Index-1. Index is 1-based as
// in the template syntax.
type TypePlaceholder struct {
	Index int
}

// Application applies the type argument named by Sub[0] to the fragments
// rendered from Sub[1:]. The tokenizer guarantees that Sub[0] is a
// TypeArgument.
type Application struct {
	Sub []Token
}

// Ctor returns the index of the constructor argument or -1 if a has no
// leading TypeArgument.
func (a Application) Ctor() int {
	if len(a.Sub) == 0 {
		return -1
	}
	if ta, ok := a.Sub[0].(TypeArgument); ok {
		return ta.Index
	}
	return -1
}

func (Literal) sealed()         {}
func (ClassLink) sealed()       {}
func (TypeArgument) sealed()    {}
func (TypePlaceholder) sealed() {}
func (Application) sealed()     {}

// special characters that need quoting when a literal is written back
const litSpecials = "%[]\"'"

func (l Literal) String() string {
	if strings.ContainsAny(l.Text, litSpecials) && !strings.ContainsRune(l.Text, '\'') {
		return "%'" + l.Text + "'"
	}
	return l.Text
}

func (c ClassLink) String() string { return "%." + c.Label + "." }

func (a TypeArgument) String() string { return "%" + strconv.Itoa(a.Index) }

func (p TypePlaceholder) String() string { return "%^" + strconv.Itoa(p.Index) }

func (a Application) String() string {
	var sb strings.Builder
	sb.WriteString("%(")
	for i, sub := range a.Sub {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(subString(sub))
	}
	sb.WriteByte(')')
	return sb.String()
}

// subString writes a sub-token the way it appears inside an application,
// i.e. without the leading '%'.
func subString(tok Token) string {
	switch t := tok.(type) {
	case Literal:
		if isWord(t.Text) {
			return t.Text
		}
		return "'" + t.Text + "'"
	default:
		return strings.TrimPrefix(t.String(), "%")
	}
}

func isWord(s string) bool {
	if len(s) == 0 || !isWordStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isWordByte(s[i]) {
			return false
		}
	}
	return true
}

// Format writes tokens back into template syntax, e.g. to show a parsed
// template in diagnostics.
func Format(tokens []Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok.String())
	}
	return sb.String()
}
