// Shape templates for rendering generic types – nothing more!
// Copyright (C) 2020 Marcus Perlick
package typeshape

import (
	"fmt"
	"strconv"
	"strings"
)

// Type is a type reference as far as the interpreter needs to know it.
// String must identify the type including its type arguments.
type Type interface {
	String() string
}

// TemplateLookup finds the shape template that applies to a type.
type TemplateLookup interface {
	LookupTemplate(t Type) (template string, ok bool)
}

// Shaper can be implemented by a TemplateLookup that keeps tokenized
// templates. Shape returns nil if t has no custom shape.
type Shaper interface {
	Shape(t Type) []Token
}

// Resolver is what the interpreter needs from the full type renderer. A
// Resolver is bound to the type whose template is being rendered, its
// "own type".
type Resolver interface {
	TemplateLookup
	// RenderFullType renders t with the full generic type algorithm. It
	// may render t's own custom shape by calling Render again.
	RenderFullType(t Type) Content
	// LinkToOwnType links to the own type, displayed as label.
	LinkToOwnType(label string, suppressNested bool) Content
	// LinkToType renders t without any links for its type parameters.
	LinkToType(t Type) Content
	TypeArgumentsOf(t Type) []Type
	// At returns a Resolver with own type t.
	At(t Type) Resolver
}

// PlaceholderGlyph is emitted for placeholders without an outer fragment.
const PlaceholderGlyph = "_"

// ShapeOf returns the tokenized shape of t or nil if t has none.
func ShapeOf(lkp TemplateLookup, t Type) []Token {
	if s, ok := lkp.(Shaper); ok {
		return s.Shape(t)
	}
	tmpl, ok := lkp.LookupTemplate(t)
	if !ok {
		return nil
	}
	return Tokenize(tmpl)
}

// Render evaluates tokens for a type instantiation args. Placeholders
// refer to the already rendered fragments in outer, which is empty for a
// top level render.
//
// Out of range indices are no error: a type argument is rendered as its
// index and a placeholder as PlaceholderGlyph. Render panics with a
// *CycleError if applied types expand into themselves, see Catch.
func Render(tokens []Token, args []Type, outer []Content, res Resolver, sink Sink) {
	in := interp{res: res}
	in.render(tokens, args, outer, sink)
}

// ApplyType applies the type constructor ctor to the rendered arguments
// inner. If ctor has a custom shape, its placeholders are bound to inner.
// Otherwise ctor is rendered as ctor<inner...>.
func ApplyType(ctor Type, inner []Content, res Resolver, sink Sink) {
	in := interp{res: res}
	in.apply(ctor, inner, sink)
}

type interp struct {
	res   Resolver
	chain []Type
}

func (in *interp) render(tokens []Token, args []Type, outer []Content, sink Sink) {
	for _, tok := range tokens {
		in.token(tok, args, outer, sink)
	}
}

func (in *interp) token(tok Token, args []Type, outer []Content, sink Sink) {
	switch t := tok.(type) {
	case Literal:
		sink.Append(Str(t.Text))
	case ClassLink:
		sink.Append(in.res.LinkToOwnType(t.Label, true))
	case TypeArgument:
		if t.Index >= 0 && t.Index < len(args) {
			sink.Append(in.res.RenderFullType(args[t.Index]))
		} else {
			sink.Append(Str(strconv.Itoa(t.Index)))
		}
	case TypePlaceholder:
		if i := t.Index - 1; i >= 0 && i < len(outer) {
			sink.Append(outer[i])
		} else {
			sink.Append(Str(PlaceholderGlyph))
		}
	case Application:
		ctor := t.Ctor()
		if ctor < 0 || ctor >= len(args) {
			sink.Append(Str(strconv.Itoa(ctor)))
			return
		}
		inner := make([]Content, 0, len(t.Sub)-1)
		for _, sub := range t.Sub[1:] {
			frag := sink.Fork()
			in.token(sub, args, outer, frag)
			inner = append(inner, frag)
		}
		in.apply(args[ctor], inner, sink)
	default:
		panic(fmt.Errorf("typeshape: unknown token type %T", tok))
	}
}

func (in *interp) apply(ctor Type, inner []Content, sink Sink) {
	shape := ShapeOf(in.res, ctor)
	if len(shape) == 0 {
		sink.Append(in.res.LinkToType(ctor))
		sink.Append(Str("<"))
		for i, arg := range inner {
			if i > 0 {
				sink.Append(Str(","))
			}
			sink.Append(arg)
		}
		sink.Append(Str(">"))
		return
	}
	key := ctor.String()
	for i, c := range in.chain {
		if c.String() == key {
			cycle := append([]Type{}, in.chain[i:]...)
			panic(newCycleError(append(cycle, ctor)))
		}
	}
	nested := interp{
		res:   in.res.At(ctor),
		chain: append(in.chain[:len(in.chain):len(in.chain)], ctor),
	}
	nested.render(shape, in.res.TypeArgumentsOf(ctor), inner, sink)
}

// CycleError is the panic value of a render where an applied type's
// shape, directly or indirectly, applies that type again.
type CycleError struct {
	Chain []string
}

func newCycleError(chain []Type) *CycleError {
	res := &CycleError{Chain: make([]string, len(chain))}
	for i, t := range chain {
		res.Chain[i] = t.String()
	}
	return res
}

func (e *CycleError) Error() string {
	return "typeshape: shape cycle " + strings.Join(e.Chain, " -> ")
}

// DepthError is the panic value of a render that nests deeper than a
// configured limit. Trail lists the types being rendered, outermost first.
type DepthError struct {
	Max   int
	Trail []string
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("typeshape: type nesting exceeds %d: %s",
		e.Max,
		strings.Join(e.Trail, " -> "))
}
