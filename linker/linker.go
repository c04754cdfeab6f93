// Shape templates for rendering generic types – nothing more!
// Copyright (C) 2020 Marcus Perlick
package linker

import (
	"io"

	"github.com/fractalqb/typeshape"
	"github.com/fractalqb/typeshape/html"
	"github.com/fractalqb/typeshape/lookup"
	"github.com/fractalqb/typeshape/typeref"
)

const DefaultMaxDepth = 64

var _ typeshape.Resolver = Linker{}

// Flags control how much of a type is linked. They are passed on by value
// when the rendering descends into a type's parts.
type Flags struct {
	// ExcludeParamLinks renders classes without their type arguments and
	// type variables without a link to their declaring class.
	ExcludeParamLinks bool
	ExcludeTypeBounds bool
	// ExcludeBoundLinks renders classes that occur in type bounds as
	// plain names.
	ExcludeBoundLinks bool
	IsTypeBound       bool
}

// Linker renders type references, using custom shapes where a type has
// one. A Linker is a typeshape.Resolver. Its zero value renders plain
// text and only knows the shapes that types declare with
// lookup.ShapeTag.
type Linker struct {
	Shapes typeshape.TemplateLookup
	// HTML selects HTML output, otherwise output is plain text.
	HTML bool
	// Href computes link targets from qualified class names. Without Href
	// HTML output has no <a> elements.
	Href     func(qname string) string
	MaxDepth int
	Flags    Flags
	own      *typeref.Ref
	trail    []string
}

// Link renders t.
func (l Linker) Link(t *typeref.Ref) typeshape.Content {
	return l.RenderFullType(t)
}

// Render renders t into a string. Cycles in the type shapes are reported
// as error.
func (l Linker) Render(t *typeref.Ref) (res string, err error) {
	err = typeshape.Catch(func() { res = typeshape.String(l.Link(t)) })
	return res, err
}

// Write renders t to wr.
func (l Linker) Write(wr io.Writer, t *typeref.Ref) (n int, err error) {
	return typeshape.CatchEmit(l.Link(t), wr)
}

func (l Linker) WithFlags(f Flags) Linker {
	l.Flags = f
	return l
}

func (l Linker) shapes() typeshape.TemplateLookup {
	if l.Shapes == nil {
		return (*lookup.Table)(nil)
	}
	return l.Shapes
}

func (l Linker) LookupTemplate(t typeshape.Type) (string, bool) {
	return l.shapes().LookupTemplate(t)
}

func (l Linker) Shape(t typeshape.Type) []typeshape.Token {
	return typeshape.ShapeOf(l.shapes(), t)
}

func (l Linker) TypeArgumentsOf(t typeshape.Type) []typeshape.Type {
	ref, ok := t.(*typeref.Ref)
	if !ok {
		return nil
	}
	res := make([]typeshape.Type, len(ref.Args))
	for i, a := range ref.Args {
		res[i] = a
	}
	return res
}

func (l Linker) At(t typeshape.Type) typeshape.Resolver {
	l.own, _ = t.(*typeref.Ref)
	return l
}

func (l Linker) LinkToOwnType(label string, suppressNested bool) typeshape.Content {
	if l.own == nil {
		return typeshape.Str(label)
	}
	lnk := l.classLink(l.own.Name, label, "")
	if suppressNested || len(l.own.Args) == 0 {
		return lnk
	}
	buf := l.buffer()
	buf.Append(lnk)
	l.params(l.own, buf)
	return buf
}

func (l Linker) LinkToType(t typeshape.Type) typeshape.Content {
	l.Flags.ExcludeParamLinks = true
	l.Flags.ExcludeTypeBounds = true
	return l.RenderFullType(t)
}

func (l Linker) RenderFullType(t typeshape.Type) typeshape.Content {
	ref, ok := t.(*typeref.Ref)
	if !ok {
		return typeshape.Str(t.String())
	}
	limit := l.MaxDepth
	if limit <= 0 {
		limit = DefaultMaxDepth
	}
	l.trail = append(l.trail[:len(l.trail):len(l.trail)], ref.String())
	if len(l.trail) > limit {
		panic(&typeshape.DepthError{Max: limit, Trail: l.trail})
	}
	buf := l.buffer()
	l.full(ref, buf)
	return buf
}

func (l Linker) buffer() typeshape.Buffer {
	if l.HTML {
		return html.NewSeq()
	}
	return new(typeshape.Seq)
}

func (l Linker) full(ref *typeref.Ref, buf typeshape.Buffer) {
	for _, a := range ref.Annotations {
		buf.Append(l.classLink(a.Name, "@"+a.SimpleName(), ""))
		buf.Append(typeshape.Str(" "))
	}
	switch ref.Kind {
	case typeref.KindPrimitive:
		buf.Append(typeshape.Str(ref.Name))
	case typeref.KindWildcard:
		bl := l
		bl.Flags.IsTypeBound = true
		buf.Append(typeshape.Str("?"))
		bl.list(buf, " extends ", ", ", ref.Bounds)
		bl.list(buf, " super ", ", ", ref.Super)
	case typeref.KindVar:
		if !l.Flags.ExcludeParamLinks && len(ref.Owner) > 0 {
			buf.Append(l.classLink(ref.Owner, ref.Name, "type-var"))
		} else {
			buf.Append(typeshape.Str(ref.Name))
		}
		if !l.Flags.ExcludeTypeBounds {
			bl := l
			bl.Flags.IsTypeBound = true
			bl.Flags.ExcludeTypeBounds = true
			bl.list(buf, " extends ", " & ", ref.Bounds)
		}
	case typeref.KindClass:
		if l.Flags.IsTypeBound && l.Flags.ExcludeBoundLinks {
			buf.Append(typeshape.Str(ref.SimpleName()))
			l.params(ref, buf)
		} else if shape := l.Shape(ref); len(shape) > 0 {
			typeshape.Render(shape, l.TypeArgumentsOf(ref), nil, l.At(ref), buf)
		} else {
			buf.Append(l.classLink(ref.Name, ref.SimpleName(), ""))
			if !l.Flags.ExcludeParamLinks {
				l.params(ref, buf)
			}
		}
	}
	dims := ref.Dims
	if ref.VarArg && dims > 0 {
		dims--
	}
	for i := 0; i < dims; i++ {
		buf.Append(typeshape.Str("[]"))
	}
	if ref.VarArg {
		buf.Append(typeshape.Str("..."))
	}
}

func (l Linker) list(buf typeshape.Buffer, intro, sep string, refs []*typeref.Ref) {
	for i, r := range refs {
		if i == 0 {
			buf.Append(typeshape.Str(intro))
		} else {
			buf.Append(typeshape.Str(sep))
		}
		buf.Append(l.RenderFullType(r))
	}
}

func (l Linker) params(ref *typeref.Ref, buf typeshape.Buffer) {
	if len(ref.Args) == 0 {
		return
	}
	buf.Append(typeshape.Str("<"))
	for i, a := range ref.Args {
		if i > 0 {
			buf.Append(typeshape.Str(","))
		}
		buf.Append(l.RenderFullType(a))
	}
	buf.Append(typeshape.Str(">"))
}

func (l Linker) classLink(qname, label, class string) typeshape.Content {
	if !l.HTML {
		return typeshape.Str(label)
	}
	lnk := html.Link{
		Title: qname,
		Class: class,
		Label: html.Escaper{Cnt: typeshape.Str(label)},
	}
	if l.Href != nil {
		lnk.Href = l.Href(qname)
	}
	return lnk
}
