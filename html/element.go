package html

import (
	"io"
	"strings"

	"github.com/fractalqb/typeshape"
)

type attr struct{ name, value string }

func startTag(name string, attrs ...attr) typeshape.Data {
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(name)
	for _, a := range attrs {
		if len(a.value) == 0 {
			continue
		}
		sb.WriteByte(' ')
		sb.WriteString(a.name)
		sb.WriteString(`="`)
		sb.WriteString(Esc(a.value))
		sb.WriteByte('"')
	}
	sb.WriteByte('>')
	return typeshape.Data(sb.String())
}

func endTag(name string) typeshape.Data {
	return typeshape.Data("</" + name + ">")
}

// Span wraps content into a HTML <span></span> element
type Span struct {
	ID      string
	Class   string
	Wrapped typeshape.Content
}

func NewSpan(around typeshape.Content, spanId string, spanClass string) *Span {
	return &Span{ID: spanId, Class: spanClass, Wrapped: around}
}

func (s *Span) Emit(wr io.Writer) (n int) {
	n = startTag("span", attr{"id", s.ID}, attr{"class", s.Class}).Emit(wr)
	n += s.Wrapped.Emit(wr)
	return n + endTag("span").Emit(wr)
}

// Link is an <a> element. Without Href only the label is emitted,
// wrapped into a span if Class is set.
type Link struct {
	Href  string
	Title string
	Class string
	Label typeshape.Content
}

func (l Link) Emit(wr io.Writer) (n int) {
	if len(l.Href) == 0 {
		if len(l.Class) == 0 {
			return l.Label.Emit(wr)
		}
		return NewSpan(l.Label, "", l.Class).Emit(wr)
	}
	n = startTag("a",
		attr{"href", l.Href},
		attr{"class", l.Class},
		attr{"title", l.Title},
	).Emit(wr)
	n += l.Label.Emit(wr)
	return n + endTag("a").Emit(wr)
}
