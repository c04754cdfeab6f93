// Shape templates for rendering generic types – nothing more!
// Copyright (C) 2020 Marcus Perlick
package typeshape

import (
	"strconv"
	"strings"
)

// MaxIndexDigits limits type argument and placeholder indices to 3 decimal
// digits. Generic types never have more than 255 type parameters.
const MaxIndexDigits = 3

var bracketNorm = strings.NewReplacer("[", "<", "]", ">")

// Tokenize parses a shape template into its token sequence. An empty
// template or "" yields no tokens, meaning there is no custom shape.
//
// Tokenize never fails. Incomplete directives are dropped and scanning
// continues with literal text so that a broken template still renders
// something recognizable.
func Tokenize(template string) []Token {
	if len(template) == 0 || template == `""` {
		return nil
	}
	template = bracketNorm.Replace(template)
	if len(template) >= 2 && template[0] == '"' && template[len(template)-1] == '"' {
		template = template[1 : len(template)-1]
	}
	scn := scanner{tmpl: template}
	var res []Token
	for {
		if lit := scn.literal(); len(lit) > 0 {
			res = append(res, Literal{Text: lit})
		}
		if scn.atEnd() {
			break
		}
		scn.pos++ // '%'
		if tok := scn.directive(); tok != nil {
			res = append(res, tok)
		}
	}
	return res
}

// MustShape tokenizes a template and panics if it has no tokens.
func MustShape(template string) []Token {
	res := Tokenize(template)
	if len(res) == 0 {
		panic("typeshape: empty shape template " + strconv.Quote(template))
	}
	return res
}

type scanner struct {
	tmpl string
	pos  int
}

func (s *scanner) atEnd() bool { return s.pos >= len(s.tmpl) }

func (s *scanner) peek() byte { return s.tmpl[s.pos] }

// literal returns the longest run of text up to the next '%'.
func (s *scanner) literal() string {
	bgn := s.pos
	if tok := strings.IndexByte(s.tmpl[bgn:], '%'); tok < 0 {
		s.pos = len(s.tmpl)
	} else {
		s.pos += tok
	}
	return s.tmpl[bgn:s.pos]
}

// index reads at most MaxIndexDigits decimal digits. ok is false if there
// is no digit at the current position.
func (s *scanner) index() (idx int, ok bool) {
	bgn := s.pos
	for !s.atEnd() && isDigit(s.peek()) && s.pos-bgn < MaxIndexDigits {
		s.pos++
	}
	if s.pos == bgn {
		return 0, false
	}
	idx, _ = strconv.Atoi(s.tmpl[bgn:s.pos])
	return idx, true
}

// directive parses the directive following a '%'. It returns nil if
// nothing could be parsed.
func (s *scanner) directive() Token {
	if s.atEnd() {
		return nil
	}
	switch c := s.peek(); {
	case c == '.':
		bgn := s.pos + 1
		s.pos = bgn
		for !s.atEnd() && s.peek() != '.' {
			s.pos++
		}
		if s.pos == bgn {
			return nil
		}
		label := s.tmpl[bgn:s.pos]
		if !s.atEnd() {
			s.pos++
		}
		return ClassLink{Label: label}
	case c == '^':
		s.pos++
		if idx, ok := s.index(); ok {
			return TypePlaceholder{Index: idx}
		}
	case c == '(':
		if s.pos+1 >= len(s.tmpl) || !isDigit(s.tmpl[s.pos+1]) {
			// no constructor index, the '(' stays literal text
			return nil
		}
		s.pos++
		return s.application()
	case c == '\'':
		s.pos++
		bgn := s.pos
		for !s.atEnd() && s.peek() != '\'' {
			s.pos++
		}
		txt := s.tmpl[bgn:s.pos]
		if !s.atEnd() {
			s.pos++
		}
		if len(txt) > 0 {
			return Literal{Text: txt}
		}
	case isDigit(c):
		idx, _ := s.index()
		return TypeArgument{Index: idx}
	}
	return nil
}

// application parses "N,sub,sub...)" after the opening parenthesis. An
// application that is not closed before the end is dropped.
func (s *scanner) application() Token {
	ctor, _ := s.index()
	sub := []Token{TypeArgument{Index: ctor}}
	for !s.atEnd() && s.peek() != ')' {
		if s.peek() != ',' {
			// garbage after a sub-directive
			s.pos++
			continue
		}
		s.pos++
		if tok := s.subDirective(); tok != nil {
			sub = append(sub, tok)
		}
	}
	if s.atEnd() {
		return nil
	}
	s.pos++ // ')'
	return Application{Sub: sub}
}

// subDirective parses one argument of an application. The '%' that
// introduces a directive is optional here and a bare word like "int" is
// taken literally.
func (s *scanner) subDirective() Token {
	if s.atEnd() {
		return nil
	}
	if s.peek() == '%' {
		s.pos++
		if s.atEnd() {
			return nil
		}
	}
	if !isWordStart(s.peek()) {
		return s.directive()
	}
	bgn := s.pos
	for !s.atEnd() && isWordByte(s.peek()) {
		s.pos++
	}
	return Literal{Text: s.tmpl[bgn:s.pos]}
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isWordStart(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_' || c == '$'
}

func isWordByte(c byte) bool {
	return isWordStart(c) || isDigit(c) || c == '.'
}
