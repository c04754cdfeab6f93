package typeref

import (
	"fmt"
	"strings"
)

var primitives = map[string]bool{
	"boolean": true, "byte": true, "char": true, "short": true,
	"int": true, "long": true, "float": true, "double": true, "void": true,
}

// Parser reads type expressions like Map<String,List<? extends T>>[].
// Type annotations without arguments may precede any type, as in
// List<@NonNull String>.
type Parser struct {
	// Vars maps names to the type variables they denote.
	Vars map[string]*Ref
	// Imports maps simple class names to qualified names.
	Imports map[string]string
}

// Parse reads a type expression where every name that is not a primitive
// denotes a class.
func Parse(expr string) (*Ref, error) {
	var p Parser
	return p.Parse(expr)
}

func MustParse(expr string) *Ref {
	res, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return res
}

func (p *Parser) Parse(expr string) (*Ref, error) {
	scn := exprScanner{src: expr}
	res, err := p.typ(&scn)
	if err != nil {
		return nil, err
	}
	if scn.skipWS(); !scn.atEnd() {
		return nil, scn.errorf("unexpected '%c'", scn.peek())
	}
	return res, nil
}

type exprScanner struct {
	src string
	pos int
}

func (s *exprScanner) atEnd() bool { return s.pos >= len(s.src) }

func (s *exprScanner) peek() byte { return s.src[s.pos] }

func (s *exprScanner) skipWS() {
	for !s.atEnd() && (s.peek() == ' ' || s.peek() == '\t') {
		s.pos++
	}
}

// eat skips whitespace and consumes tok if it comes next.
func (s *exprScanner) eat(tok string) bool {
	s.skipWS()
	if strings.HasPrefix(s.src[s.pos:], tok) {
		s.pos += len(tok)
		return true
	}
	return false
}

func (s *exprScanner) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("typeref: %s at %d in '%s'",
		fmt.Sprintf(format, args...),
		s.pos,
		s.src)
}

func (s *exprScanner) name() string {
	s.skipWS()
	bgn := s.pos
	for !s.atEnd() {
		c := s.peek()
		if c == '_' || c == '$' || c == '.' && s.pos > bgn ||
			'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' ||
			'0' <= c && c <= '9' && s.pos > bgn {
			s.pos++
		} else {
			break
		}
	}
	// "List..." is a vararg, not a name ending in dots
	for s.pos > bgn && s.src[s.pos-1] == '.' {
		s.pos--
	}
	return s.src[bgn:s.pos]
}

func (p *Parser) typ(s *exprScanner) (res *Ref, err error) {
	var anns []*Ref
	for s.eat("@") {
		nm := s.name()
		if len(nm) == 0 {
			return nil, s.errorf("missing annotation name")
		}
		if qn, ok := p.Imports[nm]; ok {
			nm = qn
		}
		anns = append(anns, Class(nm))
	}
	if s.eat("?") {
		res, err = p.wildcard(s)
	} else {
		res, err = p.named(s)
	}
	if err != nil {
		return nil, err
	}
	for s.eat("[") {
		if !s.eat("]") {
			return nil, s.errorf("missing ']'")
		}
		res.Dims++
	}
	if s.eat("...") {
		res.Dims++
		res.VarArg = true
	}
	if len(anns) > 0 {
		res = res.Annotated(anns...)
	}
	return res, nil
}

func (p *Parser) wildcard(s *exprScanner) (*Ref, error) {
	var ext, sup []*Ref
	s.skipWS()
	save := s.pos
	switch s.name() {
	case "extends":
		bounds, err := p.bounds(s)
		if err != nil {
			return nil, err
		}
		ext = bounds
	case "super":
		bounds, err := p.bounds(s)
		if err != nil {
			return nil, err
		}
		sup = bounds
	default:
		s.pos = save
	}
	return Wildcard(ext, sup), nil
}

func (p *Parser) bounds(s *exprScanner) (res []*Ref, err error) {
	for {
		b, err := p.typ(s)
		if err != nil {
			return nil, err
		}
		res = append(res, b)
		if !s.eat("&") {
			return res, nil
		}
	}
}

func (p *Parser) named(s *exprScanner) (*Ref, error) {
	nm := s.name()
	if len(nm) == 0 {
		if s.atEnd() {
			return nil, s.errorf("missing type")
		}
		return nil, s.errorf("unexpected '%c'", s.peek())
	}
	switch {
	case primitives[nm]:
		return Primitive(nm), nil
	case p.Vars[nm] != nil:
		return p.Vars[nm].clone(), nil
	}
	if qn, ok := p.Imports[nm]; ok {
		nm = qn
	}
	res := Class(nm)
	if !s.eat("<") {
		return res, nil
	}
	if s.eat(">") {
		return res, nil
	}
	for {
		arg, err := p.typ(s)
		if err != nil {
			return nil, err
		}
		res.Args = append(res.Args, arg)
		if s.eat(">") {
			return res, nil
		}
		if !s.eat(",") {
			if s.atEnd() {
				return nil, s.errorf("missing '>'")
			}
			return nil, s.errorf("unexpected '%c'", s.peek())
		}
	}
}
