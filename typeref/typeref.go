// Shape templates for rendering generic types – nothing more!
// Copyright (C) 2020 Marcus Perlick
package typeref

import (
	"sort"
	"strings"
)

type Kind int

const (
	KindClass Kind = iota
	KindPrimitive
	KindVar
	KindWildcard
)

// Ref is a reference to a type as it appears in a declaration, e.g. a
// parameterized class, a type variable or a wildcard. A Ref is not changed
// after construction. Use the constructors Class, Primitive, Var and
// Wildcard and the With… methods that return modified copies.
type Ref struct {
	Kind Kind
	// Name is the qualified name of a class and the plain name of
	// primitives and type variables.
	Name string
	Args []*Ref
	// Bounds are the upper bounds of a type variable or the extends
	// bounds of a wildcard.
	Bounds []*Ref
	// Super are the super bounds of a wildcard.
	Super []*Ref
	// Owner is the qualified name of the class that declares a type
	// variable. Method type variables have no owner.
	Owner  string
	Dims   int
	VarArg bool
	// Annotations are the type annotations written in front of the type,
	// e.g. @NonNull String.
	Annotations []*Ref
	tags        map[string][]string
}

func Class(qualifiedName string, args ...*Ref) *Ref {
	return &Ref{Kind: KindClass, Name: qualifiedName, Args: args}
}

// Primitive creates a primitive type like int. Primitives also serve as
// plain named arguments that are neither classes nor variables.
func Primitive(name string) *Ref {
	return &Ref{Kind: KindPrimitive, Name: name}
}

func Var(name, owner string, bounds ...*Ref) *Ref {
	return &Ref{Kind: KindVar, Name: name, Owner: owner, Bounds: bounds}
}

func Wildcard(extends, super []*Ref) *Ref {
	return &Ref{Kind: KindWildcard, Name: "?", Bounds: extends, Super: super}
}

func (r *Ref) clone() *Ref {
	res := *r
	return &res
}

// WithArgs returns a copy of r with type arguments args.
func (r *Ref) WithArgs(args ...*Ref) *Ref {
	res := r.clone()
	res.Args = args
	return res
}

// Array returns a copy of r with dims array dimensions.
func (r *Ref) Array(dims int) *Ref {
	res := r.clone()
	res.Dims = dims
	return res
}

// Variadic returns a copy of r as the type of a variable arity parameter.
// r must have at least one dimension.
func (r *Ref) Variadic() *Ref {
	res := r.clone()
	res.VarArg = true
	if res.Dims == 0 {
		res.Dims = 1
	}
	return res
}

// Annotated returns a copy of r with the type annotations anns added.
func (r *Ref) Annotated(anns ...*Ref) *Ref {
	res := r.clone()
	res.Annotations = append(r.Annotations[:len(r.Annotations):len(r.Annotations)], anns...)
	return res
}

// WithTag returns a copy of r with a declared documentation tag added.
func (r *Ref) WithTag(name, text string) *Ref {
	res := r.clone()
	res.tags = make(map[string][]string, len(r.tags)+1)
	for k, v := range r.tags {
		res.tags[k] = v
	}
	res.tags[name] = append(res.tags[name][:len(res.tags[name]):len(res.tags[name])], text)
	return res
}

// Tags returns the texts of all tags with name in declaration order.
func (r *Ref) Tags(name string) []string {
	return r.tags[name]
}

// TagNames returns the sorted names of all tags declared on r.
func (r *Ref) TagNames() []string {
	res := make([]string, 0, len(r.tags))
	for nm := range r.tags {
		res = append(res, nm)
	}
	sort.Strings(res)
	return res
}

func (r *Ref) QualifiedName() string { return r.Name }

func (r *Ref) IsClass() bool { return r.Kind == KindClass }

// SimpleName strips the package from a class name.
func (r *Ref) SimpleName() string {
	if r.Kind != KindClass {
		return r.Name
	}
	if dot := strings.LastIndexByte(r.Name, '.'); dot >= 0 {
		return r.Name[dot+1:]
	}
	return r.Name
}

// ElementType returns r with one array dimension less or nil if r is no
// array.
func (r *Ref) ElementType() *Ref {
	if r.Dims == 0 {
		return nil
	}
	res := r.clone()
	res.Dims--
	res.VarArg = false
	return res
}

// String returns r in source notation with qualified names, which makes
// it unique for the type.
func (r *Ref) String() string {
	var sb strings.Builder
	r.write(&sb)
	return sb.String()
}

func (r *Ref) write(sb *strings.Builder) {
	for _, a := range r.Annotations {
		sb.WriteByte('@')
		sb.WriteString(a.Name)
		sb.WriteByte(' ')
	}
	sb.WriteString(r.Name)
	switch r.Kind {
	case KindClass:
		writeList(sb, "<", ",", ">", r.Args)
	case KindWildcard:
		writeList(sb, " extends ", " & ", "", r.Bounds)
		writeList(sb, " super ", " & ", "", r.Super)
	}
	dims := r.Dims
	if r.VarArg {
		dims--
	}
	for i := 0; i < dims; i++ {
		sb.WriteString("[]")
	}
	if r.VarArg {
		sb.WriteString("...")
	}
}

func writeList(sb *strings.Builder, open, sep, close string, refs []*Ref) {
	if len(refs) == 0 {
		return
	}
	sb.WriteString(open)
	for i, a := range refs {
		if i > 0 {
			sb.WriteString(sep)
		}
		a.write(sb)
	}
	sb.WriteString(close)
}
