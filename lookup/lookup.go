// Shape templates for rendering generic types – nothing more!
// Copyright (C) 2020 Marcus Perlick
package lookup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/fractalqb/typeshape"
)

// ShapeTag is the documentation tag that declares a type's shape template.
const ShapeTag = "dfu.shape"

// Named is a type with a qualified name that is used as key into the
// override table. Only class types are looked up there, type variables
// and primitives never match an override.
type Named interface {
	QualifiedName() string
	IsClass() bool
}

// Tagged is a type that declares documentation tags.
type Tagged interface {
	Tags(name string) []string
}

// Table finds shape templates. Explicitly set templates override the
// template a type declares with its ShapeTag. A Table can be shared by
// concurrent renders.
type Table struct {
	mu     sync.RWMutex
	shapes map[string]string
	tokens map[string][]typeshape.Token
}

func NewTable() *Table {
	return &Table{
		shapes: make(map[string]string),
		tokens: make(map[string][]typeshape.Token),
	}
}

// Set overrides the template for the type with the qualified name qname.
// An empty template removes the type's custom shape even if it declares
// one.
func (t *Table) Set(qname, template string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.shapes[qname] = template
	delete(t.tokens, qname)
}

// Replace swaps in the overrides of src. Renders that are running keep
// the shapes they already looked up.
func (t *Table) Replace(src *Table) {
	src.mu.RLock()
	shapes := make(map[string]string, len(src.shapes))
	for nm, tmpl := range src.shapes {
		shapes[nm] = tmpl
	}
	src.mu.RUnlock()
	t.mu.Lock()
	defer t.mu.Unlock()
	t.shapes = shapes
	t.tokens = make(map[string][]typeshape.Token)
}

// Names returns the sorted names of all overridden types.
func (t *Table) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	res := make([]string, 0, len(t.shapes))
	for nm := range t.shapes {
		res = append(res, nm)
	}
	sort.Strings(res)
	return res
}

func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.shapes)
}

// LookupTemplate checks the override table first, then the first
// ShapeTag declared on ty. A nil Table only knows declared tags.
func (t *Table) LookupTemplate(ty typeshape.Type) (string, bool) {
	if key, ok := overrideKey(ty); ok && t != nil {
		t.mu.RLock()
		tmpl, ok := t.shapes[key]
		t.mu.RUnlock()
		if ok {
			return tmpl, true
		}
	}
	return declared(ty)
}

// Shape returns the tokenized template of ty. Templates from the override
// table are tokenized only once.
func (t *Table) Shape(ty typeshape.Type) []typeshape.Token {
	if key, ok := overrideKey(ty); ok && t != nil {
		t.mu.RLock()
		toks, cached := t.tokens[key]
		t.mu.RUnlock()
		if cached {
			return toks
		}
		if toks, ok := t.tokenize(key); ok {
			return toks
		}
	}
	if tmpl, ok := declared(ty); ok {
		return typeshape.Tokenize(tmpl)
	}
	return nil
}

// tokenize caches the tokens of the override of key. Reading the template
// and storing its tokens happen under the same lock as Set and Replace.
func (t *Table) tokenize(key string) ([]typeshape.Token, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if toks, ok := t.tokens[key]; ok {
		return toks, true
	}
	tmpl, ok := t.shapes[key]
	if !ok {
		return nil, false
	}
	toks := typeshape.Tokenize(tmpl)
	t.tokens[key] = toks
	return toks, true
}

func overrideKey(ty typeshape.Type) (string, bool) {
	if nm, ok := ty.(Named); ok && nm.IsClass() {
		return nm.QualifiedName(), true
	}
	return "", false
}

func declared(ty typeshape.Type) (string, bool) {
	if tg, ok := ty.(Tagged); ok {
		if tags := tg.Tags(ShapeTag); len(tags) > 0 {
			return tags[0], true
		}
	}
	return "", false
}

type tableFile struct {
	Shapes map[string]string `json:"shapes" yaml:"shapes"`
}

// Load reads an override table from JSON or YAML:
//
//   shapes:
//     com.mojang.datafixers.kinds.App: "%(0,1)"
//
// source is only used in error messages.
func Load(rd io.Reader, source string) (*Table, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("lookup: read %s: %w", source, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("lookup: file %s is empty", source)
	}
	var doc tableFile
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = tableFile{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("lookup: parse %s: invalid JSON or YAML: %w", source, err)
		}
	}
	res := NewTable()
	for nm, tmpl := range doc.Shapes {
		if len(nm) == 0 {
			return nil, fmt.Errorf("lookup: %s: shape for empty type name", source)
		}
		res.shapes[nm] = tmpl
	}
	return res, nil
}

func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("lookup: %w", err)
	}
	defer f.Close()
	return Load(f, path)
}
