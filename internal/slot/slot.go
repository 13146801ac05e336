// Package slot composes pages out of named regions whose content can be
// overridden independently.
//
// A page declares a Template: its fixed vocabulary of slot names plus the
// default content of each slot. Callers pass a Map of overrides. A key that
// is present in the Map always wins, even when its content is empty, so an
// explicit empty override is how a caller suppresses a default.
package slot

import (
	"fmt"
	"slices"
)

// Name identifies a slot within a page vocabulary.
type Name string

// Map holds override content keyed by slot name.
type Map[C any] map[Name]C

// Def declares one slot and its default content.
type Def[C any] struct {
	Name    Name
	Default func() C
}

// Template is a fixed slot vocabulary with declared defaults.
type Template[C any] struct {
	names    []Name
	defaults map[Name]func() C
}

// NewTemplate builds a template from slot declarations. Duplicate names panic.
// A nil Default renders the zero value of C.
func NewTemplate[C any](defs ...Def[C]) *Template[C] {
	t := &Template[C]{
		names:    make([]Name, 0, len(defs)),
		defaults: make(map[Name]func() C, len(defs)),
	}
	for _, d := range defs {
		if _, dup := t.defaults[d.Name]; dup {
			panic(fmt.Sprintf("slot: duplicate slot %q", d.Name))
		}
		def := d.Default
		if def == nil {
			def = func() C {
				var zero C
				return zero
			}
		}
		t.names = append(t.names, d.Name)
		t.defaults[d.Name] = def
	}
	return t
}

// Render returns the override for name when m contains the key, otherwise
// the slot default. Content is never inspected. Rendering a name outside the
// vocabulary is a programming error and panics.
func (t *Template[C]) Render(m Map[C], name Name) C {
	if !t.Has(name) {
		panic(fmt.Sprintf("slot: unknown slot %q", name))
	}
	if content, overridden := m[name]; overridden {
		return content
	}
	return t.defaults[name]()
}

// Names returns the vocabulary in declaration order.
func (t *Template[C]) Names() []Name {
	return slices.Clone(t.names)
}

// Has reports whether name is part of the vocabulary.
func (t *Template[C]) Has(name Name) bool {
	_, ok := t.defaults[name]
	return ok
}
