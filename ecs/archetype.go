package ecs

import (
	"iter"
	"reflect"
	"slices"
	"strings"
)

// Archetype holds every entity that carries exactly the same set of
// component types, one column per type.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []column
	count   int
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]column, len(types)),
	}
	for i, t := range types {
		a.columns[i] = registry.newColumn(t)
	}
	return a
}

// ID returns the archetype's identifier.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the archetype's component types, sorted by name.
func (a *Archetype) Types() []reflect.Type {
	return slices.Clone(a.types)
}

// Len is the number of live entities in the archetype.
func (a *Archetype) Len() int {
	return a.count
}

// HasComponent reports whether entities in this archetype carry t.
func (a *Archetype) HasComponent(t reflect.Type) bool {
	return a.columnOf(t) >= 0
}

func (a *Archetype) columnOf(t reflect.Type) int {
	for i, typ := range a.types {
		if typ == t {
			return i
		}
	}
	return -1
}

// spawn appends one entity. components must match a.types one to one.
func (a *Archetype) spawn(components []any) uint32 {
	row := -1
	for _, comp := range components {
		col := a.columnOf(componentType(comp))
		r := a.columns[col].push(comp)
		if row >= 0 && r != row {
			panic("ecs: archetype columns out of step")
		}
		row = r
	}
	a.count++
	return uint32(row)
}

func (a *Archetype) get(row uint32, t reflect.Type) any {
	col := a.columnOf(t)
	if col < 0 {
		return nil
	}
	return a.columns[col].get(int(row))
}

func (a *Archetype) remove(row uint32) bool {
	if len(a.columns) == 0 || !a.columns[0].live(int(row)) {
		return false
	}
	for _, c := range a.columns {
		c.remove(int(row))
	}
	a.count--
	return true
}

// rows yields the index of every live entity in spawn order, reused slots
// aside.
func (a *Archetype) rows() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		if len(a.columns) == 0 {
			return
		}
		first := a.columns[0]
		for row := 0; row < first.len(); row++ {
			if first.live(row) && !yield(uint32(row)) {
				return
			}
		}
	}
}

// componentType is the value type of a component passed by value or pointer.
func componentType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t == nil {
		panic("ecs: nil component")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
		panic("components cannot be pointers, maps, channels, or functions")
	}
	return t
}

// signature sorts types by name and returns the sorted slice and a key that
// identifies the set.
func signature(types []reflect.Type) ([]reflect.Type, string) {
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return strings.Compare(a.String(), b.String())
	})

	var key strings.Builder
	for i, t := range types {
		if i > 0 {
			key.WriteByte('|')
		}
		key.WriteString(t.PkgPath())
		key.WriteByte('.')
		key.WriteString(t.String())
	}
	return types, key.String()
}
