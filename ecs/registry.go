package ecs

import (
	"reflect"
)

// ComponentRegistry knows how to build a column for each registered
// component type. Each Storage has its own registry.
type ComponentRegistry struct {
	columns map[reflect.Type]func() column
}

// NewComponentRegistry creates an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		columns: make(map[reflect.Type]func() column),
	}
}

// RegisterComponent registers T with r. Every component type must be
// registered before an entity carrying it is spawned; singletons need no
// registration.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.columns[reflect.TypeFor[T]()] = func() column {
		return &typedColumn[T]{}
	}
}

// Registered reports whether t has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.columns[t]
	return ok
}

func (r *ComponentRegistry) newColumn(t reflect.Type) column {
	factory := r.columns[t]
	if factory == nil {
		panic("component type " + t.String() + " not registered")
	}
	return factory()
}

// column is the type-erased storage for one component type of one
// archetype. Rows are stable: deleting a row frees its slot for reuse
// without moving any other row.
type column interface {
	push(item any) int
	remove(row int)
	get(row int) any
	live(row int) bool
	len() int
}

type typedColumn[T any] struct {
	items []T
	alive []bool
	free  []int
}

func (c *typedColumn[T]) push(item any) int {
	var value T
	switch v := item.(type) {
	case T:
		value = v
	case *T:
		value = *v
	default:
		panic("component " + reflect.TypeOf(item).String() + " pushed into column of " + reflect.TypeFor[T]().String())
	}

	if n := len(c.free); n > 0 {
		row := c.free[n-1]
		c.free = c.free[:n-1]
		c.items[row] = value
		c.alive[row] = true
		return row
	}

	c.items = append(c.items, value)
	c.alive = append(c.alive, true)
	return len(c.items) - 1
}

func (c *typedColumn[T]) remove(row int) {
	if !c.live(row) {
		return
	}
	var zero T
	c.items[row] = zero
	c.alive[row] = false
	c.free = append(c.free, row)
}

// get returns a *T into the column, or nil for a dead row.
func (c *typedColumn[T]) get(row int) any {
	if !c.live(row) {
		return nil
	}
	return &c.items[row]
}

func (c *typedColumn[T]) live(row int) bool {
	return row >= 0 && row < len(c.alive) && c.alive[row]
}

// len is the number of rows ever allocated, live or not.
func (c *typedColumn[T]) len() int {
	return len(c.items)
}
