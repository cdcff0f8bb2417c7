package ecs

import (
	"iter"
	"reflect"
)

// Query iterates every entity carrying a set of components. T is a struct
// whose fields are pointers to component types, embedded or named, plus an
// optional EntityId field that receives the entity's ID:
//
//	ecs.Query[struct {
//		ecs.EntityId
//		*Position
//		*Velocity
//	}]
type Query[T any] struct {
	storage *Storage
	fields  []queryField
	idField int

	matched []*Archetype
	scanned int
}

type queryField struct {
	index int
	typ   reflect.Type
}

var entityIdType = reflect.TypeFor[EntityId]()

// NewQuery creates a query over storage. It panics when T is not a valid
// query struct.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage. The Scheduler calls it for Query fields
// of registered systems.
func (q *Query[T]) Init(storage *Storage) {
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Struct {
		panic("Query type parameter must be a struct")
	}

	q.storage = storage
	q.fields = q.fields[:0]
	q.idField = -1
	q.matched = nil
	q.scanned = 0

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		switch {
		case f.Type == entityIdType:
			q.idField = i
		case f.Type.Kind() == reflect.Pointer:
			q.fields = append(q.fields, queryField{index: i, typ: f.Type.Elem()})
		default:
			panic("Query struct field " + f.Name + " must be a component pointer or EntityId")
		}
	}
}

// refresh matches archetypes created since the last call.
func (q *Query[T]) refresh() {
	for _, a := range q.storage.archetypes[q.scanned:] {
		if q.matches(a) {
			q.matched = append(q.matched, a)
		}
	}
	q.scanned = len(q.storage.archetypes)
}

func (q *Query[T]) matches(a *Archetype) bool {
	for _, f := range q.fields {
		if !a.HasComponent(f.typ) {
			return false
		}
	}
	return true
}

// Iter yields each matching entity with its components. Structural changes
// made during iteration should go through Commands.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	if q.storage == nil {
		panic("Query.Iter() called before Query.Init()")
	}
	q.refresh()

	return func(yield func(EntityId, T) bool) {
		for _, a := range q.matched {
			for row := range a.rows() {
				id := NewEntityId(a.id, row)

				var item T
				v := reflect.ValueOf(&item).Elem()
				if q.idField >= 0 {
					v.Field(q.idField).SetUint(uint64(id))
				}
				for _, f := range q.fields {
					v.Field(f.index).Set(reflect.ValueOf(a.get(row, f.typ)))
				}

				if !yield(id, item) {
					return
				}
			}
		}
	}
}

// Values yields only the component structs.
func (q *Query[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range q.Iter() {
			if !yield(item) {
				return
			}
		}
	}
}

// Count is the number of matching entities.
func (q *Query[T]) Count() int {
	if q.storage == nil {
		return 0
	}
	q.refresh()

	n := 0
	for _, a := range q.matched {
		n += a.count
	}
	return n
}
