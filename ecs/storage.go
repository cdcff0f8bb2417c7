package ecs

import (
	"reflect"

	"github.com/kamstrup/intmap"
)

// Storage owns every entity and singleton of one world.
type Storage struct {
	registry    *ComponentRegistry
	archetypes  []*Archetype
	byId        *intmap.Map[uint32, *Archetype]
	bySignature map[string]*Archetype
	singletons  map[reflect.Type]any
}

// NewStorage creates an empty storage backed by registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:    registry,
		byId:        intmap.New[uint32, *Archetype](16),
		bySignature: make(map[string]*Archetype),
		singletons:  make(map[reflect.Type]any),
	}
}

// Spawn creates an entity from components, given by value or by pointer.
// It panics when a component type is not registered.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types := make([]reflect.Type, len(components))
	for i, comp := range components {
		types[i] = componentType(comp)
	}

	archetype := s.archetypeFor(types)
	return NewEntityId(archetype.id, archetype.spawn(components))
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	types, key := signature(types)
	if a, ok := s.bySignature[key]; ok {
		return a
	}

	a := newArchetype(uint32(len(s.archetypes)+1), types, s.registry)
	s.archetypes = append(s.archetypes, a)
	s.byId.Put(a.id, a)
	s.bySignature[key] = a
	return a
}

// Delete removes the entity. It reports false when id is not live.
func (s *Storage) Delete(id EntityId) bool {
	a, ok := s.byId.Get(id.ArchetypeId())
	if !ok {
		return false
	}
	return a.remove(id.Index())
}

// Alive reports whether id refers to a live entity.
func (s *Storage) Alive(id EntityId) bool {
	a, ok := s.byId.Get(id.ArchetypeId())
	if !ok || len(a.columns) == 0 {
		return false
	}
	return a.columns[0].live(int(id.Index()))
}

// GetComponent returns a pointer to the entity's component of type t, or nil.
func (s *Storage) GetComponent(id EntityId, t reflect.Type) any {
	a, ok := s.byId.Get(id.ArchetypeId())
	if !ok {
		return nil
	}
	return a.get(id.Index(), t)
}

// HasComponent reports whether the entity's archetype carries t.
func (s *Storage) HasComponent(id EntityId, t reflect.Type) bool {
	a, ok := s.byId.Get(id.ArchetypeId())
	return ok && a.HasComponent(t)
}

// Archetypes returns every archetype created so far, oldest first.
func (s *Storage) Archetypes() []*Archetype {
	return append([]*Archetype(nil), s.archetypes...)
}

// Len is the number of live entities.
func (s *Storage) Len() int {
	n := 0
	for _, a := range s.archetypes {
		n += a.count
	}
	return n
}

// singleton returns the stored *T for t, or nil.
func (s *Storage) singleton(t reflect.Type) any {
	return s.singletons[t]
}

// ReadComponent returns the entity's T, or nil if it has none.
func ReadComponent[T any](s *Storage, id EntityId) *T {
	comp, _ := s.GetComponent(id, reflect.TypeFor[T]()).(*T)
	return comp
}
