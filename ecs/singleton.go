package ecs

import "reflect"

// Singleton gives systems access to a single value of T that is not attached
// to any entity: world configuration, input state, the current game.
type Singleton[T any] struct {
	storage *Storage
}

// NewSingleton returns an accessor for T, creating the value in storage when
// it does not exist yet. The first initializer, if any, seeds a new value;
// an existing value is left alone.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	t := reflect.TypeFor[T]()
	if storage.singleton(t) == nil {
		value := new(T)
		if len(initializer) > 0 {
			*value = initializer[0]
		}
		storage.singletons[t] = value
	}
	return &Singleton[T]{storage: storage}
}

// Init binds the accessor to storage. The Scheduler calls it for Singleton
// fields of registered systems.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
}

// Get returns the stored value, or nil when it has not been created.
func (s *Singleton[T]) Get() *T {
	if s.storage == nil {
		return nil
	}
	value, _ := s.storage.singleton(reflect.TypeFor[T]()).(*T)
	return value
}

// Exists reports whether the value has been created.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}
