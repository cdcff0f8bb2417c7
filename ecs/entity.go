package ecs

// EntityId packs an archetype ID (upper 32 bits) and a row index within that
// archetype (lower 32 bits). Archetype IDs start at 1, so the zero EntityId
// never refers to a live entity.
type EntityId uint64

// NewEntityId builds an EntityId from its archetype and row.
func NewEntityId(archetypeId uint32, index uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(index))
}

// ArchetypeId extracts the archetype ID from the entity ID
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Index extracts the row index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e)
}
