package core

// Entity is a unique identifier for an entity
// Zero is never allocated and marks an absent reference
type Entity uint64

// NoEntity is the null entity reference
const NoEntity Entity = 0

// Valid reports whether the reference points at an allocated entity id
func (e Entity) Valid() bool {
	return e != NoEntity
}
