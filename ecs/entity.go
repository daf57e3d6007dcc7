package ecs

import "strconv"

// Entity packs an id (low 32 bits) and a generation (high 32 bits). The zero
// value is never handed out and means "no entity".
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

// NoEntity is the invalid handle.
const NoEntity Entity = 0

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e.id()), 10) + "v" + strconv.FormatUint(uint64(e.generation()), 10)
}

func (e Entity) Valid() bool {
	return e.id() > 0
}
