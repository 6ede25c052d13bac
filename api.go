package stockroom

// Storage holds exactly one component value and knows the identifier of the
// component type it contains.
type Storage[ID comparable] interface {
	ID() ID
}

// Ident is anything that can report a component identifier without holding a
// value, typically an accessor or schema member handle.
type Ident[ID comparable] interface {
	ID() ID
}

// Accessor resolves a storage into a concrete component type. View returns
// false when the storage holds a different identifier or a different dynamic
// type; a failed view is an absent result, never a fault.
type Accessor[C any, ID comparable, S Storage[ID]] interface {
	Ident[ID]
	View(S) (*C, bool)
}

// Predicate is a side-effect-free, repeatable boolean test over an entity.
// Once registered with a world it is treated as immutable: results already
// baked into the candidate list are never re-tested.
type Predicate[ID comparable, S Storage[ID]] func(*Entity[ID, S]) bool

// Encoding abstracts the wire format used by the serialization adapter.
type Encoding interface {
	Marshal(any) ([]byte, error)
	Unmarshal([]byte, any) error
}

// StorageCodec converts storages to and from typed wire values.
type StorageCodec[ID comparable, S Storage[ID]] interface {
	Encode(S) (TypedValue, error)
	Decode(TypedValue, Encoding) (S, error)
}

type Cache[T any] interface {
	GetIndex(string) (int, bool)
	GetItem(int) *T
	GetItem32(uint32) *T
	Register(string, T) (int, error)
}
