// Package identity maps owner references to stable keys usable as map keys.
//
// An Allocator is total over every *T: nil maps to the reserved None key,
// and every live reference maps to exactly one key for as long as it is
// reachable. Table is the default Allocator; it mints UUIDv7 keys and holds
// references only through weak pointers, so allocating a key never extends
// the lifetime of the owner.
package identity

// Key identifies one owner reference.
type Key string

// None is the reserved key for "no owner". It is the nil UUID, which no
// minted key can equal.
const None Key = "00000000-0000-0000-0000-000000000000"

// Allocator returns the stable key for a reference. Implementations must
// return None for nil, the same key for the same reference, and distinct
// keys for distinct live references.
type Allocator[T any] interface {
	KeyFor(ref *T) Key
}

// Finder is implemented by allocators that can report an existing key
// without minting one.
type Finder[T any] interface {
	Lookup(ref *T) (Key, bool)
}

// AllocatorFunc adapts a function to the Allocator interface. The function
// is only consulted for non-nil references.
type AllocatorFunc[T any] func(ref *T) Key

func (f AllocatorFunc[T]) KeyFor(ref *T) Key {
	if ref == nil {
		return None
	}
	return f(ref)
}
