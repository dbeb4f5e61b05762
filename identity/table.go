package identity

import (
	"runtime"
	"sync"
	"weak"

	"github.com/google/uuid"
)

// Table is a reference-keyed Allocator. Entries are dropped automatically
// after their referent is garbage collected; a reference allocated again
// after that point would be a new object and receives a new key.
//
// Table is safe for concurrent use.
type Table[T any] struct {
	keys map[weak.Pointer[T]]Key
	mu   sync.Mutex
}

// NewTable creates an empty Table.
func NewTable[T any]() *Table[T] {
	return &Table[T]{
		keys: make(map[weak.Pointer[T]]Key),
	}
}

func (t *Table[T]) KeyFor(ref *T) Key {
	if ref == nil {
		return None
	}

	wp := weak.Make(ref)

	t.mu.Lock()
	defer t.mu.Unlock()

	if key, ok := t.keys[wp]; ok {
		return key
	}

	key := Key(uuid.Must(uuid.NewV7()).String())
	t.keys[wp] = key
	runtime.AddCleanup(ref, t.release, wp)
	return key
}

// Lookup returns the key previously minted for ref without allocating one.
func (t *Table[T]) Lookup(ref *T) (Key, bool) {
	if ref == nil {
		return None, true
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	key, ok := t.keys[weak.Make(ref)]
	return key, ok
}

// Len reports the number of live references holding a key.
func (t *Table[T]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.keys)
}

func (t *Table[T]) release(wp weak.Pointer[T]) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.keys, wp)
}
