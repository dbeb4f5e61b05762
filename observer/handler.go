package observer

import (
	"context"
	"reflect"
)

// Func gives a plain function a stable identity. Two calls to NewFunc with
// the same function yield distinct handlers; register and remove the same
// *Func value.
type Func[T any] struct {
	fn func(ctx context.Context, owner *T) error
}

// NewFunc wraps fn.
func NewFunc[T any](fn func(ctx context.Context, owner *T) error) *Func[T] {
	return &Func[T]{fn: fn}
}

// Call invokes the wrapped function. A nil *Func or nil function is a no-op.
func (f *Func[T]) Call(ctx context.Context, owner *T) error {
	if f == nil || f.fn == nil {
		return nil
	}
	return f.fn(ctx, owner)
}

// identifiable reports whether handler can be stored and compared by
// identity. nil handlers and interface values holding incomparable dynamic
// values (a bare func, a slice) are refused rather than allowed to panic
// inside a map operation, as are values that do not equal themselves.
func identifiable[H comparable](handler H) bool {
	v := reflect.ValueOf(any(handler))
	if !v.IsValid() {
		return false
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Chan, reflect.Map, reflect.Func, reflect.Slice, reflect.Interface, reflect.UnsafePointer:
		if v.IsNil() {
			return false
		}
	}
	if !v.Comparable() {
		return false
	}
	// NaN never equals itself, so it could be stored but never found again.
	return handler == handler
}
