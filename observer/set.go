package observer

import (
	"slices"
	"weak"
)

// targetSet holds the handlers registered for one owner. The owner is kept
// through a weak pointer; the zero weak.Pointer stands for "no owner".
type targetSet[T any, H comparable] struct {
	owner    weak.Pointer[T]
	handlers []H
	index    map[H]struct{}
}

func newTargetSet[T any, H comparable](owner *T) *targetSet[T, H] {
	s := &targetSet[T, H]{index: make(map[H]struct{})}
	if owner != nil {
		s.owner = weak.Make(owner)
	}
	return s
}

// add reports whether handler was newly inserted.
func (s *targetSet[T, H]) add(handler H) bool {
	if _, exists := s.index[handler]; exists {
		return false
	}
	s.index[handler] = struct{}{}
	s.handlers = append(s.handlers, handler)
	return true
}

// remove reports whether handler was present.
func (s *targetSet[T, H]) remove(handler H) bool {
	if _, exists := s.index[handler]; !exists {
		return false
	}
	delete(s.index, handler)
	if i := slices.Index(s.handlers, handler); i >= 0 {
		s.handlers = slices.Delete(s.handlers, i, i+1)
	}
	return true
}

func (s *targetSet[T, H]) has(handler H) bool {
	_, exists := s.index[handler]
	return exists
}

func (s *targetSet[T, H]) empty() bool {
	return len(s.handlers) == 0
}

// clone copies the handler structures; the owner reference is shared.
func (s *targetSet[T, H]) clone() *targetSet[T, H] {
	c := &targetSet[T, H]{
		owner:    s.owner,
		handlers: slices.Clone(s.handlers),
		index:    make(map[H]struct{}, len(s.index)),
	}
	for h := range s.index {
		c.index[h] = struct{}{}
	}
	return c
}
