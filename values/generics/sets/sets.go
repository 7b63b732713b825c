// Package sets provides a generic mutable set type that remembers insertion order.
// It is used as scratch space while building immutable values and is not safe for
// concurrent use.
package sets

import (
	"fmt"
	"slices"
)

// Set is a generic set type. The zero value is ready to use.
type Set[E comparable] struct {
	m     map[E]struct{}
	order []E
}

// New returns a Set holding vals.
func New[E comparable](vals ...E) Set[E] {
	s := Set[E]{}
	s.Add(vals...)
	return s
}

func (s *Set[E]) init() {
	if s.m == nil {
		s.m = make(map[E]struct{})
	}
}

// Len returns the number of elements in the Set.
func (s *Set[E]) Len() int {
	return len(s.m)
}

// Add adds the given values to the Set.
func (s *Set[E]) Add(vals ...E) {
	for _, v := range vals {
		s.Insert(v)
	}
}

// Insert adds v to the Set and reports if v was not already a member.
func (s *Set[E]) Insert(v E) bool {
	s.init()
	if _, ok := s.m[v]; ok {
		return false
	}
	s.m[v] = struct{}{}
	s.order = append(s.order, v)
	return true
}

// Remove removes the given value from the Set.
func (s *Set[E]) Remove(v E) {
	if _, ok := s.m[v]; !ok {
		return
	}
	delete(s.m, v)
	if i := slices.Index(s.order, v); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
}

// Contains returns true if the Set contains the given value.
func (s *Set[E]) Contains(v E) bool {
	if s.m == nil {
		return false
	}
	_, ok := s.m[v]
	return ok
}

// Members returns all the members of the Set in the order they were first added.
// This is a new slice and can be modified without affecting the Set.
func (s *Set[E]) Members() []E {
	if s.m == nil {
		return nil
	}
	return slices.Clone(s.order)
}

// String returns a string representation of the Set. This implements the fmt.Stringer interface.
func (s *Set[E]) String() string {
	return fmt.Sprintf("%v", s.order)
}

// Union returns a new Set that is the union of the two Sets. Members of s come first.
func (s *Set[E]) Union(s2 Set[E]) Set[E] {
	result := Set[E]{}
	result.Add(s.order...)
	result.Add(s2.order...)
	return result
}

// Intersection returns a new Set that is the intersection of the two Sets, in the order of s.
func (s *Set[E]) Intersection(s2 Set[E]) Set[E] {
	result := Set[E]{}
	for _, v := range s.order {
		if s2.Contains(v) {
			result.Add(v)
		}
	}
	return result
}
