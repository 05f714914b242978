package graphic

import (
	"sync"

	"pointlayer/pkg/geometry"
)

// Store is an ordered collection of graphics. Insertion order is paint
// order: later graphics are drawn over earlier ones.
type Store struct {
	mu       sync.RWMutex
	graphics []*Graphic
	onChange func()
}

// NewStore creates a store. onChange, if non-nil, runs after every
// mutation, outside the store lock.
func NewStore(onChange func()) *Store {
	return &Store{onChange: onChange}
}

// Replace discards the current contents and stores gs. nil entries are
// dropped.
func (s *Store) Replace(gs ...*Graphic) {
	s.mu.Lock()
	s.graphics = appendNonNil(make([]*Graphic, 0, len(gs)), gs)
	s.mu.Unlock()
	s.changed()
}

// Append adds gs after the existing graphics. nil entries are dropped.
func (s *Store) Append(gs ...*Graphic) {
	s.mu.Lock()
	s.graphics = appendNonNil(s.graphics, gs)
	s.mu.Unlock()
	s.changed()
}

// Clear removes every graphic.
func (s *Store) Clear() {
	s.mu.Lock()
	s.graphics = nil
	s.mu.Unlock()
	s.changed()
}

// Len returns the number of graphics.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.graphics)
}

// Query returns the graphics in insertion order. With a region, only
// graphics whose extent lies fully inside it are returned; empty graphics
// have no extent and are left out.
func (s *Store) Query(region *geometry.Extent) []*Graphic {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Graphic, 0, len(s.graphics))
	for _, g := range s.graphics {
		if region == nil || (!g.IsEmpty() && region.ContainsExtent(g.Extent())) {
			result = append(result, g)
		}
	}
	return result
}

// Reversed returns all graphics, topmost first.
func (s *Store) Reversed() []*Graphic {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Graphic, len(s.graphics))
	for i, g := range s.graphics {
		result[len(s.graphics)-1-i] = g
	}
	return result
}

func (s *Store) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

func appendNonNil(dst, src []*Graphic) []*Graphic {
	for _, g := range src {
		if g != nil {
			dst = append(dst, g)
		}
	}
	return dst
}
