// Package tile defines tile addressing in the power-of-two tile pyramid.
package tile

import (
	"fmt"
	"sort"
)

// ID identifies one tile by integer column, row, and zoom level. Rows
// count down from the top-left corner of the map.
type ID struct {
	X, Y, Z int
}

// Before orders IDs by (zoom, x, y), giving tile sets a stable iteration
// order.
func (t ID) Before(other ID) bool {
	if t.Z != other.Z {
		return t.Z < other.Z
	}
	if t.X != other.X {
		return t.X < other.X
	}
	return t.Y < other.Y
}

func (t ID) String() string {
	return fmt.Sprintf("%d/%d/%d", t.Z, t.X, t.Y)
}

// Set is a unique collection of tile IDs.
type Set map[ID]struct{}

// Add inserts an ID into the set.
func (s Set) Add(id ID) {
	s[id] = struct{}{}
}

// Contains reports membership.
func (s Set) Contains(id ID) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the set's IDs ordered by (zoom, x, y).
func (s Set) Sorted() []ID {
	ids := make([]ID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Before(ids[j]) })
	return ids
}
