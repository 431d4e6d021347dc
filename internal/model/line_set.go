package model

import "sort"

// LineSet is a set of synthetic line numbers.
type LineSet map[int]struct{}

// NewLineSet builds a set from the given lines.
func NewLineSet(lines ...int) LineSet {
	set := make(LineSet, len(lines))
	for _, line := range lines {
		set[line] = struct{}{}
	}

	return set
}

// Has reports whether line is in the set.
func (s LineSet) Has(line int) bool {
	_, ok := s[line]
	return ok
}

// Add inserts line. The receiver must be non-nil.
func (s LineSet) Add(line int) {
	s[line] = struct{}{}
}

// Remove deletes line.
func (s LineSet) Remove(line int) {
	delete(s, line)
}

// Len returns the number of lines.
func (s LineSet) Len() int {
	return len(s)
}

// Sorted returns the lines in ascending order.
func (s LineSet) Sorted() []int {
	lines := make([]int, 0, len(s))
	for line := range s {
		lines = append(lines, line)
	}

	sort.Ints(lines)

	return lines
}

// Clone returns an independent copy; a nil set clones to an empty one.
func (s LineSet) Clone() LineSet {
	out := make(LineSet, len(s))
	for line := range s {
		out[line] = struct{}{}
	}

	return out
}
