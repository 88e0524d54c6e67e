package compute

import (
	"iter"
	"slices"

	mandel "github.com/marben/mandel_explorer"
)

// ComputedSet is a row-major grid of results. An empty set carries only
// its size, so a placeholder can be drawn before the data arrives.
type ComputedSet struct {
	width, height uint32
	data          []mandel.Bound
}

func NewComputedSet(width, height uint32, data []mandel.Bound) ComputedSet {
	return ComputedSet{width: width, height: height, data: data}
}

func EmptySet(width, height uint32) ComputedSet {
	return ComputedSet{width: width, height: height}
}

func (cs ComputedSet) Size() (width, height uint32) {
	return cs.width, cs.height
}

// Ready reports whether the set holds computed data.
func (cs ComputedSet) Ready() bool {
	return cs.data != nil
}

// At returns the result for pixel (col, row). It panics on an empty set.
func (cs ComputedSet) At(col, row uint32) mandel.Bound {
	return cs.data[int(row)*int(cs.width)+int(col)]
}

// All iterates the results in row-major order. It yields nothing for an
// empty set.
func (cs ComputedSet) All() iter.Seq2[int, mandel.Bound] {
	return func(yield func(int, mandel.Bound) bool) {
		for i, b := range cs.data {
			if !yield(i, b) {
				return
			}
		}
	}
}

func (cs ComputedSet) Equal(other ComputedSet) bool {
	return cs.width == other.width && cs.height == other.height &&
		cs.Ready() == other.Ready() && slices.Equal(cs.data, other.data)
}
