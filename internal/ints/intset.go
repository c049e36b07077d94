// Package ints contains a set of small non-negative integers.
package ints

import "math/bits"

const chunkBits = bits.UintSize

// Set is a bit set, zero value is an empty set.
type Set struct {
	chunks []uint
}

func NewSet(items ...int) *Set {
	s := &Set{}
	return s.Add(items...)
}

// Add inserts items, negative items are ignored.
func (s *Set) Add(items ...int) *Set {
	for _, item := range items {
		if item < 0 {
			continue
		}

		index := item / chunkBits
		for len(s.chunks) <= index {
			s.chunks = append(s.chunks, 0)
		}
		s.chunks[index] |= 1 << (item % chunkBits)
	}
	return s
}

func (s *Set) Contains(item int) bool {
	index := item / chunkBits
	return item >= 0 && index < len(s.chunks) && s.chunks[index]&(1<<(item%chunkBits)) != 0
}

func (s *Set) Len() int {
	res := 0
	for _, chunk := range s.chunks {
		res += bits.OnesCount(chunk)
	}
	return res
}

func (s *Set) IsEmpty() bool {
	return s.Len() == 0
}

// ToSlice returns items in ascending order.
func (s *Set) ToSlice() []int {
	res := make([]int, 0, s.Len())
	for i, chunk := range s.chunks {
		for chunk != 0 {
			bit := bits.TrailingZeros(chunk)
			res = append(res, i*chunkBits+bit)
			chunk &= chunk - 1
		}
	}
	return res
}
