package densekey

import (
	"math/bits"
	"strconv"
	"strings"
)

const wordBits = 64

// Set is an immutable set of dense keys.
//
// Keys below 64 live in a single machine word; larger keys spill into an
// overflow slice that is never mutated once a Set has been built. The zero
// value is the empty set.
type Set struct {
	low  uint64
	high []uint64
}

// Of returns the set containing the given keys. Negative keys are ignored.
func Of(keys ...int) Set {
	var s Set
	for _, k := range keys {
		s = s.With(k)
	}

	return s
}

// With returns a copy of s that also contains key.
func (s Set) With(key int) Set {
	if key < 0 || s.Has(key) {
		return s
	}

	if key < wordBits {
		return Set{low: s.low | 1<<uint(key), high: s.high}
	}

	idx := key/wordBits - 1
	size := max(len(s.high), idx+1)
	high := make([]uint64, size)
	copy(high, s.high)
	high[idx] |= 1 << uint(key%wordBits)

	return Set{low: s.low, high: high}
}

// Has reports whether key is a member of s.
func (s Set) Has(key int) bool {
	if key < 0 {
		return false
	}

	if key < wordBits {
		return s.low&(1<<uint(key)) != 0
	}

	idx := key/wordBits - 1
	if idx >= len(s.high) {
		return false
	}

	return s.high[idx]&(1<<uint(key%wordBits)) != 0
}

// IsEmpty reports whether s has no members.
func (s Set) IsEmpty() bool {
	return s.low == 0 && len(s.high) == 0
}

// Len returns the number of members.
func (s Set) Len() int {
	n := bits.OnesCount64(s.low)
	for _, w := range s.high {
		n += bits.OnesCount64(w)
	}

	return n
}

// Intersects reports whether s and other share at least one member.
func (s Set) Intersects(other Set) bool {
	if s.low&other.low != 0 {
		return true
	}

	n := min(len(s.high), len(other.high))
	for i := range n {
		if s.high[i]&other.high[i] != 0 {
			return true
		}
	}

	return false
}

// Union returns the set of keys in s or other.
func (s Set) Union(other Set) Set {
	if other.IsEmpty() {
		return s
	}

	if s.IsEmpty() {
		return other
	}

	if len(other.high) == 0 {
		return Set{low: s.low | other.low, high: s.high}
	}

	if len(s.high) == 0 {
		return Set{low: s.low | other.low, high: other.high}
	}

	long, short := s.high, other.high
	if len(short) > len(long) {
		long, short = short, long
	}

	high := make([]uint64, len(long))
	copy(high, long)

	for i, w := range short {
		high[i] |= w
	}

	return Set{low: s.low | other.low, high: high}
}

// Minus returns the keys of s that are not in other.
func (s Set) Minus(other Set) Set {
	if s.IsEmpty() || !s.Intersects(other) {
		return s
	}

	out := Set{low: s.low &^ other.low}
	if len(s.high) == 0 {
		return out
	}

	high := make([]uint64, len(s.high))
	copy(high, s.high)

	for i := range min(len(high), len(other.high)) {
		high[i] &^= other.high[i]
	}

	for len(high) > 0 && high[len(high)-1] == 0 {
		high = high[:len(high)-1]
	}

	if len(high) > 0 {
		out.high = high
	}

	return out
}

// Equal reports whether s and other have the same members.
func (s Set) Equal(other Set) bool {
	if s.low != other.low || len(s.high) != len(other.high) {
		return false
	}

	for i := range s.high {
		if s.high[i] != other.high[i] {
			return false
		}
	}

	return true
}

// Keys returns the members in ascending order.
func (s Set) Keys() []int {
	out := make([]int, 0, s.Len())

	for w, word := range append([]uint64{s.low}, s.high...) {
		for word != 0 {
			bit := bits.TrailingZeros64(word)
			out = append(out, w*wordBits+bit)
			word &^= 1 << uint(bit)
		}
	}

	return out
}

// String renders the set as {k1,k2,...}.
func (s Set) String() string {
	keys := s.Keys()
	parts := make([]string, len(keys))

	for i, k := range keys {
		parts[i] = strconv.Itoa(k)
	}

	return "{" + strings.Join(parts, ",") + "}"
}
