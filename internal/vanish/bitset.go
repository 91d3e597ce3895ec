package vanish

import "math/bits"

// bitset is a fixed-width bit vector. Preference sets carry one bit per
// hypothesis and the selector's residual set carries one bit per segment,
// so intersections, unions and cardinalities reduce to word-wise boolean
// operations instead of dynamic set bookkeeping.
type bitset []uint64

func newBitset(n int) bitset { return make(bitset, (n+63)/64) }

func (b bitset) set(i int) { b[i/64] |= 1 << (i % 64) }

func (b bitset) get(i int) bool { return b[i/64]&(1<<(i%64)) != 0 }

func (b bitset) count() int {
	total := 0
	for _, w := range b {
		total += bits.OnesCount64(w)
	}
	return total
}

// andNot clears every bit of b that is set in other.
func (b bitset) andNot(other bitset) {
	for i := range b {
		b[i] &^= other[i]
	}
}

// intersection allocates the bitwise AND of a and b.
func intersection(a, b bitset) bitset {
	out := make(bitset, len(a))
	for i := range a {
		out[i] = a[i] & b[i]
	}
	return out
}

func intersectionCount(a, b bitset) int {
	total := 0
	for i := range a {
		total += bits.OnesCount64(a[i] & b[i])
	}
	return total
}

func unionCount(a, b bitset) int {
	total := 0
	for i := range a {
		total += bits.OnesCount64(a[i] | b[i])
	}
	return total
}
