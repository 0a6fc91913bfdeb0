package optimizer

import (
	"math/bits"
	"strconv"
	"strings"
)

// SubsetKey is a set of relations. bit i is set when relation i is a member
type SubsetKey uint64

func SingletonKey(idx int) SubsetKey {
	return SubsetKey(1) << uint(idx)
}

func (k SubsetKey) Add(idx int) SubsetKey {
	return k | SingletonKey(idx)
}

func (k SubsetKey) Remove(idx int) SubsetKey {
	return k &^ SingletonKey(idx)
}

func (k SubsetKey) Has(idx int) bool {
	return k&SingletonKey(idx) != 0
}

func (k SubsetKey) Union(other SubsetKey) SubsetKey {
	return k | other
}

func (k SubsetKey) Minus(other SubsetKey) SubsetKey {
	return k &^ other
}

func (k SubsetKey) Size() int {
	return bits.OnesCount64(uint64(k))
}

func (k SubsetKey) IsSubsetOf(other SubsetKey) bool {
	return k&other == k
}

// First returns the smallest member index, -1 for the empty set
func (k SubsetKey) First() int {
	if k == 0 {
		return -1
	}
	return bits.TrailingZeros64(uint64(k))
}

// Members returns member indexes in ascending order
func (k SubsetKey) Members() []int {
	ret := make([]int, 0, k.Size())
	for rest := uint64(k); rest != 0; rest &= rest - 1 {
		ret = append(ret, bits.TrailingZeros64(rest))
	}
	return ret
}

func (k SubsetKey) String() string {
	strs := make([]string, 0, k.Size())
	for _, idx := range k.Members() {
		strs = append(strs, strconv.Itoa(idx))
	}
	return "{" + strings.Join(strs, ",") + "}"
}

// FullKey is the set of relations 0..n-1
func FullKey(n int) SubsetKey {
	if n >= 64 {
		return ^SubsetKey(0)
	}
	return SingletonKey(n) - 1
}

/**
 * SubsetsOfSize returns every subset of {0..n-1} with size members in
 * ascending numeric order of the key.
 */
func SubsetsOfSize(n int, size int) []SubsetKey {
	ret := make([]SubsetKey, 0)
	if size <= 0 || size > n {
		return ret
	}
	limit := FullKey(n)
	cur := FullKey(size)
	for cur <= limit && cur != 0 {
		ret = append(ret, cur)
		// next integer with the same number of set bits
		low := cur & -cur
		ripple := cur + low
		if ripple == 0 {
			break
		}
		cur = (((ripple ^ cur) >> 2) / low) | ripple
	}
	return ret
}
