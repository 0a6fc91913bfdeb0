// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package tuple

import (
	"strings"

	"github.com/samehada-labs/pageqp/types"
)

/**
 * Tuple is a fixed-arity row of typed values. Tuples are immutable once
 * built. Ordering and equality are defined over designated key columns only.
 */
type Tuple struct {
	values []types.Value
}

func NewTuple(values []types.Value) *Tuple {
	return &Tuple{values}
}

func (t *Tuple) GetValue(colIndex int) types.Value {
	return t.values[colIndex]
}

func (t *Tuple) Values() []types.Value {
	return t.values
}

func (t *Tuple) Arity() int {
	return len(t.values)
}

// JoinWith concatenates t and right, in this order
func (t *Tuple) JoinWith(right *Tuple) *Tuple {
	values := make([]types.Value, 0, len(t.values)+len(right.values))
	values = append(values, t.values...)
	values = append(values, right.values...)
	return &Tuple{values}
}

// Project builds a tuple of the columns at colIdxs
func (t *Tuple) Project(colIdxs []int) *Tuple {
	values := make([]types.Value, 0, len(colIdxs))
	for _, idx := range colIdxs {
		values = append(values, t.values[idx])
	}
	return &Tuple{values}
}

// CheckJoin reports whether left[leftIdx] equals right[rightIdx] as a join predicate
func CheckJoin(left *Tuple, right *Tuple, leftIdx int, rightIdx int) bool {
	return left.values[leftIdx].CompareEquals(right.values[rightIdx])
}

// CompareTuples compares left[leftIdx] and right[rightIdx] and returns -1, 0 or 1
func CompareTuples(left *Tuple, right *Tuple, leftIdx int, rightIdx int) int {
	return left.values[leftIdx].CompareTo(right.values[rightIdx])
}

// CompareOnKeys compares a and b lexicographically over keyIdxs
func CompareOnKeys(a *Tuple, b *Tuple, keyIdxs []int) int {
	for _, idx := range keyIdxs {
		if ret := a.values[idx].CompareTo(b.values[idx]); ret != 0 {
			return ret
		}
	}
	return 0
}

// Equals is full row equality
func (t *Tuple) Equals(other *Tuple) bool {
	if len(t.values) != len(other.values) {
		return false
	}
	for i := range t.values {
		if t.values[i].ValueType() != other.values[i].ValueType() || t.values[i].CompareTo(other.values[i]) != 0 {
			return false
		}
	}
	return true
}

func (t *Tuple) String() string {
	strs := make([]string, 0, len(t.values))
	for _, val := range t.values {
		strs = append(strs, val.ToString())
	}
	return "[" + strings.Join(strs, ", ") + "]"
}
