package tuple

import (
	"testing"

	testingpkg "github.com/samehada-labs/pageqp/testing/testing_assert"
	"github.com/samehada-labs/pageqp/types"
)

func TestTuple(t *testing.T) {
	expA, expB, expC := int32(99), "Hello World", float32(1.25)
	tuple := NewTuple([]types.Value{types.NewInteger(expA), types.NewVarchar(expB), types.NewFloat(expC)})

	testingpkg.Equals(t, expA, tuple.GetValue(0).ToInteger())
	testingpkg.Equals(t, expB, tuple.GetValue(1).ToVarchar())
	testingpkg.Equals(t, expC, tuple.GetValue(2).ToFloat())
	testingpkg.Equals(t, 3, tuple.Arity())
	testingpkg.Equals(t, "[99, Hello World, 1.25]", tuple.String())
}

func TestJoinAndCompare(t *testing.T) {
	left := NewTuple([]types.Value{types.NewInteger(1), types.NewInteger(10)})
	right := NewTuple([]types.Value{types.NewInteger(10), types.NewVarchar("x")})

	testingpkg.Assert(t, CheckJoin(left, right, 1, 0), "10 should join 10")
	testingpkg.AssertFalse(t, CheckJoin(left, right, 0, 0), "1 should not join 10")
	testingpkg.Equals(t, -1, CompareTuples(left, right, 0, 0))

	joined := left.JoinWith(right)
	testingpkg.Equals(t, 4, joined.Arity())
	testingpkg.Equals(t, "x", joined.GetValue(3).ToVarchar())
	testingpkg.Assert(t, joined.Project([]int{2, 0}).Equals(NewTuple([]types.Value{types.NewInteger(10), types.NewInteger(1)})), "projection order")
}

func TestCompareOnKeys(t *testing.T) {
	a := NewTuple([]types.Value{types.NewInteger(1), types.NewVarchar("b")})
	b := NewTuple([]types.Value{types.NewInteger(1), types.NewVarchar("a")})

	testingpkg.Equals(t, 0, CompareOnKeys(a, b, []int{0}))
	testingpkg.Equals(t, 1, CompareOnKeys(a, b, []int{0, 1}))
	testingpkg.Equals(t, -1, CompareOnKeys(b, a, []int{1}))
}
