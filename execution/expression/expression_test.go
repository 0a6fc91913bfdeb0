package expression

import (
	"testing"

	"github.com/samehada-labs/pageqp/storage/table/column"
	"github.com/samehada-labs/pageqp/storage/table/schema"
	"github.com/samehada-labs/pageqp/storage/tuple"
	testingpkg "github.com/samehada-labs/pageqp/testing/testing_assert"
	"github.com/samehada-labs/pageqp/types"
)

func TestFlipTwiceIsIdentity(t *testing.T) {
	ra := column.NewColumn("R", "a", types.Integer)
	sa := column.NewColumn("S", "a", types.Integer)
	cond := NewJoinCondition(ra, sa, LessThan)
	orig := cond.Clone()

	cond.Flip()
	testingpkg.Equals(t, "S.a > R.a", cond.String())
	testingpkg.AssertFalse(t, cond.Equals(orig), "flipped condition differs")
	cond.Flip()
	testingpkg.Assert(t, cond.Equals(orig), "flipping twice should be identity")
}

func TestPredicateEvaluate(t *testing.T) {
	ra := column.NewColumn("R", "a", types.Integer)
	sc := schema.NewSchema([]*column.Column{ra})
	pred := NewPredicate(ra, GreaterThanOrEqual, types.NewInteger(5))

	testingpkg.Assert(t, pred.Evaluate(tuple.NewTuple([]types.Value{types.NewInteger(5)}), sc), "5 >= 5")
	testingpkg.AssertFalse(t, pred.Evaluate(tuple.NewTuple([]types.Value{types.NewInteger(4)}), sc), "4 >= 5")
	testingpkg.Equals(t, "R.a >= 5", pred.String())
}
