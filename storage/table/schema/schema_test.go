package schema

import (
	"testing"

	"github.com/samehada-labs/pageqp/storage/table/column"
	testingpkg "github.com/samehada-labs/pageqp/testing/testing_assert"
	"github.com/samehada-labs/pageqp/types"
)

func TestSchemaOffsetsAndSize(t *testing.T) {
	sc := NewSchema([]*column.Column{
		column.NewColumn("R", "a", types.Integer),
		column.NewColumnWithSize("R", "name", types.Varchar, column.NoKey, 20),
		column.NewColumn("R", "score", types.Float),
	})

	testingpkg.Equals(t, uint32(28), sc.TupleSize())
	testingpkg.Equals(t, uint32(4), sc.GetColumn(1).GetOffset())
	testingpkg.Equals(t, uint32(24), sc.GetColumn(2).GetOffset())
	testingpkg.Equals(t, 1, sc.IndexOf(column.NewColumn("R", "name", types.Varchar)))
	testingpkg.Equals(t, -1, sc.IndexOf(column.NewColumn("S", "name", types.Varchar)))
	testingpkg.Equals(t, 2, sc.GetColIndex("R", "score"))
}

func TestJoinWithAndSubSchema(t *testing.T) {
	left := NewSchema([]*column.Column{column.NewColumn("R", "a", types.Integer)})
	right := NewSchema([]*column.Column{column.NewColumn("S", "a", types.Integer), column.NewColumn("S", "b", types.Integer)})

	joined := left.JoinWith(right)
	testingpkg.Equals(t, uint32(3), joined.GetColumnCount())
	testingpkg.Equals(t, uint32(12), joined.TupleSize())
	testingpkg.Assert(t, joined.GetColumn(0).IsLeft(), "left column should be marked")
	testingpkg.AssertFalse(t, joined.GetColumn(2).IsLeft(), "right column should not be marked")

	swapped := right.JoinWith(left)
	testingpkg.AssertFalse(t, joined.Equals(swapped), "order differs")
	testingpkg.Assert(t, joined.EqualsAsSet(swapped), "same set of columns")

	sub := joined.SubSchema([]*column.Column{column.NewColumn("S", "b", types.Integer), column.NewColumn("R", "a", types.Integer)})
	testingpkg.Equals(t, "(S.b, R.a)", sub.String())

	// source schemas are untouched
	testingpkg.Assert(t, right.GetColumn(0).IsLeft(), "JoinWith must not mutate its inputs")
}
