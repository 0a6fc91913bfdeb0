package catalog

import (
	"testing"

	"github.com/samehada-labs/pageqp/storage/table/column"
	"github.com/samehada-labs/pageqp/storage/table/schema"
	"github.com/samehada-labs/pageqp/storage/tuple"
	testingpkg "github.com/samehada-labs/pageqp/testing/testing_assert"
	"github.com/samehada-labs/pageqp/types"
)

func TestCreateTableComputesStatistics(t *testing.T) {
	sc := schema.NewSchema([]*column.Column{column.NewColumn("R", "a", types.Integer), column.NewColumn("R", "b", types.Varchar)})
	tuples := []*tuple.Tuple{
		tuple.NewTuple([]types.Value{types.NewInteger(1), types.NewVarchar("x")}),
		tuple.NewTuple([]types.Value{types.NewInteger(2), types.NewVarchar("x")}),
		tuple.NewTuple([]types.Value{types.NewInteger(3), types.NewVarchar("y")}),
	}

	c := NewCatalog()
	tm, err := c.CreateTable("R", sc, tuples)
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, uint32(0), tm.OID())
	testingpkg.Equals(t, tm, c.GetTableByName("R"))
	testingpkg.Assert(t, c.GetTableByName("S") == nil, "unknown table")

	stats := c.GetStatistics("R")
	testingpkg.Equals(t, int64(3), stats.Cardinality())
	testingpkg.Equals(t, int64(3), stats.Distinct("a"))
	testingpkg.Equals(t, int64(2), stats.Distinct("b"))
	testingpkg.Equals(t, int64(3), stats.Distinct("unknown"))

	_, err = c.CreateTable("R", sc, nil)
	testingpkg.Nok(t, err)
}

func TestDistinctIsClamped(t *testing.T) {
	stats := NewTableStatistics(10)
	stats.SetDistinct("a", 50)
	stats.SetDistinct("b", 0)
	testingpkg.Equals(t, int64(10), stats.Distinct("a"))
	testingpkg.Equals(t, int64(1), stats.Distinct("b"))
}
