package testing_tbl_gen

import (
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/samehada-labs/pageqp/catalog"
	"github.com/samehada-labs/pageqp/storage/table/column"
	testingpkg "github.com/samehada-labs/pageqp/testing/testing_assert"
	"github.com/samehada-labs/pageqp/types"
)

func TestGenerateTableWithStatistics(t *testing.T) {
	c := catalog.NewCatalog()
	meta := &TableInsertMeta{"emp", 200, []*ColumnInsertMeta{
		{"id", types.Integer, column.PrimaryKey, DistUniform, 0, 999, 0},
		{"dept", types.Integer, column.ForeignKey, DistUniform, 0, 9, 0},
		{"seq", types.Integer, column.NoKey, DistSerial, 0, 0, 100},
		{"name", types.Varchar, column.NoKey, DistUniform, 0, 6, 0},
		{"score", types.Float, column.NoKey, DistUniform, 0, 5, 0},
		{"active", types.Boolean, column.NoKey, DistUniform, 0, 0, 0},
	}}
	tm, err := NewTableGenerator(1).GenerateTable(c, meta)
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, 200, len(tm.Tuples()))

	ids := mapset.NewSet[int32]()
	for i, tpl := range tm.Tuples() {
		id := tpl.GetValue(0).ToInteger()
		testingpkg.Assert(t, id >= 0 && id <= 999, "id %d out of range", id)
		ids.Add(id)
		dept := tpl.GetValue(1).ToInteger()
		testingpkg.Assert(t, dept >= 0 && dept <= 9, "dept %d out of range", dept)
		testingpkg.Equals(t, int32(100+i), tpl.GetValue(2).ToInteger())
		testingpkg.Equals(t, 6, len(tpl.GetValue(3).ToVarchar()))
	}
	testingpkg.Equals(t, 200, ids.Cardinality())

	stats := c.GetStatistics("emp")
	testingpkg.Equals(t, int64(200), stats.Cardinality())
	testingpkg.Equals(t, int64(200), stats.Distinct("id"))
	testingpkg.Assert(t, stats.Distinct("dept") <= 10, "dept has at most 10 values")
	testingpkg.Assert(t, stats.Distinct("active") <= 2, "boolean has at most 2 values")
	testingpkg.Equals(t, uint32(6), tm.Schema().GetColumn(3).FixedLength())
}

func TestGenerationIsReproducible(t *testing.T) {
	meta := func() *TableInsertMeta {
		return &TableInsertMeta{"r", 50, []*ColumnInsertMeta{
			{"a", types.Integer, column.NoKey, DistUniform, 0, 20, 0},
			{"b", types.Integer, column.NoKey, DistUnique, 0, 49, 0},
		}}
	}
	first, err := NewTableGenerator(7).GenerateTuples(meta())
	testingpkg.Ok(t, err)
	second, err := NewTableGenerator(7).GenerateTuples(meta())
	testingpkg.Ok(t, err)
	for i := range first {
		testingpkg.Assert(t, first[i].Equals(second[i]), "row %d differs", i)
	}
}

func TestUniqueColumnNeedsLargeEnoughRange(t *testing.T) {
	meta := &TableInsertMeta{"r", 20, []*ColumnInsertMeta{
		{"a", types.Integer, column.PrimaryKey, DistUniform, 0, 9, 0},
	}}
	_, err := NewTableGenerator(1).GenerateTuples(meta)
	testingpkg.Nok(t, err)
}
