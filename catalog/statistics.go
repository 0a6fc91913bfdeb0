package catalog

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/samehada-labs/pageqp/storage/table/schema"
	"github.com/samehada-labs/pageqp/storage/tuple"
	"github.com/samehada-labs/pageqp/types"
)

// TableStatistics holds cardinality of a relation and distinct value counts of its columns
type TableStatistics struct {
	cardinality int64
	distinct    map[string]int64 // column name -> distinct count
}

func NewTableStatistics(cardinality int64) *TableStatistics {
	return &TableStatistics{cardinality, make(map[string]int64)}
}

func (ts *TableStatistics) Cardinality() int64 {
	return ts.cardinality
}

func (ts *TableStatistics) SetDistinct(columnName string, count int64) {
	ts.distinct[columnName] = count
}

/**
 * Distinct returns the distinct count of the column. Columns without
 * statistics are assumed to be unique. The result is at least 1.
 */
func (ts *TableStatistics) Distinct(columnName string) int64 {
	ret, ok := ts.distinct[columnName]
	if !ok {
		ret = ts.cardinality
	}
	if ret > ts.cardinality {
		ret = ts.cardinality
	}
	if ret < 1 {
		return 1
	}
	return ret
}

// ComputeStatistics scans tuples and counts exact distinct values per column
func ComputeStatistics(sc *schema.Schema, tuples []*tuple.Tuple) *TableStatistics {
	ret := NewTableStatistics(int64(len(tuples)))
	for ii, col := range sc.GetColumns() {
		values := mapset.NewThreadUnsafeSet[types.Value]()
		for _, t := range tuples {
			values.Add(t.GetValue(ii))
		}
		ret.SetDistinct(col.GetColumnName(), int64(values.Cardinality()))
	}
	return ret
}
