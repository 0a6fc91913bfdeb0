package testing_tbl_gen

import (
	"fmt"
	"math/rand"

	"github.com/samehada-labs/pageqp/catalog"
	"github.com/samehada-labs/pageqp/storage/table/column"
	"github.com/samehada-labs/pageqp/storage/table/schema"
	"github.com/samehada-labs/pageqp/storage/tuple"
	"github.com/samehada-labs/pageqp/types"
)

type ColumnInsertMeta struct {
	/**
	 * Name of the column
	 */
	Name_ string
	/**
	 * Type of the column
	 */
	Type_ types.TypeID
	/**
	 * primary key columns get distinct values
	 */
	KeyRole_ column.KeyRole
	/**
	 * Distribution of values
	 */
	Dist_ int32
	/**
	 * min value of the column
	 */
	Min_ int32
	/**
	 * max value of the column (inclusive). length of strings for Varchar
	 */
	Max_ int32
	/**
	 * Counter to generate serial data
	 */
	Serial_counter_ int32
}

type TableInsertMeta struct {
	/**
	 * Name of the table
	 */
	Name_ string
	/**
	 * Number of rows
	 */
	Num_rows_ uint32
	/**
	 * Columns
	 */
	Col_meta_ []*ColumnInsertMeta
}

const DistSerial int32 = 0
const DistUniform int32 = 1

// DistUnique draws values from [Min_, Max_] without repetition
const DistUnique int32 = 2

// TableGenerator makes random relations. the same seed gives the same relations
type TableGenerator struct {
	rnd *rand.Rand
}

func NewTableGenerator(seed int64) *TableGenerator {
	return &TableGenerator{rand.New(rand.NewSource(seed))}
}

func MakeSchema(tableMeta *TableInsertMeta) *schema.Schema {
	cols := make([]*column.Column, 0, len(tableMeta.Col_meta_))
	for _, colMeta := range tableMeta.Col_meta_ {
		size := colMeta.Type_.Size()
		if colMeta.Type_ == types.Varchar {
			size = uint32(colMeta.Max_)
		}
		cols = append(cols, column.NewColumnWithSize(tableMeta.Name_, colMeta.Name_, colMeta.Type_, colMeta.KeyRole_, size))
	}
	return schema.NewSchema(cols)
}

func (g *TableGenerator) randString(length int32) string {
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = byte('a' + g.rnd.Intn(26))
	}
	return string(buf)
}

func (g *TableGenerator) genIntegerValues(colMeta *ColumnInsertMeta, count uint32) ([]types.Value, error) {
	values := make([]types.Value, 0, count)
	width := int64(colMeta.Max_) - int64(colMeta.Min_) + 1
	switch {
	case colMeta.Dist_ == DistSerial:
		for i := uint32(0); i < count; i++ {
			values = append(values, types.NewInteger(colMeta.Serial_counter_))
			colMeta.Serial_counter_++
		}
	case colMeta.Dist_ == DistUnique || colMeta.KeyRole_ == column.PrimaryKey:
		if width < int64(count) {
			return nil, fmt.Errorf("column %s: %d distinct values are needed but range has %d", colMeta.Name_, count, width)
		}
		used := make(map[int32]bool, count)
		for uint32(len(values)) < count {
			v := colMeta.Min_ + int32(g.rnd.Int63n(width))
			if used[v] {
				continue
			}
			used[v] = true
			values = append(values, types.NewInteger(v))
		}
	default:
		for i := uint32(0); i < count; i++ {
			values = append(values, types.NewInteger(colMeta.Min_+int32(g.rnd.Int63n(width))))
		}
	}
	return values, nil
}

func (g *TableGenerator) MakeValues(colMeta *ColumnInsertMeta, count uint32) ([]types.Value, error) {
	switch colMeta.Type_ {
	case types.Integer:
		return g.genIntegerValues(colMeta, count)
	case types.Float:
		values := make([]types.Value, 0, count)
		for i := uint32(0); i < count; i++ {
			values = append(values, types.NewFloat(float32(colMeta.Min_)+float32(colMeta.Max_-colMeta.Min_)*g.rnd.Float32()))
		}
		return values, nil
	case types.Varchar:
		values := make([]types.Value, 0, count)
		for i := uint32(0); i < count; i++ {
			values = append(values, types.NewVarchar(g.randString(colMeta.Max_)))
		}
		return values, nil
	case types.Boolean:
		values := make([]types.Value, 0, count)
		for i := uint32(0); i < count; i++ {
			values = append(values, types.NewBoolean(g.rnd.Intn(2) == 1))
		}
		return values, nil
	}
	return nil, fmt.Errorf("column %s: type %s is not supported", colMeta.Name_, colMeta.Type_)
}

// GenerateTuples makes Num_rows_ tuples column by column
func (g *TableGenerator) GenerateTuples(tableMeta *TableInsertMeta) ([]*tuple.Tuple, error) {
	columns := make([][]types.Value, 0, len(tableMeta.Col_meta_))
	for _, colMeta := range tableMeta.Col_meta_ {
		values, err := g.MakeValues(colMeta, tableMeta.Num_rows_)
		if err != nil {
			return nil, err
		}
		columns = append(columns, values)
	}

	ret := make([]*tuple.Tuple, 0, tableMeta.Num_rows_)
	for i := 0; i < int(tableMeta.Num_rows_); i++ {
		entry := make([]types.Value, 0, len(columns))
		for _, values := range columns {
			entry = append(entry, values[i])
		}
		ret = append(ret, tuple.NewTuple(entry))
	}
	return ret, nil
}

// GenerateTable registers a random relation. its statistics are exact
func (g *TableGenerator) GenerateTable(c *catalog.Catalog, tableMeta *TableInsertMeta) (*catalog.TableMetadata, error) {
	tuples, err := g.GenerateTuples(tableMeta)
	if err != nil {
		return nil, err
	}
	return c.CreateTable(tableMeta.Name_, MakeSchema(tableMeta), tuples)
}
