// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package schema

import (
	"strings"

	"github.com/samehada-labs/pageqp/storage/table/column"
)

/**
 * Schema is an ordered list of columns and the fixed byte size of one tuple.
 * A schema is never modified after construction. Derived schemas
 * (JoinWith, SubSchema) are new objects.
 */
type Schema struct {
	length  uint32           // Fixed-length column size, i.e. the number of bytes used by one tuple
	columns []*column.Column // All the columns in the schema
}

func NewSchema(columns []*column.Column) *Schema {
	schema := &Schema{}

	var currentOffset uint32
	currentOffset = 0
	for i := uint32(0); i < uint32(len(columns)); i++ {
		column := columns[i].Copy()
		column.SetOffset(currentOffset)
		currentOffset += column.FixedLength()

		schema.columns = append(schema.columns, column)
	}
	schema.length = currentOffset
	return schema
}

func (s *Schema) GetColumn(colIndex uint32) *column.Column {
	return s.columns[colIndex]
}

func (s *Schema) GetColumnCount() uint32 {
	return uint32(len(s.columns))
}

// TupleSize is the byte size used for page capacity calculation
func (s *Schema) TupleSize() uint32 {
	return s.length
}

func (s *Schema) GetColumns() []*column.Column {
	return s.columns
}

// IndexOf returns -1 when the schema does not contain the column
func (s *Schema) IndexOf(col *column.Column) int {
	for i, c := range s.columns {
		if c.Equals(col) {
			return i
		}
	}
	return -1
}

func (s *Schema) GetColIndex(tableName string, columnName string) int {
	for i, c := range s.columns {
		if c.GetTableName() == tableName && c.GetColumnName() == columnName {
			return i
		}
	}
	return -1
}

func (s *Schema) Contains(col *column.Column) bool {
	return s.IndexOf(col) >= 0
}

// JoinWith returns the schema of (s ⋈ right): columns of s followed by columns of right
func (s *Schema) JoinWith(right *Schema) *Schema {
	columns := make([]*column.Column, 0, len(s.columns)+len(right.columns))
	for _, col := range s.columns {
		col_ := col.Copy()
		col_.SetIsLeft(true)
		columns = append(columns, col_)
	}
	for _, col := range right.columns {
		col_ := col.Copy()
		col_.SetIsLeft(false)
		columns = append(columns, col_)
	}
	return NewSchema(columns)
}

// SubSchema keeps the passed columns in the passed order. unknown columns are skipped
func (s *Schema) SubSchema(cols []*column.Column) *Schema {
	columns := make([]*column.Column, 0, len(cols))
	for _, col := range cols {
		idx := s.IndexOf(col)
		if idx < 0 {
			continue
		}
		columns = append(columns, s.columns[idx])
	}
	return NewSchema(columns)
}

// Equals compares column identities and order
func (s *Schema) Equals(other *Schema) bool {
	if len(s.columns) != len(other.columns) || s.length != other.length {
		return false
	}
	for i := range s.columns {
		if !s.columns[i].Equals(other.columns[i]) || s.columns[i].GetType() != other.columns[i].GetType() {
			return false
		}
	}
	return true
}

// EqualsAsSet compares schemas ignoring column order
func (s *Schema) EqualsAsSet(other *Schema) bool {
	if len(s.columns) != len(other.columns) || s.length != other.length {
		return false
	}
	for _, col := range s.columns {
		if !other.Contains(col) {
			return false
		}
	}
	return true
}

func (s *Schema) String() string {
	names := make([]string, 0, len(s.columns))
	for _, col := range s.columns {
		names = append(names, col.String())
	}
	return "(" + strings.Join(names, ", ") + ")"
}
