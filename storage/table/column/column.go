// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package column

import (
	"fmt"

	"github.com/samehada-labs/pageqp/types"
)

type KeyRole int32

const (
	NoKey KeyRole = iota
	PrimaryKey
	ForeignKey
)

/**
 * Column is an attribute of a relation. A column is identified by
 * (table name, column name) within a schema.
 */
type Column struct {
	tableName    string
	columnName   string
	columnType   types.TypeID
	keyRole      KeyRole
	fixedLength  uint32 // byte size of the attribute inside a tuple
	columnOffset uint32 // Column offset in the tuple
	isLeft       bool   // when temporal schema, this is used for join
}

func NewColumn(tableName string, name string, columnType types.TypeID) *Column {
	return &Column{tableName, name, columnType, NoKey, columnType.Size(), 0, true}
}

// NewColumnWithSize is used for Varchar columns whose declared width differs from the default
func NewColumnWithSize(tableName string, name string, columnType types.TypeID, keyRole KeyRole, size uint32) *Column {
	return &Column{tableName, name, columnType, keyRole, size, 0, true}
}

func (c *Column) GetType() types.TypeID {
	return c.columnType
}

func (c *Column) GetTableName() string {
	return c.tableName
}

func (c *Column) GetColumnName() string {
	return c.columnName
}

func (c *Column) GetKeyRole() KeyRole {
	return c.keyRole
}

func (c *Column) SetKeyRole(role KeyRole) {
	c.keyRole = role
}

func (c *Column) GetOffset() uint32 {
	return c.columnOffset
}

func (c *Column) SetOffset(offset uint32) {
	c.columnOffset = offset
}

func (c *Column) FixedLength() uint32 {
	return c.fixedLength
}

func (c *Column) IsLeft() bool {
	return c.isLeft
}

func (c *Column) SetIsLeft(isLeft bool) {
	c.isLeft = isLeft
}

// Equals compares identity of the attribute, not its position or join side
func (c *Column) Equals(other *Column) bool {
	return c.tableName == other.tableName && c.columnName == other.columnName
}

func (c *Column) Copy() *Column {
	ret := *c
	return &ret
}

func (c *Column) String() string {
	return fmt.Sprintf("%s.%s", c.tableName, c.columnName)
}
