package expression

import (
	"fmt"

	"github.com/samehada-labs/pageqp/storage/table/column"
)

/**
 * JoinCondition is a binary join predicate "lhs op rhs" where lhs and rhs
 * are attributes of different relations. By convention lhs belongs to the
 * left child of the join which evaluates it.
 */
type JoinCondition struct {
	lhs            *column.Column
	rhs            *column.Column
	comparisonType ComparisonType
}

func NewJoinCondition(lhs *column.Column, rhs *column.Column, comparisonType ComparisonType) *JoinCondition {
	return &JoinCondition{lhs, rhs, comparisonType}
}

func (c *JoinCondition) GetLhs() *column.Column { return c.lhs }

func (c *JoinCondition) GetRhs() *column.Column { return c.rhs }

func (c *JoinCondition) GetComparisonType() ComparisonType { return c.comparisonType }

// Flip swaps both sides in place. Flipping twice is identity
func (c *JoinCondition) Flip() {
	c.lhs, c.rhs = c.rhs, c.lhs
	c.comparisonType = c.comparisonType.Mirror()
}

func (c *JoinCondition) Clone() *JoinCondition {
	return &JoinCondition{c.lhs, c.rhs, c.comparisonType}
}

func (c *JoinCondition) Equals(other *JoinCondition) bool {
	return c.lhs.Equals(other.lhs) && c.rhs.Equals(other.rhs) && c.comparisonType == other.comparisonType
}

func (c *JoinCondition) String() string {
	return fmt.Sprintf("%s %s %s", c.lhs, c.comparisonType, c.rhs)
}
