package expression

import (
	"fmt"

	"github.com/samehada-labs/pageqp/storage/table/column"
	"github.com/samehada-labs/pageqp/storage/table/schema"
	"github.com/samehada-labs/pageqp/storage/tuple"
	"github.com/samehada-labs/pageqp/types"
)

// Predicate is "column op constant", the selection condition of a single relation
type Predicate struct {
	col            *column.Column
	constant       types.Value
	comparisonType ComparisonType
}

func NewPredicate(col *column.Column, comparisonType ComparisonType, constant types.Value) *Predicate {
	return &Predicate{col, constant, comparisonType}
}

func (p *Predicate) GetColumn() *column.Column { return p.col }

func (p *Predicate) GetConstant() types.Value { return p.constant }

func (p *Predicate) GetComparisonType() ComparisonType { return p.comparisonType }

func (p *Predicate) Evaluate(t *tuple.Tuple, sc *schema.Schema) bool {
	idx := sc.IndexOf(p.col)
	if idx < 0 {
		return false
	}
	return PerformComparison(t.GetValue(idx), p.constant, p.comparisonType)
}

func (p *Predicate) String() string {
	return fmt.Sprintf("%s %s %s", p.col, p.comparisonType, p.constant.ToString())
}
