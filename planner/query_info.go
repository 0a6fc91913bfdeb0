package planner

import (
	"github.com/samehada-labs/pageqp/execution/expression"
	"github.com/samehada-labs/pageqp/storage/table/column"
)

/**
 * QueryInfo is a parsed select-project-join query.
 *
 * Relations lists every relation of the FROM clause. Selections are
 * single relation predicates. JoinConditions connect two relations each.
 * Projection is empty for "*". OrderBy keys must be in the projection.
 */
type QueryInfo struct {
	Relations      []string
	Selections     []*expression.Predicate
	JoinConditions []*expression.JoinCondition
	Projection     []*column.Column
	OrderBy        []*column.Column
}

func NewQueryInfo(relations ...string) *QueryInfo {
	return &QueryInfo{Relations: relations}
}

func (qi *QueryInfo) Where(predicate *expression.Predicate) *QueryInfo {
	qi.Selections = append(qi.Selections, predicate)
	return qi
}

func (qi *QueryInfo) JoinOn(condition *expression.JoinCondition) *QueryInfo {
	qi.JoinConditions = append(qi.JoinConditions, condition)
	return qi
}

func (qi *QueryInfo) Select(cols ...*column.Column) *QueryInfo {
	qi.Projection = append(qi.Projection, cols...)
	return qi
}

func (qi *QueryInfo) OrderByCols(cols ...*column.Column) *QueryInfo {
	qi.OrderBy = append(qi.OrderBy, cols...)
	return qi
}
