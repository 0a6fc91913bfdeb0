package plans

import (
	"fmt"
	"strings"

	"github.com/samehada-labs/pageqp/common"
	"github.com/samehada-labs/pageqp/storage/table/column"
)

/**
 * OrderbyPlanNode sorts tuples of the child in ascending order of keys.
 * It runs as an external sort bounded by the page budget.
 */
type OrderbyPlanNode struct {
	*AbstractPlanNode
	keys []*column.Column
}

func NewOrderbyPlanNode(child Plan, keys []*column.Column) *OrderbyPlanNode {
	return &OrderbyPlanNode{&AbstractPlanNode{child.OutputSchema(), []Plan{child}}, keys}
}

func (p *OrderbyPlanNode) GetType() PlanType { return Orderby }

func (p *OrderbyPlanNode) GetKeys() []*column.Column { return p.keys }

/** @return column indexes of the keys in the output schema */
func (p *OrderbyPlanNode) GetColIdxs() []int {
	ret := make([]int, 0, len(p.keys))
	for _, key := range p.keys {
		idx := p.OutputSchema().IndexOf(key)
		common.SH_Assert(idx >= 0, "order by key is not in the schema")
		ret = append(ret, idx)
	}
	return ret
}

func (p *OrderbyPlanNode) GetChildPlan() Plan {
	common.SH_Assert(len(p.GetChildren()) == 1, "OrderBy expected to only have one child.")
	return p.GetChildAt(0)
}

func (p *OrderbyPlanNode) Clone() Plan {
	return &OrderbyPlanNode{p.cloneBase(), p.keys}
}

func (p *OrderbyPlanNode) GetDebugStr() string {
	names := make([]string, 0, len(p.keys))
	for _, key := range p.keys {
		names = append(names, key.String())
	}
	return fmt.Sprintf("Orderby[%s]", strings.Join(names, ", "))
}
