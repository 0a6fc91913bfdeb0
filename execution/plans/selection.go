package plans

import (
	"fmt"

	"github.com/samehada-labs/pageqp/common"
	"github.com/samehada-labs/pageqp/execution/expression"
)

// do selection according to WHERE clause of a single relation

type SelectionPlanNode struct {
	*AbstractPlanNode
	predicate *expression.Predicate
}

func NewSelectionPlanNode(child Plan, predicate *expression.Predicate) *SelectionPlanNode {
	return &SelectionPlanNode{&AbstractPlanNode{child.OutputSchema(), []Plan{child}}, predicate}
}

func (p *SelectionPlanNode) GetType() PlanType { return Selection }

func (p *SelectionPlanNode) GetPredicate() *expression.Predicate { return p.predicate }

func (p *SelectionPlanNode) GetChildPlan() Plan {
	common.SH_Assert(len(p.GetChildren()) == 1, "Selection expected to only have one child.")
	return p.GetChildAt(0)
}

func (p *SelectionPlanNode) Clone() Plan {
	return &SelectionPlanNode{p.cloneBase(), p.predicate}
}

func (p *SelectionPlanNode) GetDebugStr() string {
	return fmt.Sprintf("Selection[%s]", p.predicate)
}
