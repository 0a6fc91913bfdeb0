package plans

import (
	"fmt"
	"strings"

	"github.com/samehada-labs/pageqp/common"
	"github.com/samehada-labs/pageqp/storage/table/column"
)

type ProjectionPlanNode struct {
	*AbstractPlanNode
	columns []*column.Column
}

func NewProjectionPlanNode(child Plan, columns []*column.Column) *ProjectionPlanNode {
	return &ProjectionPlanNode{&AbstractPlanNode{child.OutputSchema().SubSchema(columns), []Plan{child}}, columns}
}

func (p *ProjectionPlanNode) GetType() PlanType { return Projection }

func (p *ProjectionPlanNode) GetColumns() []*column.Column { return p.columns }

func (p *ProjectionPlanNode) GetChildPlan() Plan {
	common.SH_Assert(len(p.GetChildren()) == 1, "Projection expected to only have one child.")
	return p.GetChildAt(0)
}

func (p *ProjectionPlanNode) Clone() Plan {
	return &ProjectionPlanNode{p.cloneBase(), p.columns}
}

func (p *ProjectionPlanNode) GetDebugStr() string {
	names := make([]string, 0, len(p.columns))
	for _, col := range p.columns {
		names = append(names, col.String())
	}
	return fmt.Sprintf("Projection[%s]", strings.Join(names, ", "))
}
