package plans

import (
	"github.com/samehada-labs/pageqp/storage/table/schema"
)

type PlanType int

const (
	SeqScan PlanType = iota
	Selection
	Projection
	Join
	Orderby
)

func (t PlanType) String() string {
	switch t {
	case SeqScan:
		return "SeqScan"
	case Selection:
		return "Selection"
	case Projection:
		return "Projection"
	case Join:
		return "Join"
	case Orderby:
		return "Orderby"
	}
	return "Unknown"
}

type Plan interface {
	OutputSchema() *schema.Schema
	GetChildAt(childIndex uint32) Plan
	GetChildren() []Plan
	GetType() PlanType
	// Clone copies the node and its whole subtree
	Clone() Plan
	GetDebugStr() string
}

/**
 * AbstractPlanNode keeps the output schema and the children of a node.
 * Children are owned by the node. The schema is changed only by
 * RecomputeSchema.
 */
type AbstractPlanNode struct {
	outputSchema *schema.Schema
	children     []Plan
}

func (p *AbstractPlanNode) OutputSchema() *schema.Schema {
	return p.outputSchema
}

func (p *AbstractPlanNode) GetChildAt(childIndex uint32) Plan {
	return p.children[childIndex]
}

func (p *AbstractPlanNode) GetChildren() []Plan {
	return p.children
}

func (p *AbstractPlanNode) setOutputSchema(sc *schema.Schema) {
	p.outputSchema = sc
}

func (p *AbstractPlanNode) cloneBase() *AbstractPlanNode {
	children := make([]Plan, 0, len(p.children))
	for _, child := range p.children {
		children = append(children, child.Clone())
	}
	return &AbstractPlanNode{p.outputSchema, children}
}
