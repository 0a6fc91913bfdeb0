package plans

import (
	"fmt"

	"github.com/samehada-labs/pageqp/common"
	"github.com/samehada-labs/pageqp/execution/expression"
)

type JoinAlgorithm int32

const (
	NestedLoopJoin JoinAlgorithm = iota
	BlockNestedLoopJoin
	SortMergeJoin
)

// JoinAlgorithms lists every physical join algorithm, in the order the optimizer tries them
func JoinAlgorithms() []JoinAlgorithm {
	return []JoinAlgorithm{NestedLoopJoin, BlockNestedLoopJoin, SortMergeJoin}
}

func (a JoinAlgorithm) String() string {
	switch a {
	case NestedLoopJoin:
		return "NestedLoop"
	case BlockNestedLoopJoin:
		return "BlockNestedLoop"
	case SortMergeJoin:
		return "SortMerge"
	}
	return "Unknown"
}

type Orientation int32

const (
	OriginalOrientation Orientation = iota
	SwappedOrientation
)

func (o Orientation) Toggle() Orientation {
	if o == OriginalOrientation {
		return SwappedOrientation
	}
	return OriginalOrientation
}

/**
 * JoinPlanNode joins two children on one binary condition. The condition's lhs is
 * an attribute of the left child and rhs one of the right child.
 * Execution dispatches on algorithm.
 */
type JoinPlanNode struct {
	*AbstractPlanNode
	condition   *expression.JoinCondition
	algorithm   JoinAlgorithm
	orientation Orientation
}

func NewJoinPlanNode(left Plan, right Plan, condition *expression.JoinCondition, algorithm JoinAlgorithm) *JoinPlanNode {
	return &JoinPlanNode{
		&AbstractPlanNode{left.OutputSchema().JoinWith(right.OutputSchema()), []Plan{left, right}},
		condition, algorithm, OriginalOrientation}
}

func (p *JoinPlanNode) GetType() PlanType { return Join }

func (p *JoinPlanNode) GetCondition() *expression.JoinCondition { return p.condition }

func (p *JoinPlanNode) GetAlgorithm() JoinAlgorithm { return p.algorithm }

func (p *JoinPlanNode) GetOrientation() Orientation { return p.orientation }

// WithAlgorithm returns a copy sharing children with p
func (p *JoinPlanNode) WithAlgorithm(algorithm JoinAlgorithm) *JoinPlanNode {
	return &JoinPlanNode{&AbstractPlanNode{p.outputSchema, []Plan{p.children[0], p.children[1]}},
		p.condition.Clone(), algorithm, p.orientation}
}

func (p *JoinPlanNode) GetLeftPlan() Plan {
	common.SH_Assert(len(p.GetChildren()) == 2, "joins should have exactly two children plans.")
	return p.GetChildAt(0)
}

func (p *JoinPlanNode) GetRightPlan() Plan {
	common.SH_Assert(len(p.GetChildren()) == 2, "joins should have exactly two children plans.")
	return p.GetChildAt(1)
}

/** @return index of the condition's lhs in the left child's schema */
func (p *JoinPlanNode) GetLeftKeyIdx() int {
	return p.GetLeftPlan().OutputSchema().IndexOf(p.condition.GetLhs())
}

/** @return index of the condition's rhs in the right child's schema */
func (p *JoinPlanNode) GetRightKeyIdx() int {
	return p.GetRightPlan().OutputSchema().IndexOf(p.condition.GetRhs())
}

func (p *JoinPlanNode) Clone() Plan {
	return &JoinPlanNode{p.cloneBase(), p.condition.Clone(), p.algorithm, p.orientation}
}

func (p *JoinPlanNode) GetDebugStr() string {
	return fmt.Sprintf("Join[%s](%s)", p.algorithm, p.condition)
}
