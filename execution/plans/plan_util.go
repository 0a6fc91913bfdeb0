package plans

import (
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	stack "github.com/golang-collections/collections/stack"
)

/**
 * SwitchSubtree returns a copy of node with children swapped, condition
 * flipped and orientation toggled. Schemas of the copied subtree are
 * recomputed. node itself is not changed.
 */
func SwitchSubtree(node *JoinPlanNode) *JoinPlanNode {
	cloned := node.Clone().(*JoinPlanNode)
	cloned.children[0], cloned.children[1] = cloned.children[1], cloned.children[0]
	cloned.condition.Flip()
	cloned.orientation = cloned.orientation.Toggle()
	RecomputeSchema(cloned)
	return cloned
}

// RecomputeSchema rebuilds output schemas of root and its descendants, children first
func RecomputeSchema(root Plan) {
	order := make([]Plan, 0)
	st := stack.New()
	st.Push(root)
	for st.Len() > 0 {
		node := st.Pop().(Plan)
		order = append(order, node)
		for _, child := range node.GetChildren() {
			st.Push(child)
		}
	}

	// every node appears before its descendants in order
	for ii := len(order) - 1; ii >= 0; ii-- {
		switch p := order[ii].(type) {
		case *JoinPlanNode:
			p.setOutputSchema(p.GetLeftPlan().OutputSchema().JoinWith(p.GetRightPlan().OutputSchema()))
		case *SelectionPlanNode:
			p.setOutputSchema(p.GetChildPlan().OutputSchema())
		case *OrderbyPlanNode:
			p.setOutputSchema(p.GetChildPlan().OutputSchema())
		case *ProjectionPlanNode:
			p.setOutputSchema(p.GetChildPlan().OutputSchema().SubSchema(p.GetColumns()))
		}
	}
}

// RelationsOf returns names of the base relations scanned under root
func RelationsOf(root Plan) mapset.Set[string] {
	ret := mapset.NewSet[string]()
	st := stack.New()
	st.Push(root)
	for st.Len() > 0 {
		node := st.Pop().(Plan)
		if scan, ok := node.(*SeqScanPlanNode); ok {
			ret.Add(scan.GetTableName())
		}
		for _, child := range node.GetChildren() {
			st.Push(child)
		}
	}
	return ret
}

// CountJoins returns the number of join nodes under root
func CountJoins(root Plan) int {
	if root == nil {
		return 0
	}
	ret := 0
	if root.GetType() == Join {
		ret++
	}
	for _, child := range root.GetChildren() {
		ret += CountJoins(child)
	}
	return ret
}

func PlanTreeString(plan Plan) string {
	sb := new(strings.Builder)
	writePlanTree(sb, plan, 0)
	return sb.String()
}

func writePlanTree(sb *strings.Builder, plan Plan, indent int) {
	sb.WriteString(strings.Repeat(" ", indent))
	sb.WriteString(plan.GetDebugStr())
	sb.WriteString("\n")
	for _, child := range plan.GetChildren() {
		writePlanTree(sb, child, indent+2)
	}
}

func PrintPlanTree(plan Plan, indent int) {
	for ii := 0; ii < indent; ii++ {
		fmt.Print(" ")
	}
	fmt.Print(plan.GetDebugStr())
	fmt.Println("")

	for _, child := range plan.GetChildren() {
		PrintPlanTree(child, indent+2)
	}
}
