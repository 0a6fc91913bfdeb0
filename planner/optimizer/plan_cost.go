package optimizer

import (
	"math"
	"math/big"

	"github.com/golang-collections/collections/stack"
	"github.com/samehada-labs/pageqp/catalog"
	"github.com/samehada-labs/pageqp/common"
	"github.com/samehada-labs/pageqp/execution/expression"
	"github.com/samehada-labs/pageqp/execution/plans"
	"github.com/samehada-labs/pageqp/storage/page"
	"github.com/samehada-labs/pageqp/storage/table/schema"
)

// cardinality assumed for relations without statistics
const DefaultTableCardinality = 1000

// selectivity of predicates other than equality is 1/InequalitySelectivityDivisor
const InequalitySelectivityDivisor = 3

// StatisticsSource supplies per relation statistics. *catalog.Catalog implements it
type StatisticsSource interface {
	GetStatistics(tableName string) *catalog.TableStatistics
}

// planEstimate is the estimated output of a plan node
type planEstimate struct {
	cost     int64
	tuples   int64
	distinct map[string]int64 // column -> distinct values in the output
}

func (pe *planEstimate) distinctOf(colName string) int64 {
	ret, ok := pe.distinct[colName]
	if !ok || ret > pe.tuples {
		ret = pe.tuples
	}
	if ret < 1 {
		return 1
	}
	return ret
}

/**
 * PlanCost estimates the I/O cost of a plan tree in pages.
 *
 * scan: pages of the relation
 * nested loop join: Lp + Lp*Rp
 * block nested loop join: Lp + ceil(Lp/(B-2))*Rp
 * sort merge join: sort(Lp) + sort(Rp) + Lp + Rp
 * sort(p): 2p * (1 + ceil(log_{B-1}(ceil(p/B))))
 *
 * Costs of children are added to the cost of a node. Output sizes of
 * joins depend only on the relations and conditions below them (see
 * joinTuples), so every plan of a relation subset has the same output.
 */
type PlanCost struct {
	stats      StatisticsSource
	pageSize   int
	pageBudget int
}

func NewPlanCost(stats StatisticsSource, pageSize int, pageBudget int) *PlanCost {
	return &PlanCost{stats, pageSize, pageBudget}
}

// EstimateCost returns the cost of plan in pages
func (pc *PlanCost) EstimateCost(plan plans.Plan) int64 {
	return pc.estimate(plan).cost
}

// EstimateTuples returns the estimated number of output tuples of plan
func (pc *PlanCost) EstimateTuples(plan plans.Plan) int64 {
	return pc.estimate(plan).tuples
}

func (pc *PlanCost) budget() int64 {
	// executors reject smaller budgets, the estimate only needs to stay finite
	if pc.pageBudget < common.MinSortBudget {
		return common.MinSortBudget
	}
	return int64(pc.pageBudget)
}

func (pc *PlanCost) pages(tuples int64, sc *schema.Schema) int64 {
	capacity := int64(page.Capacity(pc.pageSize, sc.TupleSize()))
	return ceilDiv(tuples, capacity)
}

func (pc *PlanCost) estimate(plan plans.Plan) *planEstimate {
	switch p := plan.(type) {
	case *plans.SeqScanPlanNode:
		return pc.estimateScan(p)
	case *plans.SelectionPlanNode:
		return pc.estimateSelection(p)
	case *plans.ProjectionPlanNode:
		child := pc.estimate(p.GetChildPlan())
		return &planEstimate{child.cost, child.tuples, child.distinct}
	case *plans.OrderbyPlanNode:
		child := pc.estimate(p.GetChildPlan())
		sortCost := pc.sortCost(pc.pages(child.tuples, p.OutputSchema()))
		return &planEstimate{satAdd(child.cost, sortCost), child.tuples, child.distinct}
	case *plans.JoinPlanNode:
		return pc.estimateJoin(p)
	}
	panic("unknown plan type is passed to PlanCost")
}

func (pc *PlanCost) estimateScan(p *plans.SeqScanPlanNode) *planEstimate {
	var stats *catalog.TableStatistics
	if pc.stats != nil {
		stats = pc.stats.GetStatistics(p.GetTableName())
	}
	if stats == nil {
		common.ShPrintf(common.DEBUG_INFO, "PlanCost: no statistics for %s\n", p.GetTableName())
		stats = catalog.NewTableStatistics(DefaultTableCardinality)
	}
	ret := &planEstimate{tuples: stats.Cardinality(), distinct: make(map[string]int64)}
	for _, col := range p.OutputSchema().GetColumns() {
		ret.distinct[col.String()] = stats.Distinct(col.GetColumnName())
	}
	ret.cost = pc.pages(ret.tuples, p.OutputSchema())
	return ret
}

func (pc *PlanCost) estimateSelection(p *plans.SelectionPlanNode) *planEstimate {
	child := pc.estimate(p.GetChildPlan())
	predicate := p.GetPredicate()
	colName := predicate.GetColumn().String()

	var tuples int64
	if predicate.GetComparisonType() == expression.Equal {
		tuples = ceilDiv(child.tuples, child.distinctOf(colName))
	} else {
		tuples = ceilDiv(child.tuples, InequalitySelectivityDivisor)
	}
	ret := &planEstimate{child.cost, tuples, make(map[string]int64)}
	for name, d := range child.distinct {
		ret.distinct[name] = minInt64(d, tuples)
	}
	if predicate.GetComparisonType() == expression.Equal {
		ret.distinct[colName] = 1
	}
	return ret
}

func (pc *PlanCost) estimateJoin(p *plans.JoinPlanNode) *planEstimate {
	left := pc.estimate(p.GetLeftPlan())
	right := pc.estimate(p.GetRightPlan())
	tuples := pc.joinTuples(p)

	ret := &planEstimate{tuples: tuples, distinct: make(map[string]int64)}
	for name, d := range left.distinct {
		ret.distinct[name] = minInt64(d, tuples)
	}
	for name, d := range right.distinct {
		ret.distinct[name] = minInt64(d, tuples)
	}

	leftPages := pc.pages(left.tuples, p.GetLeftPlan().OutputSchema())
	rightPages := pc.pages(right.tuples, p.GetRightPlan().OutputSchema())
	joinCost := pc.joinCost(p.GetAlgorithm(), leftPages, rightPages)
	ret.cost = satAdd(satAdd(left.cost, right.cost), joinCost)
	return ret
}

/**
 * joinTuples estimates the output of a join tree from its leaves only:
 *   prod(|leaf|) / prod(max(dl, dr)) over the equality conditions
 * where dl and dr are distinct counts of the leaves, and 3 for the
 * other conditions. The result is the same for every shape and
 * orientation of a tree over the same leaves and conditions.
 */
func (pc *PlanCost) joinTuples(p *plans.JoinPlanNode) int64 {
	leaves := make([]*planEstimate, 0)
	conds := make([]*expression.JoinCondition, 0)
	st := stack.New()
	st.Push(plans.Plan(p))
	for st.Len() > 0 {
		node := st.Pop().(plans.Plan)
		if join, ok := node.(*plans.JoinPlanNode); ok {
			conds = append(conds, join.GetCondition())
			st.Push(join.GetLeftPlan())
			st.Push(join.GetRightPlan())
			continue
		}
		leaves = append(leaves, pc.estimate(node))
	}

	distinct := make(map[string]int64)
	num := big.NewInt(1)
	for _, leaf := range leaves {
		num.Mul(num, big.NewInt(leaf.tuples))
		for name := range leaf.distinct {
			distinct[name] = leaf.distinctOf(name)
		}
	}
	den := big.NewInt(1)
	for _, cond := range conds {
		divisor := int64(InequalitySelectivityDivisor)
		if cond.GetComparisonType() == expression.Equal {
			divisor = maxInt64(distinctOrOne(distinct, cond.GetLhs().String()), distinctOrOne(distinct, cond.GetRhs().String()))
		}
		den.Mul(den, big.NewInt(divisor))
	}

	if num.Sign() <= 0 {
		return 0
	}
	quo, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	if rem.Sign() != 0 {
		quo.Add(quo, big.NewInt(1))
	}
	if !quo.IsInt64() {
		return math.MaxInt64
	}
	return quo.Int64()
}

func distinctOrOne(distinct map[string]int64, colName string) int64 {
	if d, ok := distinct[colName]; ok && d > 0 {
		return d
	}
	return 1
}

func (pc *PlanCost) joinCost(algorithm plans.JoinAlgorithm, leftPages int64, rightPages int64) int64 {
	switch algorithm {
	case plans.NestedLoopJoin:
		return satAdd(leftPages, satMul(leftPages, rightPages))
	case plans.BlockNestedLoopJoin:
		blocks := ceilDiv(leftPages, pc.budget()-2)
		return satAdd(leftPages, satMul(blocks, rightPages))
	case plans.SortMergeJoin:
		return satAdd(satAdd(pc.sortCost(leftPages), pc.sortCost(rightPages)), leftPages+rightPages)
	}
	return math.MaxInt64
}

// sortCost is the I/O of an external sort of pages pages: one read and one write per pass
func (pc *PlanCost) sortCost(pages int64) int64 {
	if pages == 0 {
		return 0
	}
	b := pc.budget()
	passes := int64(0)
	for runs := ceilDiv(pages, b); runs > 1; runs = ceilDiv(runs, b-1) {
		passes++
	}
	return satMul(2*pages, 1+passes)
}

func ceilDiv(a int64, b int64) int64 {
	if a <= 0 {
		return 0
	}
	ret := a / b
	if a%b != 0 {
		ret++
	}
	return ret
}

func satAdd(a int64, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

func satMul(a int64, b int64) int64 {
	if a != 0 && b > math.MaxInt64/a {
		return math.MaxInt64
	}
	return a * b
}

func minInt64(a int64, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func maxInt64(a int64, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
