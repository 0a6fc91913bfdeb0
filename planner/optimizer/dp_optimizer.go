package optimizer

import (
	"fmt"
	"math"

	pair "github.com/notEpsilon/go-pair"
	pkgerrors "github.com/pkg/errors"
	"github.com/samehada-labs/pageqp/common"
	"github.com/samehada-labs/pageqp/errors"
	"github.com/samehada-labs/pageqp/execution/expression"
	"github.com/samehada-labs/pageqp/execution/plans"
)

/**
 * DynamicProgrammingOptimizer chooses join order, join algorithm and
 * orientation for the relations referenced by join conditions.
 *
 * Subsets of relations are solved in increasing size. A subset S is built
 * from a solved subset S' = S - {m} and the baseline plan of m when a
 * condition connects them. Every join algorithm is costed in both
 * orientations and the cheapest plan is memoized for S. On equal cost the
 * first candidate found is kept.
 *
 * Relations only taking part in cartesian products must not be passed in.
 * They are handled by the caller.
 */
type DynamicProgrammingOptimizer struct {
	graph    *JoinGraph
	baseline map[string]plans.Plan
	planCost *PlanCost
	memo     map[SubsetKey]*CostAndPlan
}

// NewDynamicProgrammingOptimizer takes the baseline access plan of every relation of conditions
func NewDynamicProgrammingOptimizer(conditions []*expression.JoinCondition, baseline map[string]plans.Plan, planCost *PlanCost) (*DynamicProgrammingOptimizer, error) {
	graph, err := NewJoinGraph(conditions)
	if err != nil {
		return nil, err
	}
	if graph.NumRelations() == 0 {
		return nil, fmt.Errorf("no join condition is given")
	}
	for _, name := range graph.Relations() {
		if _, ok := baseline[name]; !ok {
			return nil, fmt.Errorf("baseline plan of %s is not given", name)
		}
	}
	return &DynamicProgrammingOptimizer{graph, baseline, planCost, nil}, nil
}

func (o *DynamicProgrammingOptimizer) GetJoinGraph() *JoinGraph {
	return o.graph
}

func (o *DynamicProgrammingOptimizer) Optimize() (plans.Plan, error) {
	o.memo = make(map[SubsetKey]*CostAndPlan)
	n := o.graph.NumRelations()
	for idx, name := range o.graph.Relations() {
		base := o.baseline[name]
		o.memo[SingletonKey(idx)] = &CostAndPlan{o.planCost.EstimateCost(base), base}
	}

	for size := 2; size <= n; size++ {
		for _, subset := range SubsetsOfSize(n, size) {
			best, err := o.optimizeSubset(subset)
			if err != nil {
				return nil, err
			}
			if best.plan != nil && common.LogLevelSetting&common.DEBUG_INFO > 0 {
				common.ShPrintf(common.DEBUG_INFO, "sub-optimal plan of %v: cost %d\n%s", o.graph.NamesOf(subset), best.cost,
					plans.PlanTreeString(best.plan))
			}
		}
	}

	full := o.memo[o.graph.FullKey()]
	if full == nil || full.plan == nil {
		return nil, pkgerrors.Wrapf(errors.ErrUnreachableSubset, "relations %v", o.graph.Relations())
	}
	return full.plan.Clone(), nil
}

// splits returns (S', added) pairs of subset where added is one member
func splits(subset SubsetKey) []pair.Pair[SubsetKey, SubsetKey] {
	members := subset.Members()
	ret := make([]pair.Pair[SubsetKey, SubsetKey], 0, len(members))
	// removing the largest member first yields S' in ascending key order
	for ii := len(members) - 1; ii >= 0; ii-- {
		added := SingletonKey(members[ii])
		ret = append(ret, pair.Pair[SubsetKey, SubsetKey]{First: subset.Minus(added), Second: added})
	}
	return ret
}

func (o *DynamicProgrammingOptimizer) optimizeSubset(subset SubsetKey) (*CostAndPlan, error) {
	if ret, ok := o.memo[subset]; ok {
		return ret, nil
	}
	best := &CostAndPlan{math.MaxInt64, nil}

	if o.graph.ConditionExists(subset) {
		for _, split := range splits(subset) {
			prev, added := split.First, split.Second
			prevBest := o.memo[prev]
			if prevBest == nil || prevBest.plan == nil {
				continue
			}
			cond, err := o.graph.FindConditionBetween(prev, added)
			if err != nil {
				return nil, err
			}
			if cond == nil {
				continue
			}

			candidate := plans.NewJoinPlanNode(prevBest.plan, o.memo[added].plan, cond, plans.NestedLoopJoin)
			plan, cost := o.bestJoinPlan(candidate)
			// saturated costs still give the subset a plan
			if best.plan == nil || cost < best.cost {
				best = &CostAndPlan{cost, plan}
			}
		}
	}
	o.memo[subset] = best
	return best, nil
}

// bestJoinPlan costs node with every algorithm in both orientations
func (o *DynamicProgrammingOptimizer) bestJoinPlan(node *plans.JoinPlanNode) (plans.Plan, int64) {
	var bestPlan plans.Plan
	bestCost := int64(math.MaxInt64)
	for _, algorithm := range plans.JoinAlgorithms() {
		if algorithm == plans.SortMergeJoin && node.GetCondition().GetComparisonType() != expression.Equal {
			continue
		}
		original := node.WithAlgorithm(algorithm)
		if cost := o.planCost.EstimateCost(original); bestPlan == nil || cost < bestCost {
			bestPlan, bestCost = original, cost
		}
		swapped := plans.SwitchSubtree(original)
		if cost := o.planCost.EstimateCost(swapped); cost < bestCost {
			bestPlan, bestCost = swapped, cost
		}
	}
	return bestPlan, bestCost
}

/**
 * MemoizedPlan returns the plan memoized for the subset of names.
 * evaluated is false when the subset was never considered. plan is nil
 * for subsets without a join path.
 */
func (o *DynamicProgrammingOptimizer) MemoizedPlan(names ...string) (plan plans.Plan, evaluated bool, err error) {
	key, err := o.graph.KeyOf(names...)
	if err != nil {
		return nil, false, err
	}
	entry, ok := o.memo[key]
	if !ok {
		return nil, false, nil
	}
	return entry.plan, true, nil
}

// MemoizedCost returns math.MaxInt64 for subsets without a plan
func (o *DynamicProgrammingOptimizer) MemoizedCost(names ...string) (int64, error) {
	key, err := o.graph.KeyOf(names...)
	if err != nil {
		return 0, err
	}
	if entry, ok := o.memo[key]; ok {
		return entry.cost, nil
	}
	return math.MaxInt64, nil
}

func (o *DynamicProgrammingOptimizer) KeyOf(names ...string) (SubsetKey, error) {
	return o.graph.KeyOf(names...)
}
