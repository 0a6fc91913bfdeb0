package planner

import (
	mapset "github.com/deckarep/golang-set/v2"
	pkgerrors "github.com/pkg/errors"
	"github.com/samehada-labs/pageqp/catalog"
	"github.com/samehada-labs/pageqp/common"
	"github.com/samehada-labs/pageqp/execution/plans"
	"github.com/samehada-labs/pageqp/planner/optimizer"
	"github.com/samehada-labs/pageqp/storage/table/column"
	"github.com/samehada-labs/pageqp/storage/table/schema"
)

/**
 * SimplePlanner builds a plan for a QueryInfo:
 *   1. a baseline access plan per relation (scan and its selections)
 *   2. join order and algorithms by DynamicProgrammingOptimizer
 *   3. projection and ordering on top
 * Queries whose relations are not all connected by join conditions
 * (cartesian products) are rejected.
 */
type SimplePlanner struct {
	qi         *QueryInfo
	catalog_   *catalog.Catalog
	pageSize   int
	pageBudget int
	optimizer_ *optimizer.DynamicProgrammingOptimizer
}

func NewSimplePlanner(c *catalog.Catalog, pageSize int, pageBudget int) *SimplePlanner {
	return &SimplePlanner{nil, c, pageSize, pageBudget, nil}
}

func NewSimplePlannerFromConfig(c *catalog.Catalog, cfg *common.QPConfig) *SimplePlanner {
	return NewSimplePlanner(c, cfg.PageSize, cfg.PageBudget)
}

func (pner *SimplePlanner) MakePlan(qi *QueryInfo) (plans.Plan, error) {
	pner.qi = qi
	pner.optimizer_ = nil
	if len(qi.Relations) == 0 {
		return PrintAndCreateError("no relation is specified.")
	}

	baseline, err := pner.makeBaselinePlans()
	if err != nil {
		return nil, err
	}

	var root plans.Plan
	if len(qi.JoinConditions) == 0 {
		if len(qi.Relations) > 1 {
			return PrintAndCreateError("cartesian product is not supported.")
		}
		root = baseline[qi.Relations[0]]
	} else {
		root, err = pner.makeJoinPlan(baseline)
		if err != nil {
			return nil, err
		}
	}

	if len(qi.Projection) > 0 {
		if err := checkColumns(root.OutputSchema(), qi.Projection); err != nil {
			return nil, err
		}
		root = plans.NewProjectionPlanNode(root, qi.Projection)
	}
	if len(qi.OrderBy) > 0 {
		if err := checkColumns(root.OutputSchema(), qi.OrderBy); err != nil {
			return nil, err
		}
		root = plans.NewOrderbyPlanNode(root, qi.OrderBy)
	}
	common.ShPrintf(common.DEBUG_INFO, "SimplePlanner::MakePlan:\n%s", plans.PlanTreeString(root))
	return root, nil
}

// makeBaselinePlans returns a scan with the selections of its relation for each relation
func (pner *SimplePlanner) makeBaselinePlans() (map[string]plans.Plan, error) {
	ret := make(map[string]plans.Plan)
	for _, name := range pner.qi.Relations {
		if _, exist := ret[name]; exist {
			return PrintAndCreateErrorMap("relation " + name + " is specified twice.")
		}
		tableMetadata := pner.catalog_.GetTableByName(name)
		if tableMetadata == nil {
			return PrintAndCreateErrorMap("table " + name + " does not exist.")
		}
		ret[name] = plans.NewSeqScanPlanNode(tableMetadata.Schema(), name)
	}

	for _, predicate := range pner.qi.Selections {
		tblName := predicate.GetColumn().GetTableName()
		base, ok := ret[tblName]
		if !ok {
			return PrintAndCreateErrorMap("selection " + predicate.String() + " refers to unknown relation.")
		}
		if !base.OutputSchema().Contains(predicate.GetColumn()) {
			return PrintAndCreateErrorMap("column " + predicate.GetColumn().String() + " does not exist.")
		}
		ret[tblName] = plans.NewSelectionPlanNode(base, predicate)
	}
	return ret, nil
}

func (pner *SimplePlanner) makeJoinPlan(baseline map[string]plans.Plan) (plans.Plan, error) {
	joined := mapset.NewThreadUnsafeSet[string]()
	for _, cond := range pner.qi.JoinConditions {
		for _, col := range []*column.Column{cond.GetLhs(), cond.GetRhs()} {
			if _, ok := baseline[col.GetTableName()]; !ok {
				return PrintAndCreateError("join condition " + cond.String() + " refers to unknown relation.")
			}
			joined.Add(col.GetTableName())
		}
		if !baseline[cond.GetLhs().GetTableName()].OutputSchema().Contains(cond.GetLhs()) ||
			!baseline[cond.GetRhs().GetTableName()].OutputSchema().Contains(cond.GetRhs()) {
			return PrintAndCreateError("join condition " + cond.String() + " refers to unknown column.")
		}
	}
	if !mapset.NewThreadUnsafeSet[string](pner.qi.Relations...).Equal(joined) {
		return PrintAndCreateError("cartesian product is not supported.")
	}

	planCost := optimizer.NewPlanCost(pner.catalog_, pner.pageSize, pner.pageBudget)
	opt, err := optimizer.NewDynamicProgrammingOptimizer(pner.qi.JoinConditions, baseline, planCost)
	if err != nil {
		return nil, err
	}
	pner.optimizer_ = opt
	return opt.Optimize()
}

// GetOptimizer returns the optimizer used by the last MakePlan. nil when no join was planned
func (pner *SimplePlanner) GetOptimizer() *optimizer.DynamicProgrammingOptimizer {
	return pner.optimizer_
}

func checkColumns(sc *schema.Schema, cols []*column.Column) error {
	for _, col := range cols {
		if !sc.Contains(col) {
			_, err := PrintAndCreateError("column " + col.String() + " does not exist.")
			return err
		}
	}
	return nil
}

func PrintAndCreateError(errStr string) (plans.Plan, error) {
	common.ShPrintf(common.ERROR, "%s\n", errStr)
	return nil, pkgerrors.New(errStr)
}

func PrintAndCreateErrorMap(errStr string) (map[string]plans.Plan, error) {
	_, err := PrintAndCreateError(errStr)
	return nil, err
}
