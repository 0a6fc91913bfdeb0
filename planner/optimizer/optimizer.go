package optimizer

import (
	"github.com/samehada-labs/pageqp/execution/plans"
)

// Optimizer returns an executable plan for all relations it was given
type Optimizer interface {
	Optimize() (plans.Plan, error)
}

// CostAndPlan is a memo entry. plan is nil when the relation subset has no join path
type CostAndPlan struct {
	cost int64
	plan plans.Plan
}

func (cp *CostAndPlan) GetCost() int64 { return cp.cost }

func (cp *CostAndPlan) GetPlan() plans.Plan { return cp.plan }
