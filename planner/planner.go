package planner

import (
	"github.com/samehada-labs/pageqp/execution/plans"
)

type Planner interface {
	MakePlan(*QueryInfo) (plans.Plan, error)
}
