// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package executors

import (
	pkgerrors "github.com/pkg/errors"
	"github.com/samehada-labs/pageqp/errors"
	"github.com/samehada-labs/pageqp/execution/plans"
	"github.com/samehada-labs/pageqp/storage/tuple"
)

type ExecutionEngine struct {
}

// Execute runs plan to the end and returns all output tuples.
// Intermediate files of every operator are removed before returning.
func (e *ExecutionEngine) Execute(plan plans.Plan, context *ExecutorContext) (ret []*tuple.Tuple, err error) {
	executor, err := e.CreateExecutor(plan, context)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := executor.Close(); cerr != nil && err == nil {
			ret, err = nil, cerr
		}
	}()

	if err = executor.Init(); err != nil {
		return nil, err
	}
	ret = make([]*tuple.Tuple, 0)
	for {
		batch, done, err := executor.Next()
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
		ret = append(ret, batch.Tuples()...)
	}
	return ret, nil
}

// CreateExecutor builds the executor tree for plan
func (e *ExecutionEngine) CreateExecutor(plan plans.Plan, context *ExecutorContext) (Executor, error) {
	switch p := plan.(type) {
	case *plans.SeqScanPlanNode:
		return NewSeqScanExecutor(context, p), nil
	case *plans.SelectionPlanNode:
		child, err := e.CreateExecutor(p.GetChildAt(0), context)
		if err != nil {
			return nil, err
		}
		return NewSelectionExecutor(context, p, child), nil
	case *plans.ProjectionPlanNode:
		child, err := e.CreateExecutor(p.GetChildAt(0), context)
		if err != nil {
			return nil, err
		}
		return NewProjectionExecutor(context, p, child), nil
	case *plans.OrderbyPlanNode:
		child, err := e.CreateExecutor(p.GetChildAt(0), context)
		if err != nil {
			return nil, err
		}
		return NewExternalSortExecutor(context, child, p.GetColIdxs()), nil
	case *plans.JoinPlanNode:
		left, err := e.CreateExecutor(p.GetLeftPlan(), context)
		if err != nil {
			return nil, err
		}
		right, err := e.CreateExecutor(p.GetRightPlan(), context)
		if err != nil {
			return nil, err
		}
		switch p.GetAlgorithm() {
		case plans.NestedLoopJoin:
			return NewNestedLoopJoinExecutor(context, p, left, right), nil
		case plans.BlockNestedLoopJoin:
			return NewBlockNestedLoopJoinExecutor(context, p, left, right), nil
		case plans.SortMergeJoin:
			return NewSortMergeJoinExecutor(context, p, left, right), nil
		}
		return nil, pkgerrors.Wrapf(errors.ErrUnsupportedPlan, "join algorithm %s", p.GetAlgorithm())
	}
	return nil, pkgerrors.Wrapf(errors.ErrUnsupportedPlan, "%T", plan)
}
