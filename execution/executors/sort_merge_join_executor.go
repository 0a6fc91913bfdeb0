package executors

import (
	"fmt"

	"github.com/samehada-labs/pageqp/common"
	"github.com/samehada-labs/pageqp/errors"
	"github.com/samehada-labs/pageqp/execution/expression"
	"github.com/samehada-labs/pageqp/execution/plans"
	"github.com/samehada-labs/pageqp/storage/page"
	"github.com/samehada-labs/pageqp/storage/table/schema"
	"github.com/samehada-labs/pageqp/storage/tuple"
)

/**
 * SortMergeJoinExecutor sorts both inputs on their join keys with
 * ExternalSortExecutor and merges the sorted streams.
 *
 * The right tuples sharing the current key (the equal-key run) are
 * buffered in memory, and each matching left tuple is joined with the
 * whole run. A run is assumed to fit in the page budget. Skewed keys
 * whose run is larger than the budget are held anyway; there is no spill
 * for the run buffer.
 */
type SortMergeJoinExecutor struct {
	context     *ExecutorContext
	plan        *plans.JoinPlanNode
	leftSort    *ExternalSortExecutor
	rightSort   *ExternalSortExecutor
	leftKeyIdx  int
	rightKeyIdx int
	outCapacity int

	leftCursor  *batchCursor
	rightCursor *batchCursor
	// equal-key run of the right input and the position to resume from
	run    []*tuple.Tuple
	runPos int
	done   bool
	opened bool

	maxRunLength int
}

func NewSortMergeJoinExecutor(context *ExecutorContext, plan *plans.JoinPlanNode, left Executor, right Executor) *SortMergeJoinExecutor {
	leftKeyIdx := left.GetOutputSchema().IndexOf(plan.GetCondition().GetLhs())
	rightKeyIdx := right.GetOutputSchema().IndexOf(plan.GetCondition().GetRhs())
	return &SortMergeJoinExecutor{
		context:     context,
		plan:        plan,
		leftSort:    NewExternalSortExecutor(context, left, []int{leftKeyIdx}),
		rightSort:   NewExternalSortExecutor(context, right, []int{rightKeyIdx}),
		leftKeyIdx:  leftKeyIdx,
		rightKeyIdx: rightKeyIdx,
		outCapacity: context.PageCapacity(plan.OutputSchema()),
	}
}

func (e *SortMergeJoinExecutor) GetOutputSchema() *schema.Schema { return e.plan.OutputSchema() }

func (e *SortMergeJoinExecutor) Init() error {
	if err := checkBudget("sort merge join", e.context.GetPageBudget(), common.MinSortBudget); err != nil {
		return err
	}
	if e.plan.GetCondition().GetComparisonType() != expression.Equal {
		return fmt.Errorf("sort merge join supports only equality conditions: %s", e.plan.GetCondition())
	}
	if e.leftKeyIdx < 0 || e.rightKeyIdx < 0 {
		return fmt.Errorf("sort merge join: condition %s does not match child schemas", e.plan.GetCondition())
	}
	if err := e.Close(); err != nil {
		return err
	}

	if err := e.leftSort.Init(); err != nil {
		e.abort()
		return err
	}
	if err := e.rightSort.Init(); err != nil {
		e.abort()
		return err
	}
	e.leftCursor = newBatchCursor(e.leftSort)
	e.rightCursor = newBatchCursor(e.rightSort)
	e.run = e.run[:0]
	e.runPos = 0
	e.done = false
	e.maxRunLength = 0
	e.opened = true
	return nil
}

// loadRun buffers the next group of right tuples with equal keys. empty run at end of right input
func (e *SortMergeJoinExecutor) loadRun() error {
	e.run = e.run[:0]
	e.runPos = 0
	first, err := e.rightCursor.next()
	if err != nil || first == nil {
		return err
	}
	e.run = append(e.run, first)
	for {
		t, err := e.rightCursor.peek()
		if err != nil {
			return err
		}
		if t == nil || tuple.CompareTuples(t, first, e.rightKeyIdx, e.rightKeyIdx) != 0 {
			break
		}
		e.run = append(e.run, t)
		e.rightCursor.next()
	}
	if len(e.run) > e.maxRunLength {
		e.maxRunLength = len(e.run)
	}
	return nil
}

func (e *SortMergeJoinExecutor) Next() (*page.Batch, Done, error) {
	if !e.opened {
		return nil, true, errors.ErrOperatorNotOpened
	}
	outBatch := page.NewBatch(e.outCapacity)
	for !e.done && !outBatch.IsFull() {
		leftTuple, err := e.leftCursor.peek()
		if err != nil {
			e.abort()
			return nil, true, err
		}
		if leftTuple == nil {
			e.done = true
			break
		}
		if len(e.run) == 0 {
			if err := e.loadRun(); err != nil {
				e.abort()
				return nil, true, err
			}
			if len(e.run) == 0 {
				// right input exhausted, no left tuple can match any more
				e.done = true
				break
			}
		}

		cmp := tuple.CompareTuples(leftTuple, e.run[0], e.leftKeyIdx, e.rightKeyIdx)
		switch {
		case cmp < 0 || leftTuple.GetValue(e.leftKeyIdx).IsNull():
			e.leftCursor.next()
		case cmp > 0:
			// the next run has a larger key
			e.run = e.run[:0]
		default:
			for e.runPos < len(e.run) && !outBatch.IsFull() {
				if !e.run[e.runPos].GetValue(e.rightKeyIdx).IsNull() {
					outBatch.Add(leftTuple.JoinWith(e.run[e.runPos]))
				}
				e.runPos++
			}
			if e.runPos >= len(e.run) {
				// keep the run for following left tuples with the same key
				e.runPos = 0
				e.leftCursor.next()
			}
		}
	}
	if outBatch.IsEmpty() {
		return nil, true, nil
	}
	return outBatch, false, nil
}

func (e *SortMergeJoinExecutor) abort() {
	if err := e.Close(); err != nil {
		common.ShPrintf(common.ERROR, "SortMergeJoinExecutor::abort: %v\n", err)
	}
}

// Close closes both sorts, which remove their run files
func (e *SortMergeJoinExecutor) Close() error {
	ret := closeAll(e.leftSort, e.rightSort)
	e.leftCursor = nil
	e.rightCursor = nil
	e.run = e.run[:0]
	e.opened = false
	return ret
}

// MaxRunLength is the longest equal-key run buffered so far
func (e *SortMergeJoinExecutor) MaxRunLength() int { return e.maxRunLength }

func (e *SortMergeJoinExecutor) LeftSort() *ExternalSortExecutor { return e.leftSort }

func (e *SortMergeJoinExecutor) RightSort() *ExternalSortExecutor { return e.rightSort }
