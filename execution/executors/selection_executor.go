package executors

import (
	"github.com/samehada-labs/pageqp/errors"
	"github.com/samehada-labs/pageqp/execution/plans"
	"github.com/samehada-labs/pageqp/storage/page"
	"github.com/samehada-labs/pageqp/storage/table/schema"
)

/**
 * SelectionExecutor filters tuples of the child with the predicate of the
 * plan. Output Batches are filled up to the page capacity.
 */
type SelectionExecutor struct {
	context  *ExecutorContext
	plan     *plans.SelectionPlanNode
	child    Executor
	cursor   *batchCursor
	capacity int
}

func NewSelectionExecutor(context *ExecutorContext, plan *plans.SelectionPlanNode, child Executor) *SelectionExecutor {
	return &SelectionExecutor{context, plan, child, nil, context.PageCapacity(plan.OutputSchema())}
}

func (e *SelectionExecutor) GetOutputSchema() *schema.Schema { return e.plan.OutputSchema() }

func (e *SelectionExecutor) Init() error {
	if err := e.child.Init(); err != nil {
		return err
	}
	e.cursor = newBatchCursor(e.child)
	return nil
}

func (e *SelectionExecutor) Next() (*page.Batch, Done, error) {
	if e.cursor == nil {
		return nil, true, errors.ErrOperatorNotOpened
	}
	ret := page.NewBatch(e.capacity)
	predicate := e.plan.GetPredicate()
	childSchema := e.child.GetOutputSchema()
	for !ret.IsFull() {
		t, err := e.cursor.next()
		if err != nil {
			return nil, true, err
		}
		if t == nil {
			break
		}
		if predicate.Evaluate(t, childSchema) {
			ret.Add(t)
		}
	}
	if ret.IsEmpty() {
		return nil, true, nil
	}
	return ret, false, nil
}

func (e *SelectionExecutor) Close() error {
	e.cursor = nil
	return e.child.Close()
}
