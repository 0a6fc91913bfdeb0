package executors

import (
	"fmt"

	"github.com/samehada-labs/pageqp/errors"
	"github.com/samehada-labs/pageqp/execution/plans"
	"github.com/samehada-labs/pageqp/storage/page"
	"github.com/samehada-labs/pageqp/storage/table/schema"
)

type ProjectionExecutor struct {
	context  *ExecutorContext
	plan     *plans.ProjectionPlanNode
	child    Executor
	cursor   *batchCursor
	colIdxs  []int
	capacity int
}

func NewProjectionExecutor(context *ExecutorContext, plan *plans.ProjectionPlanNode, child Executor) *ProjectionExecutor {
	return &ProjectionExecutor{context, plan, child, nil, nil, context.PageCapacity(plan.OutputSchema())}
}

func (e *ProjectionExecutor) GetOutputSchema() *schema.Schema { return e.plan.OutputSchema() }

func (e *ProjectionExecutor) Init() error {
	childSchema := e.child.GetOutputSchema()
	e.colIdxs = make([]int, 0, len(e.plan.GetColumns()))
	for _, col := range e.plan.GetColumns() {
		idx := childSchema.IndexOf(col)
		if idx < 0 {
			return fmt.Errorf("projection column %s is not in %s", col, childSchema)
		}
		e.colIdxs = append(e.colIdxs, idx)
	}
	if err := e.child.Init(); err != nil {
		return err
	}
	e.cursor = newBatchCursor(e.child)
	return nil
}

func (e *ProjectionExecutor) Next() (*page.Batch, Done, error) {
	if e.cursor == nil {
		return nil, true, errors.ErrOperatorNotOpened
	}
	ret := page.NewBatch(e.capacity)
	for !ret.IsFull() {
		t, err := e.cursor.next()
		if err != nil {
			return nil, true, err
		}
		if t == nil {
			break
		}
		ret.Add(t.Project(e.colIdxs))
	}
	if ret.IsEmpty() {
		return nil, true, nil
	}
	return ret, false, nil
}

func (e *ProjectionExecutor) Close() error {
	e.cursor = nil
	return e.child.Close()
}
