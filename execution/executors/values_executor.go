package executors

import (
	"github.com/samehada-labs/pageqp/errors"
	"github.com/samehada-labs/pageqp/storage/page"
	"github.com/samehada-labs/pageqp/storage/table/schema"
	"github.com/samehada-labs/pageqp/storage/tuple"
)

// ValuesExecutor emits in-memory tuples, one page sized Batch per Next
type ValuesExecutor struct {
	context  *ExecutorContext
	schema   *schema.Schema
	tuples   []*tuple.Tuple
	capacity int
	curIdx   int
	opened   bool
}

func NewValuesExecutor(context *ExecutorContext, sc *schema.Schema, tuples []*tuple.Tuple) *ValuesExecutor {
	return &ValuesExecutor{context, sc, tuples, context.PageCapacity(sc), 0, false}
}

func (e *ValuesExecutor) GetOutputSchema() *schema.Schema { return e.schema }

func (e *ValuesExecutor) Init() error {
	e.curIdx = 0
	e.opened = true
	return nil
}

func (e *ValuesExecutor) Next() (*page.Batch, Done, error) {
	if !e.opened {
		return nil, true, errors.ErrOperatorNotOpened
	}
	if e.curIdx >= len(e.tuples) {
		return nil, true, nil
	}
	ret := page.NewBatch(e.capacity)
	for e.curIdx < len(e.tuples) && !ret.IsFull() {
		ret.Add(e.tuples[e.curIdx])
		e.curIdx++
	}
	return ret, false, nil
}

func (e *ValuesExecutor) Close() error {
	e.opened = false
	return nil
}
