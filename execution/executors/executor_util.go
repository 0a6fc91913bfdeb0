package executors

import (
	"github.com/samehada-labs/pageqp/errors"
	"github.com/samehada-labs/pageqp/storage/page"
	"github.com/samehada-labs/pageqp/storage/tuple"
)

/**
 * batchCursor walks tuples of a child executor one at a time across Batch
 * boundaries. It holds at most one child Batch.
 */
type batchCursor struct {
	child Executor
	batch *page.Batch
	pos   int
	done  bool
}

func newBatchCursor(child Executor) *batchCursor {
	return &batchCursor{child, nil, 0, false}
}

// peek returns the current tuple without consuming it. nil at end of stream
func (c *batchCursor) peek() (*tuple.Tuple, error) {
	for !c.done && (c.batch == nil || c.pos >= c.batch.Size()) {
		b, done, err := c.child.Next()
		if err != nil {
			return nil, err
		}
		if done {
			c.done = true
			c.batch = nil
			break
		}
		c.batch = b
		c.pos = 0
	}
	if c.done {
		return nil, nil
	}
	return c.batch.Get(c.pos), nil
}

func (c *batchCursor) next() (*tuple.Tuple, error) {
	t, err := c.peek()
	if t != nil {
		c.pos++
	}
	return t, err
}

// heldTuples is the size of the Batch held by the cursor
func (c *batchCursor) heldTuples() int {
	if c.batch == nil {
		return 0
	}
	return c.batch.Size()
}

// closeAll closes executors and returns the first error
func closeAll(execs ...Executor) error {
	var ret error
	for _, e := range execs {
		if e == nil {
			continue
		}
		if err := e.Close(); err != nil && ret == nil {
			ret = err
		}
	}
	return ret
}

func checkBudget(operator string, budget int, min int) error {
	if budget < min {
		return errors.NewBudgetError(operator, budget, min)
	}
	return nil
}
