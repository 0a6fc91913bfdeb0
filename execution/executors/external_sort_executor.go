package executors

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	queue "github.com/golang-collections/collections/queue"
	"github.com/samehada-labs/pageqp/common"
	"github.com/samehada-labs/pageqp/errors"
	"github.com/samehada-labs/pageqp/materialization"
	"github.com/samehada-labs/pageqp/storage/page"
	"github.com/samehada-labs/pageqp/storage/table/schema"
	"github.com/samehada-labs/pageqp/storage/tuple"
	"github.com/tidwall/btree"
	"golang.org/x/exp/slices"
)

/**
 * ExternalSortExecutor sorts the output of child in ascending order of
 * keyIdxs holding at most budget pages at any instant.
 *
 * Init runs the whole sort:
 *   1. run generation: blocks of up to budget pages are stable sorted in
 *      memory and written to run files.
 *   2. merge: groups of up to budget-1 runs are merged with a k-way merge
 *      (one input page per run and one output page) until one run is left.
 * Next streams the final run. Close removes every run file.
 *
 * Ties are resolved by run order, so the sort is stable.
 */
type ExternalSortExecutor struct {
	context  *ExecutorContext
	child    Executor
	keyIdxs  []int
	budget   int
	capacity int
	baseName string
	files    mapset.Set[string] // run files owned by this executor
	reader   *materialization.BatchReader
	opened   bool

	numRuns            int
	numPasses          int
	heldTuples         int
	peakInMemoryTuples int
}

func NewExternalSortExecutor(context *ExecutorContext, child Executor, keyIdxs []int) *ExternalSortExecutor {
	return &ExternalSortExecutor{
		context:  context,
		child:    child,
		keyIdxs:  keyIdxs,
		budget:   context.GetPageBudget(),
		capacity: context.PageCapacity(child.GetOutputSchema()),
		files:    mapset.NewThreadUnsafeSet[string](),
	}
}

func (e *ExternalSortExecutor) GetOutputSchema() *schema.Schema { return e.child.GetOutputSchema() }

func (e *ExternalSortExecutor) Init() error {
	if err := checkBudget("external sort", e.budget, common.MinSortBudget); err != nil {
		return err
	}
	// reopening starts from scratch
	if err := e.Close(); err != nil {
		return err
	}
	e.baseName = e.context.GetIDGenerator().NextName("sort")
	e.numRuns, e.numPasses, e.heldTuples, e.peakInMemoryTuples = 0, 0, 0, 0

	if err := e.child.Init(); err != nil {
		e.abort()
		return err
	}
	runs, err := e.generateRuns()
	if err != nil {
		e.abort()
		return err
	}
	if err := e.child.Close(); err != nil {
		e.abort()
		return err
	}
	common.ShPrintf(common.DEBUG_INFO, "ExternalSortExecutor::Init: %s generated %d runs (budget %d, page capacity %d)\n",
		e.baseName, e.numRuns, e.budget, e.capacity)

	if runs.Len() > 0 {
		final, err := e.mergeRuns(runs)
		if err != nil {
			e.abort()
			return err
		}
		e.reader, err = materialization.NewBatchReader(e.context.GetTmpFileManager(), final)
		if err != nil {
			e.abort()
			return err
		}
	}
	e.opened = true
	return nil
}

func (e *ExternalSortExecutor) compare(a *tuple.Tuple, b *tuple.Tuple) int {
	return tuple.CompareOnKeys(a, b, e.keyIdxs)
}

func (e *ExternalSortExecutor) trackMemory(held int) {
	e.heldTuples = held
	if held > e.peakInMemoryTuples {
		e.peakInMemoryTuples = held
	}
}

func (e *ExternalSortExecutor) runName(pass int, idx int) string {
	return fmt.Sprintf("%s-p%d-r%d", e.baseName, pass, idx)
}

func (e *ExternalSortExecutor) generateRuns() (*queue.Queue, error) {
	runs := queue.New()
	block := page.NewBatchesBlock(e.budget, e.capacity)

	flush := func() error {
		tuples := block.Tuples()
		slices.SortStableFunc(tuples, e.compare)
		name := e.runName(0, e.numRuns)
		if err := materialization.WriteRun(e.context.GetTmpFileManager(), name, tuples, e.capacity); err != nil {
			return err
		}
		e.files.Add(name)
		runs.Enqueue(name)
		e.numRuns++
		block.Clear()
		e.trackMemory(0)
		return nil
	}

	for {
		b, done, err := e.child.Next()
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
		if b.IsEmpty() {
			continue
		}
		// child Batches may be built for another page capacity
		for _, repacked := range page.Paginate(b.Tuples(), e.capacity) {
			block.AddBatch(repacked)
			e.trackMemory(block.TupleCount())
			if block.IsFull() {
				if err := flush(); err != nil {
					return nil, err
				}
			}
		}
	}
	if !block.IsEmpty() {
		if err := flush(); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

// mergeRuns merges until one run is left and returns its name
func (e *ExternalSortExecutor) mergeRuns(runs *queue.Queue) (string, error) {
	fm := e.context.GetTmpFileManager()
	fanIn := e.budget - 1
	for pass := 1; runs.Len() > 1; pass++ {
		next := queue.New()
		idx := 0
		for runs.Len() > 0 {
			group := make([]string, 0, fanIn)
			for runs.Len() > 0 && len(group) < fanIn {
				group = append(group, runs.Dequeue().(string))
			}
			if len(group) == 1 {
				next.Enqueue(group[0])
				continue
			}
			out := e.runName(pass, idx)
			if err := e.mergeGroup(group, out); err != nil {
				return "", err
			}
			for _, name := range group {
				if err := fm.Remove(name); err != nil {
					return "", err
				}
				e.files.Remove(name)
			}
			next.Enqueue(out)
			idx++
		}
		runs = next
		e.numPasses++
		common.ShPrintf(common.DEBUG_INFO, "ExternalSortExecutor::mergeRuns: %s pass %d left %d runs\n", e.baseName, pass, runs.Len())
	}
	return runs.Dequeue().(string), nil
}

type mergeHead struct {
	t   *tuple.Tuple
	run int
}

type runCursor struct {
	reader *materialization.BatchReader
	batch  *page.Batch
	pos    int
}

// advance moves to the next tuple. batch becomes nil when the run is exhausted
func (c *runCursor) advance() error {
	c.pos++
	for c.batch != nil && c.pos >= c.batch.Size() {
		b, err := c.reader.ReadBatch()
		if err != nil {
			return err
		}
		c.batch = b
		c.pos = 0
	}
	return nil
}

func (e *ExternalSortExecutor) mergeGroup(group []string, out string) error {
	fm := e.context.GetTmpFileManager()
	if err := fm.Create(out); err != nil {
		return err
	}
	e.files.Add(out)
	bw, err := materialization.NewBatchWriter(fm, out)
	if err != nil {
		return err
	}
	defer bw.Close()

	cursors := make([]*runCursor, len(group))
	defer func() {
		for _, c := range cursors {
			if c != nil {
				c.reader.Close()
			}
		}
	}()

	heads := btree.NewBTreeG[mergeHead](func(a, b mergeHead) bool {
		if cmp := e.compare(a.t, b.t); cmp != 0 {
			return cmp < 0
		}
		return a.run < b.run
	})
	held := func(outBatch *page.Batch) int {
		ret := outBatch.Size()
		for _, c := range cursors {
			if c != nil && c.batch != nil {
				ret += c.batch.Size()
			}
		}
		return ret
	}

	for i, name := range group {
		reader, err := materialization.NewBatchReader(fm, name)
		if err != nil {
			return err
		}
		cursors[i] = &runCursor{reader, page.NewBatch(1), 0}
		// the empty placeholder makes advance load the first Batch
		if err := cursors[i].advance(); err != nil {
			return err
		}
		if cursors[i].batch != nil {
			heads.Set(mergeHead{cursors[i].batch.Get(0), i})
		}
	}

	outBatch := page.NewBatch(e.capacity)
	e.trackMemory(held(outBatch))
	for heads.Len() > 0 {
		head, _ := heads.PopMin()
		outBatch.Add(head.t)
		if outBatch.IsFull() {
			e.trackMemory(held(outBatch))
			if err := bw.WriteBatch(outBatch); err != nil {
				return err
			}
			outBatch = page.NewBatch(e.capacity)
		}

		c := cursors[head.run]
		if err := c.advance(); err != nil {
			return err
		}
		if c.batch != nil {
			heads.Set(mergeHead{c.batch.Get(c.pos), head.run})
		}
		e.trackMemory(held(outBatch))
	}
	if !outBatch.IsEmpty() {
		if err := bw.WriteBatch(outBatch); err != nil {
			return err
		}
	}
	e.trackMemory(0)
	return bw.Close()
}

func (e *ExternalSortExecutor) Next() (*page.Batch, Done, error) {
	if !e.opened {
		return nil, true, errors.ErrOperatorNotOpened
	}
	if e.reader == nil {
		return nil, true, nil
	}
	for {
		b, err := e.reader.ReadBatch()
		if err != nil {
			e.abort()
			return nil, true, err
		}
		if b == nil {
			return nil, true, nil
		}
		if !b.IsEmpty() {
			return b, false, nil
		}
	}
}

// abort cleans up after a failure. the first error is already being reported
func (e *ExternalSortExecutor) abort() {
	if err := e.Close(); err != nil {
		common.ShPrintf(common.ERROR, "ExternalSortExecutor::abort: %v\n", err)
	}
}

func (e *ExternalSortExecutor) Close() error {
	var ret error
	if e.reader != nil {
		ret = e.reader.Close()
		e.reader = nil
	}
	fm := e.context.GetTmpFileManager()
	for _, name := range e.files.ToSlice() {
		if err := fm.Remove(name); err != nil && ret == nil {
			ret = err
		}
		e.files.Remove(name)
	}
	if err := e.child.Close(); err != nil && ret == nil {
		ret = err
	}
	e.opened = false
	return ret
}

// NumInitialRuns is the number of runs written by run generation
func (e *ExternalSortExecutor) NumInitialRuns() int { return e.numRuns }

func (e *ExternalSortExecutor) NumMergePasses() int { return e.numPasses }

// PeakInMemoryTuples is the largest number of tuples held by the sort at once
func (e *ExternalSortExecutor) PeakInMemoryTuples() int { return e.peakInMemoryTuples }

func (e *ExternalSortExecutor) PageCapacity() int { return e.capacity }
