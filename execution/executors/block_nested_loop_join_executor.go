package executors

import (
	"fmt"

	pair "github.com/notEpsilon/go-pair"
	"github.com/samehada-labs/pageqp/common"
	"github.com/samehada-labs/pageqp/errors"
	"github.com/samehada-labs/pageqp/execution/expression"
	"github.com/samehada-labs/pageqp/execution/plans"
	"github.com/samehada-labs/pageqp/materialization"
	"github.com/samehada-labs/pageqp/storage/page"
	"github.com/samehada-labs/pageqp/storage/table/schema"
	"github.com/samehada-labs/pageqp/storage/tuple"
)

/**
 * BlockNestedLoopJoinExecutor joins left and right without holding either
 * input in memory.
 *
 * Init materializes the whole right input into one intermediate file.
 * Then for each page of the left input the right file is scanned from the
 * beginning in blocks of blockPages pages, and every left tuple of the page
 * is probed against every right tuple of the block. The probe position
 * (left tuple, right tuple) is kept across Next calls so that output resumes
 * exactly where the previous Batch became full.
 *
 * Memory: one left page, one right block and one output page.
 */
type BlockNestedLoopJoinExecutor struct {
	context     *ExecutorContext
	plan        *plans.JoinPlanNode
	left        Executor
	right       Executor
	leftKeyIdx  int
	rightKeyIdx int
	blockPages  int
	operator    string

	rightFile     string
	rightCapacity int
	outCapacity   int

	leftBatch   *page.Batch
	rightReader *materialization.BatchReader
	rightBlock  *page.BatchesBlock
	rightTuples []*tuple.Tuple
	// (left tuple index in leftBatch, right tuple index in rightTuples)
	cursor pair.Pair[int, int]
	eosl   bool
	opened bool

	numRightBatches int
	numRightScans   int
}

func NewBlockNestedLoopJoinExecutor(context *ExecutorContext, plan *plans.JoinPlanNode, left Executor, right Executor) *BlockNestedLoopJoinExecutor {
	return newNestedLoopFamilyExecutor(context, plan, left, right, context.GetPageBudget()-2, "block nested loop join")
}

// NewNestedLoopJoinExecutor is the page oriented nested loop join: a right block is one page
func NewNestedLoopJoinExecutor(context *ExecutorContext, plan *plans.JoinPlanNode, left Executor, right Executor) *BlockNestedLoopJoinExecutor {
	return newNestedLoopFamilyExecutor(context, plan, left, right, 1, "nested loop join")
}

func newNestedLoopFamilyExecutor(context *ExecutorContext, plan *plans.JoinPlanNode, left Executor, right Executor, blockPages int, operator string) *BlockNestedLoopJoinExecutor {
	return &BlockNestedLoopJoinExecutor{
		context:       context,
		plan:          plan,
		left:          left,
		right:         right,
		leftKeyIdx:    left.GetOutputSchema().IndexOf(plan.GetCondition().GetLhs()),
		rightKeyIdx:   right.GetOutputSchema().IndexOf(plan.GetCondition().GetRhs()),
		blockPages:    blockPages,
		operator:      operator,
		rightCapacity: context.PageCapacity(right.GetOutputSchema()),
		outCapacity:   context.PageCapacity(plan.OutputSchema()),
	}
}

func (e *BlockNestedLoopJoinExecutor) GetOutputSchema() *schema.Schema { return e.plan.OutputSchema() }

func (e *BlockNestedLoopJoinExecutor) Init() error {
	if err := checkBudget(e.operator, e.context.GetPageBudget(), common.MinBNLBudget); err != nil {
		return err
	}
	if e.leftKeyIdx < 0 || e.rightKeyIdx < 0 {
		return fmt.Errorf("%s: condition %s does not match child schemas", e.operator, e.plan.GetCondition())
	}
	if err := e.Close(); err != nil {
		return err
	}

	e.rightFile = e.context.GetIDGenerator().NextName("bnl")
	if err := e.materializeRight(); err != nil {
		e.abort()
		return err
	}
	if err := e.left.Init(); err != nil {
		e.abort()
		return err
	}
	e.rightBlock = page.NewBatchesBlock(e.blockPages, e.rightCapacity)
	e.leftBatch = nil
	e.rightTuples = nil
	e.cursor = pair.Pair[int, int]{First: 0, Second: 0}
	e.eosl = false
	e.numRightScans = 0
	e.opened = true
	return nil
}

// materializeRight writes the whole right input to rightFile, repacked to full pages
func (e *BlockNestedLoopJoinExecutor) materializeRight() error {
	fm := e.context.GetTmpFileManager()
	if err := fm.Create(e.rightFile); err != nil {
		e.rightFile = ""
		return err
	}
	bw, err := materialization.NewBatchWriter(fm, e.rightFile)
	if err != nil {
		return err
	}
	defer bw.Close()

	if err := e.right.Init(); err != nil {
		return err
	}
	pending := page.NewBatch(e.rightCapacity)
	for {
		b, done, err := e.right.Next()
		if err != nil {
			return err
		}
		if done {
			break
		}
		for _, t := range b.Tuples() {
			pending.Add(t)
			if pending.IsFull() {
				if err := bw.WriteBatch(pending); err != nil {
					return err
				}
				pending = page.NewBatch(e.rightCapacity)
			}
		}
	}
	if !pending.IsEmpty() {
		if err := bw.WriteBatch(pending); err != nil {
			return err
		}
	}
	e.numRightBatches = bw.NumBatches()
	common.ShPrintf(common.DEBUG_INFO, "BlockNestedLoopJoinExecutor: %s materialized %d tuples in %d pages\n",
		e.rightFile, bw.NumTuples(), bw.NumBatches())
	if err := bw.Close(); err != nil {
		return err
	}
	return e.right.Close()
}

// loadRightBlock reads the next block. false when the right file is exhausted
func (e *BlockNestedLoopJoinExecutor) loadRightBlock() (bool, error) {
	e.rightBlock.Clear()
	for !e.rightBlock.IsFull() {
		b, err := e.rightReader.ReadBatch()
		if err != nil {
			return false, err
		}
		if b == nil {
			break
		}
		if b.IsEmpty() {
			continue
		}
		e.rightBlock.AddBatch(b)
	}
	e.rightTuples = e.rightBlock.Tuples()
	return len(e.rightTuples) > 0, nil
}

// nextLeftPage pulls the next non empty left page and rewinds the right file
func (e *BlockNestedLoopJoinExecutor) nextLeftPage() error {
	for {
		b, done, err := e.left.Next()
		if err != nil {
			return err
		}
		if done {
			e.eosl = true
			e.leftBatch = nil
			return nil
		}
		if b.IsEmpty() {
			continue
		}
		e.leftBatch = b
		break
	}
	if e.rightReader != nil {
		if err := e.rightReader.Close(); err != nil {
			return err
		}
	}
	reader, err := materialization.NewBatchReader(e.context.GetTmpFileManager(), e.rightFile)
	if err != nil {
		return err
	}
	e.rightReader = reader
	e.rightTuples = nil
	e.numRightScans++
	return nil
}

func (e *BlockNestedLoopJoinExecutor) Next() (*page.Batch, Done, error) {
	if !e.opened {
		return nil, true, errors.ErrOperatorNotOpened
	}
	outBatch := page.NewBatch(e.outCapacity)
	condition := e.plan.GetCondition()
	for !e.eosl && !outBatch.IsFull() {
		if e.leftBatch == nil {
			if err := e.nextLeftPage(); err != nil {
				e.abort()
				return nil, true, err
			}
			continue
		}
		if len(e.rightTuples) == 0 {
			loaded, err := e.loadRightBlock()
			if err != nil {
				e.abort()
				return nil, true, err
			}
			if !loaded {
				// right file exhausted for this left page
				e.leftBatch = nil
				continue
			}
			e.cursor = pair.Pair[int, int]{First: 0, Second: 0}
		}

		for e.cursor.First < e.leftBatch.Size() {
			leftTuple := e.leftBatch.Get(e.cursor.First)
			for e.cursor.Second < len(e.rightTuples) {
				rightTuple := e.rightTuples[e.cursor.Second]
				e.cursor.Second++
				if expression.PerformComparison(leftTuple.GetValue(e.leftKeyIdx), rightTuple.GetValue(e.rightKeyIdx), condition.GetComparisonType()) {
					outBatch.Add(leftTuple.JoinWith(rightTuple))
					if outBatch.IsFull() {
						return outBatch, false, nil
					}
				}
			}
			e.cursor.Second = 0
			e.cursor.First++
		}
		// block done for every tuple of the left page
		e.rightTuples = nil
	}
	if outBatch.IsEmpty() {
		return nil, true, nil
	}
	return outBatch, false, nil
}

func (e *BlockNestedLoopJoinExecutor) abort() {
	if err := e.Close(); err != nil {
		common.ShPrintf(common.ERROR, "BlockNestedLoopJoinExecutor::abort: %v\n", err)
	}
}

func (e *BlockNestedLoopJoinExecutor) Close() error {
	var ret error
	if e.rightReader != nil {
		ret = e.rightReader.Close()
		e.rightReader = nil
	}
	if e.rightFile != "" {
		if err := e.context.GetTmpFileManager().Remove(e.rightFile); err != nil && ret == nil {
			ret = err
		}
		e.rightFile = ""
	}
	if err := closeAll(e.left, e.right); err != nil && ret == nil {
		ret = err
	}
	e.leftBatch = nil
	e.rightTuples = nil
	e.opened = false
	return ret
}

// NumRightScans is how many times the materialized right input was scanned
func (e *BlockNestedLoopJoinExecutor) NumRightScans() int { return e.numRightScans }

func (e *BlockNestedLoopJoinExecutor) NumRightPages() int { return e.numRightBatches }

func (e *BlockNestedLoopJoinExecutor) BlockPages() int { return e.blockPages }
