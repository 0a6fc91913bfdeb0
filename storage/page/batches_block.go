package page

import (
	"github.com/samehada-labs/pageqp/common"
	"github.com/samehada-labs/pageqp/storage/tuple"
)

/**
 * BatchesBlock groups up to maxPages batches held in memory at once.
 * Run generation of external sort sorts one block at a time, and block
 * nested loop join probes one block of the right input at a time.
 * The number of tuples held never exceeds maxPages * pageCapacity.
 */
type BatchesBlock struct {
	maxPages     int
	pageCapacity int
	batches      []*Batch
	tupleCount   int
}

func NewBatchesBlock(maxPages int, pageCapacity int) *BatchesBlock {
	common.SH_Assert(maxPages > 0, "block must hold at least one page")
	return &BatchesBlock{maxPages, pageCapacity, make([]*Batch, 0, maxPages), 0}
}

func (b *BatchesBlock) AddBatch(batch *Batch) {
	common.SH_Assert(!b.IsFull(), "block is full")
	common.SH_Assert(batch.Size() <= b.pageCapacity, "batch exceeds page capacity")
	b.batches = append(b.batches, batch)
	b.tupleCount += batch.Size()
}

func (b *BatchesBlock) IsFull() bool {
	return len(b.batches) >= b.maxPages || b.tupleCount >= b.maxPages*b.pageCapacity
}

func (b *BatchesBlock) IsEmpty() bool {
	return b.tupleCount == 0
}

func (b *BatchesBlock) TupleCount() int {
	return b.tupleCount
}

func (b *BatchesBlock) MaxTuples() int {
	return b.maxPages * b.pageCapacity
}

func (b *BatchesBlock) Batches() []*Batch {
	return b.batches
}

// Tuples flattens the block in insertion order
func (b *BatchesBlock) Tuples() []*tuple.Tuple {
	ret := make([]*tuple.Tuple, 0, b.tupleCount)
	for _, batch := range b.batches {
		ret = append(ret, batch.Tuples()...)
	}
	return ret
}

func (b *BatchesBlock) Clear() {
	b.batches = b.batches[:0]
	b.tupleCount = 0
}
