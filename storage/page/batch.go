package page

import (
	"github.com/samehada-labs/pageqp/common"
	"github.com/samehada-labs/pageqp/storage/tuple"
)

/**
 * Batch is one page worth of tuples. It is the unit exchanged between
 * operators, the unit written to intermediate files and the unit of
 * memory accounting.
 */
type Batch struct {
	capacity int
	tuples   []*tuple.Tuple
}

// Capacity returns how many tuples of tupleSize bytes fit in a page. At least one.
func Capacity(pageSize int, tupleSize uint32) int {
	if tupleSize == 0 {
		return pageSize
	}
	ret := pageSize / int(tupleSize)
	if ret < 1 {
		return 1
	}
	return ret
}

func NewBatch(capacity int) *Batch {
	common.SH_Assert(capacity > 0, "batch capacity must be positive")
	return &Batch{capacity, make([]*tuple.Tuple, 0, capacity)}
}

func (b *Batch) Add(t *tuple.Tuple) {
	common.SH_Assert(!b.IsFull(), "batch is full")
	b.tuples = append(b.tuples, t)
}

func (b *Batch) Get(idx int) *tuple.Tuple {
	return b.tuples[idx]
}

func (b *Batch) Size() int {
	return len(b.tuples)
}

func (b *Batch) Capacity() int {
	return b.capacity
}

func (b *Batch) IsFull() bool {
	return len(b.tuples) >= b.capacity
}

func (b *Batch) IsEmpty() bool {
	return len(b.tuples) == 0
}

func (b *Batch) Tuples() []*tuple.Tuple {
	return b.tuples
}

func (b *Batch) Clear() {
	b.tuples = b.tuples[:0]
}

// Paginate packs tuples into batches of capacity. the last batch may be partially filled
func Paginate(tuples []*tuple.Tuple, capacity int) []*Batch {
	ret := make([]*Batch, 0, len(tuples)/capacity+1)
	cur := NewBatch(capacity)
	for _, t := range tuples {
		cur.Add(t)
		if cur.IsFull() {
			ret = append(ret, cur)
			cur = NewBatch(capacity)
		}
	}
	if !cur.IsEmpty() {
		ret = append(ret, cur)
	}
	return ret
}
