package executors

import (
	"io"
	"sort"
	"sync/atomic"
	"testing"

	"github.com/samehada-labs/pageqp/catalog"
	"github.com/samehada-labs/pageqp/common"
	"github.com/samehada-labs/pageqp/errors"
	"github.com/samehada-labs/pageqp/storage/disk"
	"github.com/samehada-labs/pageqp/storage/table/column"
	"github.com/samehada-labs/pageqp/storage/table/schema"
	"github.com/samehada-labs/pageqp/storage/tuple"
	testingpkg "github.com/samehada-labs/pageqp/testing/testing_assert"
	"github.com/samehada-labs/pageqp/types"
)

// two integer columns are 8 bytes, so a 32 byte page holds 4 tuples
// and a page of joined tuples holds 2
const testPageSize = 32

// nullKey marks a NULL join key in makeTuples
const nullKey = int32(-1 << 30)

func newTestContext(budget int) (*ExecutorContext, disk.TmpFileManager) {
	fm := disk.NewVirtualTmpFileManagerImpl()
	return NewExecutorContext(catalog.NewCatalog(), fm, common.NewIDGenerator(), testPageSize, budget), fm
}

func twoColumnSchema(table string) *schema.Schema {
	return schema.NewSchema([]*column.Column{
		column.NewColumn(table, "a", types.Integer),
		column.NewColumn(table, "b", types.Integer),
	})
}

// makeTuples builds (key, position) tuples
func makeTuples(keys []int32) []*tuple.Tuple {
	ret := make([]*tuple.Tuple, 0, len(keys))
	for i, k := range keys {
		key := types.NewInteger(k)
		if k == nullKey {
			key = types.NewNull(types.Integer)
		}
		ret = append(ret, tuple.NewTuple([]types.Value{key, types.NewInteger(int32(i))}))
	}
	return ret
}

// drain pulls every Batch and checks that only the last one is partially filled
func drain(t *testing.T, e Executor, capacity int) []*tuple.Tuple {
	ret := make([]*tuple.Tuple, 0)
	sawPartial := false
	for {
		b, done, err := e.Next()
		testingpkg.Ok(t, err)
		if done {
			testingpkg.Assert(t, b == nil, "batch must be nil at end of stream")
			break
		}
		testingpkg.Assert(t, !sawPartial, "partial batch before end of stream")
		testingpkg.Assert(t, b.Size() <= capacity, "batch over capacity")
		if b.Size() < capacity {
			sawPartial = true
		}
		ret = append(ret, b.Tuples()...)
	}
	return ret
}

func multiset(tuples []*tuple.Tuple) []string {
	ret := make([]string, 0, len(tuples))
	for _, t := range tuples {
		ret = append(ret, t.String())
	}
	sort.Strings(ret)
	return ret
}

// faultyTmpFileManager injects storage failures
type faultyTmpFileManager struct {
	disk.TmpFileManager
	appendersLeft int32 // OpenAppender fails once this reaches zero. negative disables
	corruptReads  bool
}

func (f *faultyTmpFileManager) OpenAppender(name string) (io.WriteCloser, error) {
	if f.appendersLeft >= 0 && atomic.AddInt32(&f.appendersLeft, -1) < 0 {
		return nil, errors.NewStorageError("open appender", name, io.ErrShortWrite)
	}
	return f.TmpFileManager.OpenAppender(name)
}

func (f *faultyTmpFileManager) OpenReader(name string) (io.ReadCloser, error) {
	rc, err := f.TmpFileManager.OpenReader(name)
	if err != nil || !f.corruptReads {
		return rc, err
	}
	return &corruptingReader{rc, 0}, nil
}

// corruptingReader flips the first payload byte of the first record
type corruptingReader struct {
	io.ReadCloser
	offset int
}

func (r *corruptingReader) Read(p []byte) (int, error) {
	n, err := r.ReadCloser.Read(p)
	for i := 0; i < n; i++ {
		if r.offset+i == 8 {
			p[i] ^= 0xff
		}
	}
	r.offset += n
	return n, err
}
