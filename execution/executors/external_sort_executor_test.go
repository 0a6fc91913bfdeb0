package executors

import (
	goerrors "errors"
	"math/rand"
	"sort"
	"testing"

	"github.com/samehada-labs/pageqp/errors"
	"github.com/samehada-labs/pageqp/storage/tuple"
	testingpkg "github.com/samehada-labs/pageqp/testing/testing_assert"
)

func randomKeys(n int, domain int32, seed int64) []int32 {
	r := rand.New(rand.NewSource(seed))
	ret := make([]int32, n)
	for i := range ret {
		ret[i] = r.Int31n(domain)
	}
	return ret
}

func stableSorted(tuples []*tuple.Tuple) []*tuple.Tuple {
	ret := append([]*tuple.Tuple{}, tuples...)
	sort.SliceStable(ret, func(i, j int) bool {
		return tuple.CompareTuples(ret[i], ret[j], 0, 0) < 0
	})
	return ret
}

func assertSameSequence(t *testing.T, exp []*tuple.Tuple, act []*tuple.Tuple) {
	testingpkg.Equals(t, len(exp), len(act))
	for i := range exp {
		testingpkg.Assert(t, exp[i].Equals(act[i]), "tuple %d: expected %s got %s", i, exp[i], act[i])
	}
}

func TestExternalSortIsStablePermutation(t *testing.T) {
	for _, budget := range []int{3, 4, 7} {
		ctx, fm := newTestContext(budget)
		input := makeTuples(randomKeys(100, 7, int64(budget)))
		sorter := NewExternalSortExecutor(ctx, NewValuesExecutor(ctx, twoColumnSchema("R"), input), []int{0})

		testingpkg.Ok(t, sorter.Init())
		testingpkg.Equals(t, 4, sorter.PageCapacity())
		// only the final run is alive while streaming
		testingpkg.Equals(t, 1, len(fm.List()))
		out := drain(t, sorter, sorter.PageCapacity())
		assertSameSequence(t, stableSorted(input), out)

		testingpkg.Assert(t, sorter.PeakInMemoryTuples() > 0, "peak is not tracked")
		testingpkg.Assert(t, sorter.PeakInMemoryTuples() <= budget*sorter.PageCapacity(),
			"budget %d: %d tuples held at once", budget, sorter.PeakInMemoryTuples())

		testingpkg.Ok(t, sorter.Close())
		testingpkg.Equals(t, 0, len(fm.List()))
		fm.ShutDown()
	}
}

func TestExternalSortRunsAndPasses(t *testing.T) {
	ctx, fm := newTestContext(3)
	defer fm.ShutDown()
	sorter := NewExternalSortExecutor(ctx, NewValuesExecutor(ctx, twoColumnSchema("R"), makeTuples(randomKeys(100, 1000, 1))), []int{0})

	testingpkg.Ok(t, sorter.Init())
	// 12 tuples per run, 2 runs per merge: 9 -> 5 -> 3 -> 2 -> 1
	testingpkg.Equals(t, 9, sorter.NumInitialRuns())
	testingpkg.Equals(t, 4, sorter.NumMergePasses())
	testingpkg.Ok(t, sorter.Close())
	testingpkg.Equals(t, 0, len(fm.List()))
}

func TestExternalSortSingleRunHasNoMerge(t *testing.T) {
	ctx, fm := newTestContext(8)
	defer fm.ShutDown()
	input := makeTuples([]int32{5, 3, 9, 1, 3})
	sorter := NewExternalSortExecutor(ctx, NewValuesExecutor(ctx, twoColumnSchema("R"), input), []int{0})

	testingpkg.Ok(t, sorter.Init())
	testingpkg.Equals(t, 1, sorter.NumInitialRuns())
	testingpkg.Equals(t, 0, sorter.NumMergePasses())
	assertSameSequence(t, stableSorted(input), drain(t, sorter, 4))
	testingpkg.Ok(t, sorter.Close())
}

func TestExternalSortEmptyInput(t *testing.T) {
	ctx, fm := newTestContext(3)
	defer fm.ShutDown()
	sorter := NewExternalSortExecutor(ctx, NewValuesExecutor(ctx, twoColumnSchema("R"), nil), []int{0})

	testingpkg.Ok(t, sorter.Init())
	b, done, err := sorter.Next()
	testingpkg.Ok(t, err)
	testingpkg.Assert(t, bool(done), "empty sort must be done")
	testingpkg.Assert(t, b == nil, "no batch expected")
	testingpkg.Equals(t, 0, sorter.NumInitialRuns())
	testingpkg.Equals(t, 0, len(fm.List()))
	testingpkg.Ok(t, sorter.Close())
}

func TestExternalSortBudgetTooSmall(t *testing.T) {
	ctx, fm := newTestContext(2)
	defer fm.ShutDown()
	sorter := NewExternalSortExecutor(ctx, NewValuesExecutor(ctx, twoColumnSchema("R"), makeTuples([]int32{1})), []int{0})

	err := sorter.Init()
	var budgetErr *errors.BudgetError
	testingpkg.Assert(t, goerrors.As(err, &budgetErr), "expected BudgetError, got %v", err)
	testingpkg.Equals(t, 2, budgetErr.Budget)
	testingpkg.Equals(t, 3, budgetErr.Min)
	testingpkg.Equals(t, 0, len(fm.List()))
}

func TestExternalSortNextBeforeInit(t *testing.T) {
	ctx, fm := newTestContext(3)
	defer fm.ShutDown()
	sorter := NewExternalSortExecutor(ctx, NewValuesExecutor(ctx, twoColumnSchema("R"), nil), []int{0})
	_, _, err := sorter.Next()
	testingpkg.Assert(t, goerrors.Is(err, errors.ErrOperatorNotOpened), "unexpected %v", err)
}

func TestExternalSortWriteFailureRemovesRuns(t *testing.T) {
	ctx, fm := newTestContext(3)
	defer fm.ShutDown()
	// run generation opens 9 appenders, the first merge output fails
	faulty := &faultyTmpFileManager{TmpFileManager: fm, appendersLeft: 9}
	ctx.fm = faulty
	sorter := NewExternalSortExecutor(ctx, NewValuesExecutor(ctx, twoColumnSchema("R"), makeTuples(randomKeys(100, 50, 2))), []int{0})

	err := sorter.Init()
	var storageErr *errors.StorageError
	testingpkg.Assert(t, goerrors.As(err, &storageErr), "expected StorageError, got %v", err)
	testingpkg.Equals(t, 0, len(fm.List()))
	testingpkg.Ok(t, sorter.Close())
}

func TestExternalSortCorruptRunIsStorageError(t *testing.T) {
	ctx, fm := newTestContext(3)
	defer fm.ShutDown()
	ctx.fm = &faultyTmpFileManager{TmpFileManager: fm, appendersLeft: -1, corruptReads: true}
	sorter := NewExternalSortExecutor(ctx, NewValuesExecutor(ctx, twoColumnSchema("R"), makeTuples(randomKeys(100, 50, 3))), []int{0})

	err := sorter.Init()
	var storageErr *errors.StorageError
	testingpkg.Assert(t, goerrors.As(err, &storageErr), "expected StorageError, got %v", err)
	testingpkg.Equals(t, 0, len(fm.List()))
}

func TestExternalSortReinit(t *testing.T) {
	ctx, fm := newTestContext(4)
	defer fm.ShutDown()
	input := makeTuples(randomKeys(40, 10, 4))
	sorter := NewExternalSortExecutor(ctx, NewValuesExecutor(ctx, twoColumnSchema("R"), input), []int{0})

	testingpkg.Ok(t, sorter.Init())
	first := drain(t, sorter, 4)
	testingpkg.Ok(t, sorter.Init())
	second := drain(t, sorter, 4)
	assertSameSequence(t, first, second)
	testingpkg.Ok(t, sorter.Close())
	testingpkg.Ok(t, sorter.Close())
	testingpkg.Equals(t, 0, len(fm.List()))
}
