package executors

import (
	goerrors "errors"
	"fmt"
	"testing"

	"github.com/samehada-labs/pageqp/errors"
	"github.com/samehada-labs/pageqp/execution/expression"
	"github.com/samehada-labs/pageqp/execution/plans"
	"github.com/samehada-labs/pageqp/storage/tuple"
	testingpkg "github.com/samehada-labs/pageqp/testing/testing_assert"
)

type joinCase struct {
	name  string
	left  []int32
	right []int32
}

func joinCases() []joinCase {
	return []joinCase{
		{"random", randomKeys(37, 6, 10), randomKeys(23, 6, 11)},
		{"empty left", nil, []int32{1, 2, 3}},
		{"empty right", []int32{1, 2, 3}, nil},
		{"all equal", []int32{7, 7, 7, 7, 7, 7, 7, 7, 7, 7}, []int32{7, 7, 7, 7, 7, 7, 7, 7, 7}},
		{"no match", []int32{1, 3, 5, 7, 9}, []int32{2, 4, 6, 8}},
		{"key run spans pages", []int32{2, 5, 5, 1}, []int32{5, 5, 5, 5, 5, 5, 5, 2, 9, 9, 1}},
		{"null keys", []int32{nullKey, 1, nullKey, 2}, []int32{nullKey, 2, 2, nullKey}},
	}
}

func newJoinPlan(alg plans.JoinAlgorithm, op expression.ComparisonType) *plans.JoinPlanNode {
	left := plans.NewSeqScanPlanNode(twoColumnSchema("R"), "R")
	right := plans.NewSeqScanPlanNode(twoColumnSchema("S"), "S")
	cond := expression.NewJoinCondition(left.OutputSchema().GetColumn(0), right.OutputSchema().GetColumn(0), op)
	return plans.NewJoinPlanNode(left, right, cond, alg)
}

func newJoinExecutor(ctx *ExecutorContext, plan *plans.JoinPlanNode, leftTuples []*tuple.Tuple, rightTuples []*tuple.Tuple) Executor {
	left := NewValuesExecutor(ctx, plan.GetLeftPlan().OutputSchema(), leftTuples)
	right := NewValuesExecutor(ctx, plan.GetRightPlan().OutputSchema(), rightTuples)
	switch plan.GetAlgorithm() {
	case plans.NestedLoopJoin:
		return NewNestedLoopJoinExecutor(ctx, plan, left, right)
	case plans.BlockNestedLoopJoin:
		return NewBlockNestedLoopJoinExecutor(ctx, plan, left, right)
	}
	return NewSortMergeJoinExecutor(ctx, plan, left, right)
}

func expectedJoin(left []*tuple.Tuple, right []*tuple.Tuple, op expression.ComparisonType) []string {
	ret := make([]*tuple.Tuple, 0)
	for _, l := range left {
		for _, r := range right {
			if expression.PerformComparison(l.GetValue(0), r.GetValue(0), op) {
				ret = append(ret, l.JoinWith(r))
			}
		}
	}
	return multiset(ret)
}

func TestJoinAlgorithmsAgreeWithNaiveJoin(t *testing.T) {
	for _, alg := range plans.JoinAlgorithms() {
		for _, budget := range []int{3, 4, 6} {
			for _, c := range joinCases() {
				t.Run(fmt.Sprintf("%s/B=%d/%s", alg, budget, c.name), func(t *testing.T) {
					ctx, fm := newTestContext(budget)
					defer fm.ShutDown()
					leftTuples, rightTuples := makeTuples(c.left), makeTuples(c.right)
					plan := newJoinPlan(alg, expression.Equal)
					join := newJoinExecutor(ctx, plan, leftTuples, rightTuples)

					testingpkg.Ok(t, join.Init())
					out := drain(t, join, ctx.PageCapacity(plan.OutputSchema()))
					testingpkg.Equals(t, expectedJoin(leftTuples, rightTuples, expression.Equal), multiset(out))
					testingpkg.Ok(t, join.Close())
					testingpkg.Equals(t, 0, len(fm.List()))
				})
			}
		}
	}
}

func TestNestedLoopJoinsWithInequality(t *testing.T) {
	ops := []expression.ComparisonType{expression.NotEqual, expression.LessThan, expression.GreaterThanOrEqual}
	for _, alg := range []plans.JoinAlgorithm{plans.NestedLoopJoin, plans.BlockNestedLoopJoin} {
		for _, op := range ops {
			ctx, fm := newTestContext(4)
			leftTuples, rightTuples := makeTuples(randomKeys(15, 5, 20)), makeTuples(randomKeys(13, 5, 21))
			plan := newJoinPlan(alg, op)
			join := newJoinExecutor(ctx, plan, leftTuples, rightTuples)

			testingpkg.Ok(t, join.Init())
			out := drain(t, join, ctx.PageCapacity(plan.OutputSchema()))
			testingpkg.Equals(t, expectedJoin(leftTuples, rightTuples, op), multiset(out))
			testingpkg.Ok(t, join.Close())
			fm.ShutDown()
		}
	}
}

func TestSortMergeJoinRejectsInequality(t *testing.T) {
	ctx, fm := newTestContext(4)
	defer fm.ShutDown()
	plan := newJoinPlan(plans.SortMergeJoin, expression.LessThan)
	join := newJoinExecutor(ctx, plan, makeTuples([]int32{1}), makeTuples([]int32{2}))
	testingpkg.Nok(t, join.Init())
	testingpkg.Equals(t, 0, len(fm.List()))
}

func TestSortMergeJoinOutputIsKeyOrdered(t *testing.T) {
	ctx, fm := newTestContext(3)
	defer fm.ShutDown()
	plan := newJoinPlan(plans.SortMergeJoin, expression.Equal)
	join := newJoinExecutor(ctx, plan, makeTuples(randomKeys(40, 8, 30)), makeTuples(randomKeys(40, 8, 31))).(*SortMergeJoinExecutor)

	testingpkg.Ok(t, join.Init())
	out := drain(t, join, 2)
	for i := 1; i < len(out); i++ {
		testingpkg.Assert(t, tuple.CompareTuples(out[i-1], out[i], 0, 0) <= 0, "output is not ordered at %d", i)
	}
	testingpkg.Assert(t, join.MaxRunLength() > 1, "random keys over 8 values must repeat")
	testingpkg.Ok(t, join.Close())
}

func TestBlockNestedLoopJoinScansRightOncePerLeftPage(t *testing.T) {
	ctx, fm := newTestContext(5)
	defer fm.ShutDown()
	// 10 left tuples make 3 pages, 9 right tuples make 3 pages
	leftTuples, rightTuples := makeTuples(randomKeys(10, 3, 40)), makeTuples(randomKeys(9, 3, 41))

	for _, alg := range []plans.JoinAlgorithm{plans.NestedLoopJoin, plans.BlockNestedLoopJoin} {
		join := newJoinExecutor(ctx, newJoinPlan(alg, expression.Equal), leftTuples, rightTuples).(*BlockNestedLoopJoinExecutor)
		testingpkg.Ok(t, join.Init())
		// the materialized right input is the only intermediate file
		testingpkg.Equals(t, 1, len(fm.List()))
		drain(t, join, 2)
		testingpkg.Equals(t, 3, join.NumRightScans())
		testingpkg.Equals(t, 3, join.NumRightPages())
		testingpkg.Ok(t, join.Close())
		testingpkg.Equals(t, 0, len(fm.List()))
	}
	testingpkg.Equals(t, 3, NewBlockNestedLoopJoinExecutor(ctx, newJoinPlan(plans.BlockNestedLoopJoin, expression.Equal),
		NewValuesExecutor(ctx, twoColumnSchema("R"), nil), NewValuesExecutor(ctx, twoColumnSchema("S"), nil)).BlockPages())
}

func TestJoinReinitGivesSameOutput(t *testing.T) {
	for _, alg := range plans.JoinAlgorithms() {
		ctx, fm := newTestContext(3)
		join := newJoinExecutor(ctx, newJoinPlan(alg, expression.Equal), makeTuples(randomKeys(20, 4, 50)), makeTuples(randomKeys(20, 4, 51)))

		testingpkg.Ok(t, join.Init())
		first := multiset(drain(t, join, 2))
		testingpkg.Ok(t, join.Close())
		testingpkg.Equals(t, 0, len(fm.List()))

		testingpkg.Ok(t, join.Init())
		// reopen in the middle of the stream
		_, _, err := join.Next()
		testingpkg.Ok(t, err)
		testingpkg.Ok(t, join.Init())
		second := multiset(drain(t, join, 2))
		testingpkg.Equals(t, first, second)
		testingpkg.Ok(t, join.Close())
		testingpkg.Ok(t, join.Close())
		testingpkg.Equals(t, 0, len(fm.List()))
		fm.ShutDown()
	}
}

func TestJoinBudgetTooSmall(t *testing.T) {
	for _, alg := range plans.JoinAlgorithms() {
		ctx, fm := newTestContext(2)
		join := newJoinExecutor(ctx, newJoinPlan(alg, expression.Equal), makeTuples([]int32{1}), makeTuples([]int32{1}))
		err := join.Init()
		var budgetErr *errors.BudgetError
		testingpkg.Assert(t, goerrors.As(err, &budgetErr), "%s: expected BudgetError, got %v", alg, err)
		testingpkg.Equals(t, 0, len(fm.List()))
		fm.ShutDown()
	}
}

func TestJoinStorageFailureCleansUp(t *testing.T) {
	for _, alg := range plans.JoinAlgorithms() {
		ctx, fm := newTestContext(3)
		ctx.fm = &faultyTmpFileManager{TmpFileManager: fm, appendersLeft: -1, corruptReads: true}
		join := newJoinExecutor(ctx, newJoinPlan(alg, expression.Equal), makeTuples(randomKeys(30, 4, 60)), makeTuples(randomKeys(30, 4, 61)))

		err := join.Init()
		if err == nil {
			// nested loop joins read the right file only while producing output
			_, _, err = join.Next()
		}
		var storageErr *errors.StorageError
		testingpkg.Assert(t, goerrors.As(err, &storageErr), "%s: expected StorageError, got %v", alg, err)
		testingpkg.Equals(t, 0, len(fm.List()))
		testingpkg.Ok(t, join.Close())
		fm.ShutDown()
	}
}
