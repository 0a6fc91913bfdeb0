package types

import (
	"testing"

	testingpkg "github.com/samehada-labs/pageqp/testing/testing_assert"
)

func TestCompareTo(t *testing.T) {
	testingpkg.Equals(t, -1, NewInteger(1).CompareTo(NewInteger(2)))
	testingpkg.Equals(t, 0, NewInteger(7).CompareTo(NewInteger(7)))
	testingpkg.Equals(t, 1, NewFloat(2.5).CompareTo(NewFloat(-1)))
	testingpkg.Equals(t, -1, NewVarchar("abc").CompareTo(NewVarchar("abd")))
	testingpkg.Equals(t, -1, NewBoolean(false).CompareTo(NewBoolean(true)))
}

func TestNullOrdering(t *testing.T) {
	null := NewNull(Integer)
	testingpkg.Equals(t, -1, null.CompareTo(NewInteger(-100)))
	testingpkg.Equals(t, 0, null.CompareTo(NewNull(Integer)))
	testingpkg.AssertFalse(t, null.CompareEquals(NewNull(Integer)), "NULL must not be equal in predicates")
	testingpkg.Equals(t, "NULL", null.ToString())
}

func TestToString(t *testing.T) {
	testingpkg.Equals(t, "42", NewInteger(42).ToString())
	testingpkg.Equals(t, "1.5", NewFloat(1.5).ToString())
	testingpkg.Equals(t, "x", NewVarchar("x").ToString())
}
