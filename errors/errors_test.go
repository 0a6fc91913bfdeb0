package errors

import (
	goerrors "errors"
	"io"
	"testing"

	testingpkg "github.com/samehada-labs/pageqp/testing/testing_assert"
)

func TestStorageErrorUnwrap(t *testing.T) {
	err := error(NewStorageError("read", "run-1", io.ErrUnexpectedEOF))

	testingpkg.Assert(t, goerrors.Is(err, io.ErrUnexpectedEOF), "cause should be reachable through Unwrap")

	var se *StorageError
	testingpkg.Assert(t, goerrors.As(err, &se), "should be a StorageError")
	testingpkg.Equals(t, "run-1", se.Path)
	testingpkg.Equals(t, "storage error: read run-1: unexpected EOF", err.Error())
}

func TestBudgetErrorMessage(t *testing.T) {
	err := NewBudgetError("external sort", 2, 3)
	testingpkg.Equals(t, "external sort: page budget 2 is below minimum 3", err.Error())
}

func TestSentinel(t *testing.T) {
	wrapped := goerrors.Join(ErrUnreachableSubset, io.EOF)
	testingpkg.Assert(t, goerrors.Is(wrapped, ErrUnreachableSubset), "sentinel should match")
}
