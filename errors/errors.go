package errors

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Error is a constant-friendly error type. Sentinels are declared as
// `const ErrXxx = errors.Error("...")` and compared with errors.Is.
type Error string

func (e Error) Error() string { return string(e) }

const ErrUnreachableSubset = Error("relation subset has no join path")
const ErrOperatorNotOpened = Error("operator is not opened")
const ErrUnsupportedPlan = Error("plan node is not supported by the execution engine")
const ErrTooManyRelations = Error("too many relations for join enumeration")

/**
 * StorageError reports an I/O failure or a corrupt intermediate record.
 * It is fatal for the query which owns the operator.
 */
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func NewStorageError(op string, path string, cause error) *StorageError {
	return &StorageError{op, path, pkgerrors.WithStack(cause)}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Path, pkgerrors.Cause(e.Err))
}

func (e *StorageError) Unwrap() error { return e.Err }

// BudgetError is returned from Init when the page budget is below the operator minimum.
type BudgetError struct {
	Operator string
	Budget   int
	Min      int
}

func NewBudgetError(operator string, budget int, min int) *BudgetError {
	return &BudgetError{operator, budget, min}
}

func (e *BudgetError) Error() string {
	return fmt.Sprintf("%s: page budget %d is below minimum %d", e.Operator, e.Budget, e.Min)
}

// OptimizerInvariantError signals a malformed predicate graph found during join enumeration.
type OptimizerInvariantError struct {
	Subset string
	Added  string
	Found  int
}

func NewOptimizerInvariantError(subset string, added string, found int) *OptimizerInvariantError {
	return &OptimizerInvariantError{subset, added, found}
}

func (e *OptimizerInvariantError) Error() string {
	return fmt.Sprintf("optimizer invariant violated: %d join conditions connect %s and %s, expected exactly one",
		e.Found, e.Subset, e.Added)
}
