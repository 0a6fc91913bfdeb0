// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package executors

import (
	"fmt"

	"github.com/samehada-labs/pageqp/catalog"
	"github.com/samehada-labs/pageqp/execution/plans"
	"github.com/samehada-labs/pageqp/storage/page"
	"github.com/samehada-labs/pageqp/storage/table/schema"
)

/**
 * SeqScanExecutor executes a sequential scan over a table.
 */
type SeqScanExecutor struct {
	context       *ExecutorContext
	plan          *plans.SeqScanPlanNode
	tableMetadata *catalog.TableMetadata
	values        *ValuesExecutor
}

// NewSeqScanExecutor creates a new sequential executor
func NewSeqScanExecutor(context *ExecutorContext, plan *plans.SeqScanPlanNode) *SeqScanExecutor {
	return &SeqScanExecutor{context, plan, nil, nil}
}

func (e *SeqScanExecutor) GetOutputSchema() *schema.Schema { return e.plan.OutputSchema() }

func (e *SeqScanExecutor) Init() error {
	e.tableMetadata = e.context.GetCatalog().GetTableByName(e.plan.GetTableName())
	if e.tableMetadata == nil {
		return fmt.Errorf("table %s is not found", e.plan.GetTableName())
	}
	e.values = NewValuesExecutor(e.context, e.plan.OutputSchema(), e.tableMetadata.Tuples())
	return e.values.Init()
}

func (e *SeqScanExecutor) Next() (*page.Batch, Done, error) {
	if e.values == nil {
		return nil, true, fmt.Errorf("seq scan of %s is not opened", e.plan.GetTableName())
	}
	return e.values.Next()
}

func (e *SeqScanExecutor) Close() error {
	if e.values == nil {
		return nil
	}
	return e.values.Close()
}
