package executors

import (
	"github.com/samehada-labs/pageqp/storage/page"
	"github.com/samehada-labs/pageqp/storage/table/schema"
)

type Done bool

// Executor executes a plan
//
// Init opens this executor. It must be called before Next() is called!
// Budget checks are done here, before any I/O.
//
// Next produces the next Batch. The returned Batch belongs to the caller.
// done is true at end of stream and batch is nil then.
//
// Close releases resources and deletes intermediate files. It can be
// called many times and also after a failed Init or Next.
type Executor interface {
	Init() error
	Next() (*page.Batch, Done, error)
	Close() error
	GetOutputSchema() *schema.Schema
}
