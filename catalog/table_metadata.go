package catalog

import (
	"github.com/samehada-labs/pageqp/storage/table/schema"
	"github.com/samehada-labs/pageqp/storage/tuple"
)

type TableMetadata struct {
	schema     *schema.Schema
	name       string
	tuples     []*tuple.Tuple
	oid        uint32
	statistics *TableStatistics
}

func (t *TableMetadata) Schema() *schema.Schema {
	return t.schema
}

func (t *TableMetadata) OID() uint32 {
	return t.oid
}

func (t *TableMetadata) GetTableName() string {
	return t.name
}

// Tuples is the content of the table, scanned by SeqScanExecutor
func (t *TableMetadata) Tuples() []*tuple.Tuple {
	return t.tuples
}

func (t *TableMetadata) GetStatistics() *TableStatistics {
	return t.statistics
}
