package plans

import (
	"fmt"

	"github.com/samehada-labs/pageqp/storage/table/schema"
)

// SeqScanPlanNode reads all tuples of a base relation
type SeqScanPlanNode struct {
	*AbstractPlanNode
	tableName string
}

func NewSeqScanPlanNode(sc *schema.Schema, tableName string) *SeqScanPlanNode {
	return &SeqScanPlanNode{&AbstractPlanNode{sc, nil}, tableName}
}

func (p *SeqScanPlanNode) GetType() PlanType { return SeqScan }

func (p *SeqScanPlanNode) GetTableName() string { return p.tableName }

func (p *SeqScanPlanNode) Clone() Plan {
	return &SeqScanPlanNode{p.cloneBase(), p.tableName}
}

func (p *SeqScanPlanNode) GetDebugStr() string {
	return fmt.Sprintf("SeqScan[%s]", p.tableName)
}
