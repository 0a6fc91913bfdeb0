package pageqp

import (
	"fmt"

	"github.com/samehada-labs/pageqp/catalog"
	"github.com/samehada-labs/pageqp/common"
	"github.com/samehada-labs/pageqp/execution/executors"
	"github.com/samehada-labs/pageqp/execution/plans"
	"github.com/samehada-labs/pageqp/planner"
	"github.com/samehada-labs/pageqp/storage/table/schema"
	"github.com/samehada-labs/pageqp/storage/tuple"
	"github.com/samehada-labs/pageqp/types"
)

// PageQP is the embedded form of the query processor.
// Tables are registered to its catalog and queries are given as QueryInfo.
type PageQP struct {
	qpi_         *QPInstance
	catalog_     *catalog.Catalog
	exec_engine_ *executors.ExecutionEngine
	planner_     planner.Planner
}

func NewPageQP(cfg *common.QPConfig) (*PageQP, error) {
	qpi, err := NewQPInstance(cfg)
	if err != nil {
		return nil, err
	}
	c := catalog.NewCatalog()
	pnner := planner.NewSimplePlannerFromConfig(c, cfg)
	return &PageQP{qpi, c, &executors.ExecutionEngine{}, pnner}, nil
}

func NewPageQPFromFile(configPath string) (*PageQP, error) {
	cfg, err := common.LoadQPConfig(configPath)
	if err != nil {
		return nil, err
	}
	return NewPageQP(cfg)
}

func (pqp *PageQP) GetCatalog() *catalog.Catalog {
	return pqp.catalog_
}

func (pqp *PageQP) GetInstance() *QPInstance {
	return pqp.qpi_
}

func (pqp *PageQP) CreateTable(name string, sc *schema.Schema, tuples []*tuple.Tuple) error {
	_, err := pqp.catalog_.CreateTable(name, sc, tuples)
	return err
}

// Explain returns the plan chosen for qi in the indented tree form
func (pqp *PageQP) Explain(qi *planner.QueryInfo) (string, error) {
	plan, err := pqp.planner_.MakePlan(qi)
	if err != nil {
		return "", err
	}
	return plans.PlanTreeString(plan), nil
}

func (pqp *PageQP) ExecuteQuery(qi *planner.QueryInfo) ([][]*types.Value, error) {
	plan, err := pqp.planner_.MakePlan(qi)
	if err != nil {
		return nil, err
	}
	context := pqp.qpi_.NewExecutorContext(pqp.catalog_)
	result, err := pqp.exec_engine_.Execute(plan, context)
	if err != nil {
		return nil, err
	}
	return ConvTupleListToValues(plan.OutputSchema(), result), nil
}

func (pqp *PageQP) Finalize() {
	pqp.qpi_.Finalize()
}

func ConvTupleListToValues(schema_ *schema.Schema, result []*tuple.Tuple) [][]*types.Value {
	retVals := make([][]*types.Value, 0, len(result))
	colNum := int(schema_.GetColumnCount())
	for _, tuple_ := range result {
		rowVals := make([]*types.Value, 0, colNum)
		for idx := 0; idx < colNum; idx++ {
			val := tuple_.GetValue(idx)
			rowVals = append(rowVals, &val)
		}
		retVals = append(retVals, rowVals)
	}
	return retVals
}

func PrintExecuteResults(results [][]*types.Value) {
	fmt.Println("----")
	for _, valList := range results {
		for _, val := range valList {
			fmt.Printf("%s ", val.ToString())
		}
		fmt.Println("")
	}
}
