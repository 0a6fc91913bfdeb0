package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/samehada-labs/pageqp/common"
	"github.com/samehada-labs/pageqp/execution/expression"
	"github.com/samehada-labs/pageqp/pageqp"
	"github.com/samehada-labs/pageqp/planner"
	"github.com/samehada-labs/pageqp/storage/table/column"
	"github.com/samehada-labs/pageqp/testing/testing_tbl_gen"
	"github.com/samehada-labs/pageqp/types"
)

// pageqp is used as an embedded library. this entry point generates
// random tables, plans a three way join over them and runs it.
func main() {
	configPath := flag.String("config", "", "toml config file. defaults are used when empty")
	seed := flag.Int64("seed", 1, "seed of the table generator")
	rows := flag.Uint("rows", 500, "row count of the largest table")
	printRows := flag.Bool("print", false, "print result rows")
	flag.Parse()

	if err := run(*configPath, *seed, uint32(*rows), *printRows); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string, seed int64, rows uint32, printRows bool) error {
	var qp *pageqp.PageQP
	var err error
	if configPath == "" {
		cfg := common.NewDefaultQPConfig()
		cfg.OnMemStorage = true
		qp, err = pageqp.NewPageQP(cfg)
	} else {
		qp, err = pageqp.NewPageQPFromFile(configPath)
	}
	if err != nil {
		return err
	}
	defer qp.Finalize()

	gen := testing_tbl_gen.NewTableGenerator(seed)
	metas := []*testing_tbl_gen.TableInsertMeta{
		{Name_: "customer", Num_rows_: rows / 5, Col_meta_: []*testing_tbl_gen.ColumnInsertMeta{
			{Name_: "id", Type_: types.Integer, KeyRole_: column.PrimaryKey, Dist_: testing_tbl_gen.DistSerial, Min_: 0, Max_: 0, Serial_counter_: 0},
			{Name_: "region", Type_: types.Integer, KeyRole_: column.NoKey, Dist_: testing_tbl_gen.DistUniform, Min_: 0, Max_: 9, Serial_counter_: 0},
		}},
		{Name_: "orders", Num_rows_: rows, Col_meta_: []*testing_tbl_gen.ColumnInsertMeta{
			{Name_: "id", Type_: types.Integer, KeyRole_: column.PrimaryKey, Dist_: testing_tbl_gen.DistSerial, Min_: 0, Max_: 0, Serial_counter_: 0},
			{Name_: "cust", Type_: types.Integer, KeyRole_: column.ForeignKey, Dist_: testing_tbl_gen.DistUniform, Min_: 0, Max_: int32(rows/5) - 1, Serial_counter_: 0},
			{Name_: "amount", Type_: types.Integer, KeyRole_: column.NoKey, Dist_: testing_tbl_gen.DistUniform, Min_: 1, Max_: 1000, Serial_counter_: 0},
		}},
		{Name_: "region", Num_rows_: 10, Col_meta_: []*testing_tbl_gen.ColumnInsertMeta{
			{Name_: "id", Type_: types.Integer, KeyRole_: column.PrimaryKey, Dist_: testing_tbl_gen.DistSerial, Min_: 0, Max_: 0, Serial_counter_: 0},
			{Name_: "name", Type_: types.Varchar, KeyRole_: column.NoKey, Dist_: testing_tbl_gen.DistUniform, Min_: 0, Max_: 8, Serial_counter_: 0},
		}},
	}
	for _, meta := range metas {
		if _, err := gen.GenerateTable(qp.GetCatalog(), meta); err != nil {
			return err
		}
	}

	col := func(table string, name string) *column.Column {
		sc := qp.GetCatalog().GetTableByName(table).Schema()
		return sc.GetColumn(uint32(sc.GetColIndex(table, name)))
	}
	qi := planner.NewQueryInfo("customer", "orders", "region").
		JoinOn(expression.NewJoinCondition(col("customer", "id"), col("orders", "cust"), expression.Equal)).
		JoinOn(expression.NewJoinCondition(col("customer", "region"), col("region", "id"), expression.Equal)).
		Where(expression.NewPredicate(col("orders", "amount"), expression.GreaterThan, types.NewInteger(500))).
		Select(col("orders", "id"), col("region", "name"), col("orders", "amount")).
		OrderByCols(col("orders", "id"))

	explained, err := qp.Explain(qi)
	if err != nil {
		return err
	}
	fmt.Print(explained)

	results, err := qp.ExecuteQuery(qi)
	if err != nil {
		return err
	}
	if printRows {
		pageqp.PrintExecuteResults(results)
	}
	fmt.Printf("%d rows\n", len(results))
	return nil
}
