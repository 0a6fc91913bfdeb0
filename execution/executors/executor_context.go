// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package executors

import (
	"github.com/samehada-labs/pageqp/catalog"
	"github.com/samehada-labs/pageqp/common"
	"github.com/samehada-labs/pageqp/storage/disk"
	"github.com/samehada-labs/pageqp/storage/page"
	"github.com/samehada-labs/pageqp/storage/table/schema"
)

/**
 * ExecutorContext stores all the context necessary to run an executor.
 */
type ExecutorContext struct {
	catalog    *catalog.Catalog
	fm         disk.TmpFileManager
	idGen      *common.IDGenerator
	pageSize   int
	pageBudget int
}

func NewExecutorContext(catalog *catalog.Catalog, fm disk.TmpFileManager, idGen *common.IDGenerator, pageSize int, pageBudget int) *ExecutorContext {
	return &ExecutorContext{catalog, fm, idGen, pageSize, pageBudget}
}

// NewExecutorContextFromConfig also applies the configured log level
func NewExecutorContextFromConfig(cfg *common.QPConfig, catalog *catalog.Catalog) (*ExecutorContext, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	fm, err := disk.NewTmpFileManager(cfg)
	if err != nil {
		return nil, err
	}
	common.LogLevelSetting = cfg.LogLevel()
	return &ExecutorContext{catalog, fm, common.NewIDGenerator(), cfg.PageSize, cfg.PageBudget}, nil
}

func (e *ExecutorContext) GetCatalog() *catalog.Catalog {
	return e.catalog
}

func (e *ExecutorContext) GetTmpFileManager() disk.TmpFileManager {
	return e.fm
}

func (e *ExecutorContext) GetIDGenerator() *common.IDGenerator {
	return e.idGen
}

func (e *ExecutorContext) GetPageSize() int {
	return e.pageSize
}

// GetPageBudget is the number of pages each memory-bounded operator may hold
func (e *ExecutorContext) GetPageBudget() int {
	return e.pageBudget
}

// PageCapacity is the number of tuples of sc in one Batch
func (e *ExecutorContext) PageCapacity(sc *schema.Schema) int {
	return page.Capacity(e.pageSize, sc.TupleSize())
}
