package pageqp

import (
	"github.com/samehada-labs/pageqp/catalog"
	"github.com/samehada-labs/pageqp/common"
	"github.com/samehada-labs/pageqp/execution/executors"
	"github.com/samehada-labs/pageqp/storage/disk"
)

// QPInstance bundles the per-process components shared by every query
type QPInstance struct {
	cfg          *common.QPConfig
	tmp_file_mgr disk.TmpFileManager
	id_gen       *common.IDGenerator
}

func NewQPInstanceForTesting() *QPInstance {
	cfg := common.NewDefaultQPConfig()
	cfg.OnMemStorage = true
	ret, err := NewQPInstance(cfg)
	if err != nil {
		panic(err)
	}
	return ret
}

func NewQPInstance(cfg *common.QPConfig) (*QPInstance, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	fm, err := disk.NewTmpFileManager(cfg)
	if err != nil {
		return nil, err
	}
	common.LogLevelSetting = cfg.LogLevel()
	return &QPInstance{cfg, fm, common.NewIDGenerator()}, nil
}

func (qi *QPInstance) GetConfig() *common.QPConfig {
	return qi.cfg
}

func (qi *QPInstance) GetTmpFileManager() disk.TmpFileManager {
	return qi.tmp_file_mgr
}

func (qi *QPInstance) GetIDGenerator() *common.IDGenerator {
	return qi.id_gen
}

// NewExecutorContext returns a context sharing this instance's file manager and name generator
func (qi *QPInstance) NewExecutorContext(c *catalog.Catalog) *executors.ExecutorContext {
	return executors.NewExecutorContext(c, qi.tmp_file_mgr, qi.id_gen, qi.cfg.PageSize, qi.cfg.PageBudget)
}

// Finalize releases the file manager. Files left behind are reported.
func (qi *QPInstance) Finalize() {
	if left := qi.tmp_file_mgr.List(); len(left) > 0 {
		common.ShPrintf(common.WARN, "QPInstance::Finalize: %d intermediate files are left: %v\n", len(left), left)
	}
	qi.tmp_file_mgr.ShutDown()
}
