package common

import (
	"sync"
	"testing"

	testingpkg "github.com/samehada-labs/pageqp/testing/testing_assert"
)

func TestIDGeneratorIsMonotonic(t *testing.T) {
	gen := NewIDGenerator()
	testingpkg.Equals(t, uint64(0), gen.NextID())
	testingpkg.Equals(t, uint64(1), gen.NextID())
	testingpkg.Equals(t, "pageqp-sort-2", gen.NextName("sort"))
}

func TestIDGeneratorConcurrentUse(t *testing.T) {
	gen := NewIDGenerator()
	seen := make(map[uint64]bool)
	var mutex sync.Mutex
	var wg sync.WaitGroup
	for ii := 0; ii < 8; ii++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for jj := 0; jj < 100; jj++ {
				id := gen.NextID()
				mutex.Lock()
				seen[id] = true
				mutex.Unlock()
			}
		}()
	}
	wg.Wait()
	testingpkg.Equals(t, 800, len(seen))
}

func TestParseQPConfig(t *testing.T) {
	cfg, err := ParseQPConfig(`
page_size = 512
page_budget = 5
on_mem_storage = true
log_levels = ["debug", "error"]
`)
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, 512, cfg.PageSize)
	testingpkg.Equals(t, 5, cfg.PageBudget)
	testingpkg.Equals(t, LogLevel(DEBUG_INFO|ERROR), cfg.LogLevel())
}

func TestParseQPConfigRejectsSmallBudget(t *testing.T) {
	_, err := ParseQPConfig("page_budget = 2\n")
	testingpkg.Nok(t, err)

	_, err = ParseQPConfig("on_mem_storage = false\n")
	testingpkg.Nok(t, err)
}
