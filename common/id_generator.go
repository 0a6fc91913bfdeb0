package common

import (
	"fmt"

	"github.com/sasha-s/go-deadlock"
)

/**
 * IDGenerator hands out monotonically increasing ids used to name
 * intermediate files. One generator is shared by all operators of a
 * query through ExecutorContext. Queries running at the same time may
 * share one generator (it is synchronized) or use their own ones together
 * with separate temp directories.
 */
type IDGenerator struct {
	mutex  deadlock.Mutex
	nextID uint64
}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{nextID: 0}
}

func (g *IDGenerator) NextID() uint64 {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	ret := g.nextID
	g.nextID++
	return ret
}

// NextName returns "<TmpFilePrefix>-<kind>-<id>"
func (g *IDGenerator) NextName(kind string) string {
	return fmt.Sprintf("%s-%s-%d", TmpFilePrefix, kind, g.NextID())
}
