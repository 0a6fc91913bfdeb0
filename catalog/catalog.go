package catalog

import (
	"fmt"

	"github.com/samehada-labs/pageqp/storage/table/schema"
	"github.com/samehada-labs/pageqp/storage/tuple"
)

// Catalog is a non-persistent catalog that is designed for the executor to use.
// It handles table creation and table lookup
type Catalog struct {
	tables      map[uint32]*TableMetadata
	names       map[string]uint32
	nextTableId uint32
}

func NewCatalog() *Catalog {
	return &Catalog{make(map[uint32]*TableMetadata), make(map[string]uint32), 0}
}

func (c *Catalog) GetTableByName(table string) *TableMetadata {
	if oid, ok := c.names[table]; ok {
		return c.tables[oid]
	}
	return nil
}

func (c *Catalog) GetTableByOID(oid uint32) *TableMetadata {
	if table, ok := c.tables[oid]; ok {
		return table
	}
	return nil
}

// CreateTable registers a table whose statistics are computed from tuples
func (c *Catalog) CreateTable(name string, sc *schema.Schema, tuples []*tuple.Tuple) (*TableMetadata, error) {
	return c.CreateTableWithStatistics(name, sc, tuples, ComputeStatistics(sc, tuples))
}

/**
 * CreateTableWithStatistics registers a table with statistics given by
 * the caller. tuples may be nil when the table is used only for planning.
 */
func (c *Catalog) CreateTableWithStatistics(name string, sc *schema.Schema, tuples []*tuple.Tuple, stats *TableStatistics) (*TableMetadata, error) {
	if _, exist := c.names[name]; exist {
		return nil, fmt.Errorf("table %s already exists", name)
	}
	oid := c.nextTableId
	c.nextTableId++
	c.names[name] = oid

	tableMetadata := &TableMetadata{sc, name, tuples, oid, stats}
	c.tables[oid] = tableMetadata
	return tableMetadata, nil
}

// GetStatistics returns nil for unknown tables
func (c *Catalog) GetStatistics(name string) *TableStatistics {
	if tm := c.GetTableByName(name); tm != nil {
		return tm.statistics
	}
	return nil
}
