// this code is from https://github.com/pzhzqt/goostub
// there is license and copyright notice in licenses/goostub dir

package common

var EnableDebug bool = false

// intermediate files are kept on memory (memfile) when true
var EnableOnMemStorage bool = true

const (
	// size of a page (Batch) in byte
	DefaultPageSize = 4096
	// default number of pages an operator may hold at once
	DefaultPageBudget = 8
	// minimum page budget of external sort (B-1 inputs and one output)
	MinSortBudget = 3
	// minimum page budget of block nested loop join (one left page, one output page, one right block page)
	MinBNLBudget = 3
	// relations are indexed by bit position of a uint64 subset key.
	// enumeration is exponential, so the practical limit is lower than 64
	MaxJoinRelations = 24
	// upper bound of the payload of one intermediate Batch record in bytes
	MaxBatchRecordSize = 64 * 1024 * 1024
	// prefix of intermediate file names
	TmpFilePrefix = "pageqp"
)
