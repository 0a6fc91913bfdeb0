package disk

import (
	"io"

	"github.com/samehada-labs/pageqp/common"
)

/**
 * TmpFileManager owns the intermediate files of operators (sorted runs,
 * materialized join inputs). Files are append-only and read sequentially.
 * All errors returned are *errors.StorageError.
 */
type TmpFileManager interface {
	// Create makes a new empty file. It fails when the name is already used.
	Create(name string) error
	OpenAppender(name string) (io.WriteCloser, error)
	OpenReader(name string) (io.ReadCloser, error)
	// Remove deletes the file. Removing an absent file is not an error.
	Remove(name string) error
	Exists(name string) bool
	// List returns names of the files currently alive, sorted
	List() []string
	GetNumWrites() uint64
	ShutDown()
}

func NewTmpFileManager(cfg *common.QPConfig) (TmpFileManager, error) {
	if cfg.OnMemStorage {
		return NewVirtualTmpFileManagerImpl(), nil
	}
	return NewTmpFileManagerImpl(cfg.TmpDir)
}
