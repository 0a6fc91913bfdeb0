// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package disk

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/samehada-labs/pageqp/common"
	"github.com/samehada-labs/pageqp/errors"
	"github.com/sasha-s/go-deadlock"
	"golang.org/x/exp/slices"
)

// TmpFileManagerImpl keeps intermediate files in a private directory
type TmpFileManagerImpl struct {
	dir       string
	numWrites uint64
	mutex     deadlock.Mutex
}

// NewTmpFileManagerImpl creates a private directory under baseDir
func NewTmpFileManagerImpl(baseDir string) (TmpFileManager, error) {
	dir, err := os.MkdirTemp(baseDir, common.TmpFilePrefix+"-")
	if err != nil {
		return nil, errors.NewStorageError("mkdir", baseDir, err)
	}
	return &TmpFileManagerImpl{dir: dir}, nil
}

func (d *TmpFileManagerImpl) path(name string) string {
	return filepath.Join(d.dir, name)
}

func (d *TmpFileManagerImpl) Create(name string) error {
	f, err := os.OpenFile(d.path(name), os.O_RDWR|os.O_CREATE|os.O_EXCL, 0666)
	if err != nil {
		return errors.NewStorageError("create", name, err)
	}
	if err := f.Close(); err != nil {
		return errors.NewStorageError("create", name, err)
	}
	return nil
}

type countingFile struct {
	*os.File
	d *TmpFileManagerImpl
}

func (f *countingFile) Write(p []byte) (int, error) {
	n, err := f.File.Write(p)
	f.d.mutex.Lock()
	f.d.numWrites++
	f.d.mutex.Unlock()
	if err != nil {
		return n, errors.NewStorageError("write", filepath.Base(f.Name()), err)
	}
	return n, nil
}

func (d *TmpFileManagerImpl) OpenAppender(name string) (io.WriteCloser, error) {
	f, err := os.OpenFile(d.path(name), os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, errors.NewStorageError("open appender", name, err)
	}
	return &countingFile{f, d}, nil
}

func (d *TmpFileManagerImpl) OpenReader(name string) (io.ReadCloser, error) {
	f, err := os.Open(d.path(name))
	if err != nil {
		return nil, errors.NewStorageError("open reader", name, err)
	}
	return f, nil
}

func (d *TmpFileManagerImpl) Remove(name string) error {
	err := os.Remove(d.path(name))
	if err != nil && !os.IsNotExist(err) {
		return errors.NewStorageError("remove", name, err)
	}
	return nil
}

func (d *TmpFileManagerImpl) Exists(name string) bool {
	_, err := os.Stat(d.path(name))
	return err == nil
}

func (d *TmpFileManagerImpl) List() []string {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		common.ShPrintf(common.ERROR, "TmpFileManagerImpl::List: %v\n", err)
		return []string{}
	}
	ret := make([]string, 0, len(entries))
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		ret = append(ret, entry.Name())
	}
	slices.Sort(ret)
	return ret
}

func (d *TmpFileManagerImpl) GetNumWrites() uint64 {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.numWrites
}

// ShutDown removes the private directory with files left in it
func (d *TmpFileManagerImpl) ShutDown() {
	if err := os.RemoveAll(d.dir); err != nil {
		common.ShPrintf(common.ERROR, "TmpFileManagerImpl::ShutDown: %v\n", err)
	}
}
