package disk

import (
	"io"
	"os"

	"github.com/dsnet/golib/memfile"
	"github.com/samehada-labs/pageqp/common"
	"github.com/samehada-labs/pageqp/errors"
	"github.com/sasha-s/go-deadlock"
	"golang.org/x/exp/slices"
)

// VirtualTmpFileManagerImpl keeps intermediate files on memory
type VirtualTmpFileManagerImpl struct {
	files     map[string]*memfile.File
	numWrites uint64
	mutex     deadlock.Mutex
}

func NewVirtualTmpFileManagerImpl() TmpFileManager {
	return &VirtualTmpFileManagerImpl{files: make(map[string]*memfile.File)}
}

func (d *VirtualTmpFileManagerImpl) Create(name string) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if _, exist := d.files[name]; exist {
		return errors.NewStorageError("create", name, os.ErrExist)
	}
	d.files[name] = memfile.New(make([]byte, 0))
	return nil
}

func (d *VirtualTmpFileManagerImpl) lookup(op string, name string) (*memfile.File, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	f, exist := d.files[name]
	if !exist {
		return nil, errors.NewStorageError(op, name, os.ErrNotExist)
	}
	return f, nil
}

type virtualAppender struct {
	d      *VirtualTmpFileManagerImpl
	name   string
	file   *memfile.File
	closed bool
}

func (a *virtualAppender) Write(p []byte) (int, error) {
	if a.closed {
		return 0, errors.NewStorageError("write", a.name, os.ErrClosed)
	}
	a.d.mutex.Lock()
	defer a.d.mutex.Unlock()

	if _, exist := a.d.files[a.name]; !exist {
		return 0, errors.NewStorageError("write", a.name, os.ErrNotExist)
	}
	n, err := a.file.WriteAt(p, int64(len(a.file.Bytes())))
	a.d.numWrites++
	if err != nil {
		return n, errors.NewStorageError("write", a.name, err)
	}
	return n, nil
}

func (a *virtualAppender) Close() error {
	a.closed = true
	return nil
}

func (d *VirtualTmpFileManagerImpl) OpenAppender(name string) (io.WriteCloser, error) {
	f, err := d.lookup("open appender", name)
	if err != nil {
		return nil, err
	}
	return &virtualAppender{d, name, f, false}, nil
}

// OpenReader sees the content written before the call
func (d *VirtualTmpFileManagerImpl) OpenReader(name string) (io.ReadCloser, error) {
	f, err := d.lookup("open reader", name)
	if err != nil {
		return nil, err
	}
	d.mutex.Lock()
	size := int64(len(f.Bytes()))
	d.mutex.Unlock()
	return io.NopCloser(io.NewSectionReader(f, 0, size)), nil
}

func (d *VirtualTmpFileManagerImpl) Remove(name string) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	delete(d.files, name)
	return nil
}

func (d *VirtualTmpFileManagerImpl) Exists(name string) bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	_, exist := d.files[name]
	return exist
}

func (d *VirtualTmpFileManagerImpl) List() []string {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	ret := make([]string, 0, len(d.files))
	for name := range d.files {
		ret = append(ret, name)
	}
	slices.Sort(ret)
	return ret
}

func (d *VirtualTmpFileManagerImpl) GetNumWrites() uint64 {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.numWrites
}

// ShutDown drops all files
func (d *VirtualTmpFileManagerImpl) ShutDown() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if len(d.files) > 0 {
		common.ShPrintf(common.WARN, "VirtualTmpFileManagerImpl::ShutDown: %d files left\n", len(d.files))
	}
	d.files = make(map[string]*memfile.File)
}
