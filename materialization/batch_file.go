package materialization

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/samehada-labs/pageqp/common"
	"github.com/samehada-labs/pageqp/errors"
	"github.com/samehada-labs/pageqp/storage/disk"
	"github.com/samehada-labs/pageqp/storage/page"
	"github.com/samehada-labs/pageqp/storage/tuple"
)

// BatchWriter appends Batch records to an existing intermediate file
type BatchWriter struct {
	name       string
	w          io.WriteCloser
	numBatches int
	numTuples  int
}

func NewBatchWriter(fm disk.TmpFileManager, name string) (*BatchWriter, error) {
	w, err := fm.OpenAppender(name)
	if err != nil {
		return nil, err
	}
	return &BatchWriter{name, w, 0, 0}, nil
}

// WriteBatch writes one record. empty batches are written too
func (bw *BatchWriter) WriteBatch(b *page.Batch) error {
	data, err := encodeBatch(b)
	if err != nil {
		return errors.NewStorageError("encode", bw.name, err)
	}
	// appenders of TmpFileManager already report StorageError
	if _, err := bw.w.Write(data); err != nil {
		return err
	}
	bw.numBatches++
	bw.numTuples += b.Size()
	return nil
}

func (bw *BatchWriter) NumBatches() int { return bw.numBatches }

func (bw *BatchWriter) NumTuples() int { return bw.numTuples }

func (bw *BatchWriter) Close() error {
	if bw.w == nil {
		return nil
	}
	err := bw.w.Close()
	bw.w = nil
	if err != nil {
		return errors.NewStorageError("close", bw.name, err)
	}
	return nil
}

// BatchReader reads Batch records in write order
type BatchReader struct {
	name   string
	closer io.Closer
	r      *bufio.Reader
	header [recordHeaderSize]byte
}

func NewBatchReader(fm disk.TmpFileManager, name string) (*BatchReader, error) {
	rc, err := fm.OpenReader(name)
	if err != nil {
		return nil, err
	}
	return &BatchReader{name: name, closer: rc, r: bufio.NewReader(rc)}, nil
}

// ReadBatch returns (nil, nil) at end of file
func (br *BatchReader) ReadBatch() (*page.Batch, error) {
	if br.r == nil {
		return nil, errors.NewStorageError("read", br.name, io.ErrClosedPipe)
	}
	n, err := io.ReadFull(br.r, br.header[:])
	if err == io.EOF && n == 0 {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewStorageError("read header", br.name, err)
	}
	length := binary.LittleEndian.Uint32(br.header[0:4])
	checksum := binary.LittleEndian.Uint32(br.header[4:8])
	if length > common.MaxBatchRecordSize {
		return nil, errors.NewStorageError("read header", br.name,
			fmt.Errorf("record length %d exceeds %d", length, common.MaxBatchRecordSize))
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(br.r, payload); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, errors.NewStorageError("read payload", br.name, err)
	}
	b, err := decodeBatch(payload, checksum)
	if err != nil {
		return nil, errors.NewStorageError("decode", br.name, err)
	}
	return b, nil
}

func (br *BatchReader) Close() error {
	if br.closer == nil {
		return nil
	}
	err := br.closer.Close()
	br.closer = nil
	br.r = nil
	if err != nil {
		return errors.NewStorageError("close", br.name, err)
	}
	return nil
}

/**
 * WriteRun creates the file name and writes tuples to it, capacity tuples
 * per batch. The file is removed when writing fails.
 */
func WriteRun(fm disk.TmpFileManager, name string, tuples []*tuple.Tuple, capacity int) (err error) {
	if err = fm.Create(name); err != nil {
		return err
	}
	defer func() {
		if err != nil {
			fm.Remove(name)
		}
	}()

	bw, err := NewBatchWriter(fm, name)
	if err != nil {
		return err
	}
	for _, b := range page.Paginate(tuples, capacity) {
		if err = bw.WriteBatch(b); err != nil {
			bw.Close()
			return err
		}
	}
	common.ShPrintf(common.DEBUG_INFO_DETAIL, "WriteRun: %s %d tuples %d batches\n", name, len(tuples), bw.NumBatches())
	return bw.Close()
}

// ReadAllTuples drains a file. used for checks and small inputs
func ReadAllTuples(fm disk.TmpFileManager, name string) ([]*tuple.Tuple, error) {
	br, err := NewBatchReader(fm, name)
	if err != nil {
		return nil, err
	}
	defer br.Close()

	ret := make([]*tuple.Tuple, 0)
	for {
		b, err := br.ReadBatch()
		if err != nil {
			return nil, err
		}
		if b == nil {
			return ret, nil
		}
		ret = append(ret, b.Tuples()...)
	}
}
