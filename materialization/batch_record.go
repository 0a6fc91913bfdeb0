package materialization

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/samehada-labs/pageqp/common"
	"github.com/samehada-labs/pageqp/storage/page"
	"github.com/samehada-labs/pageqp/storage/tuple"
	"github.com/samehada-labs/pageqp/types"
	"github.com/spaolacci/murmur3"
	"github.com/ugorji/go/codec"
)

/**
 * Record format of an intermediate file. A file is a sequence of records,
 * one record per Batch:
 * ------------------------------------------------------
 * | payload length (u32 LE) | murmur3 (u32 LE) | payload |
 * ------------------------------------------------------
 * payload is a msgpack encoded batchRecord. There is no record count,
 * readers stop at end of file.
 */
const recordHeaderSize = 8

var msgpackHandle codec.MsgpackHandle

type valueRecord struct {
	T int8    `codec:"t"`
	N bool    `codec:"n,omitempty"`
	I int32   `codec:"i,omitempty"`
	F float32 `codec:"f,omitempty"`
	S string  `codec:"s,omitempty"`
	B bool    `codec:"b,omitempty"`
}

type batchRecord struct {
	Capacity int             `codec:"c"`
	Rows     [][]valueRecord `codec:"r"`
}

func toValueRecord(v types.Value) valueRecord {
	ret := valueRecord{T: int8(v.ValueType()), N: v.IsNull()}
	if v.IsNull() {
		return ret
	}
	switch v.ValueType() {
	case types.Integer:
		ret.I = v.ToInteger()
	case types.Float:
		ret.F = v.ToFloat()
	case types.Varchar:
		ret.S = v.ToVarchar()
	case types.Boolean:
		ret.B = v.ToBoolean()
	}
	return ret
}

func fromValueRecord(r valueRecord) (types.Value, error) {
	valueType := types.TypeID(r.T)
	if r.N {
		return types.NewNull(valueType), nil
	}
	switch valueType {
	case types.Integer:
		return types.NewInteger(r.I), nil
	case types.Float:
		return types.NewFloat(r.F), nil
	case types.Varchar:
		return types.NewVarchar(r.S), nil
	case types.Boolean:
		return types.NewBoolean(r.B), nil
	}
	return types.Value{}, fmt.Errorf("unknown value type %d", r.T)
}

func encodeBatch(b *page.Batch) ([]byte, error) {
	rec := batchRecord{Capacity: b.Capacity(), Rows: make([][]valueRecord, 0, b.Size())}
	for _, t := range b.Tuples() {
		row := make([]valueRecord, 0, t.Arity())
		for _, v := range t.Values() {
			row = append(row, toValueRecord(v))
		}
		rec.Rows = append(rec.Rows, row)
	}

	payload := make([]byte, 0, 64)
	if err := codec.NewEncoderBytes(&payload, &msgpackHandle).Encode(&rec); err != nil {
		return nil, err
	}
	if len(payload) > common.MaxBatchRecordSize {
		return nil, fmt.Errorf("batch payload of %d bytes exceeds %d", len(payload), common.MaxBatchRecordSize)
	}

	buf := new(bytes.Buffer)
	buf.Grow(recordHeaderSize + len(payload))
	binary.Write(buf, binary.LittleEndian, uint32(len(payload)))
	binary.Write(buf, binary.LittleEndian, murmur3.Sum32(payload))
	buf.Write(payload)
	return buf.Bytes(), nil
}

func decodeBatch(payload []byte, checksum uint32) (*page.Batch, error) {
	if sum := murmur3.Sum32(payload); sum != checksum {
		return nil, fmt.Errorf("checksum mismatch: stored %x computed %x", checksum, sum)
	}
	var rec batchRecord
	if err := codec.NewDecoderBytes(payload, &msgpackHandle).Decode(&rec); err != nil {
		return nil, err
	}
	if rec.Capacity <= 0 || len(rec.Rows) > rec.Capacity {
		return nil, fmt.Errorf("malformed batch: capacity %d rows %d", rec.Capacity, len(rec.Rows))
	}

	ret := page.NewBatch(rec.Capacity)
	for _, row := range rec.Rows {
		values := make([]types.Value, 0, len(row))
		for _, vr := range row {
			v, err := fromValueRecord(vr)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		ret.Add(tuple.NewTuple(values))
	}
	return ret, nil
}
