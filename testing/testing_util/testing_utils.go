// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package testing_util

import (
	"github.com/samehada-labs/pageqp/storage/tuple"
	"github.com/samehada-labs/pageqp/types"
)

// GetValue converts a Go literal to a Value. nil is not accepted
func GetValue(data interface{}) (value types.Value) {
	switch v := data.(type) {
	case int:
		value = types.NewInteger(int32(v))
	case int32:
		value = types.NewInteger(v)
	case float32:
		value = types.NewFloat(v)
	case float64:
		value = types.NewFloat(float32(v))
	case string:
		value = types.NewVarchar(v)
	case bool:
		value = types.NewBoolean(v)
	case types.Value:
		value = v
	default:
		panic("not implemented")
	}
	return
}

func GetValueType(data interface{}) (value types.TypeID) {
	switch v := data.(type) {
	case int, int32:
		return types.Integer
	case float32, float64:
		return types.Float
	case string:
		return types.Varchar
	case bool:
		return types.Boolean
	case types.Value:
		return v.ValueType()
	}
	panic("not implemented")
}

// MakeTuple builds a tuple from Go literals, e.g. MakeTuple(1, "a", true)
func MakeTuple(data ...interface{}) *tuple.Tuple {
	values := make([]types.Value, 0, len(data))
	for _, d := range data {
		values = append(values, GetValue(d))
	}
	return tuple.NewTuple(values)
}

// MakeTuples builds one tuple per row
func MakeTuples(rows [][]interface{}) []*tuple.Tuple {
	ret := make([]*tuple.Tuple, 0, len(rows))
	for _, row := range rows {
		ret = append(ret, MakeTuple(row...))
	}
	return ret
}
