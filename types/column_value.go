// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package types

import (
	"fmt"
	"strconv"
)

// A value is an class that represents a view over SQL data stored in
// some materialized state. All values have a type and comparison functions,
// and implement other type-specific functionality.
type Value struct {
	valueType TypeID
	isNull    bool
	integer   int32
	float     float32
	varchar   string
	boolean   bool
}

func NewInteger(value int32) Value {
	return Value{valueType: Integer, integer: value}
}

func NewFloat(value float32) Value {
	return Value{valueType: Float, float: value}
}

func NewBoolean(value bool) Value {
	return Value{valueType: Boolean, boolean: value}
}

func NewVarchar(value string) Value {
	return Value{valueType: Varchar, varchar: value}
}

// note: only way to get Value object which has NULL value
func NewNull(valueType TypeID) Value {
	return Value{valueType: valueType, isNull: true}
}

/**
 * CompareTo returns -1, 0 or 1. NULL is ordered before every non NULL value
 * so that sort and merge steps see a total order.
 */
func (v Value) CompareTo(right Value) int {
	if v.isNull || right.isNull {
		switch {
		case v.isNull && right.isNull:
			return 0
		case v.isNull:
			return -1
		default:
			return 1
		}
	}

	switch v.valueType {
	case Integer:
		return compareOrdered(v.integer, right.integer)
	case Float:
		return compareOrdered(v.float, right.float)
	case Varchar:
		return compareOrdered(v.varchar, right.varchar)
	case Boolean:
		switch {
		case v.boolean == right.boolean:
			return 0
		case !v.boolean:
			return -1
		default:
			return 1
		}
	}
	panic("illegal valueType is passed!")
}

func compareOrdered[T int32 | float32 | string](l T, r T) int {
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	}
	return 0
}

// NULL never equals anything in join predicates
func (v Value) CompareEquals(right Value) bool {
	if v.IsNull() || right.IsNull() {
		return false
	}
	return v.CompareTo(right) == 0
}

func (v Value) CompareNotEquals(right Value) bool {
	if v.IsNull() || right.IsNull() {
		return false
	}
	return v.CompareTo(right) != 0
}

func (v Value) CompareLessThan(right Value) bool {
	if v.IsNull() || right.IsNull() {
		return false
	}
	return v.CompareTo(right) < 0
}

func (v Value) CompareLessThanOrEqual(right Value) bool {
	if v.IsNull() || right.IsNull() {
		return false
	}
	return v.CompareTo(right) <= 0
}

func (v Value) CompareGreaterThan(right Value) bool {
	if v.IsNull() || right.IsNull() {
		return false
	}
	return v.CompareTo(right) > 0
}

func (v Value) CompareGreaterThanOrEqual(right Value) bool {
	if v.IsNull() || right.IsNull() {
		return false
	}
	return v.CompareTo(right) >= 0
}

// if you use this to get column value
// NULL value check is needed in general
func (v Value) ToBoolean() bool {
	return v.boolean
}

func (v Value) ToInteger() int32 {
	return v.integer
}

func (v Value) ToFloat() float32 {
	return v.float
}

func (v Value) ToVarchar() string {
	return v.varchar
}

func (v Value) ValueType() TypeID {
	return v.valueType
}

func (v Value) IsNull() bool {
	return v.isNull
}

func (v Value) ToString() string {
	if v.isNull {
		return "NULL"
	}
	switch v.valueType {
	case Integer:
		return strconv.Itoa(int(v.integer))
	case Float:
		return strconv.FormatFloat(float64(v.float), 'f', -1, 32)
	case Varchar:
		return v.varchar
	case Boolean:
		return strconv.FormatBool(v.boolean)
	}
	return fmt.Sprintf("<invalid %d>", v.valueType)
}
