package types

type TypeID int

const (
	Invalid TypeID = iota
	Boolean
	Integer
	Float
	Varchar
)

// Size returns default byte size of a column of the type.
// Varchar columns carry their own declared size on the column definition.
func (t TypeID) Size() uint32 {
	switch t {
	case Boolean:
		return 1
	case Integer:
		return 4
	case Float:
		return 4
	case Varchar:
		return 32
	}
	return 0
}

func (t TypeID) String() string {
	switch t {
	case Boolean:
		return "BOOLEAN"
	case Integer:
		return "INTEGER"
	case Float:
		return "REAL"
	case Varchar:
		return "STRING"
	}
	return "INVALID"
}
