package models

// Field is a semantic column of a bill of quantities.
type Field string

const (
	FieldOrdinal     Field = "ordinal"
	FieldDescription Field = "description"
	FieldDetails     Field = "details"
	FieldUnit        Field = "unit"
	FieldQuantity    Field = "quantity"
	FieldUnitPrice   Field = "unit_price"
	FieldTotalPrice  Field = "total_price"
)

// Fields lists every field in binding priority order.
var Fields = []Field{
	FieldOrdinal,
	FieldDescription,
	FieldDetails,
	FieldUnit,
	FieldQuantity,
	FieldUnitPrice,
	FieldTotalPrice,
}

// Unbound marks a field with no column.
const Unbound = -1

// ColumnMap maps each field to a 0-based column index, or Unbound.
// It is a value type; copies never alias.
type ColumnMap struct {
	Ordinal     int `json:"ordinal"`
	Description int `json:"description"`
	Details     int `json:"details"`
	Unit        int `json:"unit"`
	Quantity    int `json:"quantity"`
	UnitPrice   int `json:"unit_price"`
	TotalPrice  int `json:"total_price"`
}

// EmptyColumnMap returns a map with every field unbound.
func EmptyColumnMap() ColumnMap {
	return ColumnMap{
		Ordinal:     Unbound,
		Description: Unbound,
		Details:     Unbound,
		Unit:        Unbound,
		Quantity:    Unbound,
		UnitPrice:   Unbound,
		TotalPrice:  Unbound,
	}
}

// DefaultColumnMap is the layout assumed when no header row is found.
func DefaultColumnMap() ColumnMap {
	return ColumnMap{
		Ordinal:     0,
		Description: 1,
		Details:     Unbound,
		Unit:        3,
		Quantity:    4,
		UnitPrice:   5,
		TotalPrice:  6,
	}
}

// Column returns the column bound to f.
func (m ColumnMap) Column(f Field) int {
	switch f {
	case FieldOrdinal:
		return m.Ordinal
	case FieldDescription:
		return m.Description
	case FieldDetails:
		return m.Details
	case FieldUnit:
		return m.Unit
	case FieldQuantity:
		return m.Quantity
	case FieldUnitPrice:
		return m.UnitPrice
	case FieldTotalPrice:
		return m.TotalPrice
	}
	return Unbound
}

// With returns a copy of m with f bound to col.
func (m ColumnMap) With(f Field, col int) ColumnMap {
	switch f {
	case FieldOrdinal:
		m.Ordinal = col
	case FieldDescription:
		m.Description = col
	case FieldDetails:
		m.Details = col
	case FieldUnit:
		m.Unit = col
	case FieldQuantity:
		m.Quantity = col
	case FieldUnitPrice:
		m.UnitPrice = col
	case FieldTotalPrice:
		m.TotalPrice = col
	}
	return m
}

// Has reports whether f is bound.
func (m ColumnMap) Has(f Field) bool {
	return m.Column(f) != Unbound
}

// FieldAt returns the field bound to col, if any.
func (m ColumnMap) FieldAt(col int) (Field, bool) {
	if col < 0 {
		return "", false
	}
	for _, f := range Fields {
		if m.Column(f) == col {
			return f, true
		}
	}
	return "", false
}
