package sqltypes

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
)

// ArrowPolicy maps type codes to Arrow types for the columnar handoff to the
// batch platform.
type ArrowPolicy struct{}

// Name implements WarehousePolicy.
func (ArrowPolicy) Name() string { return "arrow" }

// ArrowType resolves a code to its Arrow data type. Codes outside the fixed
// table report (nil, false).
func (ArrowPolicy) ArrowType(code TypeCode) (arrow.DataType, bool) {
	switch code {
	case Bit, Boolean:
		return arrow.FixedWidthTypes.Boolean, true
	case TinyInt:
		return arrow.PrimitiveTypes.Int8, true
	case SmallInt:
		return arrow.PrimitiveTypes.Int16, true
	case Integer:
		return arrow.PrimitiveTypes.Int32, true
	case BigInt:
		return arrow.PrimitiveTypes.Int64, true
	case Real:
		return arrow.PrimitiveTypes.Float32, true
	case Float, Double:
		return arrow.PrimitiveTypes.Float64, true
	case Numeric, Decimal:
		// Precision and scale are not known at mapping time; exact
		// numerics travel as text.
		return arrow.BinaryTypes.String, true
	case Char, VarChar, LongVarChar, Clob:
		return arrow.BinaryTypes.String, true
	case Date:
		return arrow.FixedWidthTypes.Date32, true
	case Time:
		return arrow.FixedWidthTypes.Time64us, true
	case Timestamp:
		return &arrow.TimestampType{Unit: arrow.Microsecond}, true
	case Binary, VarBinary, Blob, LongVarBinary:
		return arrow.BinaryTypes.Binary, true
	default:
		return nil, false
	}
}

// WarehouseType implements WarehousePolicy using the Arrow type's canonical
// string form.
func (p ArrowPolicy) WarehouseType(code TypeCode) (string, bool) {
	t, ok := p.ArrowType(code)
	if !ok {
		return "", false
	}
	return t.String(), true
}

// Schema builds an Arrow schema from parallel column name and type code
// slices, in column order. All columns are nullable; the catalog's nullability
// is not authoritative across every supported vendor.
func (p ArrowPolicy) Schema(names []string, codes []TypeCode) (*arrow.Schema, error) {
	if len(names) != len(codes) {
		return nil, fmt.Errorf("column names and type codes disagree: %d vs %d", len(names), len(codes))
	}

	fields := make([]arrow.Field, 0, len(names))
	for i, name := range names {
		arrowType, ok := p.ArrowType(codes[i])
		if !ok {
			return nil, fmt.Errorf("column %s has no arrow mapping for type %s", name, codes[i])
		}
		fields = append(fields, arrow.Field{
			Name:     name,
			Type:     arrowType,
			Nullable: true,
		})
	}

	return arrow.NewSchema(fields, nil), nil
}
