package sqltypes

// hostTypes is the fixed table mapping every known type code to the Go type
// that should hold its values. Exact numerics are carried as strings so no
// precision is lost crossing the connector boundary.
var hostTypes = map[TypeCode]string{
	Bit:           "bool",
	Boolean:       "bool",
	TinyInt:       "int32",
	SmallInt:      "int32",
	Integer:       "int32",
	BigInt:        "int64",
	Real:          "float32",
	Float:         "float64",
	Double:        "float64",
	Numeric:       "string",
	Decimal:       "string",
	Char:          "string",
	VarChar:       "string",
	LongVarChar:   "string",
	Clob:          "string",
	Date:          "time.Time",
	Time:          "time.Time",
	Timestamp:     "time.Time",
	Binary:        "[]byte",
	VarBinary:     "[]byte",
	Blob:          "[]byte",
	LongVarBinary: "[]byte",
}

// HostType resolves a type code to the Go representation type. Codes outside
// the fixed table report (_, false); the vendor layer may supply its own
// resolution before treating the column as unsupported.
func HostType(code TypeCode) (string, bool) {
	t, ok := hostTypes[code]
	return t, ok
}
