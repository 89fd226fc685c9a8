package sqltypes

// WarehousePolicy maps type codes into a downstream warehouse type system.
// It is kept separate from the host-type table so warehouse-format evolution
// never touches the Go representation mapping.
type WarehousePolicy interface {
	// Name identifies the policy (e.g. "hive", "arrow")
	Name() string
	// WarehouseType resolves a code to the warehouse type name; codes the
	// policy cannot represent report (_, false).
	WarehouseType(code TypeCode) (string, bool)
}

// HivePolicy maps type codes to Hive column type names. This is the default
// policy for text-format imports into a Hive-compatible warehouse.
type HivePolicy struct{}

// Name implements WarehousePolicy.
func (HivePolicy) Name() string { return "hive" }

var hiveTypes = map[TypeCode]string{
	TinyInt:     "TINYINT",
	SmallInt:    "INT",
	Integer:     "INT",
	BigInt:      "BIGINT",
	Real:        "DOUBLE",
	Float:       "DOUBLE",
	Double:      "DOUBLE",
	Numeric:     "DOUBLE",
	Decimal:     "DOUBLE",
	Bit:         "BOOLEAN",
	Boolean:     "BOOLEAN",
	Char:        "STRING",
	VarChar:     "STRING",
	LongVarChar: "STRING",
	Clob:        "STRING",
	// Hive has no native date/time column type; timestamps travel as text.
	Date:      "STRING",
	Time:      "STRING",
	Timestamp: "STRING",
}

// WarehouseType implements WarehousePolicy. Binary types are not
// representable in a Hive text table and report false.
func (HivePolicy) WarehouseType(code TypeCode) (string, bool) {
	t, ok := hiveTypes[code]
	return t, ok
}
