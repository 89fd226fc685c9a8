// Package sqltypes maps SQL column types onto host (Go) representation types
// and warehouse types. The mapping is keyed by integer type codes matching the
// SQL/CLI type constants, so that every vendor reports into one fixed table;
// driver-specific type names are normalized into codes by CodeOf.
package sqltypes

import "strings"

// TypeCode identifies a SQL column type. Values follow the standard SQL/CLI
// type constants so codes are stable across vendors.
type TypeCode int

const (
	Bit           TypeCode = -7
	TinyInt       TypeCode = -6
	SmallInt      TypeCode = 5
	Integer       TypeCode = 4
	BigInt        TypeCode = -5
	Float         TypeCode = 6
	Real          TypeCode = 7
	Double        TypeCode = 8
	Numeric       TypeCode = 2
	Decimal       TypeCode = 3
	Char          TypeCode = 1
	VarChar       TypeCode = 12
	LongVarChar   TypeCode = -1
	Date          TypeCode = 91
	Time          TypeCode = 92
	Timestamp     TypeCode = 93
	Binary        TypeCode = -2
	VarBinary     TypeCode = -3
	LongVarBinary TypeCode = -4
	Blob          TypeCode = 2004
	Clob          TypeCode = 2005
	Boolean       TypeCode = 16
)

// Unknown is returned for type names outside the fixed table.
const Unknown TypeCode = 0

var typeNames = map[TypeCode]string{
	Bit:           "BIT",
	TinyInt:       "TINYINT",
	SmallInt:      "SMALLINT",
	Integer:       "INTEGER",
	BigInt:        "BIGINT",
	Float:         "FLOAT",
	Real:          "REAL",
	Double:        "DOUBLE",
	Numeric:       "NUMERIC",
	Decimal:       "DECIMAL",
	Char:          "CHAR",
	VarChar:       "VARCHAR",
	LongVarChar:   "LONGVARCHAR",
	Date:          "DATE",
	Time:          "TIME",
	Timestamp:     "TIMESTAMP",
	Binary:        "BINARY",
	VarBinary:     "VARBINARY",
	LongVarBinary: "LONGVARBINARY",
	Blob:          "BLOB",
	Clob:          "CLOB",
	Boolean:       "BOOLEAN",
}

// String returns the canonical name of the type code.
func (c TypeCode) String() string {
	if name, ok := typeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// Codes returns every code in the fixed table, in no particular order.
func Codes() []TypeCode {
	codes := make([]TypeCode, 0, len(typeNames))
	for c := range typeNames {
		codes = append(codes, c)
	}
	return codes
}

// nameToCode covers the type-name spellings reported by the supported
// drivers (pgx, go-sql-driver/mysql, modernc sqlite) plus the standard SQL
// spellings. Vendor managers may layer their own resolution on top for names
// absent from this table.
var nameToCode = map[string]TypeCode{
	"BIT":               Bit,
	"TINYINT":           TinyInt,
	"SMALLINT":          SmallInt,
	"INT2":              SmallInt,
	"MEDIUMINT":         Integer,
	"INT":               Integer,
	"INT4":              Integer,
	"INTEGER":           Integer,
	"SERIAL":            Integer,
	"BIGINT":            BigInt,
	"INT8":              BigInt,
	"BIGSERIAL":         BigInt,
	"FLOAT":             Float,
	"REAL":              Real,
	"FLOAT4":            Real,
	"DOUBLE":            Double,
	"DOUBLE PRECISION":  Double,
	"FLOAT8":            Double,
	"NUMERIC":           Numeric,
	"DECIMAL":           Decimal,
	"CHAR":              Char,
	"BPCHAR":            Char,
	"CHARACTER":         Char,
	"NCHAR":             Char,
	"VARCHAR":           VarChar,
	"NVARCHAR":          VarChar,
	"CHARACTER VARYING": VarChar,
	"TEXT":              LongVarChar,
	"TINYTEXT":          LongVarChar,
	"MEDIUMTEXT":        LongVarChar,
	"LONGTEXT":          LongVarChar,
	"LONGVARCHAR":       LongVarChar,
	"CLOB":              Clob,
	"BOOL":              Boolean,
	"BOOLEAN":           Boolean,
	"DATE":              Date,
	"TIME":              Time,
	"TIMETZ":            Time,
	"TIMESTAMP":         Timestamp,
	"TIMESTAMPTZ":       Timestamp,
	"DATETIME":          Timestamp,
	"BINARY":            Binary,
	"VARBINARY":         VarBinary,
	"BYTEA":             Blob,
	"BLOB":              Blob,
	"TINYBLOB":          Blob,
	"MEDIUMBLOB":        Blob,
	"LONGBLOB":          Blob,
	"LONGVARBINARY":     LongVarBinary,
}

// CodeOf resolves a driver-reported database type name to a type code.
// Precision suffixes like VARCHAR(64) and the UNSIGNED qualifier are
// stripped before lookup. Names outside the table yield (Unknown, false).
func CodeOf(databaseTypeName string) (TypeCode, bool) {
	name := strings.ToUpper(strings.TrimSpace(databaseTypeName))
	if i := strings.Index(name, "("); i >= 0 {
		name = strings.TrimSpace(name[:i])
	}
	name = strings.TrimSuffix(name, " UNSIGNED")

	code, ok := nameToCode[name]
	return code, ok
}
