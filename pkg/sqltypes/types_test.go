package sqltypes

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want TypeCode
	}{
		{"plain", "INTEGER", Integer},
		{"lowercase", "varchar", VarChar},
		{"precision suffix", "VARCHAR(64)", VarChar},
		{"decimal precision", "DECIMAL(10,2)", Decimal},
		{"unsigned qualifier", "INT UNSIGNED", Integer},
		{"pgx smallint", "INT2", SmallInt},
		{"pgx bigint", "INT8", BigInt},
		{"pgx char", "BPCHAR", Char},
		{"pgx timestamptz", "TIMESTAMPTZ", Timestamp},
		{"pgx bytea", "BYTEA", Blob},
		{"mysql mediumint", "MEDIUMINT", Integer},
		{"mysql datetime", "DATETIME", Timestamp},
		{"mysql longblob", "LONGBLOB", Blob},
		{"sqlite text", "TEXT", LongVarChar},
		{"two-word name", "DOUBLE PRECISION", Double},
		{"surrounding space", "  BOOLEAN  ", Boolean},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := CodeOf(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestCodeOf_UnknownName(t *testing.T) {
	code, ok := CodeOf("GEOMETRY")
	assert.False(t, ok)
	assert.Equal(t, Unknown, code)

	_, ok = CodeOf("")
	assert.False(t, ok)
}

func TestTypeCodeString(t *testing.T) {
	assert.Equal(t, "INTEGER", Integer.String())
	assert.Equal(t, "LONGVARCHAR", LongVarChar.String())
	assert.Equal(t, "UNKNOWN", TypeCode(9999).String())
}

func TestHostType_CoversEveryCode(t *testing.T) {
	// Every code in the fixed table must have a Go representation; an import
	// that introspects any supported column type can always generate a field.
	for _, code := range Codes() {
		hostType, ok := HostType(code)
		assert.True(t, ok, "no host type for %s", code)
		assert.NotEmpty(t, hostType, "empty host type for %s", code)
	}
}

func TestHostType(t *testing.T) {
	tests := []struct {
		code TypeCode
		want string
	}{
		{Integer, "int32"},
		{BigInt, "int64"},
		{Real, "float32"},
		{Double, "float64"},
		{Decimal, "string"},
		{VarChar, "string"},
		{Timestamp, "time.Time"},
		{Blob, "[]byte"},
		{Boolean, "bool"},
	}

	for _, tt := range tests {
		got, ok := HostType(tt.code)
		require.True(t, ok)
		assert.Equal(t, tt.want, got, "host type for %s", tt.code)
	}

	_, ok := HostType(Unknown)
	assert.False(t, ok)
}

func TestHivePolicy(t *testing.T) {
	var p HivePolicy
	assert.Equal(t, "hive", p.Name())

	got, ok := p.WarehouseType(Integer)
	require.True(t, ok)
	assert.Equal(t, "INT", got)

	got, ok = p.WarehouseType(Timestamp)
	require.True(t, ok)
	assert.Equal(t, "STRING", got)

	// Binary columns have no Hive text representation.
	_, ok = p.WarehouseType(Blob)
	assert.False(t, ok)
}

func TestArrowPolicy(t *testing.T) {
	var p ArrowPolicy
	assert.Equal(t, "arrow", p.Name())

	got, ok := p.ArrowType(Integer)
	require.True(t, ok)
	assert.Equal(t, arrow.PrimitiveTypes.Int32, got)

	got, ok = p.ArrowType(Timestamp)
	require.True(t, ok)
	assert.Equal(t, arrow.TIMESTAMP, got.ID())

	_, ok = p.ArrowType(Unknown)
	assert.False(t, ok)

	// Every fixed-table code maps into Arrow.
	for _, code := range Codes() {
		_, ok := p.ArrowType(code)
		assert.True(t, ok, "no arrow type for %s", code)
	}
}

func TestArrowPolicySchema(t *testing.T) {
	var p ArrowPolicy

	schema, err := p.Schema(
		[]string{"id", "name", "hired"},
		[]TypeCode{Integer, VarChar, Date},
	)
	require.NoError(t, err)
	require.Equal(t, 3, schema.NumFields())

	assert.Equal(t, "id", schema.Field(0).Name)
	assert.Equal(t, arrow.PrimitiveTypes.Int32, schema.Field(0).Type)
	assert.True(t, schema.Field(0).Nullable)
	assert.Equal(t, arrow.FixedWidthTypes.Date32, schema.Field(2).Type)
}

func TestArrowPolicySchema_Mismatch(t *testing.T) {
	var p ArrowPolicy

	_, err := p.Schema([]string{"id", "name"}, []TypeCode{Integer})
	assert.Error(t, err)

	_, err = p.Schema([]string{"shape"}, []TypeCode{Unknown})
	assert.Error(t, err)
}
