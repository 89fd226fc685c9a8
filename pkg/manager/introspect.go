package manager

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/gcristian/sqoop/pkg/errors"
	"github.com/gcristian/sqoop/pkg/metrics"
	"github.com/gcristian/sqoop/pkg/sqltypes"
)

// Column describes one table column as reported by the engine.
type Column struct {
	// Name is the catalog column name; when the driver reports an empty
	// name the display label is used instead, so Name is never empty.
	Name string
	// Type is the resolved SQL type code; sqltypes.Unknown when neither
	// the fixed table nor the vendor could resolve the driver's type name.
	Type sqltypes.TypeCode
	// DatabaseTypeName is the raw type name the driver reported.
	DatabaseTypeName string
}

// TableSchema is the ordered column list of a table plus its primary key, if
// any. Column order is the catalog order and is meaningful for positional
// row access.
type TableSchema struct {
	Table      string
	Columns    []Column
	PrimaryKey string
}

// Names returns the column names in catalog order.
func (s *TableSchema) Names() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// TypeCodes returns the column type codes in catalog order.
func (s *TableSchema) TypeCodes() []sqltypes.TypeCode {
	codes := make([]sqltypes.TypeCode, len(s.Columns))
	for i, c := range s.Columns {
		codes[i] = c.Type
	}
	return codes
}

// columnQuery is the zero-row introspection query: shaped to return no rows
// while still making the engine report the table's authoritative column list
// and types. Vendors may override it.
func (m *Manager) columnQuery(table string) string {
	if o, ok := m.vendor.(ColumnQueryOverrider); ok {
		return o.ColumnQuery(table)
	}
	// The WHERE clause prevents loading a big table just to learn its shape.
	return fmt.Sprintf("SELECT t.* FROM %s AS t WHERE 1=0", m.vendor.Quote(table))
}

// ListTables queries the catalog for all base tables and returns their names
// in catalog iteration order. Catalog failures are logged and surfaced as a
// typed catalog error; callers treat them as "unknown", not as a crash.
func (m *Manager) ListTables(ctx context.Context) ([]string, error) {
	stmt, args := m.vendor.TablesQuery()

	cur, err := m.Execute(ctx, stmt, args...)
	if err != nil {
		m.Release()
		m.log.Error("error reading database metadata", zap.Error(err))
		metrics.RecordCatalogQuery(m.vendor.Name(), "list_tables", err)
		return nil, errors.Wrap(err, errors.ErrorTypeCatalog, "could not list tables")
	}
	defer cur.Close()

	var tables []string
	rows := cur.Rows()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			m.log.Error("error reading from database", zap.Error(err))
			metrics.RecordCatalogQuery(m.vendor.Name(), "list_tables", err)
			return nil, errors.Wrap(err, errors.ErrorTypeCatalog, "could not scan table name")
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		m.log.Error("error reading from database", zap.Error(err))
		metrics.RecordCatalogQuery(m.vendor.Name(), "list_tables", err)
		return nil, errors.Wrap(err, errors.ErrorTypeCatalog, "error iterating table names")
	}

	metrics.RecordCatalogQuery(m.vendor.Name(), "list_tables", nil)
	return tables, nil
}

// describe runs the zero-row query against the table and extracts the column
// descriptors from cursor metadata. No rows are fetched. The cursor is
// closed, the transaction committed, and the cursor released before
// returning, on the error path included.
func (m *Manager) describe(ctx context.Context, table string) ([]Column, error) {
	stmt := m.columnQuery(table)

	cur, err := m.Execute(ctx, stmt)
	if err != nil {
		m.Release()
		m.log.Error("error executing statement", zap.Error(err), zap.String("table", table))
		metrics.RecordCatalogQuery(m.vendor.Name(), "columns", err)
		return nil, errors.Wrap(err, errors.ErrorTypeCatalog, "could not introspect table "+table)
	}
	defer cur.Close()

	names, err := cur.Columns()
	if err != nil {
		m.log.Error("error reading column metadata", zap.Error(err), zap.String("table", table))
		metrics.RecordCatalogQuery(m.vendor.Name(), "columns", err)
		return nil, errors.Wrap(err, errors.ErrorTypeCatalog, "could not read column names")
	}

	colTypes, err := cur.ColumnTypes()
	if err != nil {
		m.log.Error("error reading column metadata", zap.Error(err), zap.String("table", table))
		metrics.RecordCatalogQuery(m.vendor.Name(), "columns", err)
		return nil, errors.Wrap(err, errors.ErrorTypeCatalog, "could not read column types")
	}

	columns := make([]Column, len(names))
	for i, name := range names {
		// Fall back to the descriptor's label, then a positional label;
		// a column name is never empty.
		if name == "" && i < len(colTypes) {
			name = colTypes[i].Name()
		}
		if name == "" {
			name = fmt.Sprintf("_col%d", i)
		}

		col := Column{Name: name}
		if i < len(colTypes) {
			col.DatabaseTypeName = colTypes[i].DatabaseTypeName()
			if code, ok := m.typeCode(col.DatabaseTypeName); ok {
				col.Type = code
			}
		}
		columns[i] = col
	}

	metrics.RecordCatalogQuery(m.vendor.Name(), "columns", nil)
	return columns, nil
}

// ColumnNames returns the table's column names in catalog order.
func (m *Manager) ColumnNames(ctx context.Context, table string) ([]string, error) {
	columns, err := m.describe(ctx, table)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.Name
	}
	return names, nil
}

// ColumnTypes returns the table's column name to type code mapping.
func (m *Manager) ColumnTypes(ctx context.Context, table string) (map[string]sqltypes.TypeCode, error) {
	columns, err := m.describe(ctx, table)
	if err != nil {
		return nil, err
	}

	types := make(map[string]sqltypes.TypeCode, len(columns))
	for _, c := range columns {
		types[c.Name] = c.Type
	}
	return types, nil
}

// PrimaryKey returns the table's first primary-key column, or "" if the
// table is unkeyed. Only single-column keys are modeled; for a composite key
// the first column is reported. Lookup failures are logged and returned as a
// typed catalog error so callers can distinguish "unkeyed" from "unknown".
func (m *Manager) PrimaryKey(ctx context.Context, table string) (string, error) {
	if r, ok := m.vendor.(PrimaryKeyResolver); ok {
		key, err := r.PrimaryKey(ctx, m, table)
		if err != nil {
			m.log.Error("error reading primary key metadata", zap.Error(err), zap.String("table", table))
			metrics.RecordCatalogQuery(m.vendor.Name(), "primary_key", err)
			return "", errors.Wrap(err, errors.ErrorTypeCatalog, "could not resolve primary key of "+table)
		}
		metrics.RecordCatalogQuery(m.vendor.Name(), "primary_key", nil)
		return key, nil
	}

	stmt, args := m.vendor.PrimaryKeyQuery(table)

	cur, err := m.Execute(ctx, stmt, args...)
	if err != nil {
		m.Release()
		m.log.Error("error reading primary key metadata", zap.Error(err), zap.String("table", table))
		metrics.RecordCatalogQuery(m.vendor.Name(), "primary_key", err)
		return "", errors.Wrap(err, errors.ErrorTypeCatalog, "could not resolve primary key of "+table)
	}
	defer cur.Close()

	var key string
	rows := cur.Rows()
	if rows.Next() {
		if err := rows.Scan(&key); err != nil {
			m.log.Error("error reading primary key metadata", zap.Error(err), zap.String("table", table))
			metrics.RecordCatalogQuery(m.vendor.Name(), "primary_key", err)
			return "", errors.Wrap(err, errors.ErrorTypeCatalog, "could not scan primary key column")
		}
	}
	if err := rows.Err(); err != nil {
		m.log.Error("error reading primary key metadata", zap.Error(err), zap.String("table", table))
		metrics.RecordCatalogQuery(m.vendor.Name(), "primary_key", err)
		return "", errors.Wrap(err, errors.ErrorTypeCatalog, "error iterating primary key metadata")
	}

	metrics.RecordCatalogQuery(m.vendor.Name(), "primary_key", nil)
	return key, nil
}

// Schema returns the table's full schema: ordered columns plus primary key.
// A failed key lookup degrades to "no key" rather than failing the call.
func (m *Manager) Schema(ctx context.Context, table string) (*TableSchema, error) {
	columns, err := m.describe(ctx, table)
	if err != nil {
		return nil, err
	}

	key, err := m.PrimaryKey(ctx, table)
	if err != nil {
		key = ""
	}

	return &TableSchema{
		Table:      table,
		Columns:    columns,
		PrimaryKey: key,
	}, nil
}

// ReadTable opens a cursor over the named columns of the table; nil columns
// means all columns, resolved by introspection. The table is aliased in the
// generated query for engines that require an alias on every queried
// relation. The caller owns the returned cursor and must close it.
func (m *Manager) ReadTable(ctx context.Context, table string, columns []string) (*Cursor, error) {
	if columns == nil {
		var err error
		columns, err = m.ColumnNames(ctx, table)
		if err != nil {
			return nil, err
		}
	}

	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = m.vendor.Quote(c)
	}

	stmt := fmt.Sprintf("SELECT %s FROM %s AS %s",
		strings.Join(quoted, ", "),
		m.vendor.Quote(table),
		m.vendor.Quote(table))

	m.log.Debug("reading table", zap.String("statement", stmt))
	return m.Execute(ctx, stmt)
}
