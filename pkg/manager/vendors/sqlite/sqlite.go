// Package sqlite implements the Vendor contract for SQLite on the pure-Go
// modernc driver. Besides its use as an embedded source, it backs the test
// suite with real database behavior.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"

	"github.com/gcristian/sqoop/pkg/config"
	"github.com/gcristian/sqoop/pkg/errors"
	"github.com/gcristian/sqoop/pkg/manager"
)

// Vendor is the SQLite vendor manager.
type Vendor struct{}

// NewVendor creates the SQLite vendor.
func NewVendor(cfg *config.JobConfig) (manager.Vendor, error) {
	return &Vendor{}, nil
}

// Name implements manager.Vendor.
func (v *Vendor) Name() string { return "sqlite" }

// DriverName implements manager.Vendor.
func (v *Vendor) DriverName() string { return "sqlite" }

// DSN implements manager.Vendor. The connect string is sqlite://<path> with
// <path> a file path or :memory:.
func (v *Vendor) DSN(cfg *config.JobConfig) (string, error) {
	path := strings.TrimPrefix(cfg.Connection.URL, "sqlite://")
	if path == "" {
		return "", errors.Newf(errors.ErrorTypeConfig, "connect string %q names no database file", cfg.Connection.URL)
	}
	return path, nil
}

// TablesQuery implements manager.Vendor.
func (v *Vendor) TablesQuery() (string, []interface{}) {
	return `SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name`, nil
}

// PrimaryKeyQuery implements manager.Vendor. Unused: PrimaryKey below
// replaces the lookup, since SQLite exposes key metadata only via PRAGMA.
func (v *Vendor) PrimaryKeyQuery(table string) (string, []interface{}) {
	return "", nil
}

// PrimaryKey resolves the first primary-key column from PRAGMA table_info.
func (v *Vendor) PrimaryKey(ctx context.Context, m *manager.Manager, table string) (string, error) {
	cur, err := m.Execute(ctx, fmt.Sprintf("PRAGMA table_info(%s)", v.Quote(table)))
	if err != nil {
		m.Release()
		return "", err
	}
	defer cur.Close()

	var key string
	rows := cur.Rows()
	for rows.Next() {
		var (
			cid, notNull, pk int
			name, typ        string
			dflt             sql.NullString
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			return "", err
		}
		// pk is the 1-based position within the key; take the first column.
		if pk == 1 {
			key = name
		}
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	return key, nil
}

// Quote implements manager.Vendor.
func (v *Vendor) Quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// TxOptions keeps the driver's default isolation; SQLite has no
// read-uncommitted mode to relax into under this driver.
func (v *Vendor) TxOptions() sql.TxOptions {
	return sql.TxOptions{}
}

func init() {
	_ = manager.Register("sqlite", NewVendor)
}
