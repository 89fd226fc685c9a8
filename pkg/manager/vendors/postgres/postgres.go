// Package postgres implements the Vendor contract for PostgreSQL on the pgx
// stdlib driver.
package postgres

import (
	"net/url"
	"strings"

	// Registers the "pgx" database/sql driver.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/gcristian/sqoop/pkg/config"
	"github.com/gcristian/sqoop/pkg/manager"
	"github.com/gcristian/sqoop/pkg/sqltypes"
)

// Vendor is the PostgreSQL vendor manager.
type Vendor struct{}

// NewVendor creates the PostgreSQL vendor.
func NewVendor(cfg *config.JobConfig) (manager.Vendor, error) {
	return &Vendor{}, nil
}

// Name implements manager.Vendor.
func (v *Vendor) Name() string { return "postgres" }

// DriverName implements manager.Vendor.
func (v *Vendor) DriverName() string { return "pgx" }

// DSN implements manager.Vendor. Credentials from the job configuration take
// precedence over any user info embedded in the connect string; a configured
// username with no password is paired with the empty password.
func (v *Vendor) DSN(cfg *config.JobConfig) (string, error) {
	u, err := url.Parse(cfg.Connection.URL)
	if err != nil {
		return "", err
	}

	if cfg.Connection.HasCredentials() {
		u.User = url.UserPassword(cfg.Connection.Username, cfg.Connection.EffectivePassword())
	}

	return u.String(), nil
}

// TablesQuery implements manager.Vendor.
func (v *Vendor) TablesQuery() (string, []interface{}) {
	return `SELECT table_name FROM information_schema.tables
		WHERE table_type = 'BASE TABLE'
		AND table_schema NOT IN ('pg_catalog', 'information_schema')
		ORDER BY table_name`, nil
}

// PrimaryKeyQuery implements manager.Vendor. Composite keys resolve to their
// first column.
func (v *Vendor) PrimaryKeyQuery(table string) (string, []interface{}) {
	return `SELECT a.attname FROM pg_index i
		JOIN pg_attribute a ON a.attrelid = i.indrelid AND a.attnum = ANY(i.indkey)
		WHERE i.indrelid = $1::regclass AND i.indisprimary
		ORDER BY array_position(i.indkey, a.attnum)
		LIMIT 1`, []interface{}{table}
}

// Quote implements manager.Vendor.
func (v *Vendor) Quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// TypeCode resolves PostgreSQL type names the fixed table does not know.
func (v *Vendor) TypeCode(databaseTypeName string) (sqltypes.TypeCode, bool) {
	switch strings.ToUpper(databaseTypeName) {
	case "UUID":
		return sqltypes.Char, true
	case "JSON", "JSONB", "XML":
		return sqltypes.LongVarChar, true
	default:
		return sqltypes.Unknown, false
	}
}

func init() {
	_ = manager.Register("postgres", NewVendor)
	_ = manager.Register("postgresql", NewVendor)
}
