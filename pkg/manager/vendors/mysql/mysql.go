// Package mysql implements the Vendor contract for MySQL on the
// go-sql-driver.
package mysql

import (
	"fmt"
	"net/url"
	"strings"

	// Registers the "mysql" database/sql driver.
	_ "github.com/go-sql-driver/mysql"

	"github.com/gcristian/sqoop/pkg/config"
	"github.com/gcristian/sqoop/pkg/errors"
	"github.com/gcristian/sqoop/pkg/manager"
	"github.com/gcristian/sqoop/pkg/sqltypes"
)

// Vendor is the MySQL vendor manager.
type Vendor struct{}

// NewVendor creates the MySQL vendor.
func NewVendor(cfg *config.JobConfig) (manager.Vendor, error) {
	return &Vendor{}, nil
}

// Name implements manager.Vendor.
func (v *Vendor) Name() string { return "mysql" }

// DriverName implements manager.Vendor.
func (v *Vendor) DriverName() string { return "mysql" }

// DSN implements manager.Vendor. The URL form mysql://host:port/db is
// rewritten into the driver's user:pass@tcp(host:port)/db form. parseTime is
// always enabled so temporal columns scan into time.Time.
func (v *Vendor) DSN(cfg *config.JobConfig) (string, error) {
	u, err := url.Parse(cfg.Connection.URL)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", errors.Newf(errors.ErrorTypeConfig, "connect string %q has no host", cfg.Connection.URL)
	}

	host := u.Host
	if u.Port() == "" {
		host += ":3306"
	}

	database := strings.TrimPrefix(u.Path, "/")

	username := cfg.Connection.Username
	password := cfg.Connection.EffectivePassword()
	if username == "" && u.User != nil {
		username = u.User.Username()
		password, _ = u.User.Password()
	}

	cred := ""
	if username != "" {
		cred = fmt.Sprintf("%s:%s@", username, password)
	}

	return fmt.Sprintf("%stcp(%s)/%s?parseTime=true", cred, host, database), nil
}

// TablesQuery implements manager.Vendor.
func (v *Vendor) TablesQuery() (string, []interface{}) {
	return `SELECT table_name FROM information_schema.tables
		WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE'
		ORDER BY table_name`, nil
}

// PrimaryKeyQuery implements manager.Vendor.
func (v *Vendor) PrimaryKeyQuery(table string) (string, []interface{}) {
	return `SELECT column_name FROM information_schema.key_column_usage
		WHERE table_schema = DATABASE() AND table_name = ?
		AND constraint_name = 'PRIMARY'
		ORDER BY ordinal_position
		LIMIT 1`, []interface{}{table}
}

// Quote implements manager.Vendor.
func (v *Vendor) Quote(ident string) string {
	return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
}

// TypeCode resolves MySQL type names the fixed table does not know.
func (v *Vendor) TypeCode(databaseTypeName string) (sqltypes.TypeCode, bool) {
	switch strings.ToUpper(databaseTypeName) {
	case "YEAR":
		return sqltypes.SmallInt, true
	case "ENUM", "SET":
		return sqltypes.VarChar, true
	case "JSON":
		return sqltypes.LongVarChar, true
	default:
		return sqltypes.Unknown, false
	}
}

func init() {
	_ = manager.Register("mysql", NewVendor)
}
