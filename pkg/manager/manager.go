package manager

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/gcristian/sqoop/pkg/config"
	"github.com/gcristian/sqoop/pkg/errors"
	"github.com/gcristian/sqoop/pkg/logger"
	"github.com/gcristian/sqoop/pkg/sqltypes"
)

// Vendor is the per-database-product contract the generic manager is written
// against. Implementations supply the driver identity, connect string, and
// catalog queries; they must not alter the cursor/commit/release protocol.
type Vendor interface {
	// Name identifies the vendor (postgres, mysql, sqlite)
	Name() string
	// DriverName is the database/sql driver to materialize the connection with
	DriverName() string
	// DSN builds the driver connect string from the job configuration,
	// pairing credentials per the config rules
	DSN(cfg *config.JobConfig) (string, error)
	// TablesQuery returns the catalog query listing all base tables, one
	// name per row, in catalog iteration order
	TablesQuery() (string, []interface{})
	// PrimaryKeyQuery returns the catalog query resolving the table's first
	// primary-key column, one name in the first row
	PrimaryKeyQuery(table string) (string, []interface{})
	// Quote escapes an identifier for interpolation into generated SQL
	Quote(ident string) string
}

// ColumnQueryOverrider lets a vendor replace the default zero-row
// introspection query.
type ColumnQueryOverrider interface {
	ColumnQuery(table string) string
}

// PrimaryKeyResolver lets a vendor replace the primary-key lookup entirely,
// for engines whose key metadata is not reachable through a single query.
type PrimaryKeyResolver interface {
	PrimaryKey(ctx context.Context, m *Manager, table string) (string, error)
}

// TypeResolver lets a vendor resolve driver type names ahead of the fixed
// table, covering names the generic mapping does not know.
type TypeResolver interface {
	TypeCode(databaseTypeName string) (sqltypes.TypeCode, bool)
}

// HostTypeResolver lets a vendor supply host types for codes absent from the
// fixed table, before an unmapped column is reported as unsupported.
type HostTypeResolver interface {
	HostType(code sqltypes.TypeCode) (string, bool)
}

// TxOptioner lets a vendor replace the default transaction options. The
// default is read-uncommitted isolation: catalog reads want the loosest
// semantics the engine offers.
type TxOptioner interface {
	TxOptions() sql.TxOptions
}

// Manager drives one import, export, or interactive task against one
// database. It owns a single lazily-created Session for its lifetime and is
// not safe for concurrent use; parallel workers each get their own Manager.
type Manager struct {
	vendor    Vendor
	cfg       *config.JobConfig
	sess      *Session
	warehouse sqltypes.WarehousePolicy
	log       *zap.Logger
}

// New creates a manager for the given vendor and job configuration. No
// connection is made until the first operation needs one.
func New(vendor Vendor, cfg *config.JobConfig) *Manager {
	return &Manager{
		vendor:    vendor,
		cfg:       cfg,
		warehouse: sqltypes.HivePolicy{},
		log: logger.With(
			zap.String("component", "sql_manager"),
			zap.String("vendor", vendor.Name()),
		),
	}
}

// Config returns the job configuration this manager was built for.
func (m *Manager) Config() *config.JobConfig {
	return m.cfg
}

// VendorName returns the vendor identity.
func (m *Manager) VendorName() string {
	return m.vendor.Name()
}

// SetWarehousePolicy swaps the warehouse type-mapping policy.
func (m *Manager) SetWarehousePolicy(p sqltypes.WarehousePolicy) {
	m.warehouse = p
}

// Session returns the singleton session, connecting on first call. The same
// session is returned for the life of the manager.
func (m *Manager) Session(ctx context.Context) (*Session, error) {
	if m.sess != nil {
		return m.sess, nil
	}

	if err := m.cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "invalid job configuration")
	}

	driverName := m.cfg.Connection.Driver
	if driverName == "" {
		driverName = m.vendor.DriverName()
	}

	dsn, err := m.vendor.DSN(m.cfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "could not build connect string")
	}

	txOpts := sql.TxOptions{Isolation: sql.LevelReadUncommitted}
	if o, ok := m.vendor.(TxOptioner); ok {
		txOpts = o.TxOptions()
	}

	sess, err := openSession(ctx, driverName, dsn, m.vendor.Name(), txOpts, m.log)
	if err != nil {
		return nil, err
	}

	m.sess = sess
	return m.sess, nil
}

// Execute runs an arbitrary statement on the manager's session, releasing any
// previously open cursor first.
func (m *Manager) Execute(ctx context.Context, stmt string, args ...interface{}) (*Cursor, error) {
	sess, err := m.Session(ctx)
	if err != nil {
		return nil, err
	}
	return sess.Execute(ctx, stmt, args...)
}

// Release closes the last-opened cursor, if any.
func (m *Manager) Release() {
	if m.sess != nil {
		m.sess.Release()
	}
}

// Close shuts the manager down, closing its session exactly once. Idempotent.
func (m *Manager) Close() error {
	if m.sess == nil {
		return nil
	}
	err := m.sess.Close()
	m.sess = nil
	return err
}

// HostType resolves a type code to its Go representation type, consulting the
// vendor override before the fixed table. A false result means the column
// type is unsupported by this manager.
func (m *Manager) HostType(code sqltypes.TypeCode) (string, bool) {
	if r, ok := m.vendor.(HostTypeResolver); ok {
		if t, found := r.HostType(code); found {
			return t, true
		}
	}
	return sqltypes.HostType(code)
}

// WarehouseType resolves a type code through the active warehouse policy.
func (m *Manager) WarehouseType(code sqltypes.TypeCode) (string, bool) {
	return m.warehouse.WarehouseType(code)
}

// typeCode resolves a driver-reported type name, consulting the vendor
// resolver before the fixed table.
func (m *Manager) typeCode(databaseTypeName string) (sqltypes.TypeCode, bool) {
	if r, ok := m.vendor.(TypeResolver); ok {
		if code, found := r.TypeCode(databaseTypeName); found {
			return code, true
		}
	}
	return sqltypes.CodeOf(databaseTypeName)
}
