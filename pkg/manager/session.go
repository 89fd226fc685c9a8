// Package manager implements the generic SQL connector layer: session and
// cursor lifecycle, schema introspection, partition-column inference, and the
// import/export handoff to the job delegate. The shared algorithms are written
// once against the Vendor contract; per-database packages under vendors/
// supply the driver identity, connect string, and catalog queries.
package manager

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/gcristian/sqoop/pkg/errors"
	"github.com/gcristian/sqoop/pkg/metrics"
)

// Session wraps one live database connection pinned from the pool. It is
// owned by exactly one Manager and driven by exactly one logical task; there
// is no internal locking. Catalog work runs in explicit transactions with the
// vendor's isolation level (read-uncommitted by default) and a commit is
// issued after each metadata read.
//
// At most one cursor is open per Session at any time. Every operation that
// opens a cursor pairs it, on its own completion path, with cursor-close +
// transaction-commit + cursor-release, in that order.
type Session struct {
	db     *sql.DB
	conn   *sql.Conn
	tx     *sql.Tx
	txOpts sql.TxOptions
	cursor *Cursor
	vendor string
	log    *zap.Logger
	closed bool
}

// Cursor is a forward-only handle over the rows of an executed statement.
type Cursor struct {
	rows *sql.Rows
	sess *Session
	done bool
}

// openSession dials the database and pins a single connection. A driver that
// cannot be loaded or a connection that cannot be established is fatal for
// the manager instance and is not retried.
func openSession(ctx context.Context, driverName, dsn, vendor string, txOpts sql.TxOptions, log *zap.Logger) (*Session, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConnection, "could not load db driver "+driverName)
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, errors.ErrorTypeConnection, "could not establish connection")
	}

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		_ = db.Close()
		return nil, errors.Wrap(err, errors.ErrorTypeConnection, "connection is not reachable")
	}

	log.Info("session established", zap.String("driver", driverName))

	return &Session{
		db:     db,
		conn:   conn,
		txOpts: txOpts,
		vendor: vendor,
		log:    log,
	}, nil
}

// Execute releases any previously open cursor, then runs the statement with
// positional arguments bound in order and returns the new cursor. Failures
// propagate to the caller; they are never retried here.
func (s *Session) Execute(ctx context.Context, stmt string, args ...interface{}) (*Cursor, error) {
	// One open cursor at a time.
	s.Release()

	if s.tx == nil {
		tx, err := s.conn.BeginTx(ctx, &s.txOpts)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeQuery, "could not begin catalog transaction")
		}
		s.tx = tx
	}

	s.log.Info("executing sql statement", zap.String("statement", stmt))

	timer := metrics.NewQueryTimer(s.vendor)
	rows, err := s.tx.QueryContext(ctx, stmt, args...)
	timer.Stop()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeQuery, "error executing statement")
	}

	metrics.CursorsOpened.WithLabelValues(s.vendor).Inc()
	s.cursor = &Cursor{rows: rows, sess: s}
	return s.cursor, nil
}

// Release idempotently closes the last-opened cursor if one is open. Close
// errors are logged and swallowed: the cursor is being discarded and a
// failure to close it must not block moving forward.
func (s *Session) Release() {
	if s.cursor == nil {
		return
	}

	if err := s.cursor.rows.Close(); err != nil {
		s.log.Warn("error closing executed statement", zap.Error(err))
	}
	s.cursor.done = true
	s.cursor = nil
	metrics.CursorsReleased.WithLabelValues(s.vendor).Inc()
}

// commit commits the pending catalog transaction, if any. Commit failures on
// the discard path are logged, not escalated.
func (s *Session) commit() {
	if s.tx == nil {
		return
	}

	if err := s.tx.Commit(); err != nil {
		s.log.Warn("error committing catalog transaction", zap.Error(err))
	}
	s.tx = nil
}

// Close releases any open cursor, commits pending work, and closes the
// session. Idempotent.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	s.Release()
	s.commit()

	var firstErr error
	if err := s.conn.Close(); err != nil {
		firstErr = err
	}
	if err := s.db.Close(); err != nil && firstErr == nil {
		firstErr = err
	}

	if firstErr != nil {
		return errors.Wrap(firstErr, errors.ErrorTypeConnection, "error closing session")
	}

	s.log.Info("session closed")
	return nil
}

// Rows exposes the underlying rows for iteration.
func (c *Cursor) Rows() *sql.Rows {
	return c.rows
}

// Columns returns the cursor's column names in catalog order.
func (c *Cursor) Columns() ([]string, error) {
	return c.rows.Columns()
}

// ColumnTypes returns the cursor's column type descriptors in catalog order.
func (c *Cursor) ColumnTypes() ([]*sql.ColumnType, error) {
	return c.rows.ColumnTypes()
}

// Close closes the cursor, commits the session's transaction, and releases
// the cursor slot, in that order. Safe to call on every completion path;
// errors encountered while discarding are logged and never propagated.
func (c *Cursor) Close() {
	if c.done {
		return
	}

	if err := c.rows.Close(); err != nil {
		c.sess.log.Warn("error closing result cursor", zap.Error(err))
	}
	c.sess.commit()

	c.done = true
	if c.sess.cursor == c {
		c.sess.cursor = nil
		metrics.CursorsReleased.WithLabelValues(c.sess.vendor).Inc()
	}
}
