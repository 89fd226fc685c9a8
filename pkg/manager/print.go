package manager

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
)

// ExecAndPrint executes a statement and writes the cursor's metadata and row
// contents to the supplied writer. Poor man's SQL query interface; used for
// debugging and the eval command.
func (m *Manager) ExecAndPrint(ctx context.Context, stmt string, w io.Writer) error {
	cur, err := m.Execute(ctx, stmt)
	if err != nil {
		m.Release()
		m.log.Error("error executing statement", zap.Error(err))
		return err
	}

	return m.formatResultSet(cur, w)
}

// formatResultSet writes cursor metadata (column count and headers) and all
// rows to w. The cursor is closed, the transaction committed, and the cursor
// released at the end of this method, success or failure.
func (m *Manager) formatResultSet(cur *Cursor, w io.Writer) error {
	defer cur.Close()

	cols, err := cur.Columns()
	if err != nil {
		m.log.Error("error reading result metadata", zap.Error(err))
		return err
	}

	fmt.Fprintf(w, "Got %d columns back\n", len(cols))

	fmt.Fprint(w, "|")
	for _, col := range cols {
		fmt.Fprintf(w, " %s |", col)
	}
	fmt.Fprintln(w)

	values := make([]interface{}, len(cols))
	ptrs := make([]interface{}, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}

	rows := cur.Rows()
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			m.log.Error("error reading from database", zap.Error(err))
			return err
		}

		fmt.Fprint(w, "|")
		for _, v := range values {
			fmt.Fprintf(w, " %s |", formatValue(v))
		}
		fmt.Fprintln(w)
	}
	if err := rows.Err(); err != nil {
		m.log.Error("error reading from database", zap.Error(err))
		return err
	}

	return nil
}

// formatValue renders one column value for the text sink.
func formatValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return "(null)"
	case []byte:
		return string(t)
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", t)
	}
}
