package manager

import (
	"context"

	"go.uber.org/zap"

	"github.com/gcristian/sqoop/pkg/errors"
)

// SplitColumn chooses the column used to partition the table into ranges for
// parallel readers. An explicit column wins unconditionally; otherwise the
// primary key is inferred. No further inference is attempted.
//
// When no column can be found: a sequential read (parallelism 1) needs no
// partitioning and gets the explicit "no column" outcome; with parallelism
// above 1 the missing column is a configuration error, reported fail-fast
// rather than silently degrading to a sequential read.
//
// The result is computed fresh per request and never cached.
func (m *Manager) SplitColumn(ctx context.Context, table, explicit string, parallelism int) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	key, err := m.PrimaryKey(ctx, table)
	if err != nil {
		// Key metadata being unreadable is equivalent to the table being
		// unkeyed; the parallelism rule below decides whether that matters.
		m.log.Warn("primary key lookup failed, treating table as unkeyed",
			zap.String("table", table), zap.Error(err))
		key = ""
	}
	if key != "" {
		return key, nil
	}

	if parallelism <= 1 {
		return "", nil
	}

	return "", errors.Newf(errors.ErrorTypeConfig,
		"no split column could be inferred for table %s; specify task.split_by or perform a sequential import with a single mapper",
		table).WithDetail("table", table).WithDetail("parallelism", parallelism)
}
