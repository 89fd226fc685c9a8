package job

import (
	"context"

	"go.uber.org/zap"

	"github.com/gcristian/sqoop/pkg/logger"
)

// LoggingDelegate records each handoff instead of launching a job. It stands
// in for the platform scheduler in the CLI's dry-run path and in tests.
type LoggingDelegate struct {
	log *zap.Logger
}

// NewLoggingDelegate creates a delegate that only logs launch tuples.
func NewLoggingDelegate() *LoggingDelegate {
	return &LoggingDelegate{
		log: logger.With(zap.String("component", "job_delegate")),
	}
}

// RunImport implements Delegate.
func (d *LoggingDelegate) RunImport(ctx context.Context, ic *ImportContext) error {
	d.log.Info("import job handed off",
		zap.String("table", ic.Table),
		zap.String("split_column", ic.SplitColumn),
		zap.Strings("columns", ic.Columns),
		zap.String("where", ic.Where),
		zap.Int("parallelism", ic.Parallelism),
		zap.String("target_dir", ic.TargetDir),
		zap.String("format", ic.Format))
	return nil
}

// RunExport implements Delegate.
func (d *LoggingDelegate) RunExport(ctx context.Context, ec *ExportContext) error {
	d.log.Info("export job handed off",
		zap.String("table", ec.Table),
		zap.String("export_dir", ec.ExportDir),
		zap.Int("parallelism", ec.Parallelism))
	return nil
}
