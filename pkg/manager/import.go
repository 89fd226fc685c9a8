package manager

import (
	"context"

	"go.uber.org/zap"

	"github.com/gcristian/sqoop/pkg/errors"
	"github.com/gcristian/sqoop/pkg/job"
	"github.com/gcristian/sqoop/pkg/metrics"
)

// ImportTable resolves the split column for the configured table and hands
// the launch tuple to the delegate. A table with no usable split column fails
// fast when parallel readers were requested; the actual distributed read is
// the delegate's business.
func (m *Manager) ImportTable(ctx context.Context, delegate job.Delegate, artifact string) error {
	table := m.cfg.Task.Table
	if table == "" {
		return errors.New(errors.ErrorTypeConfig, "no table configured for import")
	}

	splitCol, err := m.SplitColumn(ctx, table, m.cfg.Task.SplitBy, m.cfg.Task.NumMappers)
	if err != nil {
		metrics.JobsLaunched.WithLabelValues("import", "error").Inc()
		return err
	}

	columns := m.cfg.Task.Columns
	if columns == nil {
		columns, err = m.ColumnNames(ctx, table)
		if err != nil {
			metrics.JobsLaunched.WithLabelValues("import", "error").Inc()
			return err
		}
	}

	ic := &job.ImportContext{
		Table:       table,
		SplitColumn: splitCol,
		Columns:     columns,
		Where:       m.cfg.Task.Where,
		Parallelism: m.cfg.Task.NumMappers,
		TargetDir:   m.cfg.Output.TargetDir,
		Format:      m.cfg.Output.Format,
		Artifact:    artifact,
		Config:      m.cfg,
	}

	m.log.Info("launching import",
		zap.String("table", table),
		zap.String("split_column", splitCol),
		zap.Int("parallelism", ic.Parallelism))

	if err := delegate.RunImport(ctx, ic); err != nil {
		metrics.JobsLaunched.WithLabelValues("import", "error").Inc()
		return errors.Wrap(err, errors.ErrorTypeQuery, "import job failed for table "+table)
	}

	metrics.JobsLaunched.WithLabelValues("import", "success").Inc()
	return nil
}

// ExportTable hands a configured export request to the delegate. No rows
// move through the manager.
func (m *Manager) ExportTable(ctx context.Context, delegate job.Delegate) error {
	table := m.cfg.Task.Table
	if table == "" {
		return errors.New(errors.ErrorTypeConfig, "no table configured for export")
	}
	if m.cfg.Output.ExportDir == "" {
		return errors.New(errors.ErrorTypeConfig, "no export directory configured")
	}

	ec := &job.ExportContext{
		Table:       table,
		ExportDir:   m.cfg.Output.ExportDir,
		Parallelism: m.cfg.Task.NumMappers,
		Config:      m.cfg,
	}

	m.log.Info("launching export",
		zap.String("table", table),
		zap.String("export_dir", ec.ExportDir),
		zap.Int("parallelism", ec.Parallelism))

	if err := delegate.RunExport(ctx, ec); err != nil {
		metrics.JobsLaunched.WithLabelValues("export", "error").Inc()
		return errors.Wrap(err, errors.ErrorTypeQuery, "export job failed for table "+table)
	}

	metrics.JobsLaunched.WithLabelValues("export", "success").Inc()
	return nil
}
