// Package job defines the boundary to the distributed batch platform. The
// connector layer resolves table, split column, and format, then hands the
// launch tuple to a Delegate; it never moves rows itself.
package job

import (
	"context"

	"github.com/gcristian/sqoop/pkg/config"
)

// ImportContext is the launch tuple for a distributed read.
type ImportContext struct {
	// Table is the resolved source table
	Table string
	// SplitColumn partitions the table across readers; empty means the
	// read is sequential
	SplitColumn string
	// Columns is the resolved projection, in catalog order
	Columns []string
	// Where restricts the imported rows; free-form predicate
	Where string
	// Parallelism is the requested reader count
	Parallelism int
	// TargetDir is where the job writes its output
	TargetDir string
	// Format names the output file format
	Format string
	// Artifact references the generated per-table record code the platform
	// ships with the job
	Artifact string
	// Config carries the full job configuration for the runtime
	Config *config.JobConfig
}

// ExportContext is the launch tuple for a distributed write back into the
// database.
type ExportContext struct {
	// Table is the resolved destination table
	Table string
	// ExportDir is where the job reads its input
	ExportDir string
	// Parallelism is the requested writer count
	Parallelism int
	// Config carries the full job configuration for the runtime
	Config *config.JobConfig
}

// Delegate launches distributed reads and writes. Implementations live
// outside this module; the connector layer only prepares and hands off the
// contexts.
type Delegate interface {
	RunImport(ctx context.Context, ic *ImportContext) error
	RunExport(ctx context.Context, ec *ExportContext) error
}
