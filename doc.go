// Package sqoop is a SQL connector layer bridging relational databases and a
// distributed batch platform. It discovers table schemas, maps SQL column
// types onto Go and warehouse type systems, infers how to partition tables
// for parallel reading, and hands resolved import/export requests to the
// platform's job delegate. It never moves rows itself.
//
// # Architecture
//
// The layer is split along three seams:
//
// 1. Generic manager (pkg/manager): session and cursor lifecycle, zero-row
// schema introspection, split-column inference, and the import/export
// handoff. Written once against the Vendor contract.
//
// 2. Vendor managers (pkg/manager/vendors): one small package per database
// product supplying the driver identity, connect string, catalog queries,
// and identifier quoting. Vendors register themselves by connect-string
// scheme and are pulled in with blank imports.
//
// 3. Type system (pkg/sqltypes): a fixed table from SQL type codes to Go
// representation types, plus pluggable warehouse policies (Hive type names,
// Arrow schemas) for the downstream platform.
//
// # Quick Start
//
// Resolve a vendor from a connect string and introspect a table:
//
//	import (
//	    "context"
//
//	    "github.com/gcristian/sqoop/pkg/config"
//	    "github.com/gcristian/sqoop/pkg/manager"
//	    _ "github.com/gcristian/sqoop/pkg/manager/vendors/postgres"
//	)
//
//	cfg := config.NewJobConfig()
//	cfg.Connection.URL = "postgres://localhost:5432/corp"
//	cfg.Task.Table = "employees"
//	cfg.Task.NumMappers = 4
//
//	vendor, err := manager.CreateVendor(cfg)
//	if err != nil {
//	    // no vendor registered for the scheme
//	}
//
//	mgr := manager.New(vendor, cfg)
//	defer mgr.Close()
//
//	schema, err := mgr.Schema(context.Background(), "employees")
//
// Launching an import resolves the split column (explicit task.split_by, or
// the table's primary key) and hands the launch tuple to a job.Delegate:
//
//	err = mgr.ImportTable(context.Background(), delegate, "")
//
// A table with no usable split column fails fast when parallel readers were
// requested, rather than silently degrading to a sequential read.
package sqoop
