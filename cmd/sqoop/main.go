package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gcristian/sqoop/pkg/config"
	"github.com/gcristian/sqoop/pkg/job"
	"github.com/gcristian/sqoop/pkg/logger"
	"github.com/gcristian/sqoop/pkg/manager"
	"github.com/gcristian/sqoop/pkg/sqltypes"

	// Import all available vendors to register them
	_ "github.com/gcristian/sqoop/pkg/manager/vendors/mysql"
	_ "github.com/gcristian/sqoop/pkg/manager/vendors/postgres"
	_ "github.com/gcristian/sqoop/pkg/manager/vendors/sqlite"
)

var version = "0.1.0"

// connectionFlags are the flags shared by every database command.
type connectionFlags struct {
	configFile string
	connect    string
	driver     string
	username   string
	password   string
	logLevel   string
}

func (f *connectionFlags) register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&f.configFile, "config", "", "Path to job configuration YAML file")
	cmd.PersistentFlags().StringVar(&f.connect, "connect", "", "Database connect string (e.g. postgres://host:5432/db)")
	cmd.PersistentFlags().StringVar(&f.driver, "driver", "", "Override the database/sql driver chosen by the vendor")
	cmd.PersistentFlags().StringVar(&f.username, "username", "", "Database username")
	cmd.PersistentFlags().StringVar(&f.password, "password", "", "Database password")
	cmd.PersistentFlags().StringVar(&f.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}

// buildConfig loads the YAML job configuration, if any, and layers the
// command line flags on top.
func (f *connectionFlags) buildConfig() (*config.JobConfig, error) {
	cfg := config.NewJobConfig()

	if f.configFile != "" {
		if err := config.Load(f.configFile, cfg); err != nil {
			return nil, fmt.Errorf("job configuration error: %w", err)
		}
	}

	if f.connect != "" {
		cfg.Connection.URL = f.connect
	}
	if f.driver != "" {
		cfg.Connection.Driver = f.driver
	}
	if f.username != "" {
		cfg.Connection.Username = f.username
	}
	if f.password != "" {
		cfg.Connection.Password = f.password
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}

	return cfg, nil
}

// openManager resolves the vendor for the connect string and builds a
// manager around it.
func openManager(cfg *config.JobConfig) (*manager.Manager, error) {
	if err := logger.Init(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		Encoding:    "console",
	}); err != nil {
		return nil, err
	}

	vendor, err := manager.CreateVendor(cfg)
	if err != nil {
		return nil, err
	}

	return manager.New(vendor, cfg), nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	flags := &connectionFlags{}

	root := &cobra.Command{
		Use:   "sqoop",
		Short: "Sqoop - SQL-to-batch-platform connector",
		Long: `Sqoop bridges relational databases and a distributed batch platform.
It discovers table schemas, infers how to partition tables for parallel
reading, and hands resolved import/export requests to the platform's job
delegate.`,
	}
	flags.register(root)

	// Version command
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Sqoop v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			fmt.Printf("Vendors: %s\n", strings.Join(manager.Schemes(), ", "))
		},
	})

	// List tables in the configured database
	root.AddCommand(&cobra.Command{
		Use:   "list-tables",
		Short: "List the tables in the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.buildConfig()
			if err != nil {
				return err
			}

			mgr, err := openManager(cfg)
			if err != nil {
				return err
			}
			defer closeManager(mgr)

			tables, err := mgr.ListTables(cmd.Context())
			if err != nil {
				return err
			}

			for _, table := range tables {
				fmt.Println(table)
			}
			return nil
		},
	})

	// Eval: execute a statement and print the result set
	var evalQuery string
	evalCmd := &cobra.Command{
		Use:   "eval",
		Short: "Execute a SQL statement and print the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.buildConfig()
			if err != nil {
				return err
			}

			mgr, err := openManager(cfg)
			if err != nil {
				return err
			}
			defer closeManager(mgr)

			return mgr.ExecAndPrint(cmd.Context(), evalQuery, os.Stdout)
		},
	}
	evalCmd.Flags().StringVarP(&evalQuery, "query", "e", "", "SQL statement to execute (required)")
	_ = evalCmd.MarkFlagRequired("query")
	root.AddCommand(evalCmd)

	// Describe: print the resolved schema of a table
	var (
		describeTable   string
		warehousePolicy string
	)
	describeCmd := &cobra.Command{
		Use:   "describe",
		Short: "Show a table's columns with host and warehouse type mappings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.buildConfig()
			if err != nil {
				return err
			}

			mgr, err := openManager(cfg)
			if err != nil {
				return err
			}
			defer closeManager(mgr)

			switch warehousePolicy {
			case "hive":
				mgr.SetWarehousePolicy(sqltypes.HivePolicy{})
			case "arrow":
				mgr.SetWarehousePolicy(sqltypes.ArrowPolicy{})
			default:
				return fmt.Errorf("unknown warehouse policy %q", warehousePolicy)
			}

			schema, err := mgr.Schema(cmd.Context(), describeTable)
			if err != nil {
				return err
			}

			if schema.PrimaryKey != "" {
				fmt.Printf("Table %s (primary key %s)\n", schema.Table, schema.PrimaryKey)
			} else {
				fmt.Printf("Table %s (no primary key)\n", schema.Table)
			}
			for _, col := range schema.Columns {
				hostType, ok := mgr.HostType(col.Type)
				if !ok {
					hostType = "(unsupported)"
				}
				whType, ok := mgr.WarehouseType(col.Type)
				if !ok {
					whType = "(unsupported)"
				}
				fmt.Printf("  %-24s %-16s %-12s %s\n", col.Name, col.Type, hostType, whType)
			}
			return nil
		},
	}
	describeCmd.Flags().StringVar(&describeTable, "table", "", "Table to describe (required)")
	describeCmd.Flags().StringVar(&warehousePolicy, "warehouse", "hive", "Warehouse type policy (hive, arrow)")
	_ = describeCmd.MarkFlagRequired("table")
	root.AddCommand(describeCmd)

	// Import: resolve the table and hand off a distributed read
	var (
		importTable   string
		importColumns []string
		importWhere   string
		importSplitBy string
		importMappers int
		targetDir     string
		format        string
	)
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import a table into the batch platform",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.buildConfig()
			if err != nil {
				return err
			}
			applyTaskFlags(cmd, cfg, importTable, importColumns, importWhere, importSplitBy, importMappers)
			if targetDir != "" {
				cfg.Output.TargetDir = targetDir
			}
			if format != "" {
				cfg.Output.Format = format
			}

			mgr, err := openManager(cfg)
			if err != nil {
				return err
			}
			defer closeManager(mgr)

			return mgr.ImportTable(cmd.Context(), job.NewLoggingDelegate(), "")
		},
	}
	importCmd.Flags().StringVar(&importTable, "table", "", "Table to import (required)")
	importCmd.Flags().StringSliceVar(&importColumns, "columns", nil, "Columns to import; default all")
	importCmd.Flags().StringVar(&importWhere, "where", "", "WHERE clause restricting imported rows")
	importCmd.Flags().StringVar(&importSplitBy, "split-by", "", "Column used to split the table across mappers")
	importCmd.Flags().IntVarP(&importMappers, "num-mappers", "m", 1, "Number of parallel mappers")
	importCmd.Flags().StringVar(&targetDir, "target-dir", "", "Output directory for the import job")
	importCmd.Flags().StringVar(&format, "format", "", "Output file format (text, avro, parquet)")
	_ = importCmd.MarkFlagRequired("table")
	root.AddCommand(importCmd)

	// Export: hand off a distributed write back into the database
	var (
		exportTable   string
		exportDir     string
		exportMappers int
	)
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export platform data back into a table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.buildConfig()
			if err != nil {
				return err
			}
			if exportTable != "" {
				cfg.Task.Table = exportTable
			}
			if exportDir != "" {
				cfg.Output.ExportDir = exportDir
			}
			if cmd.Flags().Changed("num-mappers") {
				cfg.Task.NumMappers = exportMappers
			}

			mgr, err := openManager(cfg)
			if err != nil {
				return err
			}
			defer closeManager(mgr)

			return mgr.ExportTable(cmd.Context(), job.NewLoggingDelegate())
		},
	}
	exportCmd.Flags().StringVar(&exportTable, "table", "", "Table to export into (required)")
	exportCmd.Flags().StringVar(&exportDir, "export-dir", "", "Directory holding the data to export (required)")
	exportCmd.Flags().IntVarP(&exportMappers, "num-mappers", "m", 1, "Number of parallel writers")
	_ = exportCmd.MarkFlagRequired("table")
	_ = exportCmd.MarkFlagRequired("export-dir")
	root.AddCommand(exportCmd)

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// applyTaskFlags layers import task flags over the loaded configuration.
func applyTaskFlags(cmd *cobra.Command, cfg *config.JobConfig, table string, columns []string, where, splitBy string, mappers int) {
	if table != "" {
		cfg.Task.Table = table
	}
	if columns != nil {
		cfg.Task.Columns = columns
	}
	if where != "" {
		cfg.Task.Where = where
	}
	if splitBy != "" {
		cfg.Task.SplitBy = splitBy
	}
	if cmd.Flags().Changed("num-mappers") {
		cfg.Task.NumMappers = mappers
	}
}

// closeManager shuts the manager down, logging rather than failing on close
// errors.
func closeManager(mgr *manager.Manager) {
	if err := mgr.Close(); err != nil {
		logger.Warn("failed to close manager", zap.Error(err))
	}
}
