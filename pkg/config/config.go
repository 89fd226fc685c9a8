// Package config defines the job request object shared by every database
// manager. A JobConfig describes one import or export request: how to reach
// the database, which table to move, and how parallel the distributed read
// should be.
//
// The configuration is organized into logical sections:
//   - Connection: connect string, driver override, credentials
//   - Task: table, column projection, row predicate, split column, parallelism
//   - Output: target/export directories and file format for the job delegate
//
// Example usage:
//
//	cfg := config.NewJobConfig()
//	cfg.Connection.URL = "postgres://localhost:5432/corp"
//	cfg.Task.Table = "employees"
//	cfg.Task.NumMappers = 4
//
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config

import (
	"fmt"
	"time"
)

// JobConfig is the request object handed to a Manager. It carries everything
// the connector layer and the downstream job delegate need; it owns no
// connection state itself.
type JobConfig struct {
	// Connection describes how to reach the database
	Connection ConnectionConfig `yaml:"connection" json:"connection"`

	// Task describes what to import or export
	Task TaskConfig `yaml:"task" json:"task"`

	// Output describes where the job delegate should put or find the rows
	Output OutputConfig `yaml:"output" json:"output"`

	// Logging controls log verbosity for this job
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// ConnectionConfig contains connectivity and credential settings.
type ConnectionConfig struct {
	// URL is the vendor connect string (e.g. postgres://host:5432/db)
	URL string `yaml:"url" json:"url"`
	// Driver optionally overrides the driver chosen by the vendor manager
	Driver string `yaml:"driver" json:"driver"`
	// Username for database authentication; optional
	Username string `yaml:"username" json:"username"`
	// Password for database authentication. If Username is set and Password
	// is not, an empty password is sent rather than omitting the credential.
	Password string `yaml:"password" json:"password"`
	// ConnectTimeout bounds connection establishment; enforced by the
	// driver/transport, not by the manager
	ConnectTimeout time.Duration `yaml:"connect_timeout" json:"connect_timeout"`
}

// TaskConfig contains the import/export task settings.
type TaskConfig struct {
	// Table is the source or destination table name
	Table string `yaml:"table" json:"table"`
	// Columns restricts the projection; empty means all columns
	Columns []string `yaml:"columns" json:"columns"`
	// Where is a free-form predicate restricting imported rows
	Where string `yaml:"where" json:"where"`
	// SplitBy names the column used to partition the table for parallel
	// readers; empty means infer from the primary key
	SplitBy string `yaml:"split_by" json:"split_by"`
	// NumMappers is the requested read/write parallelism
	NumMappers int `yaml:"num_mappers" json:"num_mappers"`
}

// OutputConfig contains settings consumed by the job delegate.
type OutputConfig struct {
	// TargetDir is where an import job writes its output
	TargetDir string `yaml:"target_dir" json:"target_dir"`
	// ExportDir is where an export job reads its input
	ExportDir string `yaml:"export_dir" json:"export_dir"`
	// Format names the output file format (text, avro, parquet, ...)
	Format string `yaml:"format" json:"format"`
}

// LoggingConfig controls job log output.
type LoggingConfig struct {
	// Level sets logging verbosity (debug, info, warn, error)
	Level string `yaml:"level" json:"level"`
	// Development switches to human-readable console encoding
	Development bool `yaml:"development" json:"development"`
}

// NewJobConfig creates a JobConfig with sensible defaults. The zero number of
// mappers defaults to a sequential read, which never requires a split column.
func NewJobConfig() *JobConfig {
	return &JobConfig{
		Connection: ConnectionConfig{
			ConnectTimeout: 10 * time.Second,
		},
		Task: TaskConfig{
			NumMappers: 1,
		},
		Output: OutputConfig{
			Format: "text",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks required fields and value ranges. Managers call this before
// connecting so configuration mistakes surface before any network traffic.
func (c *JobConfig) Validate() error {
	if c.Connection.URL == "" {
		return fmt.Errorf("connection.url is required")
	}
	if c.Task.NumMappers < 1 {
		return fmt.Errorf("task.num_mappers must be at least 1, got %d", c.Task.NumMappers)
	}
	if c.Connection.Password != "" && c.Connection.Username == "" {
		return fmt.Errorf("connection.password set without connection.username")
	}
	return nil
}

// HasCredentials returns true if a username is configured
func (c *ConnectionConfig) HasCredentials() bool {
	return c.Username != ""
}

// EffectivePassword returns the password to pair with the username. A present
// username with an absent password yields the empty password, keeping the
// credential pair consistent.
func (c *ConnectionConfig) EffectivePassword() string {
	if c.Username == "" {
		return ""
	}
	return c.Password
}

// IsParallel returns true if more than one mapper was requested
func (t *TaskConfig) IsParallel() bool {
	return t.NumMappers > 1
}
