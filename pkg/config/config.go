package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/pseudomuto/migrokit/pkg/consts"
	"gopkg.in/yaml.v3"
)

type (
	// Endpoint identifies one side of a migration comparison: either a live
	// MariaDB/MySQL server reached over a DSN, or a directory of CREATE TABLE
	// statements representing a desired schema.
	Endpoint struct {
		// DSN is a go-sql-driver/mysql data source name, e.g. user:pass@tcp(host:3306)/db
		// Mutually exclusive with SchemaDir.
		DSN string `yaml:"dsn,omitempty"`

		// SchemaDir points at a directory of *.sql files defining the desired schema
		SchemaDir string `yaml:"schema_dir,omitempty"`

		// IgnoreTables lists table names excluded from comparison against this endpoint
		IgnoreTables []string `yaml:"ignore_tables,omitempty"`
	}

	// SafetyPolicyConfig controls how the safety advisor gates generated migrations.
	SafetyPolicyConfig struct {
		// MinBlockingLevel is the lowest DataLossRisk level ("LOW", "MEDIUM", "HIGH",
		// "CRITICAL") that causes migrate to refuse to write artifacts without --force
		MinBlockingLevel *string `yaml:"min_blocking_level,omitempty"`

		// AllowDestructive permits column/table drops to proceed even at CRITICAL risk
		AllowDestructive *bool `yaml:"allow_destructive,omitempty"`
	}

	// HistoryConfig configures the SQLite-backed migration history recorder.
	HistoryConfig struct {
		// Path is the filesystem location of the history database
		Path string `yaml:"path,omitempty"`
	}

	// Config represents the project configuration for a MariaDB/MySQL migration project.
	Config struct {
		// Source is the desired schema state: the generated .up.sql turns Dest into Source
		Source Endpoint `yaml:"source"`

		// Dest is the schema currently in place: the generated .up.sql is applied to it
		Dest Endpoint `yaml:"dest"`

		// Dir specifies the directory where migration and rollback files are written
		Dir string `yaml:"dir"`

		// Delimiter is loaded and defaulted to consts.DefaultDelimiter, but pkg/migrator
		// does not read it: routines are always framed with $$, or $ddlwizard$ when the
		// body itself contains $$
		Delimiter string `yaml:"delimiter,omitempty"`

		// Safety contains data-loss risk policy overrides
		Safety *SafetyPolicyConfig `yaml:"safety,omitempty"`

		// History contains migration history recorder settings
		History HistoryConfig `yaml:"history,omitempty"`
	}
)

// ResolvedSafetyPolicy is the merged, non-pointer form of SafetyPolicyConfig
// returned by GetSafetyPolicy once defaults have been applied.
type ResolvedSafetyPolicy struct {
	MinBlockingLevel string
	AllowDestructive bool
}

// LoadConfig parses a project configuration from the provided io.Reader.
//
// The function expects YAML-formatted configuration data describing the
// source and destination schema endpoints, the migration output directory,
// and optional safety/history overrides. Defaults are applied for any value
// left unspecified.
//
// Example:
//
//	yamlData := `
//	source:
//	  schema_dir: db/schema
//	dest:
//	  dsn: root@tcp(127.0.0.1:3306)/app
//	dir: db/migrations
//	`
//
//	cfg, err := config.LoadConfig(strings.NewReader(yamlData))
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal project config")
	}

	if cfg.Dir == "" {
		cfg.Dir = consts.DefaultMigrationDir
	}
	if cfg.Delimiter == "" {
		cfg.Delimiter = consts.DefaultDelimiter
	}
	if cfg.History.Path == "" {
		cfg.History.Path = consts.DefaultHistoryDBPath
	}

	return &cfg, nil
}

// LoadConfigFile loads a project configuration from the specified file path.
// This is a convenience function that opens the file and calls LoadConfig.
//
// Example:
//
//	cfg, err := config.LoadConfigFile("migrokit.yaml")
//	if err != nil {
//		log.Fatal("Failed to load config:", err)
//	}
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadConfig(f)
}

// GetSafetyPolicy returns the merged safety policy, combining the default
// policy (block at HIGH, no destructive override) with any non-nil values
// from the user configuration.
func (c *Config) GetSafetyPolicy() ResolvedSafetyPolicy {
	result := ResolvedSafetyPolicy{
		MinBlockingLevel: consts.DefaultMinSafetyLevel,
		AllowDestructive: false,
	}

	if c == nil || c.Safety == nil {
		return result
	}

	if c.Safety.MinBlockingLevel != nil {
		result.MinBlockingLevel = *c.Safety.MinBlockingLevel
	}
	if c.Safety.AllowDestructive != nil {
		result.AllowDestructive = *c.Safety.AllowDestructive
	}

	return result
}
