package consts

import "os"

const (
	// ModeDir is the standard file mode for creating directories
	ModeDir = os.FileMode(0o755)

	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)

	// ModeSecret is the restrictive file mode used for files holding key
	// material or encrypted credentials (the connection store and its key file)
	ModeSecret = os.FileMode(0o600)

	// DefaultConnStorePath is the default location of the saved-connections store
	DefaultConnStorePath = "~/.migrokit/connections.yaml"

	// DefaultConnStoreKeyPath is the default location of the connection store's encryption key
	DefaultConnStoreKeyPath = "~/.migrokit/connstore.key"

	// DefaultMigrationDir is the default directory for generated migration and rollback scripts
	DefaultMigrationDir = "db/migrations"

	// DefaultHistoryDBPath is the default location of the SQLite migration history database
	DefaultHistoryDBPath = "db/migrations/history.sqlite"

	// DefaultDelimiter is the default value of config.Config.Delimiter; pkg/migrator's
	// routine framing does not read that setting
	DefaultDelimiter = "$ddlwizard$"

	// DefaultPort is the default MariaDB/MySQL TCP port
	DefaultPort = 3306

	// DefaultMinSafetyLevel is the lowest data-loss risk level that blocks an unattended migration
	DefaultMinSafetyLevel = "HIGH"
)
