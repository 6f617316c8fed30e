package database

// Database Connection Pool Constants
const (
	// DefaultMinConnections is the minimum number of connections to maintain in the pool
	DefaultMinConnections int32 = 2
)

// Migration settings
const (
	MigrationDialect = "postgres"
	MigrationDir     = "migrations"
)

// PostgreSQL error codes the service reacts to
const (
	PgCodeUniqueViolation      = "23505"
	PgCodeCheckViolation       = "23514"
	PgCodeSerializationFailure = "40001"
	PgCodeDeadlockDetected     = "40P01"
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToSetDialect      = "failed to set migration dialect"
	ErrMsgFailedToRunMigrations   = "failed to run migrations"
	ErrMsgFailedToReadStatus      = "failed to read migration status"
	ErrMsgFailedToCreateTxManager = "failed to create transaction manager"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgMigrationsApplied               = "Database migrations applied"
)
