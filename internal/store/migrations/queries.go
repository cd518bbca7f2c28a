package migrations

const (
	queryCreateMigrationsTable = `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name VARCHAR NOT NULL,
			checksum VARCHAR NOT NULL,
			applied_at TIMESTAMP DEFAULT now()
		)`

	queryAppliedMigrations = `SELECT version, checksum FROM schema_migrations`

	queryRecordMigration = `INSERT INTO schema_migrations (version, name, checksum) VALUES (?, ?, ?)`
)
