package migrations

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

//go:embed sql/*.sql
var migrationFiles embed.FS

var (
	ErrDuplicateVersion = errors.New("duplicate migration version")
	ErrChecksumMismatch = errors.New("applied migration was modified")
)

// Migration is one embedded schema change, named <version>_<name>.sql.
type Migration struct {
	Version  int
	Name     string
	SQL      string
	Checksum string
}

// Run applies pending migrations in version order. Migrations already applied
// must still match their recorded checksum.
func Run(ctx context.Context, db *sql.DB) error {
	log := zap.S().Named("migrations")

	known, err := load(migrationFiles)
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}

	if _, err := db.ExecContext(ctx, queryCreateMigrationsTable); err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}

	applied, err := appliedChecksums(ctx, db)
	if err != nil {
		return fmt.Errorf("reading applied migrations: %w", err)
	}

	count := 0
	for _, m := range known {
		if sum, ok := applied[m.Version]; ok {
			if sum != m.Checksum {
				return fmt.Errorf("%w: %03d_%s", ErrChecksumMismatch, m.Version, m.Name)
			}
			continue
		}

		if err := apply(ctx, db, m); err != nil {
			return fmt.Errorf("migration %03d_%s failed: %w", m.Version, m.Name, err)
		}
		log.Debugw("applied migration", "version", m.Version, "name", m.Name)
		count++
	}

	if count > 0 {
		log.Infow("database schema migrated", "applied", count, "known", len(known))
	}
	return nil
}

func load(fsys fs.FS) ([]Migration, error) {
	files, err := fs.Glob(fsys, "sql/*.sql")
	if err != nil {
		return nil, err
	}

	var migrations []Migration
	seen := make(map[int]string)
	for _, file := range files {
		base := strings.TrimSuffix(path.Base(file), ".sql")
		prefix, name, ok := strings.Cut(base, "_")
		version, err := strconv.Atoi(prefix)
		if !ok || err != nil || version <= 0 {
			zap.S().Named("migrations").Warnw("skipping invalid migration file", "file", file)
			continue
		}
		if other, dup := seen[version]; dup {
			return nil, fmt.Errorf("%w: %s and %s", ErrDuplicateVersion, other, file)
		}
		seen[version] = file

		content, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}
		sum := sha256.Sum256(content)
		migrations = append(migrations, Migration{
			Version:  version,
			Name:     name,
			SQL:      string(content),
			Checksum: hex.EncodeToString(sum[:]),
		})
	}

	slices.SortFunc(migrations, func(a, b Migration) int { return a.Version - b.Version })
	return migrations, nil
}

func appliedChecksums(ctx context.Context, db *sql.DB) (map[int]string, error) {
	rows, err := db.QueryContext(ctx, queryAppliedMigrations)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	applied := make(map[int]string)
	for rows.Next() {
		var (
			version int
			sum     string
		)
		if err := rows.Scan(&version, &sum); err != nil {
			return nil, err
		}
		applied[version] = sum
	}
	return applied, rows.Err()
}

func apply(ctx context.Context, db *sql.DB, m Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return fmt.Errorf("executing migration: %w", err)
	}
	if _, err := tx.ExecContext(ctx, queryRecordMigration, m.Version, m.Name, m.Checksum); err != nil {
		return fmt.Errorf("recording migration: %w", err)
	}

	return tx.Commit()
}
