package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/kimhaegyeong/reading-tracker/log"
	"github.com/kimhaegyeong/reading-tracker/model"
	"github.com/kimhaegyeong/reading-tracker/version"
)

type DB struct {
	*sql.DB
	dsn string
}

// NewDB opens the embedded database file. The schema is not touched here;
// callers must run Migrate before handing the handle to the store.
func NewDB(dsn string) (*DB, error) {
	if dsn == "" {
		return nil, errors.New("database path is required")
	}

	d, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	return &DB{DB: d, dsn: dsn}, nil
}

func (d *DB) Close() error {
	return d.DB.Close()
}

//go:embed migration
var migrationFS embed.FS

const latestSchemaFileName = "LATEST_SCHEMA.sql"

// Migrate brings the database file up to the running schema version.
// Every statement in the schema file is idempotent, so applying it to an
// already-migrated file is harmless. Failure here is fatal to startup:
// no store is handed out over a half-created schema.
func (d *DB) Migrate(ctx context.Context) error {
	currentVersion := version.GetCurrentVersion()

	if _, err := os.Stat(d.dsn); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return errors.Wrap(err, "failed to check database file")
		}
		// Fresh database file, apply the latest schema directly.
		if err := d.applyLatestSchema(ctx); err != nil {
			return errors.Wrap(err, "failed to apply latest schema")
		}
		if _, err := d.UpsertMigrationHistory(ctx, &model.UpsertMigrationHistory{
			Version: currentVersion,
		}); err != nil {
			return errors.Wrap(err, "failed to upsert migration history")
		}
		return nil
	}

	migrationHistoryList, err := d.FindMigrationHistoryList(ctx, &model.FindMigrationHistory{})
	if err != nil {
		// The file may predate the migration_history table.
		if err := d.applyLatestSchema(ctx); err != nil {
			return errors.Wrap(err, "failed to apply latest schema")
		}
		migrationHistoryList = nil
	}

	if len(migrationHistoryList) == 0 {
		if err := d.applyLatestSchema(ctx); err != nil {
			return errors.Wrap(err, "failed to apply latest schema")
		}
		if _, err := d.UpsertMigrationHistory(ctx, &model.UpsertMigrationHistory{
			Version: currentVersion,
		}); err != nil {
			return errors.Wrap(err, "failed to upsert migration history")
		}
		return nil
	}

	migrationHistoryVersionList := []string{}
	for _, migrationHistory := range migrationHistoryList {
		migrationHistoryVersionList = append(migrationHistoryVersionList, migrationHistory.Version)
	}
	slices.Sort(migrationHistoryVersionList)
	latestMigrationHistoryVersion := migrationHistoryVersionList[len(migrationHistoryVersionList)-1]

	if version.IsVersionGreaterThan(version.GetSchemaVersion(currentVersion), latestMigrationHistoryVersion) {
		// Keep a copy of the raw file around while the DDL runs.
		rawBytes, err := os.ReadFile(d.dsn)
		if err != nil {
			return errors.Wrap(err, "failed to read raw database file")
		}
		backupDBFilePath := fmt.Sprintf("%s/reading_tracker_%s_%d_backup.db", filepath.Dir(d.dsn), latestMigrationHistoryVersion, time.Now().Unix())
		if err := os.WriteFile(backupDBFilePath, rawBytes, 0644); err != nil {
			return errors.Wrap(err, "failed to write backup database file")
		}

		if err := d.applyLatestSchema(ctx); err != nil {
			return errors.Wrapf(err, "failed to migrate from %s to %s", latestMigrationHistoryVersion, currentVersion)
		}
		if _, err := d.UpsertMigrationHistory(ctx, &model.UpsertMigrationHistory{
			Version: currentVersion,
		}); err != nil {
			return errors.Wrap(err, "failed to upsert migration history")
		}

		if err := os.Remove(backupDBFilePath); err != nil {
			log.Warn("failed to remove backup database file", zap.Error(err))
		}
	}
	return nil
}

func (d *DB) applyLatestSchema(ctx context.Context) error {
	latestSchemaPath := fmt.Sprintf("migration/%s", latestSchemaFileName)
	buf, err := migrationFS.ReadFile(latestSchemaPath)
	if err != nil {
		return errors.Wrapf(err, "failed to read latest schema file: %q", latestSchemaPath)
	}

	stmt := string(buf)
	if err := d.execute(ctx, stmt); err != nil {
		return errors.Wrapf(err, "failed to apply latest schema: %s", stmt)
	}
	return nil
}

// execute runs a single SQL statement within a transaction.
func (d *DB) execute(ctx context.Context, stmt string) error {
	tx, err := d.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		return errors.Wrap(err, "failed to execute statement")
	}

	return tx.Commit()
}
