// Package sqlite stores the Mohs dataset in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Shrey1306/noma/internal/dataset"
	"github.com/Shrey1306/noma/internal/dataset/sqlite/migrations"
	apperrors "github.com/Shrey1306/noma/internal/platform/errors"
	sqlitemigrate "github.com/Shrey1306/noma/internal/platform/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed persistence for dataset records.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite store at path, applies migrations, and seeds the
// built-in table when the database holds no rows.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	if err := store.seed(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return store, nil
}

// DB returns the underlying sql.DB instance.
func (s *Store) DB() *sql.DB {
	if s == nil {
		return nil
	}
	return s.sqlDB
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) seed(ctx context.Context) error {
	var count int
	if err := s.sqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM mohs_records").Scan(&count); err != nil {
		return fmt.Errorf("count records: %w", err)
	}
	if count > 0 {
		return nil
	}
	if err := s.Replace(ctx, dataset.Default()); err != nil {
		return fmt.Errorf("seed records: %w", err)
	}
	return nil
}

// Replace overwrites the stored table with records, preserving their order.
func (s *Store) Replace(ctx context.Context, records []dataset.Record) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM mohs_records"); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO mohs_records (position, location, percentage, absence_percentage, metric)
VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		if _, err := stmt.ExecContext(ctx, i, rec.Location, rec.Percentage, rec.AbsencePercentage, rec.Metric.String()); err != nil {
			return fmt.Errorf("insert record %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// Load returns the stored records ordered by position.
func (s *Store) Load(ctx context.Context) ([]dataset.Record, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT location, percentage, absence_percentage, metric
FROM mohs_records
ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []dataset.Record
	for rows.Next() {
		var (
			rec    dataset.Record
			metric string
		)
		if err := rows.Scan(&rec.Location, &rec.Percentage, &rec.AbsencePercentage, &metric); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.Metric, err = dataset.ParseMetric(metric)
		if err != nil {
			return nil, apperrors.DataShape(len(records), err.Error())
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}
