package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"

	"github.com/RobotSudo/time-bot/internal/domain"
)

// SQLiteRepo implements Repo using an embedded SQLite database.
type SQLiteRepo struct{ db *sql.DB }

// OpenSQLite opens (or creates) the SQLite database at the given path,
// applies recommended PRAGMAs, runs SQL migrations, and returns a repository.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Reasonable pooling for SQLite; it's a single-writer engine.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

// applyPragmas configures the SQLite connection for durability and concurrency.
func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database resources.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

const profileColumns = `user_id, created_at, utc_offset, birthday, last_announced, last_checked`

func scanProfile(row interface{ Scan(...any) error }) (*domain.Profile, error) {
	var (
		userID    string
		createdAt int64
		offsetNF  sql.NullFloat64
		bdayNS    sql.NullString
		yearNI    sql.NullInt64
		checkNS   sql.NullString
	)
	if err := row.Scan(&userID, &createdAt, &offsetNF, &bdayNS, &yearNI, &checkNS); err != nil {
		return nil, err
	}
	return &domain.Profile{
		UserID:        userID,
		UTCOffset:     fromNullFloat(offsetNF),
		Birthday:      fromNullString(bdayNS),
		LastAnnounced: fromNullInt(yearNI),
		LastChecked:   fromNullString(checkNS),
		CreatedAt:     time.Unix(createdAt, 0).UTC(),
	}, nil
}

// Get returns a profile by user ID, or ErrNotFound.
func (r *SQLiteRepo) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+profileColumns+`
		FROM users
		WHERE user_id = ?`,
		userID,
	)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// List returns every stored profile. A full scan per tick is fine at the
// expected community scale.
func (r *SQLiteRepo) List(ctx context.Context) ([]domain.Profile, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+profileColumns+`
		FROM users
		ORDER BY user_id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// SetOffset upserts the user's UTC offset, leaving other fields untouched.
func (r *SQLiteRepo) SetOffset(ctx context.Context, userID string, offset float64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (user_id, created_at, utc_offset)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			utc_offset = excluded.utc_offset`,
		userID, time.Now().UTC().Unix(), offset,
	)
	return err
}

// SetBirthday upserts the birthday and clears last_announced in the same
// statement, so a changed birthday can be announced again.
func (r *SQLiteRepo) SetBirthday(ctx context.Context, userID, md string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (user_id, created_at, birthday, last_announced)
		VALUES (?, ?, ?, NULL)
		ON CONFLICT(user_id) DO UPDATE SET
			birthday       = excluded.birthday,
			last_announced = NULL`,
		userID, time.Now().UTC().Unix(), md,
	)
	return err
}

// SetLastChecked records the local date the scheduler evaluated the user.
func (r *SQLiteRepo) SetLastChecked(ctx context.Context, userID, localDate string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET last_checked = ?
		WHERE user_id = ?`,
		localDate, userID,
	)
	return err
}

// SetLastAnnounced records the local year of the last announcement.
func (r *SQLiteRepo) SetLastAnnounced(ctx context.Context, userID string, year int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET last_announced = ?
		WHERE user_id = ?`,
		year, userID,
	)
	return err
}
