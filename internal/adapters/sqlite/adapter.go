// Package sqlite stores and serves track catalogs from a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously

	"github.com/shantanugsharp/chatbot-be/internal/core/domain"
)

// ErrInvalidTable is returned for table names that are not plain identifiers.
var ErrInvalidTable = errors.New("sqlite: invalid table name")

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Adapter wraps one database connection.
type Adapter struct {
	db *sql.DB
}

// NewAdapter opens the database at storagePath and verifies the connection.
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", storagePath, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping %s: %w", storagePath, err)
	}
	return &Adapter{db: db}, nil
}

// Close ensures the DB connection is closed gracefully
func (a *Adapter) Close() error {
	return a.db.Close()
}

// LoadTable reads every row of table as a column-name keyed record, in
// storage order. Values are converted to strings, numbers or nil.
func (a *Adapter) LoadTable(ctx context.Context, table string) ([]any, error) {
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}

	// #nosec G202 -- table name is validated against tableName
	rows, err := a.db.QueryContext(ctx, fmt.Sprintf(`SELECT * FROM "%s"`, table))
	if err != nil {
		return nil, fmt.Errorf("sqlite: query %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("sqlite: columns of %s: %w", table, err)
	}

	records := make([]any, 0)
	values := make([]any, len(columns))
	scanArgs := make([]any, len(columns))
	for i := range values {
		scanArgs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(scanArgs...); err != nil {
			return nil, fmt.Errorf("sqlite: scan %s: %w", table, err)
		}
		rec := make(map[string]any, len(columns))
		for i, col := range columns {
			rec[col] = columnValue(values[i])
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate %s: %w", table, err)
	}
	return records, nil
}

// ImportTracks replaces the contents of table with tracks, creating the table
// when needed. Catalog order is kept in the position column.
func (a *Adapter) ImportTracks(ctx context.Context, table string, tracks []domain.Track) (int, error) {
	if !tableName.MatchString(table) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}
	if err := a.migrate(ctx, table); err != nil {
		return 0, fmt.Errorf("sqlite: migrate %s: %w", table, err)
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite: begin transaction: %w", err)
	}
	defer tx.Rollback() // no-op after commit

	// #nosec G202 -- table name is validated against tableName
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM "%s"`, table)); err != nil {
		return 0, fmt.Errorf("sqlite: clear %s: %w", table, err)
	}

	// #nosec G202 -- table name is validated against tableName
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`
		INSERT INTO "%s" (
			position, trackCode, name, bpm, songKey, releaseDate, releaseYear,
			hasVocals, nameSlug, isExplicit, displayTags
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, table))
	if err != nil {
		return 0, fmt.Errorf("sqlite: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range tracks {
		if _, err := stmt.ExecContext(ctx,
			i,
			t.TrackCode,
			t.Name,
			t.BPM,
			t.SongKey,
			t.ReleaseDate,
			t.ReleaseYear,
			t.HasVocals,
			t.NameSlug,
			t.IsExplicit,
			t.DisplayTags,
		); err != nil {
			return 0, fmt.Errorf("sqlite: insert track %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("sqlite: commit: %w", err)
	}
	return len(tracks), nil
}

func (a *Adapter) migrate(ctx context.Context, table string) error {
	// #nosec G202 -- table name is validated against tableName
	_, err := a.db.ExecContext(ctx, fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS "%s" (
		position INTEGER PRIMARY KEY,
		trackCode TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL DEFAULT '',
		bpm TEXT NOT NULL DEFAULT '',
		songKey TEXT NOT NULL DEFAULT '',
		releaseDate TEXT NOT NULL DEFAULT '',
		releaseYear TEXT NOT NULL DEFAULT '',
		hasVocals TEXT NOT NULL DEFAULT '',
		nameSlug TEXT NOT NULL DEFAULT '',
		isExplicit TEXT NOT NULL DEFAULT '',
		displayTags TEXT NOT NULL DEFAULT ''
	);`, table))
	return err
}

func columnValue(v any) any {
	switch x := v.(type) {
	case []byte:
		return string(x)
	case time.Time:
		return x.UTC().Format(time.RFC3339)
	default:
		return x
	}
}
