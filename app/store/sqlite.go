package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"icando-go/app/models"
)

// SQLiteStore keeps one row per mission in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize mission table: %w", err)
	}
	return s, nil
}

// init creates the database schema
func (s *SQLiteStore) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS missions (
		id TEXT PRIMARY KEY,
		parent_id TEXT,
		position INTEGER NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		completed INTEGER NOT NULL DEFAULT 0,
		expanded INTEGER NOT NULL DEFAULT 0,
		kind TEXT NOT NULL,
		has_children INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_missions_parent ON missions(parent_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Load reads every mission row and reassembles the tree.
func (s *SQLiteStore) Load(ctx context.Context) (*models.Mission, error) {
	rs, err := s.db.QueryContext(ctx, `
	SELECT id, parent_id, position, title, description, completed, expanded, kind, has_children
	FROM missions
	`)
	if err != nil {
		return nil, fmt.Errorf("query missions: %w", err)
	}
	defer rs.Close()

	var rows []row
	for rs.Next() {
		var r row
		var parentID sql.NullString
		if err := rs.Scan(&r.ID, &parentID, &r.Position, &r.Title, &r.Description,
			&r.Completed, &r.Expanded, &r.Kind, &r.HasChildren); err != nil {
			return nil, fmt.Errorf("scan mission: %w", err)
		}
		r.ParentID = parentID.String
		rows = append(rows, r)
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("iterate missions: %w", err)
	}

	return assemble(rows)
}

// Save replaces the stored tree in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, root *models.Mission) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM missions`); err != nil {
		return fmt.Errorf("clear missions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO missions (id, parent_id, position, title, description, completed, expanded, kind, has_children)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range flatten(root) {
		parentID := sql.NullString{String: r.ParentID, Valid: r.ParentID != ""}
		if _, err := stmt.ExecContext(ctx, r.ID, parentID, r.Position, r.Title, r.Description,
			r.Completed, r.Expanded, r.Kind, r.HasChildren); err != nil {
			return fmt.Errorf("insert mission %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit missions: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close(ctx context.Context) error {
	return s.db.Close()
}
