package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"indoor-map/internal/converter/models"
)

// ============================================================
// SQLite Repository
// ============================================================

var ErrNotFound = errors.New("map not found")

//go:embed migrations/001_init_maps.sql
var initMigration string

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init applies the schema.
func (r *Repository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, initMigration); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *Repository) Create(ctx context.Context, doc *models.MapDocument) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO maps (id, name, floors, walls)
        VALUES (?, ?, ?, ?)
    `, doc.ID, doc.Name, doc.Floors, doc.Walls)
	if err != nil {
		return fmt.Errorf("insert map: %w", err)
	}

	created, err := r.GetByID(ctx, doc.ID)
	if err != nil {
		return err
	}
	doc.CreatedAt = created.CreatedAt
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*models.MapDocument, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, floors, walls, created_at
        FROM maps
        WHERE id = ?
    `, id)

	var d models.MapDocument
	if err := row.Scan(&d.ID, &d.Name, &d.Floors, &d.Walls, &d.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// List returns all documents, newest first.
func (r *Repository) List(ctx context.Context) ([]models.MapDocument, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, floors, walls, created_at
        FROM maps
        ORDER BY created_at DESC, rowid DESC
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []models.MapDocument{}
	for rows.Next() {
		var d models.MapDocument
		if err := rows.Scan(&d.ID, &d.Name, &d.Floors, &d.Walls, &d.CreatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM maps WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete map: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// OpenSQLite opens the sqlite database at dbPath, creating its directory.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
