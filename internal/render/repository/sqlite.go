package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

//go:embed migrations/*.sql
var migrations embed.FS

var ErrNotFound = errors.New("not found")

// ============================================================
// Records
// ============================================================

type Render struct {
	ID         string `json:"id"`
	Scene      string `json:"scene"`
	Source     string `json:"source"`
	FrameCount int    `json:"frame_count"`
	DurationMS int64  `json:"duration_ms"`
	Artifacts  string `json:"artifacts,omitempty"`
	CreatedAt  string `json:"created_at"`
}

type Frame struct {
	RenderID string `json:"render_id"`
	Index    int    `json:"index"`
	AtMS     int64  `json:"at_ms"`
	Label    string `json:"label"`
	SVG      string `json:"-"`
}

// ============================================================
// SQLite Repository
// ============================================================

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init applies the embedded migrations in file name order.
func (r *Repository) Init(ctx context.Context) error {
	if err := r.runMigrations(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

// SaveRender stores a render and its frames in one transaction.
func (r *Repository) SaveRender(ctx context.Context, render Render, frames []Frame) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
        INSERT INTO renders (id, scene, source, frame_count, duration_ms, artifacts)
        VALUES (?, ?, ?, ?, ?, ?)
    `, render.ID, render.Scene, render.Source, len(frames), render.DurationMS, render.Artifacts)
	if err != nil {
		return fmt.Errorf("insert render: %w", err)
	}

	for _, f := range frames {
		_, err = tx.ExecContext(ctx, `
            INSERT INTO frames (render_id, idx, at_ms, label, svg)
            VALUES (?, ?, ?, ?, ?)
        `, render.ID, f.Index, f.AtMS, f.Label, f.SVG)
		if err != nil {
			return fmt.Errorf("insert frame %d: %w", f.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *Repository) GetRender(ctx context.Context, id string) (*Render, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, scene, source, frame_count, duration_ms, artifacts, created_at
        FROM renders
        WHERE id = ?
    `, id)

	var out Render
	if err := row.Scan(&out.ID, &out.Scene, &out.Source, &out.FrameCount, &out.DurationMS, &out.Artifacts, &out.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("render %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &out, nil
}

func (r *Repository) GetFrame(ctx context.Context, renderID string, index int) (*Frame, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT render_id, idx, at_ms, label, svg
        FROM frames
        WHERE render_id = ? AND idx = ?
    `, renderID, index)

	var f Frame
	if err := row.Scan(&f.RenderID, &f.Index, &f.AtMS, &f.Label, &f.SVG); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("frame %s/%d: %w", renderID, index, ErrNotFound)
		}
		return nil, err
	}
	return &f, nil
}

// ListFrames returns frame metadata without the SVG bodies.
func (r *Repository) ListFrames(ctx context.Context, renderID string) ([]Frame, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT render_id, idx, at_ms, label
        FROM frames
        WHERE render_id = ?
        ORDER BY idx
    `, renderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Frame
	for rows.Next() {
		var f Frame
		if err := rows.Scan(&f.RenderID, &f.Index, &f.AtMS, &f.Label); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// ListRenders returns the newest renders first.
func (r *Repository) ListRenders(ctx context.Context, limit int) ([]Render, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
        SELECT id, scene, source, frame_count, duration_ms, artifacts, created_at
        FROM renders
        ORDER BY created_at DESC, rowid DESC
        LIMIT ?
    `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Render
	for rows.Next() {
		var rd Render
		if err := rows.Scan(&rd.ID, &rd.Scene, &rd.Source, &rd.FrameCount, &rd.DurationMS, &rd.Artifacts, &rd.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rd)
	}
	return out, rows.Err()
}

// ============================================================
// Migrations
// ============================================================

func (r *Repository) runMigrations(ctx context.Context) error {
	names, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)

	for _, name := range names {
		data, err := migrations.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := r.db.ExecContext(ctx, string(data)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}

// OpenSQLite opens (and creates) the database file at dbPath.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000&_pragma=foreign_keys(1)", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
