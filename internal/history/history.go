// Package history records exported clips in SQLite.
package history

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"github.com/jask/clipper/internal/database"
)

//go:embed migrations/*.sql
var migrations embed.FS

// ErrNotFound is returned by Get for an unknown id.
var ErrNotFound = errors.New("clip not found")

// Clip is one exported clip.
type Clip struct {
	ID        string
	Source    string
	Output    string
	Start     float64
	End       float64
	CreatedAt time.Time
}

// Duration is the clip length in seconds.
func (c Clip) Duration() float64 { return c.End - c.Start }

// Store handles the clips table.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Open opens the database at path and brings its schema up to date.
func Open(path string) (*Store, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if err := database.RunMigrations(db, migrations, "migrations"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate history db: %w", err)
	}
	return NewStore(db), nil
}

func (s *Store) Close() error { return s.db.Close() }

// Record inserts c, assigning an id and timestamp when they are unset.
func (s *Store) Record(ctx context.Context, c Clip) (Clip, error) {
	if c.End < c.Start {
		return Clip{}, fmt.Errorf("record clip: end %v before start %v", c.End, c.Start)
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = database.Now()
	}
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO clips(id, source, output, start_sec, end_sec, created_at)
	VALUES (?, ?, ?, ?, ?, ?)
	`, c.ID, c.Source, c.Output, c.Start, c.End, c.CreatedAt)
	if err != nil {
		return Clip{}, fmt.Errorf("record clip: %w", err)
	}
	return c, nil
}

func (s *Store) Get(ctx context.Context, id string) (Clip, error) {
	row := s.db.QueryRowContext(ctx, `
	SELECT id, source, output, start_sec, end_sec, created_at FROM clips WHERE id = ?
	`, id)
	var c Clip
	if err := row.Scan(&c.ID, &c.Source, &c.Output, &c.Start, &c.End, &c.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return Clip{}, ErrNotFound
		}
		return Clip{}, err
	}
	return c, nil
}

// Recent lists the newest clips first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Clip, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT id, source, output, start_sec, end_sec, created_at
	FROM clips ORDER BY created_at DESC, rowid DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Clip
	for rows.Next() {
		var c Clip
		if err := rows.Scan(&c.ID, &c.Source, &c.Output, &c.Start, &c.End, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Sources lists distinct source files, most recently clipped first.
func (s *Store) Sources(ctx context.Context, limit int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT source FROM clips
	GROUP BY source
	ORDER BY MAX(created_at) DESC, MAX(rowid) DESC
	LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var src string
		if err := rows.Scan(&src); err != nil {
			return nil, err
		}
		out = append(out, src)
	}
	return out, rows.Err()
}

// Prune keeps the newest keep clips and deletes the rest.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	var n int64
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
		DELETE FROM clips WHERE id NOT IN (
			SELECT id FROM clips ORDER BY created_at DESC, rowid DESC LIMIT ?
		)`, keep)
		if err != nil {
			return err
		}
		n, err = res.RowsAffected()
		return err
	})
	return n, err
}

// Suggest returns the candidate closest to input when it is similar enough
// to be a likely typo.
func Suggest(input string, candidates []string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}
	best, bestRatio := "", 1.0
	for _, c := range candidates {
		longest := len(c)
		if len(input) > longest {
			longest = len(input)
		}
		if longest == 0 {
			continue
		}
		ratio := float64(levenshtein.ComputeDistance(input, c)) / float64(longest)
		if ratio < bestRatio {
			best, bestRatio = c, ratio
		}
	}
	if best == "" || bestRatio >= 0.4 || best == input {
		return "", false
	}
	return best, true
}
