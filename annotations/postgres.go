package annotations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"cliplabel/types"
)

// PostgresStore keeps annotations as rows in a hosted Postgres database.
type PostgresStore struct {
	conn *pgx.Conn
}

// NewPostgresStore ensures the annotations table exists.
func NewPostgresStore(ctx context.Context, conn *pgx.Conn) (*PostgresStore, error) {
	_, err := conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS annotations (
			id TEXT PRIMARY KEY,
			video_id TEXT NOT NULL DEFAULT 'default',
			start_time DOUBLE PRECISION NOT NULL,
			end_time DOUBLE PRECISION NOT NULL,
			intent TEXT NOT NULL,
			text TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`)
	if err != nil {
		return nil, fmt.Errorf("ensure annotations table: %w", err)
	}
	return &PostgresStore{conn: conn}, nil
}

const annotationColumns = `id, video_id, start_time, end_time, intent, text, created_at, updated_at`

func scanAnnotation(row pgx.Row) (types.Annotation, error) {
	var a types.Annotation
	err := row.Scan(&a.ID, &a.VideoID, &a.StartTime, &a.EndTime, &a.Intent, &a.Text, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (s *PostgresStore) GetAll(ctx context.Context, f Filter) ([]types.Annotation, error) {
	var where []string
	var args []any
	if f.VideoID != "" {
		args = append(args, f.VideoID)
		where = append(where, fmt.Sprintf("video_id = $%d", len(args)))
	}
	if f.Intent != "" {
		args = append(args, f.Intent)
		where = append(where, fmt.Sprintf("lower(intent) = lower($%d)", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(text ILIKE $%d OR intent ILIKE $%d)", len(args), len(args)))
	}

	query := `SELECT ` + annotationColumns + ` FROM annotations`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	if f.Sort == "startTime" {
		query += " ORDER BY start_time ASC"
	} else {
		query += " ORDER BY created_at DESC"
	}
	return s.query(ctx, query, args...)
}

func (s *PostgresStore) query(ctx context.Context, query string, args ...any) ([]types.Annotation, error) {
	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query annotations: %w", err)
	}
	defer rows.Close()

	results := []types.Annotation{}
	for rows.Next() {
		a, err := scanAnnotation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan annotation: %w", err)
		}
		results = append(results, a)
	}
	return results, rows.Err()
}

func (s *PostgresStore) GetByID(ctx context.Context, id string) (types.Annotation, error) {
	a, err := scanAnnotation(s.conn.QueryRow(ctx,
		`SELECT `+annotationColumns+` FROM annotations WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return types.Annotation{}, ErrNotFound
	}
	if err != nil {
		return types.Annotation{}, fmt.Errorf("fetch annotation %s: %w", id, err)
	}
	return a, nil
}

func (s *PostgresStore) Create(ctx context.Context, in types.AnnotationInput) (types.Annotation, error) {
	ann := newRecord(in)
	_, err := s.conn.Exec(ctx, `
		INSERT INTO annotations (`+annotationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		ann.ID, ann.VideoID, ann.StartTime, ann.EndTime, ann.Intent, ann.Text, ann.CreatedAt, ann.UpdatedAt)
	if err != nil {
		return types.Annotation{}, fmt.Errorf("insert annotation: %w", err)
	}
	return ann, nil
}

func (s *PostgresStore) Update(ctx context.Context, id string, in types.AnnotationInput) (types.Annotation, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return types.Annotation{}, err
	}
	merge(&existing, in)
	_, err = s.conn.Exec(ctx, `
		UPDATE annotations
		SET video_id = $2, start_time = $3, end_time = $4, intent = $5, text = $6, updated_at = $7
		WHERE id = $1`,
		existing.ID, existing.VideoID, existing.StartTime, existing.EndTime, existing.Intent, existing.Text, existing.UpdatedAt)
	if err != nil {
		return types.Annotation{}, fmt.Errorf("update annotation %s: %w", id, err)
	}
	return existing, nil
}

func (s *PostgresStore) Remove(ctx context.Context, id string) (bool, error) {
	tag, err := s.conn.Exec(ctx, `DELETE FROM annotations WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete annotation %s: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *PostgresStore) GetForExport(ctx context.Context, videoID string) ([]types.Annotation, error) {
	if videoID != "" {
		return s.query(ctx,
			`SELECT `+annotationColumns+` FROM annotations WHERE video_id = $1 ORDER BY start_time ASC`, videoID)
	}
	return s.query(ctx,
		`SELECT `+annotationColumns+` FROM annotations ORDER BY start_time ASC`)
}
