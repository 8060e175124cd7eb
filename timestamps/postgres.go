package timestamps

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"

	"cliplabel/types"
)

// Row is a raw timestamp row as imported into the hosted backend.
// Start and End are time strings, typically MM:SS.
type Row struct {
	VideoName string `json:"video_name"`
	Start     string `json:"start"`
	End       string `json:"end"`
}

// PostgresStore keeps segments as MM:SS string rows in a flat table.
// Row storage provides no ordering guarantee, so reads re-sort by the
// parsed start value.
type PostgresStore struct {
	conn *pgx.Conn
}

// NewPostgresStore ensures the row table exists.
func NewPostgresStore(ctx context.Context, conn *pgx.Conn) (*PostgresStore, error) {
	_, err := conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS timestamp_rows (
			id BIGSERIAL PRIMARY KEY,
			video_name TEXT NOT NULL,
			"start" TEXT NOT NULL,
			"end" TEXT NOT NULL
		)`)
	if err != nil {
		return nil, fmt.Errorf("ensure timestamp_rows table: %w", err)
	}
	return &PostgresStore{conn: conn}, nil
}

func (s *PostgresStore) Get(ctx context.Context, videoName string) ([]types.Segment, error) {
	rows, err := s.conn.Query(ctx,
		`SELECT "start", "end" FROM timestamp_rows WHERE video_name = $1`, videoName)
	if err != nil {
		return nil, fmt.Errorf("query timestamp rows for %s: %w", videoName, err)
	}
	defer rows.Close()

	segments := []types.Segment{}
	for rows.Next() {
		var startStr, endStr string
		if err := rows.Scan(&startStr, &endStr); err != nil {
			return nil, fmt.Errorf("scan timestamp row: %w", err)
		}
		start, okStart := ParseTimeValue(startStr)
		end, okEnd := ParseTimeValue(endStr)
		if okStart && okEnd && end > start {
			segments = append(segments, types.Segment{Start: start, End: end})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate timestamp rows: %w", err)
	}
	sort.SliceStable(segments, func(i, j int) bool { return segments[i].Start < segments[j].Start })
	return segments, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.conn.Query(ctx, `SELECT DISTINCT video_name FROM timestamp_rows`)
	if err != nil {
		return nil, fmt.Errorf("list timestamp names: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan timestamp name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Upsert replaces the stored rows for a name: delete then insert.
func (s *PostgresStore) Upsert(ctx context.Context, videoName string, segments []types.Segment) error {
	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin timestamp upsert: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM timestamp_rows WHERE video_name = $1`, videoName); err != nil {
		return fmt.Errorf("delete timestamp rows for %s: %w", videoName, err)
	}
	for _, seg := range segments {
		if _, err := tx.Exec(ctx,
			`INSERT INTO timestamp_rows (video_name, "start", "end") VALUES ($1, $2, $3)`,
			videoName, FormatTime(seg.Start), FormatTime(seg.End)); err != nil {
			return fmt.Errorf("insert timestamp row for %s: %w", videoName, err)
		}
	}
	return tx.Commit(ctx)
}

func (s *PostgresStore) BulkUpsert(ctx context.Context, entries []Entry) ([]UploadResult, error) {
	results := []UploadResult{}
	for _, e := range entries {
		if e.VideoName == "" || e.Segments == nil {
			continue
		}
		if err := s.Upsert(ctx, e.VideoName, e.Segments); err != nil {
			return results, err
		}
		results = append(results, UploadResult{VideoName: e.VideoName, Count: len(e.Segments)})
	}
	return results, nil
}

func (s *PostgresStore) Has(ctx context.Context, videoName string) bool {
	var count int
	err := s.conn.QueryRow(ctx,
		`SELECT count(*) FROM timestamp_rows WHERE video_name = $1`, videoName).Scan(&count)
	return err == nil && count > 0
}

// AddRows inserts raw time-string rows, e.g. straight from a CSV import.
// Rows missing a name or either bound are skipped.
func (s *PostgresStore) AddRows(ctx context.Context, rows []Row) (int, error) {
	inserted := 0
	for _, r := range rows {
		name := strings.TrimSpace(r.VideoName)
		start := strings.TrimSpace(r.Start)
		end := strings.TrimSpace(r.End)
		if name == "" || start == "" || end == "" {
			continue
		}
		if _, err := s.conn.Exec(ctx,
			`INSERT INTO timestamp_rows (video_name, "start", "end") VALUES ($1, $2, $3)`,
			name, start, end); err != nil {
			return inserted, fmt.Errorf("insert timestamp row: %w", err)
		}
		inserted++
	}
	return inserted, nil
}
