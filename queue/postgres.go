package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"cliplabel/types"
)

// queueRowID is the fixed primary key of the single queue row.
const queueRowID = 1

// PostgresRecord keeps the queue as one row in a hosted Postgres
// database, with the video list stored as JSONB.
type PostgresRecord struct {
	conn *pgx.Conn
}

// NewPostgresRecord connects and ensures the queue table exists.
func NewPostgresRecord(ctx context.Context, conn *pgx.Conn) (*PostgresRecord, error) {
	_, err := conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS queue (
			id INTEGER PRIMARY KEY,
			current_index INTEGER NOT NULL DEFAULT 0,
			videos JSONB NOT NULL DEFAULT '[]',
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return nil, fmt.Errorf("ensure queue table: %w", err)
	}
	return &PostgresRecord{conn: conn}, nil
}

func (p *PostgresRecord) Read(ctx context.Context) (types.Queue, error) {
	var idx int
	var videosJSON []byte
	err := p.conn.QueryRow(ctx,
		`SELECT current_index, videos FROM queue WHERE id = $1`, queueRowID,
	).Scan(&idx, &videosJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return types.EmptyQueue(), nil
	}
	if err != nil {
		return types.Queue{}, fmt.Errorf("read queue row: %w", err)
	}
	videos := []types.VideoDescriptor{}
	if err := json.Unmarshal(videosJSON, &videos); err != nil {
		return types.Queue{}, fmt.Errorf("decode queue videos: %w", err)
	}
	return types.Queue{CurrentIndex: idx, Videos: videos}, nil
}

func (p *PostgresRecord) Write(ctx context.Context, q types.Queue) error {
	videosJSON, err := json.Marshal(q.Videos)
	if err != nil {
		return fmt.Errorf("encode queue videos: %w", err)
	}
	_, err = p.conn.Exec(ctx, `
		INSERT INTO queue (id, current_index, videos, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (id) DO UPDATE
		SET current_index = EXCLUDED.current_index,
		    videos = EXCLUDED.videos,
		    updated_at = now()`,
		queueRowID, q.CurrentIndex, videosJSON)
	if err != nil {
		return fmt.Errorf("write queue row: %w", err)
	}
	return nil
}
