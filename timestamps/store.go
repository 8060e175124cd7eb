package timestamps

import (
	"context"

	"cliplabel/types"
)

// Entry pairs a video name with its segment list for bulk operations.
type Entry struct {
	VideoName string          `json:"videoName"`
	Segments  []types.Segment `json:"segments"`
}

// UploadResult reports the outcome of one bulk-upsert entry.
type UploadResult struct {
	VideoName string `json:"videoName"`
	Count     int    `json:"count"`
}

// Store persists per-video segment lists. Upsert fully replaces the
// stored list for a name; there is no merge.
type Store interface {
	// Get returns the segments for a video name, empty when none exist.
	Get(ctx context.Context, videoName string) ([]types.Segment, error)
	// List returns the video names that have at least one stored segment.
	List(ctx context.Context) ([]string, error)
	Upsert(ctx context.Context, videoName string, segments []types.Segment) error
	// BulkUpsert applies Upsert per entry. Entries missing a name are
	// skipped; the rest still commit.
	BulkUpsert(ctx context.Context, entries []Entry) ([]UploadResult, error)
	// Has reports whether any segments are stored for the name.
	Has(ctx context.Context, videoName string) bool
}
