// Package annotations persists reviewer-entered annotation records with
// interchangeable file, MongoDB, and Postgres backends. The backend is
// chosen once at process start and never switched at runtime.
package annotations

import (
	"context"
	"errors"

	"cliplabel/types"
)

// ErrNotFound is returned when no annotation matches the given ID.
var ErrNotFound = errors.New("annotation not found")

// DefaultVideoID is applied when a create omits videoId.
const DefaultVideoID = "default"

// Filter narrows GetAll results. Zero values are ignored.
type Filter struct {
	// VideoID matches by string equality.
	VideoID string
	// Intent is a case-insensitive exact match.
	Intent string
	// Search matches a case-insensitive substring of text or intent.
	Search string
	// Sort "startTime" orders ascending by start; anything else yields
	// newest-created-first.
	Sort string
}

// Store is the annotation persistence contract shared by all backends.
type Store interface {
	GetAll(ctx context.Context, f Filter) ([]types.Annotation, error)
	GetByID(ctx context.Context, id string) (types.Annotation, error)
	// Create assigns the ID and timestamps. Input must already be valid.
	Create(ctx context.Context, in types.AnnotationInput) (types.Annotation, error)
	// Update merges the provided fields and refreshes updatedAt.
	Update(ctx context.Context, id string, in types.AnnotationInput) (types.Annotation, error)
	// Remove reports whether a record existed and was deleted.
	Remove(ctx context.Context, id string) (bool, error)
	// GetForExport returns annotations ascending by startTime, optionally
	// restricted to one video.
	GetForExport(ctx context.Context, videoID string) ([]types.Annotation, error)
}

// newRecord builds a fresh annotation from validated input.
func newRecord(in types.AnnotationInput) types.Annotation {
	now := types.Timestamp()
	ann := types.Annotation{
		ID:        types.NewAnnotationID(),
		VideoID:   DefaultVideoID,
		StartTime: *in.StartTime,
		EndTime:   *in.EndTime,
		Intent:    *in.Intent,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.VideoID != nil && *in.VideoID != "" {
		ann.VideoID = *in.VideoID
	}
	if in.Text != nil {
		ann.Text = *in.Text
	}
	return ann
}

// merge applies partial input onto an existing record.
func merge(ann *types.Annotation, in types.AnnotationInput) {
	if in.VideoID != nil {
		ann.VideoID = *in.VideoID
	}
	if in.StartTime != nil {
		ann.StartTime = *in.StartTime
	}
	if in.EndTime != nil {
		ann.EndTime = *in.EndTime
	}
	if in.Intent != nil {
		ann.Intent = *in.Intent
	}
	if in.Text != nil {
		ann.Text = *in.Text
	}
	ann.UpdatedAt = types.Timestamp()
}
