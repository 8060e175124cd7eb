package types

import (
	"time"

	"github.com/google/uuid"
)

// Annotation is a reviewer-entered record pairing a time range with an
// intent label and transcribed text.
type Annotation struct {
	ID        string  `json:"id" bson:"id"`
	VideoID   string  `json:"videoId" bson:"videoId"`
	StartTime float64 `json:"startTime" bson:"startTime"`
	EndTime   float64 `json:"endTime" bson:"endTime"`
	Intent    string  `json:"intent" bson:"intent"`
	Text      string  `json:"text" bson:"text"`
	CreatedAt string  `json:"createdAt" bson:"createdAt"`
	UpdatedAt string  `json:"updatedAt" bson:"updatedAt"`
}

// AnnotationInput carries client-provided annotation fields. Pointer
// fields distinguish "absent" from zero values on partial updates.
type AnnotationInput struct {
	VideoID   *string  `json:"videoId"`
	StartTime *float64 `json:"startTime"`
	EndTime   *float64 `json:"endTime"`
	Intent    *string  `json:"intent"`
	Text      *string  `json:"text"`
}

// NewAnnotationID generates an opaque annotation ID.
func NewAnnotationID() string {
	return "ann_" + uuid.NewString()
}

// Timestamp formats the current time the way annotation records store it.
func Timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
