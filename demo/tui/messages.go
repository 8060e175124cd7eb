package tui

import (
	"cliplabel/demo/client"
	"cliplabel/types"
)

// QueueLoadedMsg carries the queue fetched at startup or after a change.
type QueueLoadedMsg struct {
	Queue *client.QueueResponse
	Err   error
}

// SegmentsLoadedMsg carries the segment list for the current video.
type SegmentsLoadedMsg struct {
	VideoName string
	Segments  []types.Segment
	Err       error
}

// AnnotationSavedMsg reports one submitted annotation.
type AnnotationSavedMsg struct {
	Annotation *types.Annotation
	Err        error
}

// VideoCompletedMsg carries the queue after completing a video.
type VideoCompletedMsg struct {
	Queue *client.QueueResponse
	Err   error
}
