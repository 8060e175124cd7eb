package types

// Video status values within the review queue
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// VideoDescriptor represents a single video in the review queue.
// Name is derived from the URL and acts as the unique key across the
// queue, the timestamp store, and the local video cache.
type VideoDescriptor struct {
	URL    string `json:"url"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Queue is the ordered list of videos under review plus a pointer to
// the one currently active.
type Queue struct {
	CurrentIndex int               `json:"currentIndex"`
	Videos       []VideoDescriptor `json:"videos"`
}

// EmptyQueue returns a fresh queue with no videos.
func EmptyQueue() Queue {
	return Queue{CurrentIndex: 0, Videos: []VideoDescriptor{}}
}

// Segment is a time range within a video, in seconds. Segments carry no
// identity of their own; they are addressed by position within a video's
// segment list.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}
