package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"cliplabel/demo/client"
)

// loadQueue creates a command to fetch the review queue
func loadQueue(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		q, err := c.GetQueue()
		return QueueLoadedMsg{Queue: q, Err: err}
	}
}

// loadSegments creates a command to fetch segments for a video
func loadSegments(c *client.Client, videoName string) tea.Cmd {
	return func() tea.Msg {
		segs, err := c.GetTimestamps(videoName)
		return SegmentsLoadedMsg{VideoName: videoName, Segments: segs, Err: err}
	}
}

// saveAnnotation creates a command to submit the reviewed segment
func saveAnnotation(c *client.Client, videoID string, start, end float64, intent, text string) tea.Cmd {
	return func() tea.Msg {
		ann, err := c.CreateAnnotation(videoID, start, end, intent, text)
		return AnnotationSavedMsg{Annotation: ann, Err: err}
	}
}

// completeVideo creates a command to mark the video done and advance
func completeVideo(c *client.Client, index int) tea.Cmd {
	return func() tea.Msg {
		q, err := c.CompleteVideo(index)
		return VideoCompletedMsg{Queue: q, Err: err}
	}
}
