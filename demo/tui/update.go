package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"cliplabel/timestamps"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case QueueLoadedMsg:
		return m.handleQueueLoaded(msg)
	case SegmentsLoadedMsg:
		return m.handleSegmentsLoaded(msg)
	case AnnotationSavedMsg:
		return m.handleAnnotationSaved(msg)
	case VideoCompletedMsg:
		return m.handleVideoCompleted(msg)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "up":
		if m.State == StateReviewing && m.IntentIndex > 0 {
			m.IntentIndex--
		}
		return m, nil
	case "down":
		if m.State == StateReviewing && m.IntentIndex < len(Intents)-1 {
			m.IntentIndex++
		}
		return m, nil
	case "enter":
		return m.submitCurrent()
	case "ctrl+n":
		// Skip the segment without saving an annotation.
		if m.State == StateReviewing {
			return m.advanceSegment()
		}
		return m, nil
	}

	if m.State == StateReviewing {
		var cmd tea.Cmd
		m.TextInput, cmd = m.TextInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) submitCurrent() (tea.Model, tea.Cmd) {
	if m.State != StateReviewing {
		return m, nil
	}
	video := m.CurrentVideo()
	seg := m.CurrentSegment()
	if video == nil || seg == nil {
		return m, nil
	}
	m.State = StateSaving
	return m, saveAnnotation(m.Client, video.Name, seg.Start, seg.End,
		Intents[m.IntentIndex], m.TextInput.Value())
}

func (m Model) advanceSegment() (tea.Model, tea.Cmd) {
	m.SegmentIndex++
	m.TextInput.SetValue("")
	m.IntentIndex = 0
	if m.SegmentIndex < len(m.Segments) {
		m.State = StateReviewing
		return m, nil
	}
	// All segments reviewed: complete the video and advance the queue.
	if m.Queue != nil {
		m.State = StateLoading
		m = m.AddLog("video done, advancing queue")
		return m, completeVideo(m.Client, m.Queue.CurrentIndex)
	}
	m.State = StateDone
	return m, nil
}

func (m Model) handleQueueLoaded(msg QueueLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}
	m.Queue = msg.Queue
	video := m.CurrentVideo()
	if video == nil {
		m.State = StateDone
		m = m.AddLog("queue is empty")
		return m, nil
	}
	m = m.AddLog("queue loaded: %d videos", len(msg.Queue.Videos))
	return m, loadSegments(m.Client, video.Name)
}

func (m Model) handleSegmentsLoaded(msg SegmentsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}
	m.Segments = msg.Segments
	m.SegmentIndex = 0
	m.IntentIndex = 0
	m.TextInput.SetValue("")
	if len(msg.Segments) == 0 {
		m = m.AddLog("no segments for %s, skipping", msg.VideoName)
		if m.Queue != nil {
			m.State = StateLoading
			return m, completeVideo(m.Client, m.Queue.CurrentIndex)
		}
		m.State = StateDone
		return m, nil
	}
	m.State = StateReviewing
	m = m.AddLog("%s: %d segments", msg.VideoName, len(msg.Segments))
	return m, nil
}

func (m Model) handleAnnotationSaved(msg AnnotationSavedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		// Saving is retryable: stay on the segment and surface the error.
		m.State = StateReviewing
		m = m.AddLog("save failed: %v", msg.Err)
		return m, nil
	}
	m.SavedCount++
	seg := m.CurrentSegment()
	if seg != nil {
		m = m.AddLog("saved %s-%s (%s)",
			timestamps.FormatTime(seg.Start), timestamps.FormatTime(seg.End),
			msg.Annotation.Intent)
	}
	m.State = StateReviewing
	return m.advanceSegment()
}

func (m Model) handleVideoCompleted(msg VideoCompletedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}
	prev := -1
	if m.Queue != nil {
		prev = m.Queue.CurrentIndex
	}
	m.Queue = msg.Queue
	if msg.Queue.CurrentIndex == prev {
		// Pointer did not move: that was the last video.
		m.State = StateDone
		m = m.AddLog("all videos reviewed")
		return m, nil
	}
	video := m.CurrentVideo()
	if video == nil {
		m.State = StateDone
		return m, nil
	}
	return m, loadSegments(m.Client, video.Name)
}
