package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"cliplabel/demo/client"
	"cliplabel/types"
)

// State represents the reviewer state machine
type State string

const (
	StateLoading   State = "loading"
	StateReviewing State = "reviewing"
	StateSaving    State = "saving"
	StateDone      State = "done"
	StateError     State = "error"
)

// Intents is the fixed label vocabulary offered to the reviewer.
var Intents = []string{
	"Able to See",
	"Partially Visible",
	"Blurry",
	"Cannot See",
	"No Speech",
}

// Model represents the TUI reviewer state (thin client)
type Model struct {
	Client *client.Client

	State        State
	Queue        *client.QueueResponse
	Segments     []types.Segment
	SegmentIndex int
	IntentIndex  int
	TextInput    textinput.Model
	SavedCount   int
	Logs         []string
	Err          error
}

// NewModel creates the initial reviewer model.
func NewModel(baseURL string) Model {
	ti := textinput.New()
	ti.Placeholder = "transcribed text"
	ti.CharLimit = 500
	ti.Width = 60
	ti.Focus()
	return Model{
		Client:    client.NewClient(baseURL),
		State:     StateLoading,
		TextInput: ti,
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return loadQueue(m.Client)
}

// CurrentVideo returns the video under review, nil when the queue is empty.
func (m Model) CurrentVideo() *client.QueueVideo {
	if m.Queue == nil || m.Queue.CurrentIndex >= len(m.Queue.Videos) {
		return nil
	}
	return &m.Queue.Videos[m.Queue.CurrentIndex]
}

// CurrentSegment returns the segment under review, nil when exhausted.
func (m Model) CurrentSegment() *types.Segment {
	if m.SegmentIndex >= len(m.Segments) {
		return nil
	}
	return &m.Segments[m.SegmentIndex]
}

// AddLog appends a line to the activity log, keeping the last few.
func (m Model) AddLog(format string, args ...any) Model {
	m.Logs = append(m.Logs, fmt.Sprintf(format, args...))
	if len(m.Logs) > 6 {
		m.Logs = m.Logs[len(m.Logs)-6:]
	}
	return m
}
