package tui

import (
	"fmt"
	"strings"

	"cliplabel/timestamps"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Dialogue Segment Reviewer"))
	b.WriteString("\n\n")

	switch m.State {
	case StateError:
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.Err)))
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render("Press Esc or Ctrl+C to quit"))
		return b.String()
	case StateLoading:
		b.WriteString(InfoStyle.Render("Loading..."))
		b.WriteString("\n")
	case StateDone:
		b.WriteString(StatusStyle.Render(fmt.Sprintf("Review complete. %d annotations saved.", m.SavedCount)))
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render("Press Esc or Ctrl+C to exit"))
		b.WriteString("\n")
	}

	if video := m.CurrentVideo(); video != nil && (m.State == StateReviewing || m.State == StateSaving) {
		header := fmt.Sprintf("Video %d/%d: %s",
			m.Queue.CurrentIndex+1, len(m.Queue.Videos), video.Name)
		b.WriteString(StatusStyle.Render(header))
		b.WriteString("\n")

		if seg := m.CurrentSegment(); seg != nil {
			segLine := fmt.Sprintf("Segment %d/%d  [%s - %s]",
				m.SegmentIndex+1, len(m.Segments),
				timestamps.FormatTime(seg.Start), timestamps.FormatTime(seg.End))
			b.WriteString(InfoStyle.Render(segLine))
			b.WriteString("\n\n")
		}

		var box strings.Builder
		box.WriteString("Intent:\n")
		for i, intent := range Intents {
			if i == m.IntentIndex {
				box.WriteString(SelectedStyle.Render(intent))
			} else {
				box.WriteString("  " + intent)
			}
			box.WriteString("\n")
		}
		box.WriteString("\nText: " + m.TextInput.View())
		b.WriteString(BoxStyle.Render(box.String()))
		b.WriteString("\n\n")

		if m.State == StateSaving {
			b.WriteString(InfoStyle.Render("Saving..."))
			b.WriteString("\n")
		}
	}

	if len(m.Logs) > 0 {
		b.WriteString(InfoStyle.Render("Recent activity:"))
		b.WriteString("\n")
		for _, line := range m.Logs {
			b.WriteString(InfoStyle.Render("  " + line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.State == StateReviewing {
		b.WriteString(InfoStyle.Render("↑/↓ intent | Enter save | Ctrl+N skip segment | Esc quit"))
	}

	return b.String()
}
