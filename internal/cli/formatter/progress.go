package formatter

import (
	"fmt"
	"strings"

	"github.com/nmhoang/taskflow/internal/domain"
)

const progressWidth = 24

// TaskStats summarizes a task list for the dashboard header.
type TaskStats struct {
	Total  int
	Urgent int
	Later  int
	Done   int
}

// CountTasks tallies tasks by priority.
func CountTasks(tasks []domain.Task) TaskStats {
	var s TaskStats
	s.Total = len(tasks)
	for _, t := range tasks {
		switch t.Priority {
		case domain.PriorityUrgent:
			s.Urgent++
		case domain.PriorityLater:
			s.Later++
		case domain.PriorityDone:
			s.Done++
		}
	}
	return s
}

// Percent returns the completion percentage, 0 for an empty list.
func (s TaskStats) Percent() int {
	if s.Total == 0 {
		return 0
	}
	return s.Done * 100 / s.Total
}

// RenderProgress draws a completion bar like "[████░░░░] 4/9 (44%)".
func RenderProgress(s TaskStats) string {
	filled := 0
	if s.Total > 0 {
		filled = s.Done * progressWidth / s.Total
	}
	bar := StyleGreen.Render(strings.Repeat("█", filled)) +
		StyleDim.Render(strings.Repeat("░", progressWidth-filled))
	return fmt.Sprintf("[%s] %d/%d (%d%%)", bar, s.Done, s.Total, s.Percent())
}

// RenderStats draws the per-priority counts line under the progress bar.
func RenderStats(s TaskStats) string {
	parts := []string{
		StyleRed.Render(fmt.Sprintf("%d %s", s.Urgent, domain.PriorityLabels[domain.PriorityUrgent])),
		StyleYellow.Render(fmt.Sprintf("%d %s", s.Later, domain.PriorityLabels[domain.PriorityLater])),
		StyleGreen.Render(fmt.Sprintf("%d %s", s.Done, domain.PriorityLabels[domain.PriorityDone])),
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}
