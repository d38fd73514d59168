package domain

import (
	"strings"
	"time"
)

type Task struct {
	ID          string
	Title       string
	Description string
	Priority    Priority
	Assignee    string
	DueDate     *time.Time
	Details     string
	Tags        []string
	CreatedBy   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SearchFields returns the strings a query is matched against:
// title, description and each tag individually.
func (t Task) SearchFields() []string {
	fields := make([]string, 0, 2+len(t.Tags))
	fields = append(fields, t.Title, t.Description)
	fields = append(fields, t.Tags...)
	return fields
}

func (t Task) CreatedTime() time.Time { return t.CreatedAt }

func (t Task) PriorityValue() Priority { return t.Priority }

// HasTag reports whether the task carries the given tag (case-insensitive).
func (t Task) HasTag(tag string) bool {
	for _, existing := range t.Tags {
		if strings.EqualFold(existing, tag) {
			return true
		}
	}
	return false
}
