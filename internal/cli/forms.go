package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/nmhoang/taskflow/internal/domain"
)

const formDateLayout = "2006-01-02"

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(formDateLayout, s); err != nil {
		return fmt.Errorf("want YYYY-MM-DD")
	}
	return nil
}

func validateDate(s string) error {
	if s == "" {
		return fmt.Errorf("want YYYY-MM-DD")
	}
	return validateOptionalDate(s)
}

func priorityOptions() []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption(domain.PriorityLabels[domain.PriorityUrgent], string(domain.PriorityUrgent)),
		huh.NewOption(domain.PriorityLabels[domain.PriorityLater], string(domain.PriorityLater)),
		huh.NewOption(domain.PriorityLabels[domain.PriorityDone], string(domain.PriorityDone)),
	}
}

// taskFormValues backs the create/edit task form.
type taskFormValues struct {
	title       string
	description string
	priority    string
	assignee    string
	due         string
	tags        string
	details     string
}

func newTaskForm(v *taskFormValues) *huh.Form {
	if v.priority == "" {
		v.priority = string(domain.PriorityLater)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(&v.title).Validate(validateRequired("title")),
			huh.NewInput().Title("Description").Value(&v.description),
			huh.NewSelect[string]().Title("Priority").Options(priorityOptions()...).Value(&v.priority),
		),
		huh.NewGroup(
			huh.NewInput().Title("Assignee (optional)").Value(&v.assignee),
			huh.NewInput().Title("Due Date (YYYY-MM-DD, blank for none)").Placeholder("2026-09-30").Value(&v.due).Validate(validateOptionalDate),
			huh.NewInput().Title("Tags (comma-separated)").Placeholder("báo cáo, tuần").Value(&v.tags),
			huh.NewText().Title("Details (optional)").Value(&v.details),
		),
	).WithTheme(huhTheme()).WithShowHelp(false)
}

// toTask converts the collected form values into a domain task.
// Validation already ran field by field, so parse errors are ignored.
func (v *taskFormValues) toTask() *domain.Task {
	t := &domain.Task{
		Title:       strings.TrimSpace(v.title),
		Description: strings.TrimSpace(v.description),
		Priority:    domain.Priority(v.priority),
		Assignee:    strings.TrimSpace(v.assignee),
		Details:     v.details,
	}
	if v.due != "" {
		if d, err := time.Parse(formDateLayout, v.due); err == nil {
			t.DueDate = &d
		}
	}
	for _, tag := range strings.Split(v.tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			t.Tags = append(t.Tags, tag)
		}
	}
	return t
}

// fromTask pre-populates the form values for editing.
func (v *taskFormValues) fromTask(t domain.Task) {
	v.title = t.Title
	v.description = t.Description
	v.priority = string(t.Priority)
	v.assignee = t.Assignee
	v.details = t.Details
	if t.DueDate != nil {
		v.due = t.DueDate.Format(formDateLayout)
	}
	v.tags = strings.Join(t.Tags, ", ")
}

// memberFormValues backs the create member form.
type memberFormValues struct {
	name string
	unit string
	team string
	dob  string
}

func newMemberForm(v *memberFormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Full Name").Value(&v.name).Validate(validateRequired("name")),
			huh.NewInput().Title("Unit").Value(&v.unit).Validate(validateRequired("unit")),
			huh.NewInput().Title("Team (optional)").Value(&v.team),
			huh.NewInput().Title("Date of Birth (YYYY-MM-DD)").Placeholder("1998-05-20").Value(&v.dob).Validate(validateDate),
		),
	).WithTheme(huhTheme()).WithShowHelp(false)
}

func (v *memberFormValues) toMember() *domain.Member {
	born, _ := time.Parse(formDateLayout, v.dob)
	return &domain.Member{
		Name:        strings.TrimSpace(v.name),
		Unit:        strings.TrimSpace(v.unit),
		Team:        strings.TrimSpace(v.team),
		DateOfBirth: born,
	}
}

// pathForm collects a single file path, used for uploads and attachments.
func pathForm(title string, value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title(title).Placeholder("/path/to/file.pdf").Value(value).Validate(validateRequired("path")),
		),
	).WithTheme(huhTheme()).WithShowHelp(false)
}
