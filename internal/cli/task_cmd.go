package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nmhoang/taskflow/internal/cli/formatter"
	"github.com/nmhoang/taskflow/internal/domain"
	"github.com/nmhoang/taskflow/internal/ordering"
	"github.com/nmhoang/taskflow/internal/view"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(
		newTaskListCmd(app),
		newTaskAddCmd(app),
		newTaskSetPriorityCmd(app),
		newTaskMoveCmd(app),
		newTaskRemoveCmd(app),
	)

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var query, priority, sortOrder string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, optionally filtered and sorted",
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor(cmd.Context())
			if err != nil {
				return err
			}
			ptrs, err := app.Tasks.List(cmd.Context(), actor)
			if err != nil {
				return err
			}

			params := view.Params{
				Query:    query,
				Priority: priority,
				Sort:     domain.SortOrder(sortOrder),
			}
			tasks := view.Project(derefTasks(ptrs), params)
			if len(tasks) == 0 {
				fmt.Println(formatter.Dim("No tasks."))
				return nil
			}

			stats := formatter.CountTasks(tasks)
			fmt.Println(formatter.RenderProgress(stats))
			fmt.Println(formatter.RenderStats(stats))
			fmt.Println()
			for _, t := range tasks {
				fmt.Println(renderTaskLine(t))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&query, "query", "", "Substring search over title, description and tags")
	cmd.Flags().StringVar(&priority, "priority", domain.PriorityAll, "Filter by priority (urgent|later|done|all)")
	cmd.Flags().StringVar(&sortOrder, "sort", string(domain.SortPriority), "Sort order (priority|asc|desc)")
	return cmd
}

func renderTaskLine(t domain.Task) string {
	parts := []string{
		formatter.Dim(t.ID[:8]),
		formatter.Pad(formatter.PriorityBadge(t.Priority), 10),
		formatter.Truncate(t.Title, 40),
	}
	if t.Assignee != "" {
		parts = append(parts, formatter.StyleBlue.Render("@"+t.Assignee))
	}
	if t.DueDate != nil {
		parts = append(parts, formatter.Dim("hạn "+formatter.FormatDate(*t.DueDate)))
	}
	if len(t.Tags) > 0 {
		parts = append(parts, formatter.Dim("#"+strings.Join(t.Tags, " #")))
	}
	return "  " + strings.Join(parts, "  ")
}

func newTaskAddCmd(app *App) *cobra.Command {
	var title, description, priority, assignee, details, due, tags string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new task",
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor(cmd.Context())
			if err != nil {
				return err
			}
			t := &domain.Task{
				Title:       title,
				Description: description,
				Priority:    domain.Priority(priority),
				Assignee:    assignee,
				Details:     details,
			}
			if due != "" {
				d, err := time.Parse("2006-01-02", due)
				if err != nil {
					return fmt.Errorf("invalid due date %q, want YYYY-MM-DD", due)
				}
				t.DueDate = &d
			}
			if tags != "" {
				for _, tag := range strings.Split(tags, ",") {
					if tag = strings.TrimSpace(tag); tag != "" {
						t.Tags = append(t.Tags, tag)
					}
				}
			}
			if err := app.Tasks.Create(cmd.Context(), actor, t); err != nil {
				return err
			}
			fmt.Printf("Created task %s (%s)\n", t.Title, t.ID[:8])
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "desc", "", "Short description")
	cmd.Flags().StringVar(&priority, "priority", string(domain.PriorityLater), "Priority (urgent|later|done)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Person responsible")
	cmd.Flags().StringVar(&details, "details", "", "Long-form details")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tags")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newTaskSetPriorityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-priority <id> <urgent|later|done>",
		Short: "Change a task's priority",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor(cmd.Context())
			if err != nil {
				return err
			}
			id, err := resolveTaskID(cmd, app, args[0])
			if err != nil {
				return err
			}
			p := domain.Priority(args[1])
			if !domain.ValidPriorities[args[1]] {
				return fmt.Errorf("unknown priority %q", args[1])
			}
			if err := app.Tasks.UpdatePriority(cmd.Context(), actor, id, p); err != nil {
				return err
			}
			fmt.Printf("Set %s to %s\n", id[:8], domain.PriorityLabels[p])
			return nil
		},
	}
	return cmd
}

func newTaskMoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move a task to another position (1-based)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor(cmd.Context())
			if err != nil {
				return err
			}
			src, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid position %q", args[0])
			}
			dst, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid position %q", args[1])
			}

			ptrs, err := app.Tasks.List(cmd.Context(), actor)
			if err != nil {
				return err
			}
			tasks := derefTasks(ptrs)
			moved, err := ordering.Reorder(tasks, src-1, dst-1)
			if err != nil {
				return err
			}
			ranks := ordering.Reindex(moved, func(t domain.Task) string { return t.ID })
			if err := app.Tasks.SaveOrder(cmd.Context(), actor, ranks); err != nil {
				return err
			}
			fmt.Printf("Moved %q to position %d\n", tasks[src-1].Title, dst)
			return nil
		},
	}
	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor(cmd.Context())
			if err != nil {
				return err
			}
			id, err := resolveTaskID(cmd, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.Delete(cmd.Context(), actor, id); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", id[:8])
			return nil
		},
	}
	return cmd
}

func resolveTaskID(cmd *cobra.Command, app *App, arg string) (string, error) {
	actor, err := app.actor(cmd.Context())
	if err != nil {
		return "", err
	}
	tasks, err := app.Tasks.List(cmd.Context(), actor)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return resolveID(ids, arg)
}

func derefTasks(ptrs []*domain.Task) []domain.Task {
	out := make([]domain.Task, len(ptrs))
	for i, p := range ptrs {
		out[i] = *p
	}
	return out
}
