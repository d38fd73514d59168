package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nmhoang/taskflow/internal/cli/formatter"
	"github.com/nmhoang/taskflow/internal/domain"
	"github.com/nmhoang/taskflow/internal/view"
)

func newDocCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doc",
		Short: "Manage uploaded documents",
	}

	cmd.AddCommand(
		newDocListCmd(app),
		newDocUploadCmd(app),
		newDocSetPriorityCmd(app),
		newDocRemoveCmd(app),
	)

	return cmd
}

func newDocListCmd(app *App) *cobra.Command {
	var query, priority string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor(cmd.Context())
			if err != nil {
				return err
			}
			ptrs, err := app.Documents.List(cmd.Context(), actor)
			if err != nil {
				return err
			}

			docs := make([]domain.Document, len(ptrs))
			for i, p := range ptrs {
				docs[i] = *p
			}
			params := view.Params{Query: query, Priority: priority, Sort: domain.SortPriority}
			docs = view.Project(docs, params)
			if len(docs) == 0 {
				fmt.Println(formatter.Dim("No documents."))
				return nil
			}
			for _, d := range docs {
				fmt.Println(renderDocLine(d))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&query, "query", "", "Substring search over file name and uploader")
	cmd.Flags().StringVar(&priority, "priority", domain.PriorityAll, "Filter by priority (urgent|later|done|all)")
	return cmd
}

func renderDocLine(d domain.Document) string {
	parts := []string{
		formatter.Dim(d.ID[:8]),
		formatter.FileTypeLabel(d.FileType),
		formatter.Pad(formatter.PriorityBadge(d.Priority), 10),
		formatter.Truncate(d.FileName, 40),
		formatter.Dim(d.UploadedBy + " · " + formatter.FormatDate(d.UploadedAt)),
	}
	return "  " + strings.Join(parts, "  ")
}

func newDocUploadCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <path>",
		Short: "Upload a document from disk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor(cmd.Context())
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			d, err := app.Documents.Upload(cmd.Context(), actor, filepath.Base(args[0]), f)
			if err != nil {
				return err
			}
			fmt.Printf("Uploaded %s as %s (%s)\n", d.FileName, d.FileType, d.ID[:8])
			return nil
		},
	}
	return cmd
}

func newDocSetPriorityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-priority <id> <urgent|later|done>",
		Short: "Change a document's priority",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor(cmd.Context())
			if err != nil {
				return err
			}
			id, err := resolveDocID(cmd, app, args[0])
			if err != nil {
				return err
			}
			if !domain.ValidPriorities[args[1]] {
				return fmt.Errorf("unknown priority %q", args[1])
			}
			p := domain.Priority(args[1])
			if err := app.Documents.UpdatePriority(cmd.Context(), actor, id, p); err != nil {
				return err
			}
			fmt.Printf("Set %s to %s\n", id[:8], domain.PriorityLabels[p])
			return nil
		},
	}
	return cmd
}

func newDocRemoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a document and its stored file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor(cmd.Context())
			if err != nil {
				return err
			}
			id, err := resolveDocID(cmd, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Documents.Delete(cmd.Context(), actor, id); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", id[:8])
			return nil
		},
	}
	return cmd
}

func resolveDocID(cmd *cobra.Command, app *App, arg string) (string, error) {
	actor, err := app.actor(cmd.Context())
	if err != nil {
		return "", err
	}
	docs, err := app.Documents.List(cmd.Context(), actor)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return resolveID(ids, arg)
}
