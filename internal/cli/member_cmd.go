package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nmhoang/taskflow/internal/cli/formatter"
	"github.com/nmhoang/taskflow/internal/domain"
	"github.com/nmhoang/taskflow/internal/view"
)

func newMemberCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage unit members",
	}

	cmd.AddCommand(
		newMemberListCmd(app),
		newMemberAddCmd(app),
		newMemberAttachCmd(app),
		newMemberRemoveCmd(app),
	)

	return cmd
}

func newMemberListCmd(app *App) *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List members",
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor(cmd.Context())
			if err != nil {
				return err
			}
			ptrs, err := app.Members.List(cmd.Context(), actor)
			if err != nil {
				return err
			}

			members := make([]domain.Member, len(ptrs))
			for i, p := range ptrs {
				members[i] = *p
			}
			params := view.Params{Query: query, Priority: domain.PriorityAll, Sort: domain.SortPriority}
			members = view.Project(members, params)
			if len(members) == 0 {
				fmt.Println(formatter.Dim("No members."))
				return nil
			}
			for _, m := range members {
				fmt.Println(renderMemberLine(m))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&query, "query", "", "Substring search over name and unit")
	return cmd
}

func renderMemberLine(m domain.Member) string {
	parts := []string{
		formatter.Dim(m.ID[:8]),
		formatter.Pad(formatter.StyleBold.Render(m.Name), 28),
		m.Unit,
	}
	if m.Team != "" {
		parts = append(parts, formatter.Dim(m.Team))
	}
	parts = append(parts, formatter.Dim(formatter.FormatDate(m.DateOfBirth)))
	if m.FileName != "" {
		parts = append(parts, formatter.StyleBlue.Render("📎"+m.FileName))
	}
	return "  " + strings.Join(parts, "  ")
}

func newMemberAddCmd(app *App) *cobra.Command {
	var name, unit, team, dob string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new member",
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor(cmd.Context())
			if err != nil {
				return err
			}
			born, err := time.Parse("2006-01-02", dob)
			if err != nil {
				return fmt.Errorf("invalid date of birth %q, want YYYY-MM-DD", dob)
			}
			m := &domain.Member{
				Name:        name,
				Unit:        unit,
				Team:        team,
				DateOfBirth: born,
			}
			if err := app.Members.Create(cmd.Context(), actor, m); err != nil {
				return err
			}
			fmt.Printf("Added member %s (%s)\n", m.Name, m.ID[:8])
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&unit, "unit", "", "Unit designation")
	cmd.Flags().StringVar(&team, "team", "", "Team within the unit")
	cmd.Flags().StringVar(&dob, "dob", "", "Date of birth (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("unit")
	_ = cmd.MarkFlagRequired("dob")
	return cmd
}

func newMemberAttachCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attach <id> <path>",
		Short: "Attach a record file to a member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor(cmd.Context())
			if err != nil {
				return err
			}
			id, err := resolveMemberID(cmd, app, args[0])
			if err != nil {
				return err
			}
			f, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer f.Close()

			if err := app.Members.Attach(cmd.Context(), actor, id, filepath.Base(args[1]), f); err != nil {
				return err
			}
			fmt.Printf("Attached %s to %s\n", filepath.Base(args[1]), id[:8])
			return nil
		},
	}
	return cmd
}

func newMemberRemoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a member and any attachment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor(cmd.Context())
			if err != nil {
				return err
			}
			id, err := resolveMemberID(cmd, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Members.Delete(cmd.Context(), actor, id); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", id[:8])
			return nil
		},
	}
	return cmd
}

func resolveMemberID(cmd *cobra.Command, app *App, arg string) (string, error) {
	actor, err := app.actor(cmd.Context())
	if err != nil {
		return "", err
	}
	members, err := app.Members.List(cmd.Context(), actor)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	return resolveID(ids, arg)
}
