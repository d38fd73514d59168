package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/nmhoang/taskflow/internal/auth"
	"github.com/nmhoang/taskflow/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Tasks     service.TaskService
	Documents service.DocumentService
	Members   service.MemberService
	Profiles  service.ProfileService
	Auth      *auth.Service

	// SessionPath is where the signed-in session token is cached
	// between invocations.
	SessionPath string
}

// actor resolves the cached session token into an authenticated
// identity. Commands that mutate data call this before touching a
// service.
func (a *App) actor(ctx context.Context) (auth.Context, error) {
	token, err := loadToken(a.SessionPath)
	if err != nil {
		return auth.Context{}, err
	}
	if token == "" {
		return auth.Context{}, fmt.Errorf("not signed in (run `taskflow auth login` first)")
	}
	actor, err := a.Auth.Session(ctx, token)
	if err != nil {
		return auth.Context{}, fmt.Errorf("session expired or revoked, sign in again: %w", err)
	}
	return actor, nil
}

// NewRootCmd creates the top-level "taskflow" command and registers all
// subcommands against the provided App. Running it with no subcommand
// opens the interactive dashboard.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "taskflow",
		Short: "Unit task, document and member dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The dashboard needs a real terminal; fall back to help
			// when stdin is piped or redirected.
			if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
				return cmd.Help()
			}
			actor, err := app.actor(cmd.Context())
			if err != nil {
				return err
			}
			return RunTUI(app, actor)
		},
	}

	root.AddCommand(
		newAuthCmd(app),
		newTaskCmd(app),
		newDocCmd(app),
		newMemberCmd(app),
		newProfileCmd(app),
	)

	return root
}
