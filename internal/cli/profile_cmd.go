package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View and edit the signed-in profile",
	}

	cmd.AddCommand(
		newProfileShowCmd(app),
		newProfileRenameCmd(app),
		newProfileAvatarCmd(app),
	)

	return cmd
}

func newProfileShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the signed-in profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor(cmd.Context())
			if err != nil {
				return err
			}
			p, err := app.Profiles.Get(cmd.Context(), actor)
			if err != nil {
				return err
			}
			fmt.Printf("%s <%s>\n", p.Name, p.Email)
			if p.AvatarRef != "" {
				fmt.Printf("avatar: %s\n", p.AvatarRef)
			}
			return nil
		},
	}
}

func newProfileRenameCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <name>",
		Short: "Change the display name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor(cmd.Context())
			if err != nil {
				return err
			}
			if err := app.Profiles.Update(cmd.Context(), actor, args[0]); err != nil {
				return err
			}
			fmt.Printf("Renamed to %s\n", args[0])
			return nil
		},
	}
	return cmd
}

func newProfileAvatarCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "avatar <path>",
		Short: "Upload a new avatar image",
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

			ref, err := app.Profiles.UploadAvatar(cmd.Context(), actor, filepath.Base(args[0]), f)
			if err != nil {
				return err
			}
			fmt.Printf("Avatar updated (%s)\n", ref)
			return nil
		},
	}
	return cmd
}
