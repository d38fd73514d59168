package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAuthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Sign up, sign in and manage the cached session",
	}

	cmd.AddCommand(
		newAuthSignupCmd(app),
		newAuthLoginCmd(app),
		newAuthLogoutCmd(app),
		newAuthWhoamiCmd(app),
		newAuthPasswdCmd(app),
	)

	return cmd
}

func newAuthSignupCmd(app *App) *cobra.Command {
	var email, password, name string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.Auth.SignUp(ctx, email, password, name); err != nil {
				return err
			}
			token, err := app.Auth.SignIn(ctx, email, password)
			if err != nil {
				return err
			}
			if err := saveToken(app.SessionPath, token); err != nil {
				return err
			}
			fmt.Printf("Registered %s, signed in as %s\n", email, name)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newAuthLoginCmd(app *App) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and cache the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.Auth.SignIn(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if err := saveToken(app.SessionPath, token); err != nil {
				return err
			}
			actor, err := app.Auth.Session(cmd.Context(), token)
			if err != nil {
				return err
			}
			fmt.Printf("Signed in as %s (%s)\n", actor.Name, actor.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newAuthLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the cached session",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := loadToken(app.SessionPath)
			if err != nil {
				return err
			}
			if token != "" {
				// Revoke server-side first so the token is dead even if
				// a copy of it leaked.
				if err := app.Auth.SignOut(cmd.Context(), token); err != nil {
					return err
				}
			}
			if err := clearToken(app.SessionPath); err != nil {
				return err
			}
			fmt.Println("Signed out")
			return nil
		},
	}
}

func newAuthWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%s <%s> role=%s\n", actor.Name, actor.Email, actor.Role)
			return nil
		},
	}
}

func newAuthPasswdCmd(app *App) *cobra.Command {
	var newPassword string
	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change the account password",
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor(cmd.Context())
			if err != nil {
				return err
			}
			if err := app.Auth.ChangePassword(cmd.Context(), actor, newPassword); err != nil {
				return err
			}
			fmt.Println("Password changed")
			return nil
		},
	}
	cmd.Flags().StringVar(&newPassword, "new", "", "New password")
	_ = cmd.MarkFlagRequired("new")
	return cmd
}
