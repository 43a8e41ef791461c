package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/justsurfingit/trackjob/internal/api"
	"github.com/justsurfingit/trackjob/internal/dtos"
	"github.com/justsurfingit/trackjob/internal/session"
	"github.com/spf13/cobra"
)

// promptPassword reads the password from stdin when no flag was given.
func promptPassword(cmd *cobra.Command, password string) (string, error) {
	if password != "" {
		return password, nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", notice("No password given")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func registerCmd(app *App) *cobra.Command {
	var req dtos.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if req.Password, err = promptPassword(cmd, req.Password); err != nil {
				return err
			}
			if err := dtos.Validate(&req); err != nil {
				return fail(err, "Registration failed")
			}
			if _, err := app.api.Register(cmd.Context(), &req); err != nil {
				return fail(err, "Registration failed")
			}
			success(cmd.OutOrStdout(), "Account created! You can now log in.")
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "full name")
	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.Password, "password", "", "password (prompted when omitted)")
	cmd.Flags().BoolVar(&req.Terms, "accept-terms", false, "accept the Terms & Privacy Policy")
	return publicOnly(cmd)
}

func loginCmd(app *App) *cobra.Command {
	var req dtos.LoginRequest
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in",
		Long: `Log in to TrackJob.

Without --remember the login lasts until this terminal is closed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if req.Password, err = promptPassword(cmd, req.Password); err != nil {
				return err
			}
			if err := dtos.Validate(&req); err != nil {
				return fail(err, "Invalid credentials")
			}
			resp, err := app.api.Login(cmd.Context(), &req)
			if err != nil {
				return &Notice{Message: api.Message(err, "Invalid credentials"), Cause: err}
			}
			if err := app.Session.Login(resp.Token, session.ProfileFromUser(&resp.User), req.Remember); err != nil {
				return fmt.Errorf("save login: %w", err)
			}
			success(cmd.OutOrStdout(), "Login successful! Welcome back.")
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.Password, "password", "", "password (prompted when omitted)")
	cmd.Flags().BoolVar(&req.Remember, "remember", false, "stay logged in across terminals")
	return publicOnly(cmd)
}

func logoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the current login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Session.Logout(); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			success(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func whoamiCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profile := app.Session.Profile()
			if profile == nil {
				user, err := app.api.Me(cmd.Context())
				if err != nil {
					return fail(err, "Failed to load profile")
				}
				profile = session.ProfileFromUser(user)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", profile.Name, profile.Email)
			return nil
		},
	}
	return protected(cmd)
}
