package cli

import (
	"fmt"

	"github.com/justsurfingit/trackjob/internal/dtos"
	"github.com/justsurfingit/trackjob/internal/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func settingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Profile and email settings",
	}
	cmd.AddCommand(settingsProfileCmd(app), settingsEmailCmd(app))
	return protected(cmd)
}

func settingsProfileCmd(app *App) *cobra.Command {
	var req dtos.UpdateProfileRequest
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Change your name, email or password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := app.api.Me(cmd.Context())
			if err != nil {
				return fail(err, "Failed to load profile")
			}
			if !cmd.Flags().Changed("name") {
				req.Name = me.Name
			}
			if !cmd.Flags().Changed("email") {
				req.Email = me.Email
			}
			if err := dtos.Validate(&req); err != nil {
				return fail(err, "Update failed")
			}
			user, err := app.api.UpdateProfile(cmd.Context(), &req)
			if err != nil {
				return fail(err, "Update failed")
			}
			if err := app.Session.SetProfile(session.ProfileFromUser(user)); err != nil {
				app.Logger.Warn("profile updated but not saved locally", zap.Error(err))
			}
			success(cmd.OutOrStdout(), "Profile updated")
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "new name")
	cmd.Flags().StringVar(&req.Email, "email", "", "new email")
	cmd.Flags().StringVar(&req.CurrentPassword, "current-password", "", "current password, needed to set a new one")
	cmd.Flags().StringVar(&req.NewPassword, "new-password", "", "new password")
	return cmd
}

func settingsEmailCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "email",
		Short: "Show or change how follow-up emails are sent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showEmailSettings(cmd, app)
		},
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show email settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showEmailSettings(cmd, app)
		},
	}

	var req dtos.EmailSettingsRequest
	set := &cobra.Command{
		Use:   "set",
		Short: "Change email settings",
		Long:  `Change email settings. Flags that are not given keep their current value.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := app.api.GetEmailSettings(cmd.Context())
			if err != nil {
				return fail(err, "Failed to load email settings")
			}
			merged := dtos.EmailSettingsRequest{
				FromName:  current.FromName,
				ReplyTo:   current.ReplyTo,
				Signature: current.Signature,
				AutoSend:  current.AutoSend,
			}
			flags := cmd.Flags()
			if flags.Changed("from-name") {
				merged.FromName = req.FromName
			}
			if flags.Changed("reply-to") {
				merged.ReplyTo = req.ReplyTo
			}
			if flags.Changed("signature") {
				merged.Signature = req.Signature
			}
			if flags.Changed("auto-send") {
				merged.AutoSend = req.AutoSend
			}
			if err := dtos.Validate(&merged); err != nil {
				return fail(err, "Failed to save email settings")
			}
			if _, err := app.api.SaveEmailSettings(cmd.Context(), &merged); err != nil {
				return fail(err, "Failed to save email settings")
			}
			success(cmd.OutOrStdout(), "Email settings saved")
			return nil
		},
	}
	set.Flags().StringVar(&req.FromName, "from-name", "", "name shown as the sender")
	set.Flags().StringVar(&req.ReplyTo, "reply-to", "", "address replies go to")
	set.Flags().StringVar(&req.Signature, "signature", "", "appended to every follow-up")
	set.Flags().BoolVar(&req.AutoSend, "auto-send", false, "email scheduled follow-ups automatically when they fall due")

	cmd.AddCommand(show, set)
	return cmd
}

func showEmailSettings(cmd *cobra.Command, app *App) error {
	s, err := app.api.GetEmailSettings(cmd.Context())
	if err != nil {
		return fail(err, "Failed to load email settings")
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "From name:  %s\n", orDash(s.FromName))
	fmt.Fprintf(w, "Reply-to:   %s\n", orDash(s.ReplyTo))
	fmt.Fprintf(w, "Signature:  %s\n", orDash(s.Signature))
	fmt.Fprintf(w, "Auto-send:  %t\n", s.AutoSend)
	return nil
}
