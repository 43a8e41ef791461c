package cli

import (
	"time"

	"github.com/justsurfingit/trackjob/internal/dtos"
	"github.com/justsurfingit/trackjob/internal/models"
	"github.com/justsurfingit/trackjob/internal/tracker"
	"github.com/spf13/cobra"
)

func followUpsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "followups",
		Aliases: []string{"followup", "fu"},
		Short:   "Schedule, send and review follow-ups",
	}
	cmd.AddCommand(
		followUpsListCmd(app),
		followUpsSendCmd(app),
		followUpsAddCmd(app),
		followUpsRemoveCmd(app),
	)
	return protected(cmd)
}

func followUpsListCmd(app *App) *cobra.Command {
	var (
		jobID  uint
		output string
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List scheduled and sent follow-ups",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(output); err != nil {
				return err
			}
			var (
				list []models.FollowUp
				err  error
			)
			if jobID != 0 {
				list, err = app.followUps.ListByJob(cmd.Context(), jobID)
			} else {
				list, err = app.followUps.List(cmd.Context())
			}
			if err != nil {
				return fail(err, "Failed to load follow-ups")
			}

			scheduled, sent := tracker.Split(list, app.now())
			w := cmd.OutOrStdout()
			if output != formatTable {
				return encode(w, output, map[string][]followUpView{"scheduled": followUpViews(scheduled), "sent": followUpViews(sent)})
			}
			renderFollowUps(w, "Scheduled", scheduled)
			renderFollowUps(w, "Sent", sent)
			return nil
		},
	}
	cmd.Flags().UintVar(&jobID, "job", 0, "only follow-ups of this job")
	cmd.Flags().StringVarP(&output, "output", "o", formatTable, "output format: table, json or yaml")
	return cmd
}

func followUpsSendCmd(app *App) *cobra.Command {
	var (
		req  dtos.JobFollowUpRequest
		date string
	)
	cmd := &cobra.Command{
		Use:   "send <job-id>",
		Short: "Email a follow-up now or schedule one",
		Long: `Email a follow-up to the job's contact now (--now) or schedule it for a
date (--date). Scheduling again moves the job's pending follow-up.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID, err := parseID(args[0])
			if err != nil {
				return err
			}
			if req.SendNow && date != "" {
				return notice("Use either --now or --date, not both")
			}
			req.FollowUpDate = date
			if req.SendNow {
				req.FollowUpDate = app.now().UTC().Format(time.RFC3339)
			}
			if err := dtos.Validate(&req); err != nil {
				return fail(err, "Failed to send follow-up")
			}
			if _, err := app.jobs.ScheduleOrSendFollowUp(cmd.Context(), jobID, &req); err != nil {
				return fail(err, "Failed to send follow-up")
			}
			if req.SendNow {
				success(cmd.OutOrStdout(), "Follow-up email sent successfully")
			} else {
				success(cmd.OutOrStdout(), "Follow-up scheduled")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&req.SendNow, "now", false, "send the email immediately")
	cmd.Flags().StringVar(&date, "date", "", "when to follow up: YYYY-MM-DD or an RFC 3339 time")
	cmd.Flags().StringVarP(&req.Content, "message", "m", "", "the follow-up message")
	return cmd
}

func followUpsAddCmd(app *App) *cobra.Command {
	var req dtos.FollowUpRequest
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a follow-up against a job",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := dtos.Validate(&req); err != nil {
				return fail(err, "Failed to add follow-up")
			}
			f, err := app.followUps.Create(cmd.Context(), &req)
			if err != nil {
				return fail(err, "Failed to add follow-up")
			}
			success(cmd.OutOrStdout(), "Follow-up added (%s)", tracker.Classify(*f, app.now()))
			return nil
		},
	}
	cmd.Flags().UintVar(&req.JobID, "job", 0, "job id")
	cmd.Flags().StringVar(&req.FollowUpDate, "date", "", "YYYY-MM-DD or an RFC 3339 time")
	cmd.Flags().StringVarP(&req.Content, "message", "m", "", "what happened or what to do")
	cmd.Flags().StringVar(&req.Type, "type", "", "email, reminder or status (default reminder)")
	return cmd
}

func followUpsRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a scheduled follow-up",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			list, err := app.followUps.List(cmd.Context())
			if err != nil {
				return fail(err, "Failed to delete follow-up")
			}
			var found *models.FollowUp
			for i := range list {
				if list[i].ID == id {
					found = &list[i]
					break
				}
			}
			if found == nil {
				return notice("Follow-up #%d not found", id)
			}
			if tracker.Classify(*found, app.now()) == tracker.Sent {
				return notice("Follow-up #%d was already sent and cannot be deleted", id)
			}
			if err := app.followUps.Delete(cmd.Context(), id); err != nil {
				return fail(err, "Failed to delete follow-up")
			}
			success(cmd.OutOrStdout(), "Scheduled follow-up deleted")
			return nil
		},
	}
}
