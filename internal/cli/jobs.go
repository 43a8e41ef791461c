package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/justsurfingit/trackjob/internal/dtos"
	"github.com/justsurfingit/trackjob/internal/models"
	"github.com/justsurfingit/trackjob/internal/tracker"
	"github.com/spf13/cobra"
)

func jobsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "jobs",
		Aliases: []string{"job"},
		Short:   "List and manage job applications",
	}
	cmd.AddCommand(
		jobsListCmd(app),
		jobsAddCmd(app),
		jobsEditCmd(app),
		jobsRemoveCmd(app),
		jobsExtractCmd(app),
	)
	return protected(cmd)
}

func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil || id == 0 {
		return 0, notice("%q is not a valid id", arg)
	}
	return uint(id), nil
}

type listOptions struct {
	status string
	search string
	output string
}

func (o *listOptions) validate() error {
	if o.status != tracker.FilterAll {
		valid := false
		for _, s := range models.Statuses {
			valid = valid || s == o.status
		}
		if !valid {
			return notice("Unknown status %q", o.status)
		}
	}
	return checkFormat(o.output)
}

func (o *listOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.status, "status", tracker.FilterAll, "show only jobs with this status (all, applied, interviewing, rejected, offer)")
	cmd.Flags().StringVarP(&o.search, "search", "s", "", "show only jobs whose company or position contains this text")
	cmd.Flags().StringVarP(&o.output, "output", "o", formatTable, "output format: table, json or yaml")
}

// showJobs prints the filtered view of the list that was just fetched.
func showJobs(w io.Writer, list *tracker.JobList, opts *listOptions) error {
	jobs := list.FilteredView(opts.status, opts.search)
	if opts.output != formatTable {
		views := make([]jobView, 0, len(jobs))
		for _, j := range jobs {
			views = append(views, viewOf(j))
		}
		return encode(w, opts.output, views)
	}
	renderTabs(w, list.Counts(), opts.status)
	renderJobs(w, jobs)
	return nil
}

func jobsListCmd(app *App) *cobra.Command {
	var opts listOptions
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List job applications",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			if err := app.jobs.FetchAll(cmd.Context()); err != nil {
				return fail(err, "Failed to load jobs")
			}
			return showJobs(cmd.OutOrStdout(), app.jobs, &opts)
		},
	}
	opts.bind(cmd)
	return cmd
}

func bindJobForm(cmd *cobra.Command, req *dtos.JobRequest) {
	cmd.Flags().StringVar(&req.Company, "company", "", "company name")
	cmd.Flags().StringVar(&req.Position, "position", "", "position applied for")
	cmd.Flags().StringVar(&req.Email, "email", "", "contact email for follow-ups")
	cmd.Flags().StringVar(&req.Status, "status", models.StatusApplied, "applied, interviewing, rejected or offer")
	cmd.Flags().StringVar(&req.AppliedDate, "applied", "", "date applied, YYYY-MM-DD")
}

func jobsAddCmd(app *App) *cobra.Command {
	var req dtos.JobRequest
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a job application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return createJob(cmd, app, &req)
		},
	}
	bindJobForm(cmd, &req)
	return cmd
}

func createJob(cmd *cobra.Command, app *App, req *dtos.JobRequest) error {
	if err := dtos.Validate(req); err != nil {
		return fail(err, "Failed to add job")
	}
	job, err := app.jobs.Create(cmd.Context(), req)
	if err != nil {
		return fail(err, "Failed to add job")
	}
	success(cmd.OutOrStdout(), "Job added successfully (#%d %s, %s)", job.ID, job.Company, job.Position)
	return nil
}

func jobsEditCmd(app *App) *cobra.Command {
	var req dtos.JobRequest
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a job application",
		Long: `Change a job application.

Only the flags given are changed; everything else keeps its current value.
Pass an empty value (--email "") to clear an optional field.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := app.jobs.FetchAll(cmd.Context()); err != nil {
				return fail(err, "Failed to load jobs")
			}
			current, ok := findJob(app.jobs.Jobs(), id)
			if !ok {
				return notice("Job #%d not found", id)
			}

			merged := formFromJob(current)
			flags := cmd.Flags()
			if flags.Changed("company") {
				merged.Company = req.Company
			}
			if flags.Changed("position") {
				merged.Position = req.Position
			}
			if flags.Changed("email") {
				merged.Email = req.Email
			}
			if flags.Changed("status") {
				merged.Status = req.Status
			}
			if flags.Changed("applied") {
				merged.AppliedDate = req.AppliedDate
			}

			if err := dtos.Validate(&merged); err != nil {
				return fail(err, "Failed to update job")
			}
			if _, err := app.jobs.Update(cmd.Context(), id, &merged); err != nil {
				return fail(err, "Failed to update job")
			}
			success(cmd.OutOrStdout(), "Job updated successfully")
			return nil
		},
	}
	bindJobForm(cmd, &req)
	return cmd
}

func findJob(jobs []models.Job, id uint) (models.Job, bool) {
	for _, j := range jobs {
		if j.ID == id {
			return j, true
		}
	}
	return models.Job{}, false
}

// formFromJob prefills the job form with the current values.
func formFromJob(job models.Job) dtos.JobRequest {
	req := dtos.JobRequest{Company: job.Company, Position: job.Position, Email: job.Email, Status: job.Status}
	if job.AppliedDate != nil {
		req.AppliedDate = dtos.FormatDate(*job.AppliedDate)
	}
	return req
}

func jobsRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a job application and its follow-ups",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := app.jobs.Remove(cmd.Context(), id); err != nil {
				return fail(err, "Failed to delete job")
			}
			success(cmd.OutOrStdout(), "Job deleted")
			return nil
		},
	}
}

func jobsExtractCmd(app *App) *cobra.Command {
	var (
		url  string
		save bool
	)
	cmd := &cobra.Command{
		Use:   "extract <file|->",
		Short: "Prefill a job from a saved posting",
		Long: `Send a saved job posting (HTML or text) to the server, which suggests
the company, position and contact email. With --save the suggestion is added
as a new job right away.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			extracted, err := app.api.ExtractJob(cmd.Context(), &dtos.JobExtractionRequest{RawHTML: string(raw), URL: url})
			if err != nil {
				return fail(err, "Failed to read the job posting")
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Company:  %s\nPosition: %s\nContact:  %s\n",
				orDash(extracted.Company), orDash(extracted.Position), orDash(extracted.Email))
			if !save {
				return nil
			}
			req := extracted.JobRequest()
			return createJob(cmd, app, &req)
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "where the posting was found")
	cmd.Flags().BoolVar(&save, "save", false, "add the extracted job")
	return cmd
}

func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, notice("Cannot read %s: %v", name, err)
	}
	return b, nil
}
