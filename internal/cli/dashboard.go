package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func dashboardCmd(app *App) *cobra.Command {
	var opts listOptions
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Greeting, stats and your job list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			name := ""
			if me, err := app.api.Me(cmd.Context()); err == nil {
				name = me.Name
			} else if p := app.Session.Profile(); p != nil {
				name = p.Name
			} else {
				return fail(err, "Failed to load profile")
			}

			if err := app.jobs.FetchAll(cmd.Context()); err != nil {
				return fail(err, "Failed to load jobs")
			}
			if opts.output != formatTable {
				return showJobs(w, app.jobs, &opts)
			}

			fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%s, %s 👋", greeting(app.now()), firstName(name))))
			renderStats(w, app.jobs.Counts())
			fmt.Fprintln(w)
			return showJobs(w, app.jobs, &opts)
		},
	}
	opts.bind(cmd)
	return protected(cmd)
}
