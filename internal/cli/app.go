// Package cli is the trackjob command line: forms, lists and the dashboard
// rendered to a terminal.
package cli

import (
	"net/http"
	"time"

	"github.com/justsurfingit/trackjob/internal/api"
	"github.com/justsurfingit/trackjob/internal/session"
	"github.com/justsurfingit/trackjob/internal/tracker"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App carries what every command needs. The API client and the job list are
// built once flags are parsed.
type App struct {
	APIURL     string
	Session    *session.Store
	Logger     *zap.Logger
	HTTPClient *http.Client
	Now        func() time.Time

	api       *api.Client
	jobs      *tracker.JobList
	followUps *tracker.FollowUps
}

func (a *App) connect() {
	var opts []api.Option
	if a.HTTPClient != nil {
		opts = append(opts, api.WithHTTPClient(a.HTTPClient))
	}
	a.api = api.NewClient(a.APIURL, a.Session, a.Logger, opts...)
	a.jobs = tracker.NewJobList(a.api, a.Logger)
	a.followUps = tracker.NewFollowUps(a.api)
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

const (
	guardKey    = "guard"
	guardAuth   = "protected"
	guardPublic = "public-only"
)

// protected marks cmd as requiring a login.
func protected(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[guardKey] = guardAuth
	return cmd
}

// publicOnly marks cmd as only making sense while logged out.
func publicOnly(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[guardKey] = guardPublic
	return cmd
}

// guard enforces the annotation of cmd or of its closest annotated parent.
func (a *App) guard(cmd *cobra.Command) error {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Annotations[guardKey] {
		case guardAuth:
			if !a.Session.IsAuthenticated() {
				return notice("You are not logged in. Run `trackjob login` first.")
			}
			return nil
		case guardPublic:
			if a.Session.IsAuthenticated() {
				return notice("You are already logged in. Run `trackjob logout` to switch accounts.")
			}
			return nil
		}
	}
	return nil
}

// NewRootCmd builds the command tree around app.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "trackjob",
		Short:         "Track your job applications and follow-ups",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app.connect()
			return app.guard(cmd)
		},
	}
	root.PersistentFlags().StringVar(&app.APIURL, "api-url", app.APIURL, "base URL of the TrackJob API")

	root.AddCommand(
		registerCmd(app),
		loginCmd(app),
		logoutCmd(app),
		whoamiCmd(app),
		dashboardCmd(app),
		jobsCmd(app),
		followUpsCmd(app),
		settingsCmd(app),
	)
	return root
}
