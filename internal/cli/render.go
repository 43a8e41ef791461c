package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/justsurfingit/trackjob/internal/dtos"
	"github.com/justsurfingit/trackjob/internal/models"
	"github.com/justsurfingit/trackjob/internal/tracker"
	"gopkg.in/yaml.v3"
)

var statusStyles = map[string]lipgloss.Style{
	models.StatusApplied:      lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	models.StatusInterviewing: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	models.StatusRejected:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	models.StatusOffer:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
}

func badge(status string) string {
	style, ok := statusStyles[status]
	if !ok {
		return status
	}
	return style.Render(status)
}

// jobView is a job as printed by -o json and -o yaml.
type jobView struct {
	ID          uint   `json:"id" yaml:"id"`
	Company     string `json:"company" yaml:"company"`
	Position    string `json:"position" yaml:"position"`
	Email       string `json:"email,omitempty" yaml:"email,omitempty"`
	Status      string `json:"status" yaml:"status"`
	AppliedDate string `json:"applied_date,omitempty" yaml:"applied_date,omitempty"`
}

func viewOf(job models.Job) jobView {
	v := jobView{ID: job.ID, Company: job.Company, Position: job.Position, Email: job.Email, Status: job.Status}
	if job.AppliedDate != nil {
		v.AppliedDate = dtos.FormatDate(*job.AppliedDate)
	}
	return v
}

type followUpView struct {
	ID      uint      `json:"id" yaml:"id"`
	JobID   uint      `json:"job_id" yaml:"job_id"`
	Date    time.Time `json:"follow_up_date" yaml:"follow_up_date"`
	Company string    `json:"company,omitempty" yaml:"company,omitempty"`
	Email   string    `json:"email,omitempty" yaml:"email,omitempty"`
	Type    string    `json:"type,omitempty" yaml:"type,omitempty"`
	Content string    `json:"content" yaml:"content"`
}

func followUpViews(list []models.FollowUp) []followUpView {
	out := make([]followUpView, 0, len(list))
	for _, f := range list {
		out = append(out, followUpView{
			ID: f.ID, JobID: f.JobID, Date: f.FollowUpDate,
			Company: f.Company, Email: f.Email, Type: f.Type, Content: f.Content,
		})
	}
	return out
}

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func checkFormat(format string) error {
	switch format {
	case formatTable, formatJSON, formatYAML:
		return nil
	}
	return notice("Unknown output format %q (want table, json or yaml)", format)
}

// encode writes v as JSON or YAML.
func encode(w io.Writer, format string, v any) error {
	if format == formatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderTabs prints the status filter tabs with their counts, marking the
// active one.
func renderTabs(w io.Writer, stats tracker.Stats, active string) {
	tabs := append([]string{tracker.FilterAll}, models.Statuses...)
	parts := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		label := fmt.Sprintf("%s (%d)", tab, stats.Count(tab))
		if tab == active {
			label = headerStyle.Render("[" + label + "]")
		} else {
			label = mutedStyle.Render(label)
		}
		parts = append(parts, label)
	}
	fmt.Fprintln(w, strings.Join(parts, "  "))
}

func renderJobs(w io.Writer, jobs []models.Job) {
	if len(jobs) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No jobs found."))
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCOMPANY\tPOSITION\tSTATUS\tAPPLIED\tCONTACT")
	for _, job := range jobs {
		v := viewOf(job)
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			v.ID, v.Company, v.Position, badge(v.Status), orDash(v.AppliedDate), orDash(v.Email))
	}
	tw.Flush()
}

func renderStats(w io.Writer, s tracker.Stats) {
	fmt.Fprintf(w, "Total %d  ·  Applied %d  ·  Interviewing %d  ·  Rejected %d  ·  Offers %d\n",
		s.Total, s.Applied, s.Interviewing, s.Rejected, s.Offer)
}

func renderFollowUps(w io.Writer, title string, list []models.FollowUp) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%s (%d)", title, len(list))))
	if len(list) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("  none"))
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  ID\tDATE\tCOMPANY\tTYPE\tMESSAGE")
	for _, f := range list {
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\t%s\n",
			f.ID, f.FollowUpDate.Local().Format("2006-01-02 15:04"), orDash(f.Company), orDash(f.Type), truncate(f.Content, 60))
	}
	tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

// greeting picks the salutation for the hour of day.
func greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h < 12:
		return "Good morning"
	case h < 18:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

func firstName(name string) string {
	if f := strings.Fields(name); len(f) > 0 {
		return f[0]
	}
	return "there"
}
