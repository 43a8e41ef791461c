package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/justsurfingit/trackjob/internal/api"
	"github.com/justsurfingit/trackjob/internal/dtos"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
)

// Notice is an error already phrased for the user.
type Notice struct {
	Message string
	Cause   error
}

func (n *Notice) Error() string { return n.Message }
func (n *Notice) Unwrap() error { return n.Cause }

func notice(format string, args ...any) error {
	return &Notice{Message: fmt.Sprintf(format, args...)}
}

// fail turns err into what the user sees: per-field messages for validation
// failures, otherwise the server's message or fallback.
func fail(err error, fallback string) error {
	var fe dtos.FieldErrors
	if errors.As(err, &fe) {
		return fe
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
		return dtos.FieldErrors(apiErr.Fields)
	}
	if api.IsUnauthorized(err) {
		return &Notice{Message: "Your session has expired. Run `trackjob login` again.", Cause: err}
	}
	return &Notice{Message: api.Message(err, fallback), Cause: err}
}

func success(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, successStyle.Render("✔")+" "+fmt.Sprintf(format, args...))
}

// PrintError writes err the way every command reports failures.
func PrintError(w io.Writer, err error) {
	var fe dtos.FieldErrors
	if errors.As(err, &fe) {
		fields := make([]string, 0, len(fe))
		for f := range fe {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			fmt.Fprintf(w, "%s %s: %s\n", errorStyle.Render("✖"), f, fe[f])
		}
		return
	}
	fmt.Fprintln(w, errorStyle.Render("✖")+" "+err.Error())
}
