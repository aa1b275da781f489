package report

import (
	"fmt"
	"strings"
)

// Subject is used for every summary mail.
const Subject = "MERSCOPE experiments transferred"

// Report accumulates the outcome of one run.
type Report struct {
	Transferred []string // Experiments copied (or simulated) to the target
	Deleted     []string // Directories removed (or simulated)
	Errors      []string // Recoverable failures, one free-text entry each
}

// New returns an empty Report.
func New() *Report {
	return &Report{}
}

// AddTransferred records an experiment whose folders all reached the target.
func (r *Report) AddTransferred(name string) {
	r.Transferred = append(r.Transferred, name)
}

// AddDeleted records a directory that is gone from local or secondary storage.
func (r *Report) AddDeleted(path string) {
	r.Deleted = append(r.Deleted, path)
}

// AddError records a failure. Arguments are formatted like fmt.Sprintf.
func (r *Report) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Empty is true when nothing happened worth telling anyone about.
func (r *Report) Empty() bool {
	return len(r.Transferred) == 0 && len(r.Deleted) == 0 && len(r.Errors) == 0
}

// Body renders the mail text. Sections are annotated when the corresponding
// mode only simulated its work.
func (r *Report) Body(transferEnabled, deleteEnabled bool) string {
	var b strings.Builder
	if len(r.Transferred) > 0 {
		b.WriteString("The following experiments have been transferred:\n")
		if !transferEnabled {
			b.WriteString("--- TRANSFER mode was not enabled - no files were transferred ---\n")
		}
		b.WriteString(strings.Join(r.Transferred, "\n") + "\n\n")
	}
	if len(r.Deleted) > 0 {
		b.WriteString("The following directories have been deleted:\n")
		if !deleteEnabled {
			b.WriteString("--- DELETE mode was not enabled - no files were deleted ---\n")
		}
		b.WriteString(strings.Join(r.Deleted, "\n") + "\n\n")
	}
	if len(r.Errors) > 0 {
		b.WriteString("The following errors have occurred:\n")
		b.WriteString(strings.Join(r.Errors, "\n"))
	}
	return b.String()
}

// Sender delivers one message, e.g. *mailer.Mailer.
type Sender interface {
	Send(subject, body string) error
}

// Deliver sends the report through s, once, unless it is empty. It returns
// whether a message went out.
func (r *Report) Deliver(s Sender, transferEnabled, deleteEnabled bool) (bool, error) {
	if r.Empty() {
		return false, nil
	}
	if err := s.Send(Subject, r.Body(transferEnabled, deleteEnabled)); err != nil {
		return false, err
	}
	return true, nil
}

// Summary is a one-line digest for desktop notifications.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d transferred, %d deleted, %d errors",
		len(r.Transferred), len(r.Deleted), len(r.Errors))
}
