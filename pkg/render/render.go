package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/harrisonrobin/daybrief/pkg/google"
	"github.com/harrisonrobin/daybrief/pkg/model"
	"github.com/harrisonrobin/daybrief/pkg/util"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7AA2F7"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E74C3C"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#2ECC71"))
)

// Renderer prints a report. Every source section always appears: with
// its items, with an explicit empty notice, or with the failure cause.
// An empty section and a failed one must never look alike.
type Renderer struct {
	Days int // calendar window, for the section title
}

// Report writes all four sections in a fixed order.
func (r *Renderer) Report(w io.Writer, rep *model.Report) {
	section(w, "Mail")
	renderSource(w, rep.Mail, "No new mail.", renderMessage)

	section(w, "Tasks")
	renderSource(w, rep.Tasks, "No open tasks.", renderTask)

	section(w, fmt.Sprintf("Calendar (next %d days)", r.Days))
	renderSource(w, rep.Calendar, "No upcoming events.", renderEvent)

	section(w, "Habits")
	renderSource(w, rep.Habits, "No habits tracked.", renderTask)
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", headerStyle.Render(title))
}

// renderSource handles the three section shapes in one place so no
// source ever skips its failure notice.
func renderSource[T any](w io.Writer, res model.Result[T], emptyMsg string, line func(io.Writer, T)) {
	if res.Failed() {
		fmt.Fprintf(w, "%s\n", failStyle.Render("unavailable: "+google.Reason(res.Err)))
		return
	}
	if len(res.Items) == 0 {
		fmt.Fprintf(w, "%s\n", mutedStyle.Render(emptyMsg))
		return
	}
	for _, item := range res.Items {
		line(w, item)
	}
}

func renderMessage(w io.Writer, m model.Message) {
	date := m.Date
	if date == "" {
		date = "(no date)"
	}
	fmt.Fprintf(w, "%s | %s | %s\n", mutedStyle.Render(date), m.From, m.Subject)
}

func renderTask(w io.Writer, t model.Task) {
	status := "[" + t.Status + "]"
	if t.Status == "completed" {
		status = doneStyle.Render(status)
	}
	due := ""
	if t.Due != "" {
		due = mutedStyle.Render(" (due " + util.FormatDue(t.Due) + ")")
	}
	fmt.Fprintf(w, "%s %s%s\n", status, t.Title, due)
}

func renderEvent(w io.Writer, e model.Event) {
	start := util.FormatEventTime(e.Start, e.AllDay)
	end := util.FormatEventTime(e.End, e.AllDay)
	fmt.Fprintf(w, "%s -> %s: %s\n", start, end, e.Summary)
}
