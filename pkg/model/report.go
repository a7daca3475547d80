package model

// Message is one inbox message, reduced to the headers the report shows.
type Message struct {
	From    string
	Subject string
	Date    string // as sent by the mail service, not normalized
}

// Task is a single task from any task list, including the "Habits" list.
type Task struct {
	Title  string
	Status string // "needsAction", "completed", ...
	Due    string // RFC 3339 when present, empty otherwise
}

// Event is a single calendar event occurrence.
// Start and End are RFC 3339 timestamps, or date-only strings for
// all-day events.
type Event struct {
	Summary string
	Start   string
	End     string
	AllDay  bool
}

// Source identifies one independently fetched report section.
type Source string

const (
	SourceMail     Source = "mail"
	SourceTasks    Source = "tasks"
	SourceCalendar Source = "calendar"
	SourceHabits   Source = "habits"
)

// Result holds the outcome of fetching one source: either Items or Err,
// never both. A nil Err with zero items means the source answered and
// was empty.
type Result[T any] struct {
	Items []T
	Err   error
}

// Failed reports whether the fetch for this source failed.
func (r Result[T]) Failed() bool {
	return r.Err != nil
}

// Report is the combined outcome of one run. Each section is filled in
// independently; a failed section never blanks the others.
type Report struct {
	Mail     Result[Message]
	Tasks    Result[Task]
	Calendar Result[Event]
	Habits   Result[Task]
}

// Errs returns the per-source errors of all failed sections, keyed by source.
func (r *Report) Errs() map[Source]error {
	errs := make(map[Source]error)
	if r.Mail.Err != nil {
		errs[SourceMail] = r.Mail.Err
	}
	if r.Tasks.Err != nil {
		errs[SourceTasks] = r.Tasks.Err
	}
	if r.Calendar.Err != nil {
		errs[SourceCalendar] = r.Calendar.Err
	}
	if r.Habits.Err != nil {
		errs[SourceHabits] = r.Habits.Err
	}
	return errs
}
