package report

import (
	"context"
	"log"
	"sync"

	"github.com/harrisonrobin/daybrief/pkg/model"
)

// Narrow fetch surfaces, one per service client. The orchestrator takes
// already-constructed clients; it never builds its own.
type MailFetcher interface {
	Fetch(ctx context.Context, maxResults int64) ([]model.Message, error)
}

type TaskFetcher interface {
	Fetch(ctx context.Context, maxPerList int64) ([]model.Task, error)
	FetchHabits(ctx context.Context, listName string, maxResults int64) ([]model.Task, error)
}

type EventFetcher interface {
	FetchUpcoming(ctx context.Context, days int, maxResults int64) ([]model.Event, error)
}

// Options carries the per-source limits and the habits list name.
type Options struct {
	MailMax    int64
	TasksMax   int64
	HabitsMax  int64
	EventsMax  int64
	WindowDays int
	HabitsList string
}

// Orchestrator fans a single run out over the four sources. The sources
// are unrelated trust domains with independent availability, so each
// outcome is captured on its own: a calendar outage must not hide mail
// that already fetched fine.
type Orchestrator struct {
	mail     MailFetcher
	tasks    TaskFetcher
	calendar EventFetcher
	opts     Options
}

// New wires an orchestrator from injected clients.
func New(mail MailFetcher, tasks TaskFetcher, calendar EventFetcher, opts Options) *Orchestrator {
	return &Orchestrator{mail: mail, tasks: tasks, calendar: calendar, opts: opts}
}

// Fetch runs all four fetches concurrently and joins them into one
// report. Each goroutine writes a distinct Report field, so no locking
// is needed. One attempt per source; retry policy belongs to whoever
// schedules the next run.
func (o *Orchestrator) Fetch(ctx context.Context) *model.Report {
	var report model.Report
	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		report.Mail.Items, report.Mail.Err = o.mail.Fetch(ctx, o.opts.MailMax)
	}()
	go func() {
		defer wg.Done()
		report.Tasks.Items, report.Tasks.Err = o.tasks.Fetch(ctx, o.opts.TasksMax)
	}()
	go func() {
		defer wg.Done()
		report.Calendar.Items, report.Calendar.Err = o.calendar.FetchUpcoming(ctx, o.opts.WindowDays, o.opts.EventsMax)
	}()
	go func() {
		defer wg.Done()
		report.Habits.Items, report.Habits.Err = o.tasks.FetchHabits(ctx, o.opts.HabitsList, o.opts.HabitsMax)
	}()

	wg.Wait()

	logOutcome(model.SourceMail, len(report.Mail.Items), report.Mail.Err)
	logOutcome(model.SourceTasks, len(report.Tasks.Items), report.Tasks.Err)
	logOutcome(model.SourceCalendar, len(report.Calendar.Items), report.Calendar.Err)
	logOutcome(model.SourceHabits, len(report.Habits.Items), report.Habits.Err)
	return &report
}

func logOutcome(source model.Source, count int, err error) {
	if err != nil {
		log.Printf("fetch %s failed: %v", source, err)
		return
	}
	log.Printf("fetched %s: %d items", source, count)
}
