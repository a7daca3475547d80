package google

import (
	"context"

	"google.golang.org/api/tasks/v1"

	"github.com/harrisonrobin/daybrief/pkg/model"
)

// Provider-side caps on how many task lists one account is enumerated
// for. The habits lookup scans deeper since the list can sit anywhere.
const (
	taskListLimit  = 20
	habitListLimit = 50
)

// TasksClient reads the user's task lists. The same client serves the
// general tasks section and the habits section, they differ only in
// which lists are read.
type TasksClient struct {
	svc *tasks.Service
}

// NewTasksClient wraps an authenticated Tasks service.
func NewTasksClient(svc *tasks.Service) *TasksClient {
	return &TasksClient{svc: svc}
}

// Fetch flattens up to maxPerList tasks from every task list, completed
// ones included, in list traversal order.
func (c *TasksClient) Fetch(ctx context.Context, maxPerList int64) ([]model.Task, error) {
	lists, err := c.svc.Tasklists.List().MaxResults(taskListLimit).Context(ctx).Do()
	if err != nil {
		return nil, wrapErr(model.SourceTasks, err)
	}

	var items []model.Task
	for _, tl := range lists.Items {
		ts, err := c.svc.Tasks.List(tl.Id).
			MaxResults(maxPerList).
			ShowCompleted(true).
			Context(ctx).Do()
		if err != nil {
			return nil, wrapErr(model.SourceTasks, err)
		}
		for _, t := range ts.Items {
			items = append(items, taskFromAPI(t))
		}
	}
	return items, nil
}

// FetchHabits reads only the list whose title matches listName exactly.
// An account without such a list is a legitimate absence: the result is
// empty, not an error.
func (c *TasksClient) FetchHabits(ctx context.Context, listName string, maxResults int64) ([]model.Task, error) {
	lists, err := c.svc.Tasklists.List().MaxResults(habitListLimit).Context(ctx).Do()
	if err != nil {
		return nil, wrapErr(model.SourceHabits, err)
	}

	var habitsList *tasks.TaskList
	for _, tl := range lists.Items {
		if tl.Title == listName {
			habitsList = tl
			break
		}
	}
	if habitsList == nil {
		return nil, nil
	}

	ts, err := c.svc.Tasks.List(habitsList.Id).
		MaxResults(maxResults).
		ShowCompleted(true).
		Context(ctx).Do()
	if err != nil {
		return nil, wrapErr(model.SourceHabits, err)
	}

	habits := make([]model.Task, 0, len(ts.Items))
	for _, t := range ts.Items {
		habits = append(habits, taskFromAPI(t))
	}
	return habits, nil
}

func taskFromAPI(t *tasks.Task) model.Task {
	item := model.Task{Title: t.Title, Status: t.Status, Due: t.Due}
	if item.Title == "" {
		item.Title = "(untitled)"
	}
	if item.Status == "" {
		item.Status = "unknown"
	}
	return item
}
