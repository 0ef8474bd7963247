package remote

import (
	"context"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"taskdock/internal/auth"
)

const (
	// APITimeout is the timeout for API calls.
	APITimeout = 10 * time.Second

	// PageSize is the number of items requested per page.
	PageSize = 100
)

// GoogleClient implements Client against the Google Tasks API v1.
//
// Each call authenticates with a static token source for the supplied
// credential. The auto-refreshing source is deliberately not used:
// refresh belongs to the credential lifecycle manager, and a stale
// token must surface as an authorization error instead of being
// refreshed behind the manager's back.
type GoogleClient struct {
	mu       sync.Mutex
	svc      *tasks.Service
	svcToken string
}

// NewGoogleClient creates a Google Tasks client.
func NewGoogleClient() *GoogleClient {
	return &GoogleClient{}
}

// service returns a tasks service authenticated as cred, rebuilding
// it when the credential changed since the last call.
func (c *GoogleClient) service(ctx context.Context, cred *auth.Credential) (*tasks.Service, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.svc != nil && c.svcToken == cred.Token.AccessToken {
		return c.svc, nil
	}

	token := cred.Token
	svc, err := tasks.NewService(ctx, option.WithTokenSource(oauth2.StaticTokenSource(&token)))
	if err != nil {
		return nil, err
	}
	c.svc = svc
	c.svcToken = cred.Token.AccessToken
	return svc, nil
}

// ListTaskLists implements Client.
func (c *GoogleClient) ListTaskLists(ctx context.Context, cred *auth.Credential) ([]TaskList, error) {
	svc, err := c.service(ctx, cred)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var result []TaskList
	err = svc.Tasklists.List().MaxResults(PageSize).Pages(ctx, func(resp *tasks.TaskLists) error {
		for _, item := range resp.Items {
			result = append(result, TaskList{ID: item.Id, Title: item.Title})
		}
		return nil
	})
	if err != nil {
		return nil, wrapError(err)
	}
	return result, nil
}

// ListTasks implements Client. Completed and hidden tasks are
// included so the tree shows them with a completed marker.
func (c *GoogleClient) ListTasks(ctx context.Context, cred *auth.Credential, tasklistID string) ([]Task, error) {
	svc, err := c.service(ctx, cred)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var result []Task
	err = svc.Tasks.List(tasklistID).
		MaxResults(PageSize).
		ShowCompleted(true).
		ShowHidden(true).
		ShowDeleted(false).
		Pages(ctx, func(resp *tasks.Tasks) error {
			for _, item := range resp.Items {
				result = append(result, taskFromAPI(item))
			}
			return nil
		})
	if err != nil {
		return nil, wrapError(err)
	}
	return result, nil
}

// GetTask implements Client.
func (c *GoogleClient) GetTask(ctx context.Context, cred *auth.Credential, tasklistID, taskID string) (Task, error) {
	svc, err := c.service(ctx, cred)
	if err != nil {
		return Task{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	item, err := svc.Tasks.Get(tasklistID, taskID).Context(ctx).Do()
	if err != nil {
		return Task{}, wrapError(err)
	}
	return taskFromAPI(item), nil
}

// CreateTask implements Client.
func (c *GoogleClient) CreateTask(ctx context.Context, cred *auth.Credential, tasklistID string, data TaskData) (Task, error) {
	svc, err := c.service(ctx, cred)
	if err != nil {
		return Task{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	item, err := svc.Tasks.Insert(tasklistID, taskToAPI("", data)).Context(ctx).Do()
	if err != nil {
		return Task{}, wrapError(err)
	}
	return taskFromAPI(item), nil
}

// UpdateTask implements Client. This is a full update, not a patch;
// data must carry every field the task should keep.
func (c *GoogleClient) UpdateTask(ctx context.Context, cred *auth.Credential, tasklistID, taskID string, data TaskData) (Task, error) {
	svc, err := c.service(ctx, cred)
	if err != nil {
		return Task{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	item, err := svc.Tasks.Update(tasklistID, taskID, taskToAPI(taskID, data)).Context(ctx).Do()
	if err != nil {
		return Task{}, wrapError(err)
	}
	return taskFromAPI(item), nil
}

// DeleteTask implements Client.
func (c *GoogleClient) DeleteTask(ctx context.Context, cred *auth.Credential, tasklistID, taskID string) error {
	svc, err := c.service(ctx, cred)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	if err := svc.Tasks.Delete(tasklistID, taskID).Context(ctx).Do(); err != nil {
		return wrapError(err)
	}
	return nil
}

// MoveTask implements Client.
func (c *GoogleClient) MoveTask(ctx context.Context, cred *auth.Credential, tasklistID, taskID, previousID string) (Task, error) {
	svc, err := c.service(ctx, cred)
	if err != nil {
		return Task{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	call := svc.Tasks.Move(tasklistID, taskID)
	if previousID != "" {
		call = call.Previous(previousID)
	}
	item, err := call.Context(ctx).Do()
	if err != nil {
		return Task{}, wrapError(err)
	}
	return taskFromAPI(item), nil
}

// CreateTaskList implements Client.
func (c *GoogleClient) CreateTaskList(ctx context.Context, cred *auth.Credential, title string) (TaskList, error) {
	svc, err := c.service(ctx, cred)
	if err != nil {
		return TaskList{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	item, err := svc.Tasklists.Insert(&tasks.TaskList{Title: title}).Context(ctx).Do()
	if err != nil {
		return TaskList{}, wrapError(err)
	}
	return TaskList{ID: item.Id, Title: item.Title}, nil
}

// UpdateTaskList implements Client.
func (c *GoogleClient) UpdateTaskList(ctx context.Context, cred *auth.Credential, tasklistID, title string) (TaskList, error) {
	svc, err := c.service(ctx, cred)
	if err != nil {
		return TaskList{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	item, err := svc.Tasklists.Update(tasklistID, &tasks.TaskList{Id: tasklistID, Title: title}).Context(ctx).Do()
	if err != nil {
		return TaskList{}, wrapError(err)
	}
	return TaskList{ID: item.Id, Title: item.Title}, nil
}

// DeleteTaskList implements Client.
func (c *GoogleClient) DeleteTaskList(ctx context.Context, cred *auth.Credential, tasklistID string) error {
	svc, err := c.service(ctx, cred)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	if err := svc.Tasklists.Delete(tasklistID).Context(ctx).Do(); err != nil {
		return wrapError(err)
	}
	return nil
}

func taskFromAPI(t *tasks.Task) Task {
	return Task{
		ID:     t.Id,
		Title:  t.Title,
		Status: t.Status,
		Notes:  t.Notes,
		Due:    t.Due,
	}
}

func taskToAPI(id string, data TaskData) *tasks.Task {
	t := &tasks.Task{
		Id:     id,
		Title:  data.Title,
		Status: data.Status,
		Notes:  data.Notes,
		Due:    data.Due,
	}
	// Status must reach the wire even when reverting to the zero-ish
	// needsAction value.
	t.ForceSendFields = []string{"Status"}
	return t
}
