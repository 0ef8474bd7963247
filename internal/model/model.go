// Package model maintains the local view of the task lists. Every
// mutation goes to the remote service first; local state changes only
// after the service accepts it, except the explicitly optimistic
// reorder (see ReorderLocal and MoveTask).
package model

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taskdock/internal/auth"
	"taskdock/internal/remote"
)

// Task is one task in the tree.
type Task struct {
	ID     string
	ListID string
	Title  string
	Status string
	Notes  string
	Due    string
}

// Completed reports whether the task is marked completed.
func (t *Task) Completed() bool {
	return t.Status == remote.StatusCompleted
}

// List is one task list with its ordered tasks. Order mirrors the
// last successful remote read or move.
type List struct {
	ID    string
	Title string
	Tasks []*Task

	// LoadErr is set when this list's tasks could not be fetched.
	// An empty Tasks slice with a nil LoadErr is a genuinely empty
	// list; the two render differently.
	LoadErr error
}

// Failed reports whether the list's tasks failed to load.
func (l *List) Failed() bool {
	return l.LoadErr != nil
}

func (l *List) indexOf(taskID string) int {
	for i, t := range l.Tasks {
		if t.ID == taskID {
			return i
		}
	}
	return -1
}

// Resolution errors for local lookups.
var (
	ErrUnknownList   = errors.New("list not loaded")
	ErrUnknownTask   = errors.New("task not loaded")
	ErrAmbiguousList = errors.New("ambiguous list name")
)

// StaleError reports that a list's local order can no longer be
// trusted. The caller must discard the tree and run LoadAll; the
// model never tries to locally undo an optimistic move.
type StaleError struct {
	ListID string
	Err    error
}

func (e *StaleError) Error() string {
	return fmt.Sprintf("list %s out of sync, reload required: %v", e.ListID, e.Err)
}

func (e *StaleError) Unwrap() error { return e.Err }

// Tree is the local view of all task lists. One Tree serves one load
// cycle; LoadAll rebuilds it wholesale rather than diffing. A Tree is
// not safe for concurrent mutation — callers serialize operations
// (see Worker).
type Tree struct {
	client remote.Client
	exec   *auth.Executor
	lists  []*List
}

// New creates an empty tree over the client and executor.
func New(client remote.Client, exec *auth.Executor) *Tree {
	return &Tree{client: client, exec: exec}
}

// Lists returns the current lists in display order.
func (t *Tree) Lists() []*List {
	return t.lists
}

// LoadAll discards the tree and rebuilds it from the service. A
// failure fetching one list's tasks is isolated to that list via
// LoadErr; a failure fetching the list collection itself, or an
// expired authentication, fails the whole load.
func (t *Tree) LoadAll(ctx context.Context) ([]*List, error) {
	var remoteLists []remote.TaskList
	err := t.exec.Do(ctx, func(ctx context.Context, cred *auth.Credential) error {
		var err error
		remoteLists, err = t.client.ListTaskLists(ctx, cred)
		return err
	})
	if err != nil {
		return nil, err
	}

	lists := make([]*List, 0, len(remoteLists))
	for _, rl := range remoteLists {
		list := &List{ID: rl.ID, Title: rl.Title}

		var remoteTasks []remote.Task
		err := t.exec.Do(ctx, func(ctx context.Context, cred *auth.Credential) error {
			var err error
			remoteTasks, err = t.client.ListTasks(ctx, cred, rl.ID)
			return err
		})
		switch {
		case errors.Is(err, auth.ErrAuthenticationExpired):
			return nil, err
		case err != nil:
			list.LoadErr = err
		default:
			for _, rt := range remoteTasks {
				list.Tasks = append(list.Tasks, taskFromRemote(rl.ID, rt))
			}
		}
		lists = append(lists, list)
	}

	t.lists = lists
	return lists, nil
}

// FindList returns a loaded list by id.
func (t *Tree) FindList(tasklistID string) (*List, error) {
	for _, l := range t.lists {
		if l.ID == tasklistID {
			return l, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownList, tasklistID)
}

// FindListByTitle resolves a loaded list by title, case-insensitive
// and trimmed. Multiple matches are an error.
func (t *Tree) FindListByTitle(title string) (*List, error) {
	want := strings.ToLower(strings.TrimSpace(title))

	var matches []*List
	for _, l := range t.lists {
		if strings.ToLower(strings.TrimSpace(l.Title)) == want {
			matches = append(matches, l)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrUnknownList, title)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousList, title)
	}
}

// FindTask returns a loaded task by id.
func (t *Tree) FindTask(tasklistID, taskID string) (*Task, error) {
	list, err := t.FindList(tasklistID)
	if err != nil {
		return nil, err
	}
	i := list.indexOf(taskID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTask, taskID)
	}
	return list.Tasks[i], nil
}

// ToggleStatus flips a task between needsAction and completed and
// returns the new status. The task is re-fetched first so the full
// update payload does not clobber a concurrent remote edit to other
// fields. Local state changes only after the update succeeds.
func (t *Tree) ToggleStatus(ctx context.Context, tasklistID, taskID string) (string, error) {
	task, err := t.FindTask(tasklistID, taskID)
	if err != nil {
		return "", err
	}

	var updated remote.Task
	err = t.exec.Do(ctx, func(ctx context.Context, cred *auth.Credential) error {
		current, err := t.client.GetTask(ctx, cred, tasklistID, taskID)
		if err != nil {
			return err
		}
		data := remote.TaskData{
			Title:  current.Title,
			Status: toggled(current.Status),
			Notes:  current.Notes,
			Due:    current.Due,
		}
		updated, err = t.client.UpdateTask(ctx, cred, tasklistID, taskID, data)
		return err
	})
	if err != nil {
		return "", err
	}

	task.Title = updated.Title
	task.Status = updated.Status
	task.Notes = updated.Notes
	task.Due = updated.Due
	return task.Status, nil
}

func toggled(status string) string {
	if status == remote.StatusNeedsAction {
		return remote.StatusCompleted
	}
	return remote.StatusNeedsAction
}

// CreateTask creates the task remotely and appends it locally with
// the id the service assigned. The service decides the true position;
// the next LoadAll is the authoritative reconciliation.
func (t *Tree) CreateTask(ctx context.Context, tasklistID, title string) (*Task, error) {
	list, err := t.FindList(tasklistID)
	if err != nil {
		return nil, err
	}

	var created remote.Task
	err = t.exec.Do(ctx, func(ctx context.Context, cred *auth.Credential) error {
		var err error
		created, err = t.client.CreateTask(ctx, cred, tasklistID, remote.TaskData{
			Title:  title,
			Status: remote.StatusNeedsAction,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	task := taskFromRemote(tasklistID, created)
	list.Tasks = append(list.Tasks, task)
	return task, nil
}

// DeleteTask deletes the task remotely, then removes it locally.
func (t *Tree) DeleteTask(ctx context.Context, tasklistID, taskID string) error {
	list, err := t.FindList(tasklistID)
	if err != nil {
		return err
	}
	i := list.indexOf(taskID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownTask, taskID)
	}

	err = t.exec.Do(ctx, func(ctx context.Context, cred *auth.Credential) error {
		return t.client.DeleteTask(ctx, cred, tasklistID, taskID)
	})
	if err != nil {
		return err
	}

	list.Tasks = append(list.Tasks[:i], list.Tasks[i+1:]...)
	return nil
}

// ReorderLocal moves a task to newIndex within its list's local order
// only. It is the optimistic half of a drag: call MoveTask afterwards
// to push the resulting order to the service.
func (t *Tree) ReorderLocal(tasklistID, taskID string, newIndex int) error {
	list, err := t.FindList(tasklistID)
	if err != nil {
		return err
	}
	i := list.indexOf(taskID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownTask, taskID)
	}
	if newIndex < 0 || newIndex >= len(list.Tasks) {
		return fmt.Errorf("position out of range: %d", newIndex)
	}

	task := list.Tasks[i]
	list.Tasks = append(list.Tasks[:i], list.Tasks[i+1:]...)
	list.Tasks = append(list.Tasks[:newIndex], append([]*Task{task}, list.Tasks[newIndex:]...)...)
	return nil
}

// MoveTask pushes a task's current local position to the service.
// The predecessor is read from the local order, which the caller has
// already rearranged via ReorderLocal. On failure the optimistic
// order is NOT rolled back — the returned *StaleError tells the
// caller to discard the tree and LoadAll, because partial local state
// cannot be trusted to match remote ordering after a failed move.
func (t *Tree) MoveTask(ctx context.Context, tasklistID, taskID string) error {
	list, err := t.FindList(tasklistID)
	if err != nil {
		return err
	}
	i := list.indexOf(taskID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownTask, taskID)
	}

	previousID := ""
	if i > 0 {
		previousID = list.Tasks[i-1].ID
	}

	err = t.exec.Do(ctx, func(ctx context.Context, cred *auth.Credential) error {
		_, err := t.client.MoveTask(ctx, cred, tasklistID, taskID, previousID)
		return err
	})
	if err != nil {
		return &StaleError{ListID: tasklistID, Err: err}
	}
	return nil
}

// CreateList creates a task list remotely and appends it locally with
// the id the service assigned.
func (t *Tree) CreateList(ctx context.Context, title string) (*List, error) {
	var created remote.TaskList
	err := t.exec.Do(ctx, func(ctx context.Context, cred *auth.Credential) error {
		var err error
		created, err = t.client.CreateTaskList(ctx, cred, title)
		return err
	})
	if err != nil {
		return nil, err
	}

	list := &List{ID: created.ID, Title: created.Title}
	t.lists = append(t.lists, list)
	return list, nil
}

// RenameList renames a task list remotely, then locally.
func (t *Tree) RenameList(ctx context.Context, tasklistID, title string) error {
	list, err := t.FindList(tasklistID)
	if err != nil {
		return err
	}

	var updated remote.TaskList
	err = t.exec.Do(ctx, func(ctx context.Context, cred *auth.Credential) error {
		var err error
		updated, err = t.client.UpdateTaskList(ctx, cred, tasklistID, title)
		return err
	})
	if err != nil {
		return err
	}

	list.Title = updated.Title
	return nil
}

// DeleteList deletes a task list remotely, then removes it locally.
func (t *Tree) DeleteList(ctx context.Context, tasklistID string) error {
	idx := -1
	for i, l := range t.lists {
		if l.ID == tasklistID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownList, tasklistID)
	}

	err := t.exec.Do(ctx, func(ctx context.Context, cred *auth.Credential) error {
		return t.client.DeleteTaskList(ctx, cred, tasklistID)
	})
	if err != nil {
		return err
	}

	t.lists = append(t.lists[:idx], t.lists[idx+1:]...)
	return nil
}

func taskFromRemote(tasklistID string, rt remote.Task) *Task {
	return &Task{
		ID:     rt.ID,
		ListID: tasklistID,
		Title:  rt.Title,
		Status: rt.Status,
		Notes:  rt.Notes,
		Due:    rt.Due,
	}
}
