// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"taskdock/internal/auth"
	"taskdock/internal/remote"
)

// ErrNotFound is returned when a resource is not found.
var ErrNotFound = errors.New("not found")

// FakeRemote is an in-memory implementation of remote.Client for
// testing. Every method ignores the credential unless an injected
// error says otherwise, and counts its calls in Calls.
type FakeRemote struct {
	mu    sync.Mutex
	seq   int
	lists []remote.TaskList
	tasks map[string][]remote.Task // listID -> tasks

	// Calls counts invocations per method name.
	Calls map[string]int

	// Error injection for testing.
	ListTaskListsErr error
	ListTasksErr     map[string]error // listID -> error
	GetTaskErr       error
	CreateTaskErr    error
	UpdateTaskErr    error
	DeleteTaskErr    error
	MoveTaskErr      error
	CreateListErr    error
	UpdateListErr    error
	DeleteListErr    error
}

// NewFakeRemote creates an empty FakeRemote.
func NewFakeRemote() *FakeRemote {
	return &FakeRemote{
		tasks:        make(map[string][]remote.Task),
		Calls:        make(map[string]int),
		ListTasksErr: make(map[string]error),
	}
}

func (f *FakeRemote) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *FakeRemote) count(method string) {
	f.Calls[method]++
}

// AddList seeds a list.
func (f *FakeRemote) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, remote.TaskList{ID: id, Title: title})
	if f.tasks[id] == nil {
		f.tasks[id] = nil
	}
}

// AddTask seeds a task at the end of a list.
func (f *FakeRemote) AddTask(listID, taskID, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[listID] = append(f.tasks[listID], remote.Task{
		ID:     taskID,
		Title:  title,
		Status: remote.StatusNeedsAction,
	})
}

// TaskOrder returns the current task ids of a list in order.
func (f *FakeRemote) TaskOrder(listID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for _, t := range f.tasks[listID] {
		ids = append(ids, t.ID)
	}
	return ids
}

// ListTaskLists implements remote.Client.
func (f *FakeRemote) ListTaskLists(ctx context.Context, cred *auth.Credential) ([]remote.TaskList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("ListTaskLists")
	if f.ListTaskListsErr != nil {
		return nil, f.ListTaskListsErr
	}
	result := make([]remote.TaskList, len(f.lists))
	copy(result, f.lists)
	return result, nil
}

// ListTasks implements remote.Client.
func (f *FakeRemote) ListTasks(ctx context.Context, cred *auth.Credential, tasklistID string) ([]remote.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("ListTasks")
	if err := f.ListTasksErr[tasklistID]; err != nil {
		return nil, err
	}
	tasks, ok := f.tasks[tasklistID]
	if !ok {
		return nil, ErrNotFound
	}
	result := make([]remote.Task, len(tasks))
	copy(result, tasks)
	return result, nil
}

// GetTask implements remote.Client.
func (f *FakeRemote) GetTask(ctx context.Context, cred *auth.Credential, tasklistID, taskID string) (remote.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("GetTask")
	if f.GetTaskErr != nil {
		return remote.Task{}, f.GetTaskErr
	}
	for _, t := range f.tasks[tasklistID] {
		if t.ID == taskID {
			return t, nil
		}
	}
	return remote.Task{}, ErrNotFound
}

// CreateTask implements remote.Client.
func (f *FakeRemote) CreateTask(ctx context.Context, cred *auth.Credential, tasklistID string, data remote.TaskData) (remote.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("CreateTask")
	if f.CreateTaskErr != nil {
		return remote.Task{}, f.CreateTaskErr
	}
	if _, ok := f.tasks[tasklistID]; !ok {
		return remote.Task{}, ErrNotFound
	}
	task := remote.Task{
		ID:     f.nextID("task"),
		Title:  data.Title,
		Status: data.Status,
		Notes:  data.Notes,
		Due:    data.Due,
	}
	f.tasks[tasklistID] = append(f.tasks[tasklistID], task)
	return task, nil
}

// UpdateTask implements remote.Client.
func (f *FakeRemote) UpdateTask(ctx context.Context, cred *auth.Credential, tasklistID, taskID string, data remote.TaskData) (remote.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("UpdateTask")
	if f.UpdateTaskErr != nil {
		return remote.Task{}, f.UpdateTaskErr
	}
	tasks := f.tasks[tasklistID]
	for i, t := range tasks {
		if t.ID == taskID {
			tasks[i] = remote.Task{
				ID:     taskID,
				Title:  data.Title,
				Status: data.Status,
				Notes:  data.Notes,
				Due:    data.Due,
			}
			return tasks[i], nil
		}
	}
	return remote.Task{}, ErrNotFound
}

// DeleteTask implements remote.Client.
func (f *FakeRemote) DeleteTask(ctx context.Context, cred *auth.Credential, tasklistID, taskID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("DeleteTask")
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	tasks := f.tasks[tasklistID]
	for i, t := range tasks {
		if t.ID == taskID {
			f.tasks[tasklistID] = append(tasks[:i], tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// MoveTask implements remote.Client.
func (f *FakeRemote) MoveTask(ctx context.Context, cred *auth.Credential, tasklistID, taskID, previousID string) (remote.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("MoveTask")
	if f.MoveTaskErr != nil {
		return remote.Task{}, f.MoveTaskErr
	}
	tasks := f.tasks[tasklistID]

	from := -1
	for i, t := range tasks {
		if t.ID == taskID {
			from = i
			break
		}
	}
	if from < 0 {
		return remote.Task{}, ErrNotFound
	}
	task := tasks[from]
	tasks = append(tasks[:from], tasks[from+1:]...)

	to := 0
	if previousID != "" {
		to = -1
		for i, t := range tasks {
			if t.ID == previousID {
				to = i + 1
				break
			}
		}
		if to < 0 {
			return remote.Task{}, ErrNotFound
		}
	}
	tasks = append(tasks[:to], append([]remote.Task{task}, tasks[to:]...)...)
	f.tasks[tasklistID] = tasks
	return task, nil
}

// CreateTaskList implements remote.Client.
func (f *FakeRemote) CreateTaskList(ctx context.Context, cred *auth.Credential, title string) (remote.TaskList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("CreateTaskList")
	if f.CreateListErr != nil {
		return remote.TaskList{}, f.CreateListErr
	}
	list := remote.TaskList{ID: f.nextID("list"), Title: title}
	f.lists = append(f.lists, list)
	f.tasks[list.ID] = nil
	return list, nil
}

// UpdateTaskList implements remote.Client.
func (f *FakeRemote) UpdateTaskList(ctx context.Context, cred *auth.Credential, tasklistID, title string) (remote.TaskList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("UpdateTaskList")
	if f.UpdateListErr != nil {
		return remote.TaskList{}, f.UpdateListErr
	}
	for i, l := range f.lists {
		if l.ID == tasklistID {
			f.lists[i].Title = title
			return f.lists[i], nil
		}
	}
	return remote.TaskList{}, ErrNotFound
}

// DeleteTaskList implements remote.Client.
func (f *FakeRemote) DeleteTaskList(ctx context.Context, cred *auth.Credential, tasklistID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("DeleteTaskList")
	if f.DeleteListErr != nil {
		return f.DeleteListErr
	}
	for i, l := range f.lists {
		if l.ID == tasklistID {
			f.lists = append(f.lists[:i], f.lists[i+1:]...)
			delete(f.tasks, tasklistID)
			return nil
		}
	}
	return ErrNotFound
}
