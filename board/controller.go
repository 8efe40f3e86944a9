package board

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/radosmm6/task-app-rodion-samokhvalov-68614/domain"
	"github.com/radosmm6/task-app-rodion-samokhvalov-68614/taskclient"
)

const (
	msgValidation  = "Validation error"
	msgUnreachable = "Unable to reach the task server"
	msgBadID       = "Invalid task id"
)

// TaskAPI is the part of the REST client the controller drives.
type TaskAPI interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	CreateTask(ctx context.Context, in domain.TaskInput) error
	UpdateTask(ctx context.Context, id int64, in domain.TaskInput) error
	DeleteTask(ctx context.Context, id int64) error
}

// Confirm asks the user a yes/no question.
type Confirm func(prompt string) bool

// Controller keeps a State in sync with the task API. It holds no state of
// its own and is safe for concurrent use; each call works on the State it is
// given.
type Controller struct {
	api TaskAPI
	log *log.Logger
}

// NewController creates a controller backed by api.
func NewController(api TaskAPI, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Controller{api: api, log: logger}
}

// Open runs the page-open sequence: initial load, then a clean form. The
// state is marked loaded even when the fetch fails so a broken server is not
// hammered on every render.
func (c *Controller) Open(ctx context.Context, st *State) error {
	err := c.Load(ctx, st)
	st.Form.Reset()
	st.Loaded = true
	return err
}

// Load fetches the whole collection and replaces the cache. On failure the
// cache is left as it was.
func (c *Controller) Load(ctx context.Context, st *State) error {
	tasks, err := c.api.ListTasks(ctx)
	if err != nil {
		c.log.WithError(err).Warn("load tasks failed; keeping cached list")
		return fmt.Errorf("load tasks: %w", err)
	}
	st.ReplaceTasks(tasks)
	c.log.WithField("tasks", len(tasks)).Debug("tasks loaded")
	return nil
}

// Submit sends the form as a create (no id) or an update (id set). Success
// resets the form and reloads; failure keeps the form and shows the server
// message in its error region.
func (c *Controller) Submit(ctx context.Context, st *State, form Form) error {
	form.Errors = ""
	st.Form = form

	payload := form.Payload()
	var err error
	switch form.Mode() {
	case ModeCreate:
		err = c.api.CreateTask(ctx, payload)
	default:
		id, parseErr := strconv.ParseInt(strings.TrimSpace(form.ID), 10, 64)
		if parseErr != nil {
			st.Form.Errors = msgBadID
			return fmt.Errorf("submit task: %w", parseErr)
		}
		err = c.api.UpdateTask(ctx, id, payload)
	}
	if err != nil {
		st.Form.Errors = submitErrorText(err)
		c.log.WithError(err).WithField("mode", form.Mode()).Info("task submit rejected")
		if taskclient.IsNotFound(err) {
			// The task is gone upstream; drop it from the list but keep the form.
			_ = c.Load(ctx, st)
		}
		return fmt.Errorf("submit task: %w", err)
	}

	st.Form.Reset()
	return c.Load(ctx, st)
}

func submitErrorText(err error) string {
	var apiErr *taskclient.APIError
	if !errors.As(err, &apiErr) {
		return msgUnreachable
	}
	if apiErr.Message == "" {
		return msgValidation
	}
	return apiErr.Message
}

// Edit loads the cached task into the form. Unknown ids are ignored.
func (c *Controller) Edit(st *State, id int64) bool {
	task, ok := st.Task(id)
	if !ok {
		return false
	}
	st.Form.Fill(task)
	return true
}

// Cancel abandons the current edit.
func (c *Controller) Cancel(st *State) {
	st.Form.Reset()
}

// RequestDelete records id as awaiting confirmation.
func (c *Controller) RequestDelete(st *State, id int64) bool {
	if _, ok := st.Task(id); !ok {
		return false
	}
	st.PendingDelete = id
	return true
}

// ConfirmDelete answers the pending confirmation.
func (c *Controller) ConfirmDelete(ctx context.Context, st *State, yes bool) error {
	id := st.PendingDelete
	st.PendingDelete = 0
	if id == 0 {
		return nil
	}
	return c.Delete(ctx, st, id, func(string) bool { return yes })
}

// Delete asks for confirmation and deletes id. Only a successful delete
// touches the cache; a failed one raises the alert.
func (c *Controller) Delete(ctx context.Context, st *State, id int64, confirm Confirm) error {
	if confirm != nil && !confirm(DeletePrompt(id)) {
		return nil
	}
	if err := c.api.DeleteTask(ctx, id); err != nil {
		st.Alert = fmt.Sprintf("Failed to delete task #%d", id)
		c.log.WithError(err).WithField("task_id", id).Warn("delete task failed")
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	st.RemoveTask(id)
	return nil
}

// DismissAlert closes the alert.
func (c *Controller) DismissAlert(st *State) {
	st.Alert = ""
}
