package board

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/radosmm6/task-app-rodion-samokhvalov-68614/domain"
	"github.com/radosmm6/task-app-rodion-samokhvalov-68614/internal/assertx"
	"github.com/radosmm6/task-app-rodion-samokhvalov-68614/internal/taskapitest"
	"github.com/radosmm6/task-app-rodion-samokhvalov-68614/taskclient"
)

type stubAPI struct {
	listFn   func(ctx context.Context) ([]domain.Task, error)
	createFn func(ctx context.Context, in domain.TaskInput) error
	updateFn func(ctx context.Context, id int64, in domain.TaskInput) error
	deleteFn func(ctx context.Context, id int64) error
}

func (s *stubAPI) ListTasks(ctx context.Context) ([]domain.Task, error) {
	if s.listFn == nil {
		return nil, errors.New("unexpected ListTasks call")
	}
	return s.listFn(ctx)
}

func (s *stubAPI) CreateTask(ctx context.Context, in domain.TaskInput) error {
	if s.createFn == nil {
		return errors.New("unexpected CreateTask call")
	}
	return s.createFn(ctx, in)
}

func (s *stubAPI) UpdateTask(ctx context.Context, id int64, in domain.TaskInput) error {
	if s.updateFn == nil {
		return errors.New("unexpected UpdateTask call")
	}
	return s.updateFn(ctx, id, in)
}

func (s *stubAPI) DeleteTask(ctx context.Context, id int64) error {
	if s.deleteFn == nil {
		return errors.New("unexpected DeleteTask call")
	}
	return s.deleteFn(ctx, id)
}

func newController(api TaskAPI) *Controller {
	logger, _ := test.NewNullLogger()
	return NewController(api, logger)
}

func newLiveController(t *testing.T, seed ...domain.Task) (*Controller, *taskapitest.Server) {
	t.Helper()
	srv := taskapitest.New(t, seed...)
	logger, _ := test.NewNullLogger()
	return NewController(taskclient.New(srv.URL, "", time.Second, logger), logger), srv
}

func sampleTasks() []domain.Task {
	return []domain.Task{
		{ID: 3, Title: "c", Status: domain.StatusDone},
		{ID: 2, Title: "b"},
		{ID: 1, Title: "a", Status: domain.StatusInProgress},
	}
}

func TestOpenLoadsAndResetsForm(t *testing.T) {
	ctl := newController(&stubAPI{listFn: func(context.Context) ([]domain.Task, error) { return sampleTasks(), nil }})
	st := NewState()
	st.Form.Title = "left over"

	assertx.NoError(t, ctl.Open(context.Background(), st))
	assertx.Equal(t, 3, len(st.Tasks))
	assertx.Equal(t, true, st.Loaded)
	assertx.Equal(t, "", st.Form.Title)
	assertx.Equal(t, ModeCreate, st.Form.Mode())
}

func TestLoadFailureKeepsCache(t *testing.T) {
	ctl := newController(&stubAPI{listFn: func(context.Context) ([]domain.Task, error) {
		return nil, &taskclient.APIError{StatusCode: http.StatusServiceUnavailable}
	}})
	st := NewState()
	st.ReplaceTasks(sampleTasks())

	if err := ctl.Load(context.Background(), st); err == nil {
		t.Fatal("expected load error")
	}
	if !reflect.DeepEqual(st.Tasks, sampleTasks()) {
		t.Fatalf("cache changed after failed load: %#v", st.Tasks)
	}
}

func TestSubmitEmptyIDCreates(t *testing.T) {
	var created, updated int
	api := &stubAPI{
		createFn: func(context.Context, domain.TaskInput) error { created++; return nil },
		updateFn: func(context.Context, int64, domain.TaskInput) error { updated++; return nil },
		listFn:   func(context.Context) ([]domain.Task, error) { return sampleTasks(), nil },
	}
	ctl := newController(api)
	st := NewState()

	form := st.Form
	form.Title = "  New  "
	assertx.NoError(t, ctl.Submit(context.Background(), st, form))
	assertx.Equal(t, 1, created)
	assertx.Equal(t, 0, updated)
}

func TestSubmitWithIDUpdates(t *testing.T) {
	var gotID int64
	var gotIn domain.TaskInput
	api := &stubAPI{
		updateFn: func(_ context.Context, id int64, in domain.TaskInput) error {
			gotID, gotIn = id, in
			return nil
		},
		listFn: func(context.Context) ([]domain.Task, error) { return sampleTasks(), nil },
	}
	ctl := newController(api)
	st := NewState()
	st.ReplaceTasks(sampleTasks())
	ctl.Edit(st, 3)

	form := st.Form
	form.Title = " c2 "
	form.Description = "   "
	assertx.NoError(t, ctl.Submit(context.Background(), st, form))

	assertx.Equal(t, int64(3), gotID)
	assertx.Equal(t, "c2", gotIn.Title)
	if gotIn.Description != nil || gotIn.DueDate != nil {
		t.Fatalf("expected blank optionals to be null, got %+v", gotIn)
	}
	assertx.Equal(t, ModeCreate, st.Form.Mode())
}

func TestSubmitUpdateOfVanishedTaskReloadsList(t *testing.T) {
	api := &stubAPI{
		updateFn: func(context.Context, int64, domain.TaskInput) error {
			return &taskclient.APIError{StatusCode: http.StatusNotFound, Message: "Task not found"}
		},
		listFn: func(context.Context) ([]domain.Task, error) { return sampleTasks()[1:], nil },
	}
	ctl := newController(api)
	st := NewState()
	st.ReplaceTasks(sampleTasks())
	ctl.Edit(st, 3)

	form := st.Form
	form.Title = "c2"
	if err := ctl.Submit(context.Background(), st, form); err == nil {
		t.Fatal("expected submit error")
	}

	assertx.Equal(t, "Task not found", st.Form.Errors)
	assertx.Equal(t, "c2", st.Form.Title)
	assertx.Equal(t, ModeEdit, st.Form.Mode())
	if _, ok := st.Task(3); ok {
		t.Fatal("expected vanished task to be dropped from the list")
	}
	assertx.Equal(t, 2, len(st.Tasks))
}

func TestSubmitUpdateRejectedKeepsList(t *testing.T) {
	api := &stubAPI{
		updateFn: func(context.Context, int64, domain.TaskInput) error {
			return &taskclient.APIError{StatusCode: http.StatusBadRequest, Message: "Title is required"}
		},
	}
	ctl := newController(api)
	st := NewState()
	st.ReplaceTasks(sampleTasks())
	ctl.Edit(st, 3)

	if err := ctl.Submit(context.Background(), st, st.Form); err == nil {
		t.Fatal("expected submit error")
	}
	assertx.Equal(t, "Title is required", st.Form.Errors)
	assertx.Equal(t, 3, len(st.Tasks))
}

func TestSubmitValidationErrorKeepsForm(t *testing.T) {
	ctl, srv := newLiveController(t)
	srv.Fail(http.MethodPost, http.StatusBadRequest, `{"error":"Title required"}`)
	st := NewState()

	form := st.Form
	form.Title = "draft"
	form.Description = "keep me"
	if err := ctl.Submit(context.Background(), st, form); err == nil {
		t.Fatal("expected submit error")
	}

	assertx.Equal(t, "Title required", st.Form.Errors)
	assertx.Equal(t, "draft", st.Form.Title)
	assertx.Equal(t, "keep me", st.Form.Description)
	for _, r := range srv.Requests() {
		if r.Method == http.MethodGet {
			t.Fatalf("expected no reload after failed submit, got %+v", r)
		}
	}
}

func TestSubmitErrorTexts(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "emptyBody", err: &taskclient.APIError{StatusCode: http.StatusBadRequest}, want: "Validation error"},
		{name: "structured", err: &taskclient.APIError{StatusCode: http.StatusUnprocessableEntity, Message: "title: is required"}, want: "title: is required"},
		{name: "transport", err: errors.New("dial tcp: refused"), want: "Unable to reach the task server"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctl := newController(&stubAPI{createFn: func(context.Context, domain.TaskInput) error { return tt.err }})
			st := NewState()
			_ = ctl.Submit(context.Background(), st, st.Form)
			assertx.Equal(t, tt.want, st.Form.Errors)
		})
	}
}

func TestSubmitInvalidIDSkipsRequest(t *testing.T) {
	ctl := newController(&stubAPI{})
	st := NewState()
	form := st.Form
	form.ID = "abc"

	if err := ctl.Submit(context.Background(), st, form); err == nil {
		t.Fatal("expected error for invalid id")
	}
	assertx.Equal(t, "Invalid task id", st.Form.Errors)
}

func TestSubmitCreateThenReloadAgainstServer(t *testing.T) {
	ctl, srv := newLiveController(t, domain.Task{ID: 1, Title: "first"})
	st := NewState()
	assertx.NoError(t, ctl.Open(context.Background(), st))

	form := st.Form
	form.Title = "second"
	form.DueDate = "2025-05-01"
	assertx.NoError(t, ctl.Submit(context.Background(), st, form))

	assertx.Equal(t, 2, len(st.Tasks))
	assertx.Equal(t, "second", st.Tasks[0].Title)
	assertx.Equal(t, 2, len(srv.Tasks()))
}

func TestDeleteRemovesOnlyThatTask(t *testing.T) {
	ctl, _ := newLiveController(t, sampleTasks()...)
	st := NewState()
	assertx.NoError(t, ctl.Open(context.Background(), st))

	assertx.NoError(t, ctl.Delete(context.Background(), st, 2, func(string) bool { return true }))

	want := []domain.Task{sampleTasks()[0], sampleTasks()[2]}
	if !reflect.DeepEqual(st.Tasks, want) {
		t.Fatalf("unexpected cache after delete: %#v", st.Tasks)
	}
}

func TestDeleteDeclinedSendsNothing(t *testing.T) {
	var prompt string
	ctl, srv := newLiveController(t, sampleTasks()...)
	st := NewState()
	st.ReplaceTasks(sampleTasks())

	assertx.NoError(t, ctl.Delete(context.Background(), st, 2, func(p string) bool { prompt = p; return false }))

	assertx.Equal(t, "Delete task #2?", prompt)
	assertx.Equal(t, 0, len(srv.Requests()))
	assertx.Equal(t, 3, len(st.Tasks))
}

func TestDeleteFailureRaisesAlert(t *testing.T) {
	ctl, srv := newLiveController(t, sampleTasks()...)
	srv.Fail(http.MethodDelete, http.StatusInternalServerError, `{"error":"boom"}`)
	st := NewState()
	st.ReplaceTasks(sampleTasks())

	if err := ctl.Delete(context.Background(), st, 2, nil); err == nil {
		t.Fatal("expected delete error")
	}
	assertx.Equal(t, "Failed to delete task #2", st.Alert)
	if !reflect.DeepEqual(st.Tasks, sampleTasks()) {
		t.Fatalf("cache changed after failed delete: %#v", st.Tasks)
	}

	ctl.DismissAlert(st)
	assertx.Equal(t, "", st.Alert)
}

func TestRequestAndConfirmDelete(t *testing.T) {
	var deleted []int64
	ctl := newController(&stubAPI{deleteFn: func(_ context.Context, id int64) error {
		deleted = append(deleted, id)
		return nil
	}})
	st := NewState()
	st.ReplaceTasks(sampleTasks())

	assertx.Equal(t, false, ctl.RequestDelete(st, 99))
	assertx.Equal(t, true, ctl.RequestDelete(st, 1))
	assertx.Equal(t, int64(1), st.PendingDelete)

	assertx.NoError(t, ctl.ConfirmDelete(context.Background(), st, false))
	assertx.Equal(t, int64(0), st.PendingDelete)
	assertx.Equal(t, 0, len(deleted))

	ctl.RequestDelete(st, 1)
	assertx.NoError(t, ctl.ConfirmDelete(context.Background(), st, true))
	assertx.Equal(t, 1, len(deleted))
	if _, ok := st.Task(1); ok {
		t.Fatal("expected task 1 to be removed")
	}
}

func TestEditAndCancel(t *testing.T) {
	ctl := newController(&stubAPI{})
	st := NewState()
	st.ReplaceTasks(sampleTasks())

	assertx.Equal(t, false, ctl.Edit(st, 42))
	assertx.Equal(t, ModeCreate, st.Form.Mode())

	assertx.Equal(t, true, ctl.Edit(st, 3))
	assertx.Equal(t, ModeEdit, st.Form.Mode())
	assertx.Equal(t, "3", st.Form.ID)

	ctl.Cancel(st)
	assertx.Equal(t, ModeCreate, st.Form.Mode())
	assertx.Equal(t, "todo", st.Form.Status)
}
