// Package taskapitest runs an in-memory /tasks REST API for tests. It follows
// the behaviour of the production task server: new tasks are listed first,
// a missing title is rejected and deletes always succeed.
package taskapitest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"

	"github.com/radosmm6/task-app-rodion-samokhvalov-68614/domain"
)

// Request is one call received by the fake server.
type Request struct {
	Method string
	Path   string
	Body   map[string]any
}

type failure struct {
	status int
	body   string
}

// Server is a fake task API backed by a map.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	nextID   int64
	tasks    map[int64]domain.Task
	requests []Request
	failures map[string][]failure
}

// New starts a fake server seeded with tasks and closes it when the test ends.
func New(t testing.TB, seed ...domain.Task) *Server {
	t.Helper()

	s := &Server{
		tasks:    make(map[int64]domain.Task),
		failures: make(map[string][]failure),
	}
	for _, task := range seed {
		s.put(task)
	}
	s.Server = httptest.NewServer(s.Handler())
	t.Cleanup(s.Close)
	return s
}

// Handler returns the echo router serving the fake API.
func (s *Server) Handler() http.Handler {
	e := echo.New()
	e.HideBanner = true
	e.Use(s.record)
	e.GET("/tasks", s.list)
	e.GET("/tasks/:id", s.get)
	e.POST("/tasks", s.create)
	e.PUT("/tasks/:id", s.update)
	e.DELETE("/tasks/:id", s.delete)
	return e
}

// Fail queues a canned response for the next request with the given method.
func (s *Server) Fail(method string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method] = append(s.failures[method], failure{status: status, body: body})
}

// Requests returns a copy of the calls received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Tasks returns the stored tasks, newest first.
func (s *Server) Tasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedLocked()
}

func (s *Server) put(task domain.Task) {
	if task.ID == 0 {
		s.nextID++
		task.ID = s.nextID
	}
	if task.ID > s.nextID {
		s.nextID = task.ID
	}
	s.tasks[task.ID] = task
}

func (s *Server) sortedLocked() []domain.Task {
	out := make([]domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (s *Server) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		var body map[string]any
		if req.Body != nil {
			data, _ := io.ReadAll(req.Body)
			if len(data) > 0 {
				_ = sonic.Unmarshal(data, &body)
			}
		}
		c.Set("body", body)

		s.mu.Lock()
		s.requests = append(s.requests, Request{Method: req.Method, Path: req.URL.Path, Body: body})
		var f *failure
		if queued := s.failures[req.Method]; len(queued) > 0 {
			f = &queued[0]
			s.failures[req.Method] = queued[1:]
		}
		s.mu.Unlock()

		if f != nil {
			return c.Blob(f.status, echo.MIMEApplicationJSON, []byte(f.body))
		}
		return next(c)
	}
}

func bodyOf(c echo.Context) map[string]any {
	body, _ := c.Get("body").(map[string]any)
	if body == nil {
		return map[string]any{}
	}
	return body
}

func idParam(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil
}

func (s *Server) list(c echo.Context) error {
	s.mu.Lock()
	tasks := s.sortedLocked()
	s.mu.Unlock()
	return c.JSON(http.StatusOK, tasks)
}

func (s *Server) get(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Task not found"})
	}
	s.mu.Lock()
	task, found := s.tasks[id]
	s.mu.Unlock()
	if !found {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Task not found"})
	}
	return c.JSON(http.StatusOK, task)
}

func (s *Server) create(c echo.Context) error {
	body := bodyOf(c)
	title, _ := body["title"].(string)
	if title == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Title is required"})
	}
	task := domain.Task{Title: title}
	apply(&task, body)

	s.mu.Lock()
	s.put(task)
	s.mu.Unlock()
	return c.JSON(http.StatusCreated, map[string]string{"message": "Task created"})
}

func (s *Server) update(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Task not found"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	task, found := s.tasks[id]
	if !found {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Task not found"})
	}
	body := bodyOf(c)
	if title, ok := body["title"].(string); ok {
		task.Title = title
	}
	apply(&task, body)
	s.tasks[id] = task
	return c.JSON(http.StatusOK, map[string]string{"message": "Updated"})
}

func (s *Server) delete(c echo.Context) error {
	if id, ok := idParam(c); ok {
		s.mu.Lock()
		delete(s.tasks, id)
		s.mu.Unlock()
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Deleted"})
}

// apply copies the optional fields present in body onto task. A present
// null clears the field.
func apply(task *domain.Task, body map[string]any) {
	if v, ok := body["description"]; ok {
		task.Description = optString(v)
	}
	if v, ok := body["due_date"]; ok {
		task.DueDate = optString(v)
	}
	if v, ok := body["status"]; ok {
		if s := optString(v); s != nil {
			task.Status = domain.Status(*s)
		} else {
			task.Status = ""
		}
	}
	if v, ok := body["category"]; ok {
		if s := optString(v); s != nil {
			task.Category = domain.CategoryPtr(domain.Category(*s))
		} else {
			task.Category = nil
		}
	}
	if v, ok := body["priority"]; ok {
		if s := optString(v); s != nil {
			task.Priority = domain.PriorityPtr(domain.Priority(*s))
		} else {
			task.Priority = nil
		}
	}
}

func optString(v any) *string {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
