package taskclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/radosmm6/task-app-rodion-samokhvalov-68614/domain"
)

const (
	tasksPath      = "/tasks"
	tracerName     = "taskclient"
	maxErrorBody   = 64 * 1024 // 64 KiB
	defaultTimeout = 10 * time.Second
)

// Client wraps http.Client with helpers for the /tasks REST API.
type Client struct {
	BaseURL string
	Bearer  string
	HTTP    *http.Client

	log *log.Logger
}

// New creates a new Client. A zero timeout falls back to ten seconds.
func New(baseURL, bearer string, timeout time.Duration, logger *log.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Bearer:  bearer,
		HTTP:    &http.Client{Timeout: timeout},
		log:     logger,
	}
}

// ListTasks fetches the whole task collection.
func (c *Client) ListTasks(ctx context.Context) ([]domain.Task, error) {
	tasks := []domain.Task{}
	if err := c.do(ctx, "list", http.MethodGet, tasksPath, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask posts a new task. The response body is not interpreted on success.
func (c *Client) CreateTask(ctx context.Context, in domain.TaskInput) error {
	return c.do(ctx, "create", http.MethodPost, tasksPath, in, nil)
}

// UpdateTask replaces the fields of an existing task.
func (c *Client) UpdateTask(ctx context.Context, id int64, in domain.TaskInput) error {
	return c.do(ctx, "update", http.MethodPut, taskPath(id), in, nil)
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, "delete", http.MethodDelete, taskPath(id), nil, nil)
}

func taskPath(id int64) string {
	return tasksPath + "/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) (err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "taskclient."+op, trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(
		attribute.String("http.request.method", method),
		attribute.String("url.path", path),
	)
	start := time.Now()
	status := 0
	defer func() {
		span.SetAttributes(attribute.Int("http.response.status_code", status))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()

		entry := c.log.WithFields(log.Fields{
			"op":         op,
			"method":     method,
			"path":       path,
			"status":     status,
			"elapsed_ms": float64(time.Since(start)) / float64(time.Millisecond),
		})
		if err != nil {
			entry.WithError(err).Warn("task api request failed")
			return
		}
		entry.Debug("task api request")
	}()

	var reader io.Reader
	if body != nil {
		data, err := sonic.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Bearer != "" {
		req.Header.Set("Authorization", "Bearer "+c.Bearer)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return newAPIError(resp.StatusCode, data)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := sonic.ConfigStd.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}
