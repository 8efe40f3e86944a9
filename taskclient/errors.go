package taskclient

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
)

// APIError is returned when the task API answers with a non-2xx status.
// Message carries the server's `error` text or the flattened `errors`
// structure; it is empty when the body held neither.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("task api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("task api: %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type errorBody struct {
	Error  string `json:"error"`
	Errors any    `json:"errors"`
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	if len(body) == 0 {
		return apiErr
	}
	var eb errorBody
	if err := sonic.Unmarshal(body, &eb); err != nil {
		return apiErr
	}
	if eb.Error != "" {
		apiErr.Message = eb.Error
		return apiErr
	}
	apiErr.Message = FormatErrors(eb.Errors)
	return apiErr
}

// FormatErrors flattens an `errors` payload into one line. Lists are joined
// with "; ", objects become "field: message" pairs sorted by field.
func FormatErrors(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s := FormatErrors(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "; ")
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			msg := fieldMessage(val[k])
			if msg == "" {
				parts = append(parts, k)
				continue
			}
			parts = append(parts, k+": "+msg)
		}
		return strings.Join(parts, "; ")
	default:
		data, err := sonic.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}

func fieldMessage(v any) string {
	list, ok := v.([]any)
	if !ok {
		return FormatErrors(v)
	}
	parts := make([]string, 0, len(list))
	for _, item := range list {
		if s := FormatErrors(item); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}
