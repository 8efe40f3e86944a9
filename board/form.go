package board

import (
	"strconv"
	"strings"

	"github.com/radosmm6/task-app-rodion-samokhvalov-68614/domain"
)

// Mode tells whether the form creates a new task or edits a cached one.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// Form mirrors the task form fields as the user typed them.
type Form struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	DueDate     string `json:"dueDate"`
	Errors      string `json:"errors,omitempty"`
}

// Reset clears the form to its defaults and switches to create mode.
func (f *Form) Reset() {
	*f = Form{
		Status:   string(domain.StatusTodo),
		Category: string(domain.CategoryGeneral),
		Priority: string(domain.PriorityMedium),
	}
}

// Fill loads task into the form and switches to edit mode.
func (f *Form) Fill(task domain.Task) {
	f.Reset()
	f.ID = strconv.FormatInt(task.ID, 10)
	f.Title = task.Title
	f.Status = string(task.EffectiveStatus())
	if task.Description != nil {
		f.Description = *task.Description
	}
	if task.Category != nil && *task.Category != "" {
		f.Category = string(*task.Category)
	}
	if task.Priority != nil && *task.Priority != "" {
		f.Priority = string(*task.Priority)
	}
	if task.DueDate != nil {
		f.DueDate = *task.DueDate
	}
}

// Mode reports the form mode from the presence of an id.
func (f Form) Mode() Mode {
	if strings.TrimSpace(f.ID) == "" {
		return ModeCreate
	}
	return ModeEdit
}

// Heading is the form title.
func (f Form) Heading() string {
	if f.Mode() == ModeEdit {
		return "Edit task"
	}
	return "New task"
}

// SubmitLabel is the text of the save button.
func (f Form) SubmitLabel() string {
	if f.Mode() == ModeEdit {
		return "Update task"
	}
	return "Save task"
}

// Payload builds the request body. Only trimming and blank-to-null are
// applied; everything else is left to the server.
func (f Form) Payload() domain.TaskInput {
	in := domain.TaskInput{
		Title:    strings.TrimSpace(f.Title),
		Status:   domain.Status(f.Status),
		Category: domain.Category(f.Category),
		Priority: domain.Priority(f.Priority),
	}
	if d := strings.TrimSpace(f.Description); d != "" {
		in.Description = &d
	}
	if f.DueDate != "" {
		due := f.DueDate
		in.DueDate = &due
	}
	return in
}
