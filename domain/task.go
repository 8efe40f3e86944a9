package domain

// Status is the workflow state of a task.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Category groups tasks by area of life.
type Category string

const (
	CategoryGeneral Category = "general"
	CategoryWork    Category = "work"
	CategoryStudy   Category = "study"
	CategoryHome    Category = "home"
	CategoryHobby   Category = "hobby"
	CategorySport   Category = "sport"
	CategoryOther   Category = "other"
)

// Priority ranks how urgent a task is.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Statuses lists the concrete statuses in display order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone}

// Categories lists the known categories in display order.
var Categories = []Category{
	CategoryGeneral,
	CategoryWork,
	CategoryStudy,
	CategoryHome,
	CategoryHobby,
	CategorySport,
	CategoryOther,
}

// Priorities lists the known priorities in display order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Task is the client's copy of a server-owned task. Optional fields are nil
// when the server omits them or sends null.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Status      Status    `json:"status,omitempty"`
	Category    *Category `json:"category,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	DueDate     *string   `json:"due_date,omitempty"`
}

// EffectiveStatus returns the task status, treating a missing one as todo.
func (t Task) EffectiveStatus() Status {
	if t.Status == "" {
		return StatusTodo
	}
	return t.Status
}

// TaskInput is the body sent on create and update. Description and DueDate
// are always serialized, as null when absent.
type TaskInput struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Status      Status   `json:"status"`
	Category    Category `json:"category,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
	DueDate     *string  `json:"due_date"`
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string { return &s }

// CategoryPtr returns a pointer to c.
func CategoryPtr(c Category) *Category { return &c }

// PriorityPtr returns a pointer to p.
func PriorityPtr(p Priority) *Priority { return &p }
