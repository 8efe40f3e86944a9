package board

import (
	"fmt"
	"slices"

	"github.com/radosmm6/task-app-rodion-samokhvalov-68614/domain"
)

// FilterAll shows every cached task.
const FilterAll = "all"

// State is everything one client session owns: the cached task list, the
// selected filter, the form and the pending prompts. It is created when a
// session starts and handed to the controller and renderer explicitly.
type State struct {
	Tasks  []domain.Task `json:"tasks"`
	Filter string        `json:"filter"`
	Form   Form          `json:"form"`
	// Alert is the blocking message shown after a failed delete.
	Alert string `json:"alert,omitempty"`
	// PendingDelete is the id awaiting confirmation, zero when none.
	PendingDelete int64 `json:"pendingDelete,omitempty"`
	// Loaded is set once the initial fetch of a session has been attempted.
	Loaded bool `json:"loaded"`
}

// NewState returns the state of a freshly opened page.
func NewState() *State {
	s := &State{Tasks: []domain.Task{}, Filter: FilterAll}
	s.Form.Reset()
	return s
}

// ReplaceTasks swaps the cache wholesale.
func (s *State) ReplaceTasks(tasks []domain.Task) {
	if tasks == nil {
		tasks = []domain.Task{}
	}
	s.Tasks = tasks
}

// RemoveTask drops the task with the given id from the cache.
func (s *State) RemoveTask(id int64) {
	kept := make([]domain.Task, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.Tasks = kept
}

// Task looks up a cached task by id.
func (s *State) Task(id int64) (domain.Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Task{}, false
}

// SetFilter changes the status filter. Anything other than a known status
// means all.
func (s *State) SetFilter(filter string) {
	if !slices.Contains(domain.Statuses, domain.Status(filter)) {
		filter = FilterAll
	}
	s.Filter = filter
}

// Visible returns the tasks matching the current filter, in cache order.
func (s *State) Visible() []domain.Task {
	return VisibleTasks(s.Tasks, s.Filter)
}

// VisibleTasks filters tasks by exact status; missing statuses count as todo.
func VisibleTasks(tasks []domain.Task, filter string) []domain.Task {
	visible := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if filter == FilterAll || filter == "" || string(t.EffectiveStatus()) == filter {
			visible = append(visible, t)
		}
	}
	return visible
}

// DeletePrompt is the confirmation question asked before deleting id.
func DeletePrompt(id int64) string {
	return fmt.Sprintf("Delete task #%d?", id)
}
