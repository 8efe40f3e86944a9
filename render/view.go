package render

import (
	"github.com/radosmm6/task-app-rodion-samokhvalov-68614/board"
	"github.com/radosmm6/task-app-rodion-samokhvalov-68614/domain"
)

const noDescription = "No description"

// Row is one rendered task.
type Row struct {
	ID            int64
	Title         string
	StatusLabel   string
	StatusClass   string
	Description   string
	ShowCategory  bool
	CategoryLabel string
	CategoryClass string
	ShowPriority  bool
	PriorityLabel string
	PriorityClass string
	Due           string
}

// Option is an entry of a select element.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Page is the data behind one full render of the board.
type Page struct {
	Rows          []Row
	Empty         bool
	FilterOptions []Option

	FormID          string
	FormTitle       string
	SaveLabel       string
	Title           string
	Description     string
	DueDate         string
	StatusOptions   []Option
	CategoryOptions []Option
	PriorityOptions []Option
	FormErrors      string

	Alert         string
	ConfirmID     int64
	ConfirmPrompt string
}

// Rows builds one row per task, in order.
func Rows(tasks []domain.Task, dateLayout string) []Row {
	rows := make([]Row, 0, len(tasks))
	for _, t := range tasks {
		status := t.EffectiveStatus()
		row := Row{
			ID:          t.ID,
			Title:       t.Title,
			StatusLabel: domain.StatusLabel(status),
			StatusClass: domain.StatusClass(status),
			Description: noDescription,
			Due:         domain.FormatDueDate(t.DueDate, dateLayout),
		}
		if t.Description != nil && *t.Description != "" {
			row.Description = *t.Description
		}
		if t.Category != nil && *t.Category != "" {
			row.ShowCategory = true
			row.CategoryLabel = domain.CategoryLabel(*t.Category)
			row.CategoryClass = domain.CategoryClass(*t.Category)
		}
		if t.Priority != nil && *t.Priority != "" {
			row.ShowPriority = true
			row.PriorityLabel = domain.PriorityLabel(*t.Priority)
			row.PriorityClass = domain.PriorityClass(*t.Priority)
		}
		rows = append(rows, row)
	}
	return rows
}

// NewPage projects the state onto the page view.
func NewPage(st *board.State, dateLayout string) Page {
	rows := Rows(st.Visible(), dateLayout)
	f := st.Form
	p := Page{
		Rows:          rows,
		Empty:         len(rows) == 0,
		FilterOptions: filterOptions(st.Filter),

		FormID:          f.ID,
		FormTitle:       f.Heading(),
		SaveLabel:       f.SubmitLabel(),
		Title:           f.Title,
		Description:     f.Description,
		DueDate:         f.DueDate,
		StatusOptions:   statusOptions(f.Status),
		CategoryOptions: categoryOptions(f.Category),
		PriorityOptions: priorityOptions(f.Priority),
		FormErrors:      f.Errors,

		Alert: st.Alert,
	}
	if st.PendingDelete != 0 {
		p.ConfirmID = st.PendingDelete
		p.ConfirmPrompt = board.DeletePrompt(st.PendingDelete)
	}
	return p
}

func filterOptions(selected string) []Option {
	opts := []Option{{Value: board.FilterAll, Label: "All", Selected: selected == board.FilterAll || selected == ""}}
	for _, s := range domain.Statuses {
		opts = append(opts, Option{Value: string(s), Label: domain.StatusLabel(s), Selected: selected == string(s)})
	}
	return opts
}

func statusOptions(selected string) []Option {
	opts := make([]Option, 0, len(domain.Statuses))
	for _, s := range domain.Statuses {
		opts = append(opts, Option{Value: string(s), Label: domain.StatusLabel(s), Selected: selected == string(s)})
	}
	return opts
}

func categoryOptions(selected string) []Option {
	opts := make([]Option, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		opts = append(opts, Option{Value: string(c), Label: domain.CategoryLabel(c), Selected: selected == string(c)})
	}
	return opts
}

func priorityOptions(selected string) []Option {
	opts := make([]Option, 0, len(domain.Priorities))
	for _, p := range domain.Priorities {
		opts = append(opts, Option{Value: string(p), Label: domain.PriorityLabel(p), Selected: selected == string(p)})
	}
	return opts
}
