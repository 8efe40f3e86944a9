package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/radosmm6/task-app-rodion-samokhvalov-68614/board"
	"github.com/radosmm6/task-app-rodion-samokhvalov-68614/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageTemplate is the name of the full board template.
const PageTemplate = "page.html"

// Renderer renders the board page. It implements echo.Renderer.
type Renderer struct {
	templates  *template.Template
	dateLayout string
}

// New parses the embedded templates.
func New(dateLayout string) (*Renderer, error) {
	if dateLayout == "" {
		dateLayout = domain.DefaultDateLayout
	}
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: tmpl, dateLayout: dateLayout}, nil
}

// Render implements echo.Renderer. A *board.State is projected onto a Page
// first; any other data is passed through.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	if st, ok := data.(*board.State); ok {
		data = r.Page(st)
	}
	return r.templates.ExecuteTemplate(w, name, data)
}

// Page builds the view of st with the configured date layout.
func (r *Renderer) Page(st *board.State) Page {
	return NewPage(st, r.dateLayout)
}

// WritePage renders the whole board for st.
func (r *Renderer) WritePage(w io.Writer, st *board.State) error {
	return r.templates.ExecuteTemplate(w, PageTemplate, r.Page(st))
}
