// Package view builds the rating form page from the board sheet and the last
// submission outcome. Pages are plain values; rendering happens last.
package view

import (
	"embed"
	"html/template"
	"io"

	"github.com/preston-bernstein/ecf-team-win/internal/ratings"
	"github.com/preston-bernstein/ecf-team-win/internal/results"
	"github.com/preston-bernstein/ecf-team-win/internal/submit"
)

const (
	DefaultTitle   = "ECF team match win probability"
	DefaultAction  = "/boards"
	RemovalPrompt  = "Remove this board?"
	layoutTemplate = "layout"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Row is one board line of the form.
type Row struct {
	Board     int
	Label     string
	Team1     string
	Team2     string
	CanRemove bool
}

// Confirm asks the user to confirm a board removal.
type Confirm struct {
	Board  int
	Prompt string
}

// Page is everything the template needs.
type Page struct {
	Title    string
	Action   string
	Rows     []Row
	CanAdd   bool
	Error    string
	Status   string
	Sections []results.Section
	Confirm  *Confirm
}

// Builder assembles a Page step by step.
type Builder struct {
	page Page
}

// NewPage starts a page with the default title and form action.
func NewPage() *Builder {
	return &Builder{page: Page{Title: DefaultTitle, Action: DefaultAction}}
}

// Action overrides where the form posts.
func (b *Builder) Action(action string) *Builder {
	b.page.Action = action
	return b
}

// Sheet lays out one row per board, labelled by position.
func (b *Builder) Sheet(s *ratings.Sheet) *Builder {
	entries := s.Entries()
	rows := make([]Row, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, Row{
			Board:     i + 1,
			Label:     ratings.Label(i + 1),
			Team1:     e.Team1Text,
			Team2:     e.Team2Text,
			CanRemove: s.CanRemove(),
		})
	}
	b.page.Rows = rows
	b.page.CanAdd = s.CanAdd()
	return b
}

// Outcome shows the error, status and rendered result of a submission.
func (b *Builder) Outcome(o submit.Outcome) *Builder {
	b.page.Error = o.Error
	b.page.Status = o.Status
	b.page.Sections = nil
	if o.Display != nil {
		b.page.Sections = o.Display.Sections
	}
	return b
}

// Error replaces the error box text.
func (b *Builder) Error(msg string) *Builder {
	b.page.Error = msg
	return b
}

// Status replaces the output area text.
func (b *Builder) Status(status string) *Builder {
	b.page.Status = status
	return b
}

// ConfirmRemoval turns the page into a removal confirmation for board.
func (b *Builder) ConfirmRemoval(board int) *Builder {
	b.page.Confirm = &Confirm{Board: board, Prompt: RemovalPrompt}
	return b
}

// Build returns the assembled page.
func (b *Builder) Build() Page {
	return b.page
}

// Render writes the page as HTML.
func (p Page) Render(w io.Writer) error {
	return pageTemplate.ExecuteTemplate(w, layoutTemplate, p)
}

