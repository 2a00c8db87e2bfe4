// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/arthur-debert/maidsweep/pkg/types"
	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	path    lipgloss.Style
	tag     lipgloss.Style
	date    lipgloss.Style
	error   lipgloss.Style
	message lipgloss.Style
	footer  lipgloss.Style
}

// Renderer styles output with lipgloss. Styles are bound to the output so
// color is only emitted when the writer supports it.
type Renderer struct {
	output io.Writer
	styles styles
}

// New creates a new terminal renderer
func New(w io.Writer) *Renderer {
	lr := lipgloss.NewRenderer(w)
	return &Renderer{
		output: w,
		styles: styles{
			path:    lr.NewStyle().Bold(true),
			tag:     lr.NewStyle().Foreground(lipgloss.Color("6")),
			date:    lr.NewStyle().Foreground(lipgloss.Color("8")),
			error:   lr.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			message: lr.NewStyle().Foreground(lipgloss.Color("12")),
			footer:  lr.NewStyle().Faint(true).MarginTop(1),
		},
	}
}

// RenderRecords prints each record with its tags and modification date,
// then a count
func (r *Renderer) RenderRecords(records []types.Record) error {
	if len(records) == 0 {
		return r.RenderMessage("No records found")
	}

	width := 0
	for _, rec := range records {
		if n := lipgloss.Width(rec.Path); n > width {
			width = n
		}
	}

	var b strings.Builder
	for _, rec := range records {
		tags := make([]string, len(rec.Tags))
		for i, tag := range rec.Tags {
			tags[i] = r.styles.tag.Render("#" + tag)
		}

		line := r.styles.path.Width(width).Render(rec.Path) + "  " + strings.Join(tags, " ")
		if rec.LastModified > 0 {
			modified := time.Unix(rec.LastModified, 0).Format("2006-01-02 15:04")
			line += "  " + r.styles.date.Render(modified)
		}
		b.WriteString(line + "\n")
	}

	noun := "records"
	if len(records) == 1 {
		noun = "record"
	}
	b.WriteString(r.styles.footer.Render(fmt.Sprintf("%d %s", len(records), noun)) + "\n")

	_, err := io.WriteString(r.output, b.String())
	return err
}

func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.output, r.styles.error.Render("Error: ")+err.Error())
	return werr
}

func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, r.styles.message.Render(msg))
	return err
}
