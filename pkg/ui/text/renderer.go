// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"

	"github.com/arthur-debert/maidsweep/pkg/types"
)

// Renderer writes one line per record: the path, a tab, then the tags
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

func (r *Renderer) RenderRecords(records []types.Record) error {
	for _, rec := range records {
		if _, err := fmt.Fprintf(r.output, "%s\t%s\n", rec.Path, types.TagSet(rec.Tags)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "Error: %v\n", err)
	return werr
}

func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
