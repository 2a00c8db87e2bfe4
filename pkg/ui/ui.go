// Package ui renders command output as styled terminal text, plain text or
// JSON.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/maidsweep/pkg/errors"
	"github.com/arthur-debert/maidsweep/pkg/types"
	"github.com/arthur-debert/maidsweep/pkg/ui/json"
	"github.com/arthur-debert/maidsweep/pkg/ui/terminal"
	"github.com/arthur-debert/maidsweep/pkg/ui/text"
)

// Renderer is implemented by every output format
type Renderer interface {
	// RenderRecords renders stored records
	RenderRecords(records []types.Record) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for format. FormatAuto inspects output when
// it is a file and falls back to terminal styling otherwise.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatTerminal, output)
	case FormatTerminal:
		return terminal.New(output), nil
	case FormatText:
		return text.New(output), nil
	case FormatJSON:
		return json.New(output), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
