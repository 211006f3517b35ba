// Package output renders session state for the terminal in several formats.
package output

import (
	"io"

	"github.com/echodeck/echodeck/internal/model"
	"github.com/echodeck/echodeck/internal/session"
)

// Format represents the output format
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Formatter defines the interface for output formatters
type Formatter interface {
	FormatState(state session.State, w io.Writer) error
	FormatStream(items []model.InboxItem, w io.Writer) error
	FormatPlan(plan *model.DailyPlan, w io.Writer) error
}

// NewFormatter creates a formatter for the specified format
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	default:
		return &TableFormatter{}
	}
}
