package output

import (
	"encoding/json"
	"io"

	"github.com/echodeck/echodeck/internal/model"
	"github.com/echodeck/echodeck/internal/session"
)

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	Pretty bool
}

func (f *JSONFormatter) encode(v any, w io.Writer) error {
	encoder := json.NewEncoder(w)
	if f.Pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(v)
}

// FormatState outputs the session snapshot as JSON
func (f *JSONFormatter) FormatState(state session.State, w io.Writer) error {
	return f.encode(state, w)
}

// FormatStream outputs raw inbox items as JSON
func (f *JSONFormatter) FormatStream(items []model.InboxItem, w io.Writer) error {
	return f.encode(items, w)
}

// FormatPlan outputs the daily plan as JSON
func (f *JSONFormatter) FormatPlan(plan *model.DailyPlan, w io.Writer) error {
	return f.encode(plan, w)
}
