package output

import (
	"fmt"
	"io"
	"time"

	"github.com/echodeck/echodeck/internal/model"
	"github.com/echodeck/echodeck/internal/session"
)

// MarkdownFormatter formats output as Markdown
type MarkdownFormatter struct{}

func categoryEmoji(c model.Category) string {
	switch c {
	case model.CategoryUrgent:
		return "🔴"
	case model.CategoryImportant:
		return "🟡"
	case model.CategoryRoutine:
		return "🟢"
	case model.CategoryNoise:
		return "⚪"
	default:
		return "📋"
	}
}

// FormatState outputs the focus queue and summary as Markdown
func (f *MarkdownFormatter) FormatState(state session.State, w io.Writer) error {
	fmt.Fprintln(w, "# Focus Queue")
	fmt.Fprintf(w, "\n*Generated: %s*\n\n", time.Now().Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "**Tier:** %s %s\n\n", categoryEmoji(state.Tier), state.Tier)

	if len(state.Queue) == 0 {
		fmt.Fprintln(w, "All clear. Nothing queued in this tier.")
	} else {
		for i, task := range state.Queue {
			fmt.Fprintf(w, "%d. **%s** (urgency %d, importance %d)\n",
				i+1, task.Title, task.UrgencyScore, task.ImportanceScore)
			fmt.Fprintf(w, "   - %s\n", task.Reason)
			fmt.Fprintf(w, "   - Next step: %s\n", task.SuggestedAction)
		}
	}

	d := state.Analysis.Distribution
	fmt.Fprintln(w, "\n## Distribution")
	fmt.Fprintln(w, "| Category | Count |")
	fmt.Fprintln(w, "|----------|-------|")
	for _, c := range model.AllCategories {
		fmt.Fprintf(w, "| %s %s | %d |\n", categoryEmoji(c), c, d.Count(c))
	}
	fmt.Fprintf(w, "\n**Productivity score:** %d/100\n", state.Analysis.ProductivityScore)

	if len(state.Diagnostics) > 0 {
		fmt.Fprintln(w, "\n## Diagnostics")
		for _, diag := range state.Diagnostics {
			fmt.Fprintf(w, "- %s\n", diag)
		}
	}
	return nil
}

// FormatStream outputs raw inbox items as Markdown
func (f *MarkdownFormatter) FormatStream(items []model.InboxItem, w io.Writer) error {
	if len(items) == 0 {
		fmt.Fprintln(w, "No items found.")
		return nil
	}

	fmt.Fprintln(w, "# Inbox Stream")
	fmt.Fprintln(w)
	for _, item := range items {
		fmt.Fprintf(w, "### %s\n\n", item.Subject)
		fmt.Fprintf(w, "- **Source:** %s\n", item.Source.Display())
		fmt.Fprintf(w, "- **From:** %s\n", item.Sender)
		fmt.Fprintf(w, "- **Received:** %s\n", item.Timestamp.Format("2006-01-02 15:04"))
		fmt.Fprintf(w, "\n%s\n\n", item.Content)
	}
	return nil
}

// FormatPlan outputs the daily plan as Markdown
func (f *MarkdownFormatter) FormatPlan(plan *model.DailyPlan, w io.Writer) error {
	fmt.Fprintln(w, "# Daily Plan")
	fmt.Fprintf(w, "\n%s\n\n", plan.Summary)
	fmt.Fprintln(w, "| Time | Duration | Activity | Notes |")
	fmt.Fprintln(w, "|------|----------|----------|-------|")
	for _, item := range plan.Items {
		fmt.Fprintf(w, "| %s | %s | %s | %s |\n",
			item.Time, item.Duration, item.Activity, item.Notes)
	}
	return nil
}
