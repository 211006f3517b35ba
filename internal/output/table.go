package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/echodeck/echodeck/internal/format"
	"github.com/echodeck/echodeck/internal/model"
	"github.com/echodeck/echodeck/internal/session"
)

// TableFormatter formats output as a terminal table
type TableFormatter struct{}

// colorTier renders a tier name in its conventional color.
func colorTier(c model.Category) string {
	switch c {
	case model.CategoryUrgent:
		return color.RedString(string(c))
	case model.CategoryImportant:
		return color.YellowString(string(c))
	case model.CategoryRoutine:
		return color.CyanString(string(c))
	case model.CategoryNoise:
		return color.HiBlackString(string(c))
	default:
		return string(c)
	}
}

func colorScore(score int) string {
	s := fmt.Sprintf("%2d", score)
	switch {
	case score >= 8:
		return color.RedString(s)
	case score >= 6:
		return color.YellowString(s)
	default:
		return color.CyanString(s)
	}
}

// FormatState renders the focus queue and session summary as a table.
func (f *TableFormatter) FormatState(state session.State, w io.Writer) error {
	fmt.Fprintf(w, "Focus tier: %s", colorTier(state.Tier))
	if state.DemoMode {
		fmt.Fprintf(w, "  %s", color.HiBlackString("(demo data)"))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)

	if len(state.Queue) == 0 {
		fmt.Fprintln(w, "All clear. Nothing queued in this tier.")
	} else {
		const (
			colScore    = 7
			colTitle    = 44
			colCategory = 9
			colAction   = 40
		)
		fmt.Fprintf(w, "%-*s  %-*s  %-*s  %s\n",
			colScore, "Urg/Imp",
			colTitle, "Task",
			colCategory, "Category",
			"Suggested action")
		fmt.Fprintln(w, strings.Repeat("-", colScore+colTitle+colCategory+colAction+6))

		for _, task := range state.Queue {
			title, titleWidth := format.TruncateToWidth(task.Title, colTitle)
			action, _ := format.TruncateToWidth(task.SuggestedAction, colAction)
			fmt.Fprintf(w, "%s/%s  %s  %-*s  %s\n",
				colorScore(task.UrgencyScore),
				colorScore(task.ImportanceScore),
				format.PadRight(title, titleWidth, colTitle),
				colCategory, string(task.Category),
				action)
		}
	}

	fmt.Fprintln(w)
	printSummary(state, w)
	return nil
}

// printSummary writes the footer line with distribution and score.
func printSummary(state session.State, w io.Writer) {
	d := state.Analysis.Distribution
	fmt.Fprintf(w, "%d items | %s %d  %s %d  %s %d  %s %d | score %d/100 | %d done\n",
		state.ItemCount,
		colorTier(model.CategoryUrgent), d.Urgent,
		colorTier(model.CategoryImportant), d.Important,
		colorTier(model.CategoryRoutine), d.Routine,
		colorTier(model.CategoryNoise), d.Noise,
		state.Analysis.ProductivityScore,
		state.CompletedCount)

	for _, diag := range state.Diagnostics {
		fmt.Fprintf(w, "%s %s\n", color.RedString("!"), diag)
	}
}

// FormatStream renders raw inbox items as a table.
func (f *TableFormatter) FormatStream(items []model.InboxItem, w io.Writer) error {
	if len(items) == 0 {
		fmt.Fprintln(w, "No items found.")
		return nil
	}

	const (
		colSource  = 8
		colSender  = 22
		colSubject = 44
		colAge     = 5
	)
	fmt.Fprintf(w, "%-*s  %-*s  %-*s  %s\n",
		colSource, "Source",
		colSender, "Sender",
		colSubject, "Subject",
		"Age")
	fmt.Fprintln(w, strings.Repeat("-", colSource+colSender+colSubject+colAge+6))

	for _, item := range items {
		sender, senderWidth := format.TruncateToWidth(item.Sender, colSender)
		subject, subjectWidth := format.TruncateToWidth(item.Subject, colSubject)
		if !item.Read {
			subject = color.New(color.Bold).Sprint(subject)
		}
		fmt.Fprintf(w, "%-*s  %s  %s  %s\n",
			colSource, item.Source.Display(),
			format.PadRight(sender, senderWidth, colSender),
			format.PadRight(subject, subjectWidth, colSubject),
			format.Age(time.Since(item.Timestamp)))
	}
	return nil
}

// FormatPlan renders the daily plan as a table.
func (f *TableFormatter) FormatPlan(plan *model.DailyPlan, w io.Writer) error {
	fmt.Fprintln(w, plan.Summary)
	fmt.Fprintln(w)
	for _, item := range plan.Items {
		activity := item.Activity
		if item.Type == model.PlanFocus {
			activity = color.New(color.Bold).Sprint(activity)
		}
		fmt.Fprintf(w, "%-9s %-10s %s", item.Time, "("+item.Duration+")", activity)
		if item.Notes != "" {
			fmt.Fprintf(w, "  %s", color.HiBlackString(item.Notes))
		}
		fmt.Fprintln(w)
	}
	return nil
}
