package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/echodeck/echodeck/internal/format"
	"github.com/echodeck/echodeck/internal/model"
)

// headerLines + footerLines reserve space around the scrollable list
const (
	headerLines = 3
	footerLines = 3
)

// renderDashboard renders the complete dashboard view
func renderDashboard(m DashboardModel) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(renderTabBar(m))
	b.WriteString("\n\n")

	switch m.activePane {
	case PaneStream:
		renderStreamPane(&b, m)
	case PanePlan:
		renderPlanPane(&b, m)
	default:
		renderFocusPane(&b, m)
	}

	b.WriteString("\n")
	b.WriteString(renderHelp(m))

	if m.statusMsg != "" {
		b.WriteString("\n")
		if m.statusIsErr {
			b.WriteString(errorStyle.Render(m.statusMsg))
		} else {
			b.WriteString(statusStyle.Render(m.statusMsg))
		}
	}
	return b.String()
}

func renderTabBar(m DashboardModel) string {
	tabs := []string{
		fmt.Sprintf("Focus: %s (%d)", m.state.Tier, len(m.state.Queue)),
		fmt.Sprintf("Stream (%d)", len(m.streamItems)),
		"Plan",
	}
	parts := make([]string, len(tabs))
	for i, tab := range tabs {
		if Pane(i) == m.activePane {
			parts[i] = tabActiveStyle.Render(tab)
		} else {
			parts[i] = tabInactiveStyle.Render(tab)
		}
	}
	bar := "  " + strings.Join(parts, dimStyle.Render("  |  "))
	if m.state.DemoMode {
		bar += dimStyle.Render("   demo data")
	}
	if m.refreshing {
		bar += "   " + m.spin.View() + dimStyle.Render("refreshing")
	}
	return bar
}

func renderFocusPane(b *strings.Builder, m DashboardModel) {
	if len(m.state.Queue) == 0 {
		b.WriteString(allClearStyle.Render("  All clear!"))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("  Nothing queued in the " + string(m.state.Tier) + " tier."))
		b.WriteString("\n")
		return
	}

	titleWidth := m.windowWidth - 30
	if titleWidth < 20 {
		titleWidth = 20
	}

	start, end := scrollWindow(m.focusCursor, len(m.state.Queue), m.listHeight())
	for i := start; i < end; i++ {
		task := m.state.Queue[i]
		title, w := format.TruncateToWidth(task.Title, titleWidth)
		line := fmt.Sprintf(" %2d/%2d  %s  %s",
			task.UrgencyScore,
			task.ImportanceScore,
			format.PadRight(title, w, titleWidth),
			task.Category)

		switch {
		case i == m.focusCursor && m.moveMode:
			b.WriteString(moveStyle.Render("⇅" + line))
		case i == m.focusCursor:
			b.WriteString(selectedRowStyle.Render(">" + line))
		default:
			b.WriteString(rowStyle.Render(" " + line))
		}
		b.WriteString("\n")
	}

	if m.focusCursor < len(m.state.Queue) {
		task := m.state.Queue[m.focusCursor]
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("  " + task.Reason))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("  Next: " + task.SuggestedAction))
		b.WriteString("\n")
	}
}

func renderStreamPane(b *strings.Builder, m DashboardModel) {
	if len(m.streamItems) == 0 {
		b.WriteString(dimStyle.Render("  No items."))
		b.WriteString("\n")
		return
	}

	subjectWidth := m.windowWidth - 40
	if subjectWidth < 20 {
		subjectWidth = 20
	}

	start, end := scrollWindow(m.streamCursor, len(m.streamItems), m.listHeight())
	for i := start; i < end; i++ {
		item := m.streamItems[i]
		subject, w := format.TruncateToWidth(item.Subject, subjectWidth)
		sender, sw := format.TruncateToWidth(item.Sender, 20)
		line := fmt.Sprintf(" %s %s  %s  %4s",
			format.SourceIcon(item.Source),
			format.PadRight(sender, sw, 20),
			format.PadRight(subject, w, subjectWidth),
			format.Age(time.Since(item.Timestamp)))

		if category, ok := m.sess.CategoryOf(item.ID); ok {
			line += "  " + tierStyle(category).Render(string(category))
		}

		if i == m.streamCursor {
			b.WriteString(selectedRowStyle.Render(">" + line))
		} else {
			b.WriteString(rowStyle.Render(" " + line))
		}
		b.WriteString("\n")
	}
}

func renderPlanPane(b *strings.Builder, m DashboardModel) {
	if m.planPending {
		b.WriteString("  " + m.spin.View() + dimStyle.Render("Generating plan"))
		b.WriteString("\n")
		return
	}
	if m.plan == nil {
		b.WriteString(dimStyle.Render("  No plan yet. Press p to generate one."))
		b.WriteString("\n")
		return
	}

	b.WriteString("  " + m.plan.Summary + "\n\n")
	for _, item := range m.plan.Items {
		style := rowStyle
		if item.Type == model.PlanFocus {
			style = tabActiveStyle
		}
		b.WriteString(fmt.Sprintf("  %-9s %-10s %s\n",
			item.Time, "("+item.Duration+")", style.Render(item.Activity)))
		if item.Notes != "" {
			b.WriteString(dimStyle.Render("            " + item.Notes))
			b.WriteString("\n")
		}
	}
}

func renderHelp(m DashboardModel) string {
	help := "  j/k move  d done  m reorder  1/2/3 tier  tab pane  r refresh  p plan  q quit"
	if m.moveMode {
		help = "  j/k move task  m/esc done moving"
	}
	return helpStyle.Render(help)
}

func (m DashboardModel) listHeight() int {
	h := m.windowHeight - headerLines - footerLines - 4
	if h < 3 {
		h = 3
	}
	return h
}

// scrollWindow returns the visible slice bounds keeping the cursor in view.
func scrollWindow(cursor, total, height int) (int, int) {
	if total <= height {
		return 0, total
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	end := start + height
	if end > total {
		end = total
		start = end - height
	}
	return start, end
}
