package format

import "github.com/echodeck/echodeck/internal/model"

// Icon strings for display (renderers can apply their own styling)
const (
	EmailIcon    = "✉️"     // ✉️
	SlackIcon    = "\U0001F4AC"      // 💬
	JiraIcon     = "\U0001F41B"      // 🐛
	CalendarIcon = "\U0001F4C5"      // 📅

	// IconWidth is the display width reserved for the icon column (emoji=2 + space=1).
	IconWidth = 3
)

// SourceIcon returns the emoji shown for an item's originating source.
func SourceIcon(s model.Source) string {
	switch s {
	case model.SourceEmail:
		return EmailIcon
	case model.SourceSlack:
		return SlackIcon
	case model.SourceJira:
		return JiraIcon
	case model.SourceCalendar:
		return CalendarIcon
	}
	return " "
}
