// Package model contains domain types for the echodeck dashboard.
// These types are independent of any integration or model-provider library.
package model

import "time"

// Source identifies which integration an inbox item came from.
type Source string

const (
	SourceEmail    Source = "email"
	SourceSlack    Source = "slack"
	SourceJira     Source = "jira"
	SourceCalendar Source = "calendar"
)

// AllSources contains every valid source value.
// This is the single source of truth for valid sources.
var AllSources = []Source{
	SourceEmail,
	SourceSlack,
	SourceJira,
	SourceCalendar,
}

// ParseSource converts a string to a Source, returning false for unknown values.
func ParseSource(s string) (Source, bool) {
	for _, src := range AllSources {
		if string(src) == s {
			return src, true
		}
	}
	return "", false
}

// Display returns a human-readable source name.
func (s Source) Display() string {
	switch s {
	case SourceEmail:
		return "Email"
	case SourceSlack:
		return "Slack"
	case SourceJira:
		return "Jira"
	case SourceCalendar:
		return "Calendar"
	default:
		return string(s)
	}
}

// InboxItem is one unit of incoming communication, normalized across sources.
// Items are immutable once created and live for a single session.
type InboxItem struct {
	ID        string    `json:"id"`
	Source    Source    `json:"source"`
	Sender    string    `json:"sender"`
	Subject   string    `json:"subject"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

// Category is a priority tier assigned by classification.
// Urgent, Important and Routine are actionable work tiers; Noise is
// classified but never queued.
type Category string

const (
	CategoryUrgent    Category = "Urgent"
	CategoryImportant Category = "Important"
	CategoryRoutine   Category = "Routine"
	CategoryNoise     Category = "Noise"
)

// WorkTiers lists the actionable tiers in strict priority order.
var WorkTiers = []Category{
	CategoryUrgent,
	CategoryImportant,
	CategoryRoutine,
}

// AllCategories contains every valid category, work tiers first.
var AllCategories = []Category{
	CategoryUrgent,
	CategoryImportant,
	CategoryRoutine,
	CategoryNoise,
}

// ParseCategory converts a string to a Category, returning false for
// unknown values.
func ParseCategory(s string) (Category, bool) {
	for _, c := range AllCategories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// IsWorkTier reports whether the category is one of the three queueable tiers.
func (c Category) IsWorkTier() bool {
	return c == CategoryUrgent || c == CategoryImportant || c == CategoryRoutine
}

// Next returns the tier that follows c in the workflow, and false when c is
// the terminal Routine tier (or not a work tier at all).
func (c Category) Next() (Category, bool) {
	switch c {
	case CategoryUrgent:
		return CategoryImportant, true
	case CategoryImportant:
		return CategoryRoutine, true
	default:
		return "", false
	}
}

// ItemClassification pairs an inbox item id with exactly one category.
type ItemClassification struct {
	ItemID   string   `json:"itemId"`
	Category Category `json:"category"`
}
