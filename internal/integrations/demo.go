package integrations

import (
	"time"

	"github.com/echodeck/echodeck/internal/model"
)

// DemoItems returns the fixed demo inbox used when no credentials are
// configured, or as a per-source substitute when a live fetch fails or
// comes back empty. Timestamps are relative so the stream always looks
// current.
func DemoItems() []model.InboxItem {
	now := time.Now()

	return []model.InboxItem{
		{
			ID:        "demo-email-1",
			Source:    model.SourceEmail,
			Sender:    "sarah.chen@acmecorp.com",
			Subject:   "URGENT: Contract renewal expires today",
			Content:   "Hi, the Acme Corp contract renewal needs your signature before 5 PM today or we lose the enterprise discount. Legal has already approved the redlines.",
			Timestamp: now.Add(-35 * time.Minute),
		},
		{
			ID:        "demo-email-2",
			Source:    model.SourceEmail,
			Sender:    "newsletter@saasweekly.io",
			Subject:   "This week in SaaS: 10 trends to watch",
			Content:   "Your weekly digest of everything happening in the SaaS world. Unsubscribe anytime.",
			Timestamp: now.Add(-3 * time.Hour),
			Read:      true,
		},
		{
			ID:        "demo-email-3",
			Source:    model.SourceEmail,
			Sender:    "finance@internal",
			Subject:   "Q3 expense reports due Friday",
			Content:   "Reminder: please submit outstanding expense reports through the portal by end of week.",
			Timestamp: now.Add(-26 * time.Hour),
		},
		{
			ID:        "demo-slack-1",
			Source:    model.SourceSlack,
			Sender:    "mike.torres",
			Subject:   "Message in #incidents",
			Content:   "Production API latency spiked to 3s after the last deploy. Can someone from platform take a look? Customers are noticing.",
			Timestamp: now.Add(-12 * time.Minute),
		},
		{
			ID:        "demo-slack-2",
			Source:    model.SourceSlack,
			Sender:    "jess.patel",
			Subject:   "Message in #design",
			Content:   "New onboarding mockups are up in Figma, feedback welcome by Thursday.",
			Timestamp: now.Add(-2 * time.Hour),
		},
		{
			ID:        "demo-slack-3",
			Source:    model.SourceSlack,
			Sender:    "random-bot",
			Subject:   "Message in #watercooler",
			Content:   "Friday trivia starts at 4! Bring your A game.",
			Timestamp: now.Add(-5 * time.Hour),
			Read:      true,
		},
		{
			ID:        "demo-jira-1",
			Source:    model.SourceJira,
			Sender:    "Dana Kim",
			Subject:   "PLAT-482",
			Content:   "Checkout flow throws 500 for users with expired saved cards. Affects ~2% of checkouts.",
			Timestamp: now.Add(-90 * time.Minute),
		},
		{
			ID:        "demo-jira-2",
			Source:    model.SourceJira,
			Sender:    "Omar Haddad",
			Subject:   "PLAT-466",
			Content:   "Update dependency pins for the reporting service. No user-facing impact.",
			Timestamp: now.Add(-48 * time.Hour),
		},
		{
			ID:        "demo-cal-1",
			Source:    model.SourceCalendar,
			Sender:    "calendar@internal",
			Subject:   "Board prep sync",
			Content:   "Review the metrics deck with the leadership team ahead of Thursday's board meeting.",
			Timestamp: now.Add(2 * time.Hour),
		},
		{
			ID:        "demo-cal-2",
			Source:    model.SourceCalendar,
			Sender:    "calendar@internal",
			Subject:   "1:1 with direct report",
			Content:   "Weekly 1:1. Agenda doc linked in the invite.",
			Timestamp: now.Add(26 * time.Hour),
		},
	}
}

// DemoItemsFor returns the demo subset for a single source.
func DemoItemsFor(source model.Source) []model.InboxItem {
	items := make([]model.InboxItem, 0)
	for _, item := range DemoItems() {
		if item.Source == source {
			items = append(items, item)
		}
	}
	return items
}
