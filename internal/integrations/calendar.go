package integrations

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/echodeck/echodeck/internal/model"
)

const calendarBaseURL = "https://www.googleapis.com/calendar/v3"

type calendarEvents struct {
	Items []struct {
		ID        string `json:"id"`
		Summary   string `json:"summary"`
		Descr     string `json:"description"`
		Organizer struct {
			Email string `json:"email"`
		} `json:"organizer"`
		Start struct {
			DateTime string `json:"dateTime"`
			Date     string `json:"date"`
		} `json:"start"`
	} `json:"items"`
}

// fetchCalendar returns upcoming events from the primary calendar as inbox
// items.
func fetchCalendar(ctx context.Context, token string) ([]model.InboxItem, error) {
	client := bearerClient(ctx, token)

	endpoint := fmt.Sprintf(
		"%s/calendars/primary/events?timeMin=%s&maxResults=5&singleEvents=true&orderBy=startTime",
		calendarBaseURL,
		url.QueryEscape(time.Now().Format(time.RFC3339)),
	)

	var events calendarEvents
	if err := getJSON(ctx, client, endpoint, nil, &events); err != nil {
		return nil, err
	}

	items := make([]model.InboxItem, 0, len(events.Items))
	for _, ev := range events.Items {
		start := eventStart(ev.Start.DateTime, ev.Start.Date)

		sender := ev.Organizer.Email
		if sender == "" {
			sender = "Calendar"
		}
		subject := ev.Summary
		if subject == "" {
			subject = "No Title"
		}
		content := ev.Descr
		if content == "" {
			content = fmt.Sprintf("Event at %s", start.Format("3:04 PM"))
		}

		items = append(items, model.InboxItem{
			ID:        "cal-" + ev.ID,
			Source:    model.SourceCalendar,
			Sender:    sender,
			Subject:   subject,
			Content:   content,
			Timestamp: start,
		})
	}

	return items, nil
}

// eventStart parses an event start, preferring the timed form over the
// all-day date form.
func eventStart(dateTime, date string) time.Time {
	if dateTime != "" {
		if t, err := time.Parse(time.RFC3339, dateTime); err == nil {
			return t
		}
	}
	if date != "" {
		if t, err := time.Parse("2006-01-02", date); err == nil {
			return t
		}
	}
	return time.Now()
}
