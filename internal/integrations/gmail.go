package integrations

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/oauth2"

	"github.com/echodeck/echodeck/internal/model"
)

const gmailBaseURL = "https://gmail.googleapis.com/gmail/v1"

// bearerClient builds an HTTP client that attaches the given access token
// to every request.
func bearerClient(ctx context.Context, token string) *http.Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	return oauth2.NewClient(ctx, ts)
}

type gmailList struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

type gmailMessage struct {
	ID           string   `json:"id"`
	Snippet      string   `json:"snippet"`
	InternalDate string   `json:"internalDate"` // epoch millis as string
	LabelIDs     []string `json:"labelIds"`
	Payload      struct {
		Headers []struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		} `json:"headers"`
	} `json:"payload"`
}

// fetchGmail lists the most recent messages and resolves each into an inbox
// item. Messages whose detail fetch fails are skipped rather than failing
// the whole source.
func fetchGmail(ctx context.Context, token string) ([]model.InboxItem, error) {
	client := bearerClient(ctx, token)

	var list gmailList
	url := fmt.Sprintf("%s/users/me/messages?maxResults=10", gmailBaseURL)
	if err := getJSON(ctx, client, url, nil, &list); err != nil {
		return nil, err
	}

	items := make([]model.InboxItem, 0, len(list.Messages))
	for _, ref := range list.Messages {
		var msg gmailMessage
		detailURL := fmt.Sprintf("%s/users/me/messages/%s", gmailBaseURL, ref.ID)
		if err := getJSON(ctx, client, detailURL, nil, &msg); err != nil {
			continue
		}

		subject := "(No Subject)"
		sender := "Unknown"
		for _, h := range msg.Payload.Headers {
			switch h.Name {
			case "Subject":
				subject = h.Value
			case "From":
				sender = h.Value
			}
		}

		ts := time.Now()
		if millis, err := strconv.ParseInt(msg.InternalDate, 10, 64); err == nil {
			ts = time.UnixMilli(millis)
		}

		read := true
		for _, label := range msg.LabelIDs {
			if label == "UNREAD" {
				read = false
				break
			}
		}

		items = append(items, model.InboxItem{
			ID:        "gmail-" + msg.ID,
			Source:    model.SourceEmail,
			Sender:    sender,
			Subject:   subject,
			Content:   msg.Snippet,
			Timestamp: ts,
			Read:      read,
		})
	}

	return items, nil
}
