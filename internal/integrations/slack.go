package integrations

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/echodeck/echodeck/internal/model"
)

const slackBaseURL = "https://slack.com/api"

type slackChannelList struct {
	OK       bool   `json:"ok"`
	Error    string `json:"error"`
	Channels []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"channels"`
}

type slackHistory struct {
	OK       bool   `json:"ok"`
	Error    string `json:"error"`
	Messages []struct {
		TS   string `json:"ts"`
		User string `json:"user"`
		Text string `json:"text"`
	} `json:"messages"`
}

// fetchSlack reads recent history from the first public channel. Slack
// reports API errors inside a 200 response via its ok/error envelope, so
// both layers are checked.
func fetchSlack(ctx context.Context, token string) ([]model.InboxItem, error) {
	client := http.DefaultClient
	auth := map[string]string{"Authorization": "Bearer " + token}

	var list slackChannelList
	listURL := fmt.Sprintf("%s/conversations.list?limit=5&types=public_channel", slackBaseURL)
	if err := getJSON(ctx, client, listURL, auth, &list); err != nil {
		return nil, err
	}
	if !list.OK {
		return nil, fmt.Errorf("channel list error: %s", list.Error)
	}
	if len(list.Channels) == 0 {
		return nil, fmt.Errorf("no public channels found in this workspace")
	}

	channel := list.Channels[0]

	var history slackHistory
	historyURL := fmt.Sprintf("%s/conversations.history?channel=%s&limit=10", slackBaseURL, channel.ID)
	if err := getJSON(ctx, client, historyURL, auth, &history); err != nil {
		return nil, err
	}
	if !history.OK {
		return nil, fmt.Errorf("history error: %s", history.Error)
	}

	items := make([]model.InboxItem, 0, len(history.Messages))
	for _, msg := range history.Messages {
		sender := msg.User
		if sender == "" {
			sender = "Slack User"
		}

		ts := time.Now()
		if secs, err := strconv.ParseFloat(msg.TS, 64); err == nil {
			ts = time.Unix(int64(secs), 0)
		}

		items = append(items, model.InboxItem{
			ID:        "slack-" + msg.TS,
			Source:    model.SourceSlack,
			Sender:    sender,
			Subject:   fmt.Sprintf("Message in #%s", channel.Name),
			Content:   msg.Text,
			Timestamp: ts,
		})
	}

	return items, nil
}
