package oracle

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/google/uuid"

	"github.com/echodeck/echodeck/internal/model"
)

const chatSystemPrompt = `You are Echo Assistant, a helpful AI that helps the user manage their tasks.
You have read access to their current inbox and notifications:
%s

Answer the user's questions about their tasks, deadlines, or specific messages.
If the user asks to find or search for something, look through the inbox data provided.
Keep answers concise and helpful; use simple bullet points when listing items.`

// chatContextItem is the condensed per-item view seeded into the chat
// session. Content is capped to keep the context small.
type chatContextItem struct {
	Sender  string       `json:"sender"`
	Subject string       `json:"subject"`
	Content string       `json:"content"`
	Time    string       `json:"time"`
	Source  model.Source `json:"source"`
}

// ChatSession is a conversational session seeded with a condensed view of
// the current inbox. Not safe for concurrent use.
type ChatSession struct {
	client  *Client
	id      string
	system  string
	history []anthropic.MessageParam
}

// NewChatSession creates a chat session over the given items.
func (c *Client) NewChatSession(items []model.InboxItem) *ChatSession {
	condensed := make([]chatContextItem, 0, len(items))
	for _, item := range items {
		condensed = append(condensed, chatContextItem{
			Sender:  item.Sender,
			Subject: item.Subject,
			Content: truncate(item.Content, c.settings.ChatMaxChars),
			Time:    item.Timestamp.Format("2006-01-02 15:04"),
			Source:  item.Source,
		})
	}
	contextJSON, _ := json.Marshal(condensed)

	return &ChatSession{
		client: c,
		id:     uuid.NewString(),
		system: fmt.Sprintf(chatSystemPrompt, string(contextJSON)),
	}
}

// ID returns the session's identifier.
func (s *ChatSession) ID() string {
	return s.id
}

// Send streams the assistant's reply to the given message, invoking onChunk
// for each incremental text chunk, and returns the full reply. The exchange
// is appended to the session history on success.
func (s *ChatSession) Send(ctx context.Context, message string, onChunk func(string)) (string, error) {
	messages := append(append([]anthropic.MessageParam{}, s.history...),
		anthropic.NewUserMessage(anthropic.NewTextBlock(message)))

	stream := s.client.client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.client.settings.Model),
		MaxTokens: int64(s.client.settings.MaxTokens),
		Messages:  messages,
		System: []anthropic.TextBlockParam{
			{Text: s.system},
		},
	})

	var reply string
	for stream.Next() {
		event := stream.Current()
		switch eventVariant := event.AsAny().(type) {
		case anthropic.ContentBlockDeltaEvent:
			switch deltaVariant := eventVariant.Delta.AsAny().(type) {
			case anthropic.TextDelta:
				reply += deltaVariant.Text
				if onChunk != nil {
					onChunk(deltaVariant.Text)
				}
			}
		}
	}
	if err := stream.Err(); err != nil {
		return "", fmt.Errorf("chat stream failed: %w", err)
	}

	s.history = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(reply)))
	return reply, nil
}

// truncate caps s at max bytes of content, which is enough for the prompt
// context even when it splits a multibyte rune.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max]
}
