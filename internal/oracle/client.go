// Package oracle wraps the hosted language model behind the three contracts
// the dashboard consumes: priority classification, daily-plan generation,
// and the chat assistant.
package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/echodeck/echodeck/config"
	"github.com/echodeck/echodeck/internal/model"
)

// ErrNotConfigured indicates the oracle API key is missing. This is fatal
// for the session: no partial dashboard is rendered without a classifier.
var ErrNotConfigured = errors.New("oracle API key not configured (set ANTHROPIC_API_KEY)")

// Classifier is the classification oracle contract: given the session's
// items, produce a full analysis. Any failure must propagate to the caller.
type Classifier interface {
	AnalyzePriorities(ctx context.Context, items []model.InboxItem) (*model.AnalysisResult, error)
}

// Planner turns the top-priority tasks into a scheduled daily plan.
type Planner interface {
	GenerateDailyPlan(ctx context.Context, tasks []model.PrioritizedTask) (*model.DailyPlan, error)
}

// Client talks to the Anthropic API.
type Client struct {
	client   anthropic.Client
	settings config.OracleSettings
}

var (
	_ Classifier = (*Client)(nil)
	_ Planner    = (*Client)(nil)
)

// NewClient creates an oracle client. Returns ErrNotConfigured when no API
// key is available.
func NewClient(apiKey string, settings config.OracleSettings) (*Client, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}

	return &Client{
		client:   anthropic.NewClient(option.WithAPIKey(apiKey)),
		settings: settings,
	}, nil
}

// complete sends one user message with a system prompt and returns the text
// of the response.
func (c *Client) complete(ctx context.Context, system, prompt string) (string, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.settings.Model),
		MaxTokens: int64(c.settings.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call model API: %w", err)
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in model response")
}

// decodeJSON parses a JSON response into v, tolerating surrounding prose by
// extracting the outermost object when a direct parse fails.
func decodeJSON(responseText string, v any) error {
	if err := json.Unmarshal([]byte(responseText), v); err != nil {
		start := strings.Index(responseText, "{")
		end := strings.LastIndex(responseText, "}")
		if start >= 0 && end > start {
			if err2 := json.Unmarshal([]byte(responseText[start:end+1]), v); err2 == nil {
				return nil
			}
		}
		return fmt.Errorf("failed to parse model response: %w", err)
	}
	return nil
}
