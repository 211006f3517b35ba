package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/echodeck/echodeck/internal/log"
	"github.com/echodeck/echodeck/internal/model"
)

const analyzeSystemPrompt = `You are an expert Executive Productivity Assistant.
You analyze a list of incoming communications (emails, Slack messages, Jira tickets, calendar events) and respond with a single JSON object matching this shape exactly:
{
  "topPriorities": [
    {
      "id": "a unique id for the priority item",
      "originalItemId": "the id of the input item",
      "title": "a concise action-oriented title",
      "summary": "brief summary of the issue",
      "urgencyScore": 1-10,
      "importanceScore": 1-10,
      "reason": "why this is prioritized",
      "suggestedAction": "next step, e.g. 'Reply immediately'",
      "category": "Client" | "Internal" | "Project" | "Admin"
    }
  ],
  "productivityScore": 0-100,
  "distribution": { "urgent": n, "important": n, "routine": n, "noise": n },
  "itemClassifications": [ { "itemId": "...", "category": "Urgent" | "Important" | "Routine" | "Noise" } ]
}

Rules:
- Classify EVERY input item into exactly one category; itemClassifications must contain one entry per input item, no more, no less.
- Distribution counts must sum to the number of input items.
- topPriorities holds only the %d-%d most critical items, judged by urgency (time sensitivity) and importance (business impact); every originalItemId must be an input item id.
- The productivity score reflects the ratio of urgent work to noise.

Respond ONLY with the JSON object, no other text.`

// AnalyzePriorities asks the oracle to classify and prioritize the session's
// items. Empty input short-circuits to the zero-state result without calling
// the model. The response is validated against the classification contract;
// a malformed or contract-violating response is a hard error.
func (c *Client) AnalyzePriorities(ctx context.Context, items []model.InboxItem) (*model.AnalysisResult, error) {
	if len(items) == 0 {
		return model.EmptyAnalysis(), nil
	}

	payload, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize items: %w", err)
	}

	system := fmt.Sprintf(analyzeSystemPrompt, c.settings.TopMin, c.settings.TopMax)
	prompt := "Analyze the following incoming communications:\n\n" + string(payload)

	log.Debug("requesting analysis", "items", len(items), "model", c.settings.Model)

	responseText, err := c.complete(ctx, system, prompt)
	if err != nil {
		return nil, err
	}

	var result model.AnalysisResult
	if err := decodeJSON(responseText, &result); err != nil {
		return nil, err
	}

	normalizeAnalysis(&result)

	if err := ValidateAnalysis(items, &result); err != nil {
		return nil, fmt.Errorf("model response violates classification contract: %w", err)
	}

	return &result, nil
}

// normalizeAnalysis repairs cosmetic gaps that do not violate the contract:
// missing task ids get generated ones, scores are clamped to their ranges,
// and top-priority tasks are tagged with the rich origin.
func normalizeAnalysis(result *model.AnalysisResult) {
	for i := range result.TopPriorities {
		t := &result.TopPriorities[i]
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		t.UrgencyScore = clamp(t.UrgencyScore, 1, 10)
		t.ImportanceScore = clamp(t.ImportanceScore, 1, 10)
		t.Origin = model.OriginRich
	}
	result.ProductivityScore = clamp(result.ProductivityScore, 0, 100)
}

// ValidateAnalysis checks the classification contract over the input set:
// every item classified exactly once, top priorities a subset of the input,
// and distribution counts summing to the input length.
func ValidateAnalysis(items []model.InboxItem, result *model.AnalysisResult) error {
	inputIDs := make(map[string]struct{}, len(items))
	for _, item := range items {
		inputIDs[item.ID] = struct{}{}
	}

	seen := make(map[string]struct{}, len(result.ItemClassifications))
	for _, c := range result.ItemClassifications {
		if _, ok := inputIDs[c.ItemID]; !ok {
			return fmt.Errorf("classification references unknown item %q", c.ItemID)
		}
		if _, dup := seen[c.ItemID]; dup {
			return fmt.Errorf("item %q classified more than once", c.ItemID)
		}
		if _, ok := model.ParseCategory(string(c.Category)); !ok {
			return fmt.Errorf("item %q has invalid category %q", c.ItemID, c.Category)
		}
		seen[c.ItemID] = struct{}{}
	}
	if len(seen) != len(items) {
		missing := make([]string, 0)
		for _, item := range items {
			if _, ok := seen[item.ID]; !ok {
				missing = append(missing, item.ID)
			}
		}
		return fmt.Errorf("classification not total: missing %s", strings.Join(missing, ", "))
	}

	for _, t := range result.TopPriorities {
		if _, ok := inputIDs[t.OriginalItemID]; !ok {
			return fmt.Errorf("top priority %q references unknown item %q", t.ID, t.OriginalItemID)
		}
	}

	if got := result.Distribution.Total(); got != len(items) {
		return fmt.Errorf("distribution counts sum to %d, want %d", got, len(items))
	}

	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
