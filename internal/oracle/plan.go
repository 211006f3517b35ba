package oracle

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/echodeck/echodeck/internal/log"
	"github.com/echodeck/echodeck/internal/model"
)

const planSystemPrompt = `You build structured, realistic daily schedules.
Respond with a single JSON object matching this shape exactly:
{
  "summary": "a short motivational summary of the plan",
  "items": [
    {
      "time": "e.g. '09:00 AM'",
      "activity": "the main task or activity name",
      "type": "focus" | "meeting" | "break" | "routine",
      "duration": "e.g. '45 mins'",
      "notes": "optional short detail"
    }
  ]
}

Rules:
- Build an hour-by-hour 8-hour workday starting at 9:00 AM.
- Allocate deep work blocks for the most urgent tasks first.
- Include short breaks and a block for checking email and routine comms.

Respond ONLY with the JSON object, no other text.`

// GenerateDailyPlan asks the oracle to schedule the given high-priority
// tasks into an 8-hour day. The caller is responsible for per-session
// caching; this always invokes the model.
func (c *Client) GenerateDailyPlan(ctx context.Context, tasks []model.PrioritizedTask) (*model.DailyPlan, error) {
	payload, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize tasks: %w", err)
	}

	prompt := "Create a daily schedule fitting in these high-priority tasks:\n\n" + string(payload)

	log.Debug("requesting daily plan", "tasks", len(tasks))

	responseText, err := c.complete(ctx, planSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	var plan model.DailyPlan
	if err := decodeJSON(responseText, &plan); err != nil {
		return nil, err
	}
	if plan.Summary == "" && len(plan.Items) == 0 {
		return nil, fmt.Errorf("model returned an empty plan")
	}

	return &plan, nil
}
