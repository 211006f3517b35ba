package model

// PlanItemType classifies a block in the generated daily plan.
type PlanItemType string

const (
	PlanFocus   PlanItemType = "focus"
	PlanMeeting PlanItemType = "meeting"
	PlanBreak   PlanItemType = "break"
	PlanRoutine PlanItemType = "routine"
)

// PlanItem is one scheduled block in the daily plan.
type PlanItem struct {
	Time     string       `json:"time"`     // e.g. "09:00 AM"
	Activity string       `json:"activity"`
	Type     PlanItemType `json:"type"`
	Duration string       `json:"duration"` // e.g. "45 mins"
	Notes    string       `json:"notes,omitempty"`
}

// DailyPlan is the scheduled plan built from the top-priority tasks.
// Generated at most once per session and cached.
type DailyPlan struct {
	Summary string     `json:"summary"`
	Items   []PlanItem `json:"items"`
}
