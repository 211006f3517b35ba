package focus

import (
	"fmt"

	"github.com/echodeck/echodeck/config"
	"github.com/echodeck/echodeck/internal/model"
)

// Placeholder text used when the underlying item carries no usable text.
const (
	untitledTitle  = "Untitled Item"
	noContentText  = "No content available."
	fallbackAction = "Review and process."
)

// Heuristics synthesizes stand-in tasks for classified items the oracle did
// not elevate into its top subset.
type Heuristics struct {
	Weights config.ScoreWeights
}

// NewHeuristics creates a synthetic-task scorer with the given weights.
func NewHeuristics(weights config.ScoreWeights) *Heuristics {
	return &Heuristics{Weights: weights}
}

// Scores returns the fixed urgency/importance pair for an item sitting in
// the given tier.
func (h *Heuristics) Scores(tier model.Category) (urgency, importance int) {
	switch tier {
	case model.CategoryUrgent:
		return h.Weights.UrgentUrgency, h.Weights.UrgentImportance
	case model.CategoryImportant:
		return h.Weights.ImportantUrgency, h.Weights.ImportantImportance
	default:
		return h.Weights.RoutineUrgency, h.Weights.RoutineImportance
	}
}

// Synthesize builds a synthetic task for an item classified into tier.
// Title and summary come from the raw item, with literal placeholders when
// the item text is empty.
func (h *Heuristics) Synthesize(item model.InboxItem, tier model.Category) model.PrioritizedTask {
	urgency, importance := h.Scores(tier)

	title := item.Subject
	if title == "" {
		title = untitledTitle
	}
	summary := item.Content
	if summary == "" {
		summary = noContentText
	}

	return model.PrioritizedTask{
		ID:              "synthetic-" + item.ID,
		OriginalItemID:  item.ID,
		Title:           title,
		Summary:         summary,
		UrgencyScore:    urgency,
		ImportanceScore: importance,
		Reason:          fmt.Sprintf("Classified as %s based on initial analysis.", tier),
		SuggestedAction: fallbackAction,
		Category:        model.TaskInternal,
		Origin:          model.OriginSynthetic,
	}
}
