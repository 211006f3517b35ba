package model

// TaskCategory is the business-domain tag attached to a prioritized task.
// Distinct from Category: this describes what kind of work it is, not how
// urgent it is.
type TaskCategory string

const (
	TaskClient   TaskCategory = "Client"
	TaskInternal TaskCategory = "Internal"
	TaskProject  TaskCategory = "Project"
	TaskAdmin    TaskCategory = "Admin"
)

// TaskOrigin discriminates how a prioritized task was produced.
type TaskOrigin string

const (
	// OriginRich marks a task authored directly by the classification oracle.
	OriginRich TaskOrigin = "rich"
	// OriginSynthetic marks a task synthesized locally for a classified item
	// the oracle did not elevate into its top subset.
	OriginSynthetic TaskOrigin = "synthetic"
)

// PrioritizedTask is a work unit derived from one inbox item.
type PrioritizedTask struct {
	ID              string       `json:"id"`
	OriginalItemID  string       `json:"originalItemId"`
	Title           string       `json:"title"`
	Summary         string       `json:"summary"`
	UrgencyScore    int          `json:"urgencyScore"`    // 1-10
	ImportanceScore int          `json:"importanceScore"` // 1-10
	Reason          string       `json:"reason"`
	SuggestedAction string       `json:"suggestedAction"`
	Category        TaskCategory `json:"category"`

	// Origin is an internal discriminator; the external shape is uniform.
	Origin TaskOrigin `json:"-"`
}

// Distribution counts classified items per category for one analysis run.
type Distribution struct {
	Urgent    int `json:"urgent"`
	Important int `json:"important"`
	Routine   int `json:"routine"`
	Noise     int `json:"noise"`
}

// Total returns the sum of all category counts.
func (d Distribution) Total() int {
	return d.Urgent + d.Important + d.Routine + d.Noise
}

// Count returns the count for a single category.
func (d Distribution) Count(c Category) int {
	switch c {
	case CategoryUrgent:
		return d.Urgent
	case CategoryImportant:
		return d.Important
	case CategoryRoutine:
		return d.Routine
	case CategoryNoise:
		return d.Noise
	default:
		return 0
	}
}

// AnalysisResult is the aggregate output of one classification run.
// Immutable once produced; replaced wholesale on refresh.
type AnalysisResult struct {
	TopPriorities       []PrioritizedTask    `json:"topPriorities"`
	ProductivityScore   int                  `json:"productivityScore"` // 0-100
	Distribution        Distribution         `json:"distribution"`
	ItemClassifications []ItemClassification `json:"itemClassifications"`
}

// EmptyAnalysis returns the zero-state result used when there is nothing to
// classify: a perfect productivity score and all counts at zero.
func EmptyAnalysis() *AnalysisResult {
	return &AnalysisResult{
		TopPriorities:       []PrioritizedTask{},
		ProductivityScore:   100,
		ItemClassifications: []ItemClassification{},
	}
}

// ClassificationsFor returns the ids of items classified into category,
// in classification order.
func (a *AnalysisResult) ClassificationsFor(category Category) []string {
	ids := make([]string, 0)
	for _, c := range a.ItemClassifications {
		if c.Category == category {
			ids = append(ids, c.ItemID)
		}
	}
	return ids
}

// RichTaskFor returns the oracle-authored task for an item id, if any.
func (a *AnalysisResult) RichTaskFor(itemID string) (PrioritizedTask, bool) {
	for _, t := range a.TopPriorities {
		if t.OriginalItemID == itemID {
			return t, true
		}
	}
	return PrioritizedTask{}, false
}
