// Package focus implements the tiered workflow engine: the state machine
// that derives the live ranked work queue from a classification run,
// handles completion and manual reordering, and advances through tiers as
// they empty.
package focus

import (
	"sort"

	"github.com/echodeck/echodeck/internal/history"
	"github.com/echodeck/echodeck/internal/model"
	"github.com/echodeck/echodeck/internal/store"
)

// Engine owns the live work queue for the current focus tier.
//
// Derivation is keyed on {analysis, tier} only. Completing a task never
// re-derives the queue: manual reordering survives completions and is only
// lost when the analysis or the tier changes.
type Engine struct {
	heuristics *Heuristics
	hist       *history.Log

	tier      model.Category
	analysis  *model.AnalysisResult
	items     *store.ItemStore
	queue     []model.PrioritizedTask
	completed map[string]struct{} // original item ids
}

// NewEngine creates an engine starting at the Urgent tier with an empty
// analysis. hist receives completed task snapshots.
func NewEngine(heuristics *Heuristics, hist *history.Log) *Engine {
	return &Engine{
		heuristics: heuristics,
		hist:       hist,
		tier:       model.CategoryUrgent,
		analysis:   model.EmptyAnalysis(),
		items:      store.Empty(),
		completed:  make(map[string]struct{}),
	}
}

// Tier returns the current focus tier. Always one of the three work tiers.
func (e *Engine) Tier() model.Category {
	return e.tier
}

// Queue returns the live ordered task queue. The result is a copy.
func (e *Engine) Queue() []model.PrioritizedTask {
	out := make([]model.PrioritizedTask, len(e.queue))
	copy(out, e.queue)
	return out
}

// QueueLen returns the number of live tasks.
func (e *Engine) QueueLen() int {
	return len(e.queue)
}

// Completed reports whether an original item id has been completed this
// session.
func (e *Engine) Completed(originalItemID string) bool {
	_, ok := e.completed[originalItemID]
	return ok
}

// CompletedCount returns the number of distinct completed items.
func (e *Engine) CompletedCount() int {
	return len(e.completed)
}

// Reset installs a fresh analysis run: completed ids and session history are
// cleared, the tier returns to Urgent unconditionally, and the queue is
// re-derived from scratch.
func (e *Engine) Reset(analysis *model.AnalysisResult, items *store.ItemStore) {
	if analysis == nil {
		analysis = model.EmptyAnalysis()
	}
	if items == nil {
		items = store.Empty()
	}
	e.analysis = analysis
	e.items = items
	e.completed = make(map[string]struct{})
	e.hist.Clear()
	e.tier = model.CategoryUrgent
	e.derive()
}

// SetTier switches the focus tier and re-derives the queue. Non-work tiers
// are rejected silently: the engine never focuses Noise.
func (e *Engine) SetTier(tier model.Category) {
	if !tier.IsWorkTier() || tier == e.tier {
		return
	}
	e.tier = tier
	e.derive()
}

// derive rebuilds the queue for the current tier from the current analysis:
// classified, uncompleted ids resolve to the oracle's rich task when one
// exists, otherwise to a synthesized stand-in; ids with no backing item are
// dropped. The result is sorted by urgency descending, stable for ties.
func (e *Engine) derive() {
	ids := e.analysis.ClassificationsFor(e.tier)

	tasks := make([]model.PrioritizedTask, 0, len(ids))
	for _, id := range ids {
		if _, done := e.completed[id]; done {
			continue
		}
		if rich, ok := e.analysis.RichTaskFor(id); ok {
			rich.Origin = model.OriginRich
			tasks = append(tasks, rich)
			continue
		}
		item, ok := e.items.Get(id)
		if !ok {
			continue
		}
		tasks = append(tasks, e.heuristics.Synthesize(item, e.tier))
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].UrgencyScore > tasks[j].UrgencyScore
	})

	e.queue = tasks
}

// CompleteTask records a task as done: its snapshot is appended to history,
// its original item is excluded from all future derivations, and it is
// removed from the queue with the remaining order untouched. Unknown task
// ids are a no-op.
func (e *Engine) CompleteTask(taskID string) bool {
	idx := e.indexOf(taskID)
	if idx < 0 {
		return false
	}

	task := e.queue[idx]
	e.hist.Append(task)
	e.completed[task.OriginalItemID] = struct{}{}
	e.queue = append(e.queue[:idx], e.queue[idx+1:]...)
	return true
}

// Reorder removes the task with taskID from its position and reinserts it
// at targetTaskID's position, shifting intervening tasks. This is the sole
// means of manual prioritization; the new order holds until the next
// derivation event. Returns false when either id is missing or they are
// equal.
func (e *Engine) Reorder(taskID, targetTaskID string) bool {
	if taskID == targetTaskID {
		return false
	}
	from := e.indexOf(taskID)
	to := e.indexOf(targetTaskID)
	if from < 0 || to < 0 {
		return false
	}

	moved := e.queue[from]
	e.queue = append(e.queue[:from], e.queue[from+1:]...)
	e.queue = append(e.queue[:to], append([]model.PrioritizedTask{moved}, e.queue[to:]...)...)
	return true
}

// Remaining counts uncompleted classified items for a tier.
func (e *Engine) Remaining(tier model.Category) int {
	count := 0
	for _, c := range e.analysis.ItemClassifications {
		if c.Category != tier {
			continue
		}
		if _, done := e.completed[c.ItemID]; done {
			continue
		}
		count++
	}
	return count
}

// AdvanceTierIfEmpty moves to the next tier with remaining work once the
// current queue has fully drained. Urgent falls through to Important and
// then Routine; Important falls through to Routine; Routine is terminal
// (the all-clear state persists). Returns true when the tier changed, which
// also re-derives the queue.
func (e *Engine) AdvanceTierIfEmpty() bool {
	if len(e.queue) != 0 || e.Remaining(e.tier) != 0 {
		return false
	}

	next := e.tier
	for {
		n, ok := next.Next()
		if !ok {
			return false
		}
		next = n
		if e.Remaining(next) > 0 {
			e.tier = next
			e.derive()
			return true
		}
	}
}

func (e *Engine) indexOf(taskID string) int {
	for i, t := range e.queue {
		if t.ID == taskID {
			return i
		}
	}
	return -1
}
