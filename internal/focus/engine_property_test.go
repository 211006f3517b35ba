package focus

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"github.com/echodeck/echodeck/config"
	"github.com/echodeck/echodeck/internal/history"
	"github.com/echodeck/echodeck/internal/model"
	"github.com/echodeck/echodeck/internal/store"
)

// buildEngine derives a queue over n urgent items, each with a rich task.
func buildEngine(n int) *Engine {
	items := make([]model.InboxItem, 0, n)
	rich := make([]model.PrioritizedTask, 0, n)
	classifications := make([]model.ItemClassification, 0, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("i%d", i)
		items = append(items, makeItem(id, "subject", "content"))
		rich = append(rich, makeRich(fmt.Sprintf("t%d", i), id, 1+i%10, 5))
		classifications = append(classifications, model.ItemClassification{
			ItemID:   id,
			Category: model.CategoryUrgent,
		})
	}

	e := NewEngine(NewHeuristics(config.DefaultScoreWeights()), history.New())
	e.Reset(&model.AnalysisResult{
		TopPriorities:       rich,
		Distribution:        model.Distribution{Urgent: n},
		ItemClassifications: classifications,
	}, store.New(items))
	return e
}

// TestCompletedTasksNeverReappear verifies that once a task is completed it
// stays out of the queue through any sequence of reorders and completions.
func TestCompletedTasksNeverReappear(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(2, 12).Draw(rt, "items")
		e := buildEngine(n)

		completed := make(map[string]struct{})
		steps := rapid.IntRange(1, 30).Draw(rt, "steps")

		for s := 0; s < steps && e.QueueLen() > 0; s++ {
			queue := e.Queue()
			idx := rapid.IntRange(0, len(queue)-1).Draw(rt, "idx")

			if rapid.Bool().Draw(rt, "complete") {
				task := queue[idx]
				if !e.CompleteTask(task.ID) {
					rt.Fatalf("CompleteTask(%s) = false for a live task", task.ID)
				}
				completed[task.ID] = struct{}{}
			} else if len(queue) > 1 {
				target := rapid.IntRange(0, len(queue)-1).Draw(rt, "target")
				e.Reorder(queue[idx].ID, queue[target].ID)
			}

			for _, task := range e.Queue() {
				if _, done := completed[task.ID]; done {
					rt.Fatalf("completed task %s reappeared in the queue", task.ID)
				}
			}
		}

		if e.CompletedCount() != len(completed) {
			rt.Fatalf("CompletedCount = %d, want %d", e.CompletedCount(), len(completed))
		}
	})
}

// TestReorderPreservesQueueMembership verifies that reordering is a pure
// permutation: no task is lost or duplicated.
func TestReorderPreservesQueueMembership(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(2, 12).Draw(rt, "items")
		e := buildEngine(n)

		before := make(map[string]int)
		for _, task := range e.Queue() {
			before[task.ID]++
		}

		moves := rapid.IntRange(1, 20).Draw(rt, "moves")
		for s := 0; s < moves; s++ {
			queue := e.Queue()
			from := rapid.IntRange(0, len(queue)-1).Draw(rt, "from")
			to := rapid.IntRange(0, len(queue)-1).Draw(rt, "to")
			e.Reorder(queue[from].ID, queue[to].ID)
		}

		after := make(map[string]int)
		for _, task := range e.Queue() {
			after[task.ID]++
		}

		if len(after) != len(before) {
			rt.Fatalf("queue has %d distinct tasks, want %d", len(after), len(before))
		}
		for id, count := range before {
			if after[id] != count {
				rt.Fatalf("task %s count = %d after reorders, want %d", id, after[id], count)
			}
		}
	})
}

// TestCompletionPreservesRelativeOrder verifies that completing any task
// leaves the remaining tasks in their prior relative order.
func TestCompletionPreservesRelativeOrder(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(2, 12).Draw(rt, "items")
		e := buildEngine(n)

		queue := e.Queue()
		idx := rapid.IntRange(0, len(queue)-1).Draw(rt, "idx")
		removed := queue[idx]

		if !e.CompleteTask(removed.ID) {
			rt.Fatalf("CompleteTask(%s) = false", removed.ID)
		}

		want := make([]string, 0, len(queue)-1)
		for _, task := range queue {
			if task.ID != removed.ID {
				want = append(want, task.ID)
			}
		}

		got := e.Queue()
		if len(got) != len(want) {
			rt.Fatalf("queue length = %d, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i].ID != want[i] {
				rt.Fatalf("queue[%d] = %s, want %s", i, got[i].ID, want[i])
			}
		}
	})
}
