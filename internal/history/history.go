// Package history records completed tasks for achievement display.
package history

import "github.com/echodeck/echodeck/internal/model"

// Log is an append-only ordered record of completed task snapshots.
// Entries are copies taken at completion time; they never change afterwards,
// even if the live queue or tier moves on. Cleared only on session reset.
type Log struct {
	entries []model.PrioritizedTask
}

// New creates an empty history log.
func New() *Log {
	return &Log{}
}

// Append records a completed task snapshot.
func (l *Log) Append(task model.PrioritizedTask) {
	l.entries = append(l.entries, task)
}

// Len returns the number of completed tasks recorded.
func (l *Log) Len() int {
	return len(l.entries)
}

// All returns every entry in completion order. The result is a copy.
func (l *Log) All() []model.PrioritizedTask {
	out := make([]model.PrioritizedTask, len(l.entries))
	copy(out, l.entries)
	return out
}

// Recent returns the most recent k entries, newest last. k larger than the
// log returns everything.
func (l *Log) Recent(k int) []model.PrioritizedTask {
	if k <= 0 {
		return []model.PrioritizedTask{}
	}
	start := len(l.entries) - k
	if start < 0 {
		start = 0
	}
	out := make([]model.PrioritizedTask, len(l.entries)-start)
	copy(out, l.entries[start:])
	return out
}

// Clear discards all entries.
func (l *Log) Clear() {
	l.entries = nil
}
