// Package session owns all state scoped to one dashboard session: the
// credentials, the current analysis, the focus engine, the completion
// history and the cached daily plan. A session lives from connect until the
// next full refresh rebuilds its derived state.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	appconfig "github.com/echodeck/echodeck/config"
	"github.com/echodeck/echodeck/internal/focus"
	"github.com/echodeck/echodeck/internal/history"
	"github.com/echodeck/echodeck/internal/integrations"
	"github.com/echodeck/echodeck/internal/log"
	"github.com/echodeck/echodeck/internal/model"
	"github.com/echodeck/echodeck/internal/oracle"
	"github.com/echodeck/echodeck/internal/store"
	"github.com/echodeck/echodeck/internal/stream"
)

// ErrRefreshInFlight rejects a refresh issued while one is already pending.
// There is no cancellation primitive; the new request is gated out rather
// than raced.
var ErrRefreshInFlight = errors.New("a refresh is already in progress")

// criticalFetchDiagnostic is the single message surfaced when the aggregate
// fetch itself fails with credentials present.
const criticalFetchDiagnostic = "System Error: Unable to attempt connections."

// ItemFetcher is the integration adapter contract consumed by the session.
type ItemFetcher interface {
	FetchAll(ctx context.Context, creds model.UserCredentials) (*integrations.Result, error)
}

// Config assembles a session's collaborators.
type Config struct {
	Credentials model.UserCredentials
	Classifier  oracle.Classifier
	Planner     oracle.Planner
	Fetcher     ItemFetcher
	Weights     appconfig.ScoreWeights
}

// Session is the single writer of all session state. Mutations run to
// completion under one lock; the fetch/classify/plan calls themselves run
// outside it so the session stays responsive while suspended on the network.
type Session struct {
	creds      model.UserCredentials
	classifier oracle.Classifier
	planner    oracle.Planner
	fetcher    ItemFetcher

	mu          sync.Mutex
	items       *store.ItemStore
	analysis    *model.AnalysisResult
	engine      *focus.Engine
	hist        *history.Log
	plan        *model.DailyPlan
	diagnostics []string
	demoMode    bool

	refreshing atomic.Bool
}

// New creates a session with empty state. Call Refresh to populate it.
func New(cfg Config) *Session {
	hist := history.New()
	return &Session{
		creds:      cfg.Credentials,
		classifier: cfg.Classifier,
		planner:    cfg.Planner,
		fetcher:    cfg.Fetcher,
		items:      store.Empty(),
		analysis:   model.EmptyAnalysis(),
		engine:     focus.NewEngine(focus.NewHeuristics(cfg.Weights), hist),
		hist:       hist,
	}
}

// Refreshing reports whether a refresh is currently pending.
func (s *Session) Refreshing() bool {
	return s.refreshing.Load()
}

// Refresh fetches items from the integrations and runs a fresh
// classification, then atomically replaces the item store, analysis and all
// derived engine state. A second refresh while one is pending returns
// ErrRefreshInFlight.
//
// On classification failure the prior analysis and queue are retained so
// the dashboard does not blank out; the error is surfaced for a
// user-initiated retry.
func (s *Session) Refresh(ctx context.Context) error {
	if !s.refreshing.CompareAndSwap(false, true) {
		return ErrRefreshInFlight
	}
	defer s.refreshing.Store(false)

	var (
		items       []model.InboxItem
		diagnostics []string
		demoMode    bool
	)

	if s.creds.Configured() {
		result, err := s.fetcher.FetchAll(ctx, s.creds)
		if err != nil {
			// Critical failure with real credentials: show an empty inbox
			// rather than pretending demo data is the user's.
			log.Error("critical fetch failure", "error", err)
			diagnostics = []string{criticalFetchDiagnostic}
		} else {
			items = result.Items
			diagnostics = result.Errors
		}
	} else {
		items = integrations.DemoItems()
		demoMode = true
	}

	analysis, err := s.classifier.AnalyzePriorities(ctx, items)
	if err != nil {
		s.mu.Lock()
		s.diagnostics = diagnostics
		s.mu.Unlock()
		return fmt.Errorf("failed to analyze priorities: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = store.New(items)
	s.analysis = analysis
	s.diagnostics = diagnostics
	s.demoMode = demoMode
	s.plan = nil
	s.engine.Reset(analysis, s.items)

	log.Info("session refreshed",
		"items", s.items.Len(),
		"topPriorities", len(analysis.TopPriorities),
		"tier", s.engine.Tier())

	return nil
}

// CompleteTask marks a live task done and auto-advances the tier when the
// queue drains. Unknown ids are a no-op. Advance is suppressed while a
// refresh is pending.
func (s *Session) CompleteTask(taskID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.engine.CompleteTask(taskID) {
		return false
	}
	if !s.refreshing.Load() {
		s.engine.AdvanceTierIfEmpty()
	}
	return true
}

// Reorder splices the task at taskID to targetTaskID's position.
func (s *Session) Reorder(taskID, targetTaskID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Reorder(taskID, targetTaskID)
}

// SetTier switches the focus tier manually.
func (s *Session) SetTier(tier model.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.SetTier(tier)
}

// Plan returns the session's daily plan, generating it on first request and
// caching it for the rest of the session. A failed generation leaves the
// no-plan state; the next call retries.
func (s *Session) Plan(ctx context.Context) (*model.DailyPlan, error) {
	s.mu.Lock()
	if s.plan != nil {
		plan := s.plan
		s.mu.Unlock()
		return plan, nil
	}
	tasks := s.analysis.TopPriorities
	s.mu.Unlock()

	plan, err := s.planner.GenerateDailyPlan(ctx, tasks)
	if err != nil {
		return nil, fmt.Errorf("failed to generate daily plan: %w", err)
	}

	s.mu.Lock()
	s.plan = plan
	s.mu.Unlock()
	return plan, nil
}

// Stream returns the filtered side-stream view of the raw items.
func (s *Session) Stream(f stream.Filter) []model.InboxItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return stream.Apply(s.items.Items(), s.analysis.ItemClassifications, f)
}

// CategoryOf returns the classified category for an item id.
func (s *Session) CategoryOf(itemID string) (model.Category, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return stream.CategoryOf(s.analysis.ItemClassifications, itemID)
}

// Item looks up a raw inbox item by id.
func (s *Session) Item(id string) (model.InboxItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.Get(id)
}

// History returns the most recent k completed task snapshots.
func (s *Session) History(k int) []model.PrioritizedTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist.Recent(k)
}

// State is a point-in-time snapshot of everything the dashboard renders.
type State struct {
	Tier           model.Category          `json:"tier"`
	Queue          []model.PrioritizedTask `json:"queue"`
	Analysis       *model.AnalysisResult   `json:"analysis"`
	ItemCount      int                     `json:"itemCount"`
	CompletedCount int                     `json:"completedCount"`
	Diagnostics    []string                `json:"diagnostics"`
	DemoMode       bool                    `json:"demoMode"`
	Refreshing     bool                    `json:"refreshing"`
}

// Snapshot returns a consistent view of the current session state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return State{
		Tier:           s.engine.Tier(),
		Queue:          s.engine.Queue(),
		Analysis:       s.analysis,
		ItemCount:      s.items.Len(),
		CompletedCount: s.engine.CompletedCount(),
		Diagnostics:    append([]string(nil), s.diagnostics...),
		DemoMode:       s.demoMode,
		Refreshing:     s.refreshing.Load(),
	}
}
