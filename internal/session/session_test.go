package session

import (
	"context"
	"errors"
	"testing"
	"time"

	appconfig "github.com/echodeck/echodeck/config"
	"github.com/echodeck/echodeck/internal/integrations"
	"github.com/echodeck/echodeck/internal/model"
)

type fakeClassifier struct {
	err   error
	calls int
}

// AnalyzePriorities classifies every item as Urgent with no rich tasks.
func (f *fakeClassifier) AnalyzePriorities(_ context.Context, items []model.InboxItem) (*model.AnalysisResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	result := model.EmptyAnalysis()
	for _, item := range items {
		result.ItemClassifications = append(result.ItemClassifications, model.ItemClassification{
			ItemID:   item.ID,
			Category: model.CategoryUrgent,
		})
		result.Distribution.Urgent++
	}
	return result, nil
}

type fakePlanner struct {
	err   error
	calls int
}

func (f *fakePlanner) GenerateDailyPlan(context.Context, []model.PrioritizedTask) (*model.DailyPlan, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &model.DailyPlan{
		Summary: "A focused day.",
		Items:   []model.PlanItem{{Time: "09:00 AM", Activity: "Deep work", Type: model.PlanFocus, Duration: "90 mins"}},
	}, nil
}

type fakeFetcher struct {
	result  *integrations.Result
	err     error
	started chan struct{} // closed-signal per call when non-nil
	release chan struct{} // blocks the fetch until closed when non-nil
}

func (f *fakeFetcher) FetchAll(ctx context.Context, _ model.UserCredentials) (*integrations.Result, error) {
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func testItems(ids ...string) []model.InboxItem {
	items := make([]model.InboxItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, model.InboxItem{ID: id, Subject: "s " + id, Content: "c"})
	}
	return items
}

func newTestSession(classifier *fakeClassifier, planner *fakePlanner, fetcher *fakeFetcher) *Session {
	return New(Config{
		Credentials: model.UserCredentials{SlackToken: "token"},
		Classifier:  classifier,
		Planner:     planner,
		Fetcher:     fetcher,
		Weights:     appconfig.DefaultScoreWeights(),
	})
}

func TestRefreshPopulatesState(t *testing.T) {
	fetcher := &fakeFetcher{result: &integrations.Result{Items: testItems("a", "b")}}
	sess := newTestSession(&fakeClassifier{}, &fakePlanner{}, fetcher)

	if err := sess.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh error = %v", err)
	}

	state := sess.Snapshot()
	if state.ItemCount != 2 {
		t.Errorf("ItemCount = %d, want 2", state.ItemCount)
	}
	if state.Tier != model.CategoryUrgent {
		t.Errorf("Tier = %s, want Urgent", state.Tier)
	}
	if len(state.Queue) != 2 {
		t.Errorf("queue length = %d, want 2", len(state.Queue))
	}
	if state.DemoMode {
		t.Error("DemoMode = true with credentials configured")
	}
}

func TestRefreshWithoutCredentialsIsDemoMode(t *testing.T) {
	classifier := &fakeClassifier{}
	sess := New(Config{
		Classifier: classifier,
		Planner:    &fakePlanner{},
		Fetcher: &fakeFetcher{
			err: errors.New("must not be called"),
		},
		Weights: appconfig.DefaultScoreWeights(),
	})

	if err := sess.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh error = %v", err)
	}

	state := sess.Snapshot()
	if !state.DemoMode {
		t.Error("DemoMode = false without credentials")
	}
	if len(state.Diagnostics) != 0 {
		t.Errorf("Diagnostics = %v, want none", state.Diagnostics)
	}
	if state.ItemCount == 0 {
		t.Error("demo session has no items")
	}
}

func TestRefreshClassificationFailureRetainsPriorState(t *testing.T) {
	classifier := &fakeClassifier{}
	fetcher := &fakeFetcher{result: &integrations.Result{Items: testItems("a")}}
	sess := newTestSession(classifier, &fakePlanner{}, fetcher)

	if err := sess.Refresh(context.Background()); err != nil {
		t.Fatalf("first Refresh error = %v", err)
	}
	before := sess.Snapshot()

	classifier.err = errors.New("model overloaded")
	fetcher.result = &integrations.Result{Items: testItems("x", "y", "z")}

	err := sess.Refresh(context.Background())
	if err == nil {
		t.Fatal("Refresh with failing classifier returned nil error")
	}

	after := sess.Snapshot()
	if after.ItemCount != before.ItemCount {
		t.Errorf("ItemCount changed to %d on classification failure", after.ItemCount)
	}
	if len(after.Queue) != len(before.Queue) {
		t.Errorf("queue changed on classification failure")
	}

	// A later retry succeeds and swaps state in.
	classifier.err = nil
	if err := sess.Refresh(context.Background()); err != nil {
		t.Fatalf("retry Refresh error = %v", err)
	}
	if got := sess.Snapshot().ItemCount; got != 3 {
		t.Errorf("ItemCount after retry = %d, want 3", got)
	}
}

func TestRefreshCriticalFetchFailure(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("total network failure")}
	sess := newTestSession(&fakeClassifier{}, &fakePlanner{}, fetcher)

	if err := sess.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh error = %v", err)
	}

	state := sess.Snapshot()
	if state.ItemCount != 0 {
		t.Errorf("ItemCount = %d, want 0 on critical fetch failure", state.ItemCount)
	}
	if len(state.Diagnostics) != 1 {
		t.Fatalf("Diagnostics = %v, want exactly one", state.Diagnostics)
	}
	if state.Analysis.ProductivityScore != 100 {
		t.Errorf("ProductivityScore = %d, want the zero-state 100", state.Analysis.ProductivityScore)
	}
}

func TestRefreshRejectsConcurrentRefresh(t *testing.T) {
	fetcher := &fakeFetcher{
		result:  &integrations.Result{Items: testItems("a")},
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	sess := newTestSession(&fakeClassifier{}, &fakePlanner{}, fetcher)

	done := make(chan error, 1)
	go func() {
		done <- sess.Refresh(context.Background())
	}()

	select {
	case <-fetcher.started:
	case <-time.After(time.Second):
		t.Fatal("first refresh never started fetching")
	}

	if err := sess.Refresh(context.Background()); !errors.Is(err, ErrRefreshInFlight) {
		t.Errorf("second Refresh error = %v, want ErrRefreshInFlight", err)
	}
	if !sess.Refreshing() {
		t.Error("Refreshing() = false while a refresh is pending")
	}

	close(fetcher.release)
	if err := <-done; err != nil {
		t.Fatalf("first Refresh error = %v", err)
	}
	if sess.Refreshing() {
		t.Error("Refreshing() = true after the refresh finished")
	}
}

func TestPlanGeneratedOncePerSession(t *testing.T) {
	planner := &fakePlanner{}
	fetcher := &fakeFetcher{result: &integrations.Result{Items: testItems("a")}}
	sess := newTestSession(&fakeClassifier{}, planner, fetcher)

	if err := sess.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh error = %v", err)
	}

	first, err := sess.Plan(context.Background())
	if err != nil {
		t.Fatalf("Plan error = %v", err)
	}
	second, err := sess.Plan(context.Background())
	if err != nil {
		t.Fatalf("second Plan error = %v", err)
	}

	if planner.calls != 1 {
		t.Errorf("planner invoked %d times, want 1", planner.calls)
	}
	if first != second {
		t.Error("second Plan returned a different plan than the cached one")
	}

	// A fresh refresh starts a new session window; the plan regenerates.
	if err := sess.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh error = %v", err)
	}
	if _, err := sess.Plan(context.Background()); err != nil {
		t.Fatalf("Plan after refresh error = %v", err)
	}
	if planner.calls != 2 {
		t.Errorf("planner invoked %d times after refresh, want 2", planner.calls)
	}
}

func TestPlanFailureLeavesNoPlanAndRetries(t *testing.T) {
	planner := &fakePlanner{err: errors.New("model overloaded")}
	fetcher := &fakeFetcher{result: &integrations.Result{Items: testItems("a")}}
	sess := newTestSession(&fakeClassifier{}, planner, fetcher)

	if err := sess.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh error = %v", err)
	}

	if _, err := sess.Plan(context.Background()); err == nil {
		t.Fatal("Plan with failing planner returned nil error")
	}

	planner.err = nil
	plan, err := sess.Plan(context.Background())
	if err != nil {
		t.Fatalf("Plan retry error = %v", err)
	}
	if plan == nil || plan.Summary == "" {
		t.Error("retry did not produce a plan")
	}
	if planner.calls != 2 {
		t.Errorf("planner invoked %d times, want 2", planner.calls)
	}
}

func TestCompleteTaskAutoAdvancesTier(t *testing.T) {
	// One urgent item, one routine item: completing the urgent task should
	// land the session on the Routine tier.
	classifier := &tieredClassifier{}
	fetcher := &fakeFetcher{result: &integrations.Result{Items: testItems("u1", "r1")}}
	sess := New(Config{
		Credentials: model.UserCredentials{SlackToken: "token"},
		Classifier:  classifier,
		Planner:     &fakePlanner{},
		Fetcher:     fetcher,
		Weights:     appconfig.DefaultScoreWeights(),
	})

	if err := sess.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh error = %v", err)
	}

	state := sess.Snapshot()
	if len(state.Queue) != 1 {
		t.Fatalf("urgent queue = %d tasks, want 1", len(state.Queue))
	}

	if !sess.CompleteTask(state.Queue[0].ID) {
		t.Fatal("CompleteTask = false for a live task")
	}

	state = sess.Snapshot()
	if state.Tier != model.CategoryRoutine {
		t.Errorf("Tier = %s, want Routine after draining Urgent", state.Tier)
	}
	if len(state.Queue) != 1 {
		t.Errorf("routine queue = %d tasks, want 1", len(state.Queue))
	}
	if state.CompletedCount != 1 {
		t.Errorf("CompletedCount = %d, want 1", state.CompletedCount)
	}
}

// tieredClassifier puts ids starting with 'u' in Urgent and the rest in
// Routine.
type tieredClassifier struct{}

func (tieredClassifier) AnalyzePriorities(_ context.Context, items []model.InboxItem) (*model.AnalysisResult, error) {
	result := model.EmptyAnalysis()
	for _, item := range items {
		category := model.CategoryRoutine
		if item.ID[0] == 'u' {
			category = model.CategoryUrgent
		}
		result.ItemClassifications = append(result.ItemClassifications, model.ItemClassification{
			ItemID:   item.ID,
			Category: category,
		})
		if category == model.CategoryUrgent {
			result.Distribution.Urgent++
		} else {
			result.Distribution.Routine++
		}
	}
	return result, nil
}
