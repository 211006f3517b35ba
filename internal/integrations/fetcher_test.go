package integrations

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/echodeck/echodeck/internal/model"
)

func fakeSource(items []model.InboxItem, err error) func(context.Context, string) ([]model.InboxItem, error) {
	return func(context.Context, string) ([]model.InboxItem, error) {
		return items, err
	}
}

func fakeJira(items []model.InboxItem, err error) func(context.Context, model.JiraCredentials) ([]model.InboxItem, error) {
	return func(context.Context, model.JiraCredentials) ([]model.InboxItem, error) {
		return items, err
	}
}

func liveItems(source model.Source, n int) []model.InboxItem {
	items := make([]model.InboxItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, model.InboxItem{
			ID:      string(source) + "-live-" + string(rune('a'+i)),
			Source:  source,
			Subject: "live",
		})
	}
	return items
}

func countBySource(items []model.InboxItem) map[model.Source]int {
	counts := make(map[model.Source]int)
	for _, item := range items {
		counts[item.Source]++
	}
	return counts
}

func allCreds() model.UserCredentials {
	return model.UserCredentials{
		GoogleToken: "g-token",
		SlackToken:  "s-token",
		Jira: model.JiraCredentials{
			Domain:   "example.atlassian.net",
			Email:    "me@example.com",
			APIToken: "j-token",
		},
	}
}

func TestFetchAllNoCredentialsUsesDemoSet(t *testing.T) {
	f := &Fetcher{
		gmail: func(context.Context, string) ([]model.InboxItem, error) {
			t.Fatal("gmail fetch must not run without credentials")
			return nil, nil
		},
	}

	result, err := f.FetchAll(context.Background(), model.UserCredentials{})
	if err != nil {
		t.Fatalf("FetchAll error = %v", err)
	}
	if len(result.Errors) != 0 {
		t.Errorf("Errors = %v, want none in demo mode", result.Errors)
	}
	if len(result.Items) != len(DemoItems()) {
		t.Errorf("items = %d, want full demo set of %d", len(result.Items), len(DemoItems()))
	}
}

func TestFetchAllPartialFailureIsIsolated(t *testing.T) {
	f := &Fetcher{
		gmail:    fakeSource(liveItems(model.SourceEmail, 2), nil),
		calendar: fakeSource(liveItems(model.SourceCalendar, 1), nil),
		slack:    fakeSource(nil, errors.New("invalid_auth")),
		jira:     fakeJira(liveItems(model.SourceJira, 3), nil),
	}

	result, err := f.FetchAll(context.Background(), allCreds())
	if err != nil {
		t.Fatalf("FetchAll error = %v", err)
	}

	counts := countBySource(result.Items)
	if counts[model.SourceEmail] != 2 {
		t.Errorf("email items = %d, want the 2 live ones", counts[model.SourceEmail])
	}
	if counts[model.SourceJira] != 3 {
		t.Errorf("jira items = %d, want the 3 live ones", counts[model.SourceJira])
	}

	// The failed source is padded with its demo subset.
	wantSlack := len(DemoItemsFor(model.SourceSlack))
	if counts[model.SourceSlack] != wantSlack {
		t.Errorf("slack items = %d, want %d demo items", counts[model.SourceSlack], wantSlack)
	}

	if len(result.Errors) != 1 {
		t.Fatalf("Errors = %v, want exactly one", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "Slack") {
		t.Errorf("error %q does not name the failed source", result.Errors[0])
	}
}

func TestFetchAllEmptySuccessfulSourceIsPadded(t *testing.T) {
	f := &Fetcher{
		gmail:    fakeSource(nil, nil), // connected but empty
		calendar: fakeSource(liveItems(model.SourceCalendar, 1), nil),
		slack:    fakeSource(liveItems(model.SourceSlack, 1), nil),
		jira:     fakeJira(liveItems(model.SourceJira, 1), nil),
	}

	result, err := f.FetchAll(context.Background(), allCreds())
	if err != nil {
		t.Fatalf("FetchAll error = %v", err)
	}

	if len(result.Errors) != 0 {
		t.Errorf("Errors = %v, want none for an empty-but-successful source", result.Errors)
	}
	counts := countBySource(result.Items)
	if want := len(DemoItemsFor(model.SourceEmail)); counts[model.SourceEmail] != want {
		t.Errorf("email items = %d, want %d demo items", counts[model.SourceEmail], want)
	}
}

func TestFetchAllSkipsUnconfiguredSources(t *testing.T) {
	called := false
	f := &Fetcher{
		slack: func(context.Context, string) ([]model.InboxItem, error) {
			called = true
			return liveItems(model.SourceSlack, 1), nil
		},
		gmail: func(context.Context, string) ([]model.InboxItem, error) {
			t.Fatal("gmail fetch must not run without a google token")
			return nil, nil
		},
	}

	creds := model.UserCredentials{SlackToken: "s-token"}
	result, err := f.FetchAll(context.Background(), creds)
	if err != nil {
		t.Fatalf("FetchAll error = %v", err)
	}
	if !called {
		t.Error("slack fetch did not run")
	}

	counts := countBySource(result.Items)
	if counts[model.SourceEmail] != 0 || counts[model.SourceCalendar] != 0 || counts[model.SourceJira] != 0 {
		t.Errorf("unconfigured sources contributed items: %v", counts)
	}
}

func TestFetchAllAllSourcesFail(t *testing.T) {
	f := &Fetcher{
		gmail:    fakeSource(nil, errors.New("boom")),
		calendar: fakeSource(nil, errors.New("boom")),
		slack:    fakeSource(nil, errors.New("boom")),
		jira:     fakeJira(nil, errors.New("boom")),
	}

	result, err := f.FetchAll(context.Background(), allCreds())
	if err != nil {
		t.Fatalf("FetchAll error = %v", err)
	}

	if len(result.Errors) != 4 {
		t.Errorf("Errors = %d, want 4", len(result.Errors))
	}
	// Every source falls back to demo content; the union is the full set.
	if len(result.Items) != len(DemoItems()) {
		t.Errorf("items = %d, want %d", len(result.Items), len(DemoItems()))
	}
}

func TestDemoItemsCoverAllSources(t *testing.T) {
	counts := countBySource(DemoItems())
	for _, source := range model.AllSources {
		if counts[source] == 0 {
			t.Errorf("demo set has no items for %s", source)
		}
	}
}
