// Package integrations fetches raw inbox items from the configured sources
// with per-source demo fallback.
package integrations

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/echodeck/echodeck/internal/log"
	"github.com/echodeck/echodeck/internal/model"
)

// Result contains the unioned items from all sources plus one human-readable
// error string per failed source.
type Result struct {
	Items  []model.InboxItem
	Errors []string
}

// Fetcher fetches all configured sources in parallel. The per-source fetch
// functions are swappable for tests.
type Fetcher struct {
	gmail    func(ctx context.Context, token string) ([]model.InboxItem, error)
	calendar func(ctx context.Context, token string) ([]model.InboxItem, error)
	slack    func(ctx context.Context, token string) ([]model.InboxItem, error)
	jira     func(ctx context.Context, creds model.JiraCredentials) ([]model.InboxItem, error)
}

// NewFetcher creates a Fetcher wired to the live source clients.
func NewFetcher() *Fetcher {
	return &Fetcher{
		gmail:    fetchGmail,
		calendar: fetchCalendar,
		slack:    fetchSlack,
		jira:     fetchJira,
	}
}

// FetchAll fetches every configured source concurrently and joins the
// results. One source's failure never blocks or cancels the others: a
// failed or empty source is replaced by its fixed demo subset, and failures
// additionally contribute one diagnostic string.
//
// When no credentials at all are configured the network path is bypassed
// entirely and the complete demo set is returned with zero errors.
func (f *Fetcher) FetchAll(ctx context.Context, creds model.UserCredentials) (*Result, error) {
	if !creds.Configured() {
		log.Info("no credentials configured, using demo data")
		return &Result{Items: DemoItems()}, nil
	}

	result := &Result{}
	var mu sync.Mutex

	collect := func(source model.Source, items []model.InboxItem, err error) {
		mu.Lock()
		defer mu.Unlock()

		if err != nil {
			log.Warn("source fetch failed, switching to demo data",
				"source", source, "error", err)
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", source.Display(), err))
		}
		// A failed or empty source is padded with its demo subset so the
		// dashboard never shows a hole for a connected integration.
		if len(items) == 0 {
			items = DemoItemsFor(source)
		}
		result.Items = append(result.Items, items...)
	}

	g, gctx := errgroup.WithContext(ctx)

	if creds.GoogleToken != "" {
		g.Go(func() error {
			items, err := f.gmail(gctx, creds.GoogleToken)
			collect(model.SourceEmail, items, err)
			return nil
		})
		g.Go(func() error {
			items, err := f.calendar(gctx, creds.GoogleToken)
			collect(model.SourceCalendar, items, err)
			return nil
		})
	}

	if creds.SlackToken != "" {
		g.Go(func() error {
			items, err := f.slack(gctx, creds.SlackToken)
			collect(model.SourceSlack, items, err)
			return nil
		})
	}

	if creds.Jira.Configured() {
		g.Go(func() error {
			items, err := f.jira(gctx, creds.Jira)
			collect(model.SourceJira, items, err)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info("fetched integrations",
		"items", len(result.Items),
		"sourceErrors", len(result.Errors))

	return result, nil
}
