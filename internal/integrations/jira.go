package integrations

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/echodeck/echodeck/internal/model"
)

const jiraCreatedLayout = "2006-01-02T15:04:05.000-0700"

type jiraSearch struct {
	Issues []struct {
		ID     string `json:"id"`
		Key    string `json:"key"`
		Fields struct {
			Summary  string `json:"summary"`
			Created  string `json:"created"`
			Reporter struct {
				DisplayName string `json:"displayName"`
			} `json:"reporter"`
		} `json:"fields"`
	} `json:"issues"`
}

// fetchJira returns the user's unresolved assigned issues via the Jira
// Cloud search API (basic auth).
func fetchJira(ctx context.Context, creds model.JiraCredentials) ([]model.InboxItem, error) {
	auth := base64.StdEncoding.EncodeToString([]byte(creds.Email + ":" + creds.APIToken))
	headers := map[string]string{"Authorization": "Basic " + auth}

	jql := url.QueryEscape("assignee=currentUser() AND resolution=Unresolved")
	endpoint := fmt.Sprintf("https://%s/rest/api/3/search?jql=%s&maxResults=5", creds.Domain, jql)

	var search jiraSearch
	if err := getJSON(ctx, http.DefaultClient, endpoint, headers, &search); err != nil {
		return nil, err
	}

	items := make([]model.InboxItem, 0, len(search.Issues))
	for _, issue := range search.Issues {
		sender := issue.Fields.Reporter.DisplayName
		if sender == "" {
			sender = "Jira"
		}

		ts := time.Now()
		if t, err := time.Parse(jiraCreatedLayout, issue.Fields.Created); err == nil {
			ts = t
		}

		items = append(items, model.InboxItem{
			ID:        "jira-" + issue.ID,
			Source:    model.SourceJira,
			Sender:    sender,
			Subject:   issue.Key,
			Content:   issue.Fields.Summary,
			Timestamp: ts,
		})
	}

	return items, nil
}
