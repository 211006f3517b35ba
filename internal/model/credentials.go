package model

// JiraCredentials holds the pieces needed for Jira basic auth.
type JiraCredentials struct {
	Domain   string
	Email    string
	APIToken string
}

// Configured reports whether enough is present to attempt a Jira fetch.
func (j JiraCredentials) Configured() bool {
	return j.Domain != "" && j.APIToken != ""
}

// UserCredentials carries optional per-source tokens for one session.
// Credentials live only in memory and are never written to storage.
type UserCredentials struct {
	GoogleToken string // Gmail and Calendar
	SlackToken  string
	Jira        JiraCredentials
}

// Configured reports whether any source has credentials at all.
// When nothing is configured the integration path is bypassed entirely and
// the fixed demo set is used instead.
func (c UserCredentials) Configured() bool {
	return c.GoogleToken != "" || c.SlackToken != "" || c.Jira.Configured()
}
