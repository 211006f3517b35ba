package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const requestTimeout = 15 * time.Second

// getJSON issues a GET with the given headers and decodes a JSON response.
// Any non-2xx status is converted to an error carrying the status code and
// a short body excerpt; it is never allowed to escape a source fetch as a
// panic or structured failure.
func getJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, v any) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	for k, val := range headers {
		req.Header.Set(k, val)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("API request failed (%d): %s", resp.StatusCode, excerpt(body))
	}

	return json.Unmarshal(body, v)
}

// excerpt trims an error body to a single short diagnostic line, preferring
// the embedded error message when the body is a JSON error envelope.
func excerpt(body []byte) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}

	s := string(body)
	if len(s) > 120 {
		s = s[:120] + "..."
	}
	return s
}
