// Package reflection fetches the reflection of the day from a hosted table,
// falling back to a fixed built-in reflection on any failure. A failure is
// never surfaced to the caller.
package reflection

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"anchor/internal/logger"
)

const DefaultBaseURL = "https://content.anchor-recovery.org"

// Reflection is one day's reading.
type Reflection struct {
	Title      string `json:"title"`
	Quote      string `json:"quote"`
	Source     string `json:"source"`
	Reflection string `json:"reflection"`
	Thought    string `json:"thought"`
}

// Fallback is served whenever the remote table is unreachable.
var Fallback = Reflection{
	Title:      "One Day at a Time",
	Quote:      "We realized that the men who were giving time to this program were the ones who were succeeding.",
	Source:     "Daily Reflections",
	Reflection: "Recovery is built a single day at a time. Whatever yesterday held and whatever tomorrow brings, today is the only day I need to stay sober.",
	Thought:    "Just for today, I will take care of today.",
}

// Client fetches reflections over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a reflection client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Daily returns the reflection for a 1-based day of the year. On any
// failure, including an out-of-range day, it returns Fallback.
func (c *Client) Daily(ctx context.Context, dayOfYear int) Reflection {
	r, err := c.fetch(ctx, dayOfYear)
	if err != nil {
		logger.Warn("Reflection lookup failed, using fallback", "day", dayOfYear, "error", err)
		return Fallback
	}
	return r
}

func (c *Client) fetch(ctx context.Context, dayOfYear int) (Reflection, error) {
	if dayOfYear < 1 || dayOfYear > 366 {
		return Reflection{}, fmt.Errorf("day of year out of range: %d", dayOfYear)
	}

	url := fmt.Sprintf("%s/reflections/%d.json", c.baseURL, dayOfYear)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Reflection{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Reflection{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Reflection{}, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var r Reflection
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return Reflection{}, fmt.Errorf("failed to decode reflection: %w", err)
	}
	return r, nil
}
