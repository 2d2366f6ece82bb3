package espn

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultLeague  = "mens-college-basketball"
	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 32 << 20
)

// Adapter fetches game summaries from the ESPN site API.
type Adapter struct {
	baseURL string
	league  string
	timeout time.Duration
	client  *http.Client
}

func New(baseURL, league string, timeout time.Duration) *Adapter {
	if strings.TrimSpace(league) == "" {
		league = defaultLeague
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Adapter{
		baseURL: normalizeBaseURL(baseURL),
		league:  strings.TrimSpace(league),
		timeout: timeout,
		client:  &http.Client{},
	}
}

// SummaryURL is the endpoint queried for eventID.
func (a *Adapter) SummaryURL(eventID string) string {
	return fmt.Sprintf("%s/apis/site/v2/sports/basketball/%s/summary?event=%s",
		a.baseURL, url.PathEscape(a.league), url.QueryEscape(eventID))
}

// Fetch returns the raw summary document for eventID.
func (a *Adapter) Fetch(ctx context.Context, eventID string) ([]byte, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, errors.New("espn: event id is empty")
	}

	reqCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, a.SummaryURL(eventID), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("espn timeout after %s (event=%s)", a.timeout, eventID)
		}
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("espn read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("espn status %d: %s", resp.StatusCode, truncate(string(body), 400))
	}
	return body, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
