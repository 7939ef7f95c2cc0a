package importlist

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Provider fetches candidate items from an external list.
type Provider interface {
	Fetch(ctx context.Context, cfg *Config) ([]Candidate, error)
}

// HTTPProvider fetches a JSON list document over HTTP. The document is a
// JSON array of candidate objects.
type HTTPProvider struct {
	httpClient *http.Client
	log        *slog.Logger
}

// NewHTTPProvider creates a new HTTP list provider. An unresponsive remote
// is cut off by the client timeout rather than hanging a sync run.
func NewHTTPProvider(timeout time.Duration, log *slog.Logger) *HTTPProvider {
	if log == nil {
		log = slog.Default()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPProvider{
		log: log.With("component", "listprovider"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch retrieves and decodes the list. Candidates without an explicit
// media type inherit the config's.
func (p *HTTPProvider) Fetch(ctx context.Context, cfg *Config) ([]Candidate, error) {
	if cfg.ListURL == "" {
		return nil, fmt.Errorf("list %q has no url configured", cfg.Name)
	}

	p.log.Debug("fetching list", "list", cfg.Name, "url", cfg.ListURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.ListURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", cfg.ListURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", cfg.ListURL, resp.StatusCode)
	}

	var candidates []Candidate
	if err := json.NewDecoder(resp.Body).Decode(&candidates); err != nil {
		return nil, fmt.Errorf("decode list body: %w", err)
	}

	for i := range candidates {
		if candidates[i].MediaType == "" {
			candidates[i].MediaType = cfg.MediaType
		}
	}

	p.log.Debug("fetched list", "list", cfg.Name, "candidates", len(candidates))
	return candidates, nil
}
