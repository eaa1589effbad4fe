package jellyfin

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pacerename/internal/config"
	"pacerename/internal/services"
)

const stageRefresh = "refresh"

// HTTPDoer describes the HTTP client used by the Jellyfin service.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Service refreshes a Jellyfin server's libraries.
type Service struct {
	baseURL string
	apiKey  string
	client  HTTPDoer
}

// NewConfiguredService returns a Jellyfin service when refresh is enabled and
// credentials are present, or nil otherwise.
func NewConfiguredService(cfg *config.Config) *Service {
	if cfg == nil || !cfg.Jellyfin.Enabled {
		return nil
	}
	if strings.TrimSpace(cfg.Jellyfin.URL) == "" || strings.TrimSpace(cfg.Jellyfin.APIKey) == "" {
		return nil
	}
	return NewService(cfg.Jellyfin.URL, cfg.Jellyfin.APIKey, &http.Client{Timeout: 10 * time.Second})
}

// NewService constructs an HTTP-backed Jellyfin service.
func NewService(baseURL, apiKey string, client HTTPDoer) *Service {
	if client == nil {
		client = http.DefaultClient
	}
	return &Service{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  strings.TrimSpace(apiKey),
		client:  client,
	}
}

// Name identifies the service in logs.
func (s *Service) Name() string {
	return "jellyfin"
}

// Refresh asks Jellyfin to rescan every library.
func (s *Service) Refresh(ctx context.Context) error {
	if s == nil || s.baseURL == "" || s.apiKey == "" {
		return nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/Library/Refresh", nil)
	if err != nil {
		return services.Wrap(services.ErrExternal, stageRefresh, "jellyfin", "build refresh request", err)
	}
	req.Header.Set("X-Emby-Token", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return services.Wrap(services.ErrExternal, stageRefresh, "jellyfin", "refresh library", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return services.Wrap(services.ErrExternal, stageRefresh, "jellyfin", "refresh library",
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
