package plex

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"pacerename/internal/config"
	"pacerename/internal/services"
)

const (
	stageRefresh = "refresh"
	userAgent    = "pacerename/1.0"
)

// ErrLibraryNotFound is returned when no section has the configured title.
var ErrLibraryNotFound = errors.New("plex library not found")

// HTTPDoer describes the HTTP client used by the Plex service.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Service refreshes a single Plex library section.
type Service struct {
	baseURL string
	token   string
	library string
	client  HTTPDoer

	mu       sync.Mutex
	sections map[string]string
}

// NewConfiguredService returns a Plex service when refresh is enabled and
// fully configured, or nil otherwise.
func NewConfiguredService(cfg *config.Config) *Service {
	if cfg == nil || !cfg.Plex.Enabled {
		return nil
	}
	if strings.TrimSpace(cfg.Plex.URL) == "" || strings.TrimSpace(cfg.Plex.Token) == "" || strings.TrimSpace(cfg.Plex.Library) == "" {
		return nil
	}
	return NewService(cfg.Plex.URL, cfg.Plex.Token, cfg.Plex.Library, &http.Client{Timeout: 10 * time.Second})
}

// NewService constructs an HTTP-backed Plex service.
func NewService(baseURL, token, library string, client HTTPDoer) *Service {
	if client == nil {
		client = http.DefaultClient
	}
	return &Service{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		token:   strings.TrimSpace(token),
		library: strings.TrimSpace(library),
		client:  client,
	}
}

// Name identifies the service in logs.
func (s *Service) Name() string {
	return "plex"
}

// Refresh asks Plex to scan the configured library section.
func (s *Service) Refresh(ctx context.Context) error {
	if s == nil || s.baseURL == "" || s.token == "" {
		return nil
	}
	key, err := s.SectionKey(ctx)
	if err != nil {
		return err
	}

	refreshURL := fmt.Sprintf("%s/library/sections/%s/refresh", s.baseURL, key)
	resp, err := s.get(ctx, refreshURL, "application/json")
	if err != nil {
		return services.Wrap(services.ErrExternal, stageRefresh, "plex", "refresh library", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// SectionKey returns the key of the configured library section, fetching the
// section list on first use.
func (s *Service) SectionKey(ctx context.Context) (string, error) {
	sections, err := s.ensureSections(ctx)
	if err != nil {
		return "", err
	}
	key, ok := sections[strings.ToLower(s.library)]
	if !ok {
		return "", services.Wrap(services.ErrExternal, stageRefresh, "plex", fmt.Sprintf("library %q", s.library), ErrLibraryNotFound)
	}
	return key, nil
}

func (s *Service) ensureSections(ctx context.Context) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sections != nil {
		return s.sections, nil
	}

	resp, err := s.get(ctx, s.baseURL+"/library/sections", "application/xml")
	if err != nil {
		return nil, services.Wrap(services.ErrExternal, stageRefresh, "plex", "fetch sections", err)
	}
	defer resp.Body.Close()

	type directory struct {
		Key   string `xml:"key,attr"`
		Title string `xml:"title,attr"`
	}
	type mediaContainer struct {
		Directories []directory `xml:"Directory"`
	}

	var container mediaContainer
	if err := xml.NewDecoder(resp.Body).Decode(&container); err != nil {
		return nil, services.Wrap(services.ErrExternal, stageRefresh, "plex", "decode sections", err)
	}

	sections := make(map[string]string, len(container.Directories))
	for _, dir := range container.Directories {
		if dir.Key == "" || dir.Title == "" {
			continue
		}
		sections[strings.ToLower(dir.Title)] = dir.Key
	}
	s.sections = sections
	return sections, nil
}

func (s *Service) get(ctx context.Context, target, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Plex-Token", s.token)
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		resp.Body.Close()
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return resp, nil
}
