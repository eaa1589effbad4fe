package organizer

import (
	"context"

	"pacerename/internal/config"
	"pacerename/internal/logging"
	"pacerename/internal/services/jellyfin"
	"pacerename/internal/services/plex"
)

// Refresher asks a media server to rescan its library.
type Refresher interface {
	Name() string
	Refresh(ctx context.Context) error
}

// ConfiguredRefreshers returns the refreshers enabled in cfg.
func ConfiguredRefreshers(cfg *config.Config) []Refresher {
	var out []Refresher
	if svc := jellyfin.NewConfiguredService(cfg); svc != nil {
		out = append(out, svc)
	}
	if svc := plex.NewConfiguredService(cfg); svc != nil {
		out = append(out, svc)
	}
	return out
}

// refresh runs every refresher and returns the names that succeeded. Failures
// are logged and never fail the run.
func (o *Organizer) refresh(ctx context.Context) []string {
	logger := logging.WithContext(ctx, o.logger)
	var refreshed []string
	for _, refresher := range o.refreshers {
		if refresher == nil {
			continue
		}
		if err := refresher.Refresh(ctx); err != nil {
			logging.WarnWithContext(logger, "library refresh failed", logging.Problem{
				Event:  "library_refresh_failed",
				Err:    err,
				Hint:   "check the server url and credentials",
				Impact: "library will pick up files on its next scheduled scan",
			}, logging.String("service", refresher.Name()), logging.String(logging.FieldStage, stageRefresh))
			continue
		}
		logger.Info("library refresh requested", logging.String("service", refresher.Name()))
		refreshed = append(refreshed, refresher.Name())
	}
	return refreshed
}
