package preflight

import (
	"context"

	"pacerename/internal/config"
	"pacerename/internal/reference"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	// Optional marks a failure as a warning.
	Optional bool
	Detail   string
}

// Status returns OK, WARN, or ERROR.
func (r Result) Status() string {
	switch {
	case r.Passed:
		return "OK"
	case r.Optional:
		return "WARN"
	default:
		return "ERROR"
	}
}

// Failed reports whether any required check failed.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed && !r.Optional {
			return true
		}
	}
	return false
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Source directory", cfg.Paths.SourceDir))
	if !cfg.InPlace() {
		results = append(results, CheckDirectoryAccess("Target directory", cfg.Paths.TargetDir))
	}
	results = append(results, checkStateDir(cfg.Paths.StateDir))

	episodes := CheckReferenceFile("Episode reference", cfg.References.Episodes)
	results = append(results, episodes)
	results = append(results, checkReference("Chapter reference", cfg.References.Chapters, true))
	results = append(results, checkReference("Cover page reference", cfg.References.CoverPages, true))

	if episodes.Passed && !cfg.InPlace() {
		tables, err := reference.Load(reference.Paths{
			Episodes:   cfg.References.Episodes,
			Chapters:   cfg.References.Chapters,
			CoverPages: cfg.References.CoverPages,
		})
		if err != nil {
			results = append(results, Result{Name: "Arc coverage", Detail: err.Error()})
		} else {
			results = append(results, CheckArcCoverage(tables, cfg.Paths.TargetDir))
		}
	}

	if cfg.Jellyfin.Enabled {
		results = append(results, CheckJellyfin(ctx, cfg.Jellyfin.URL, cfg.Jellyfin.APIKey))
	}
	if cfg.Plex.Enabled {
		results = append(results, CheckPlex(ctx, cfg.Plex.URL, cfg.Plex.Token, cfg.Plex.Library))
	}

	return results
}
