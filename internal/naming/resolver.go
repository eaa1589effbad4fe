package naming

import (
	"fmt"
	"path/filepath"

	"pacerename/internal/reference"
	"pacerename/internal/services"
	"pacerename/internal/textutil"
)

const (
	stageResolve        = "resolve"
	suggestionThreshold = 0.5
)

// Resolved is the outcome of resolving one filename.
type Resolved struct {
	Arc        string
	FileName   string
	Kind       Kind
	Resolution string
	ArcEpisode string
	Episode    string
}

// Resolver maps release filenames to canonical names using explicit tables.
type Resolver struct {
	tables *reference.Tables
	rules  []Rule
}

// NewResolver builds a resolver over the given tables using the default rules.
func NewResolver(tables *reference.Tables) *Resolver {
	return &Resolver{tables: tables, rules: Rules}
}

// CanonicalName formats the library filename for a canonical episode.
func CanonicalName(episode, resolution string) string {
	return fmt.Sprintf("One.Piece.%s.%s.mkv", episode, resolution)
}

// Resolve parses filename (a base name or a path) and resolves it through the
// reference tables.
func (r *Resolver) Resolve(filename string) (Resolved, error) {
	name := textutil.NormalizeName(filepath.Base(filename))

	match, ok := parseWith(r.rules, name)
	if !ok {
		return Resolved{}, services.Wrap(services.ErrUnrecognized, stageResolve, "match",
			fmt.Sprintf("file %q did not match any release pattern", name), ErrUnrecognizedFilename)
	}
	return r.ResolveMatch(match)
}

// ResolveMatch resolves an already parsed match.
func (r *Resolver) ResolveMatch(match Match) (Resolved, error) {
	sources := r.tables.Sources()
	arc, arcEpisode := match.Arc, match.ArcEpisode

	switch match.Kind {
	case KindChapterRange:
		ep, ok := r.tables.Chapter(match.Chapters)
		if !ok {
			return Resolved{}, missing("chapter lookup",
				fmt.Sprintf("chapters %q not found in %s", match.Chapters, sourceLabel(sources.Chapters)), ErrChapterNotFound)
		}
		arcEpisode = ep
	case KindCoverPage:
		page, ok := r.tables.CoverPage(match.Title)
		if !ok {
			return Resolved{}, missing("cover page lookup",
				fmt.Sprintf("title %q not found in %s", match.Title, sourceLabel(sources.CoverPages)), ErrCoverPageNotFound)
		}
		arc, arcEpisode = page.Arc, page.Episodes
	}

	if !r.tables.HasArc(arc) {
		msg := fmt.Sprintf("arc %q not found in %s", arc, sourceLabel(sources.Episodes))
		if hint, _, ok := textutil.Closest(arc, r.tables.Arcs(), suggestionThreshold); ok {
			msg += fmt.Sprintf(" (did you mean %q?)", hint)
		}
		return Resolved{}, missing("arc lookup", msg, ErrArcNotFound)
	}

	episode, ok := r.tables.Episode(arc, arcEpisode)
	if !ok {
		return Resolved{}, missing("episode lookup",
			fmt.Sprintf("episode %q not found in arc %q in %s", arcEpisode, arc, sourceLabel(sources.Episodes)), ErrEpisodeNotFound)
	}

	return Resolved{
		Arc:        arc,
		FileName:   CanonicalName(episode, match.Resolution),
		Kind:       match.Kind,
		Resolution: match.Resolution,
		ArcEpisode: arcEpisode,
		Episode:    episode,
	}, nil
}

func missing(operation, message string, sentinel error) error {
	return services.Wrap(services.ErrMissingReference, stageResolve, operation, message, sentinel)
}

func sourceLabel(path string) string {
	if path == "" {
		return "reference table"
	}
	return filepath.Base(path)
}
