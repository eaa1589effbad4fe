package reference

import "sort"

// CoverPage maps a release title to its arc and per-arc episode number.
type CoverPage struct {
	Arc      string `json:"Arc" yaml:"Arc"`
	Episodes string `json:"Episodes" yaml:"Episodes"`
}

// Tables holds the read-only reference data for a run. The zero value is an
// empty set of tables on which every lookup misses.
type Tables struct {
	episodes   map[string]map[string]string
	chapters   map[string]string
	coverPages map[string]CoverPage
	sources    Sources
}

// Sources records where each table was loaded from, for error messages.
type Sources struct {
	Episodes   string
	Chapters   string
	CoverPages string
}

// NewTables copies the provided maps into an immutable Tables value. Nil maps
// are treated as empty.
func NewTables(episodes map[string]map[string]string, chapters map[string]string, coverPages map[string]CoverPage, sources Sources) *Tables {
	t := &Tables{
		episodes:   make(map[string]map[string]string, len(episodes)),
		chapters:   make(map[string]string, len(chapters)),
		coverPages: make(map[string]CoverPage, len(coverPages)),
		sources:    sources,
	}
	for arc, eps := range episodes {
		inner := make(map[string]string, len(eps))
		for k, v := range eps {
			inner[k] = v
		}
		t.episodes[arc] = inner
	}
	for k, v := range chapters {
		t.chapters[k] = v
	}
	for k, v := range coverPages {
		t.coverPages[k] = v
	}
	return t
}

// HasArc reports whether the arc exists in the episode mapping.
func (t *Tables) HasArc(arc string) bool {
	if t == nil {
		return false
	}
	_, ok := t.episodes[arc]
	return ok
}

// Episode returns the canonical episode number for an arc and per-arc number.
// An empty mapped value counts as absent.
func (t *Tables) Episode(arc, arcEpisode string) (string, bool) {
	if t == nil {
		return "", false
	}
	eps, ok := t.episodes[arc]
	if !ok {
		return "", false
	}
	value := eps[arcEpisode]
	if value == "" {
		return "", false
	}
	return value, true
}

// Chapter returns the per-arc episode number for a chapter range.
func (t *Tables) Chapter(chapters string) (string, bool) {
	if t == nil {
		return "", false
	}
	value := t.chapters[chapters]
	if value == "" {
		return "", false
	}
	return value, true
}

// CoverPage returns the cover-page record for a release title.
func (t *Tables) CoverPage(title string) (CoverPage, bool) {
	if t == nil {
		return CoverPage{}, false
	}
	page, ok := t.coverPages[title]
	return page, ok
}

// Arcs returns every arc in the episode mapping, sorted.
func (t *Tables) Arcs() []string {
	if t == nil {
		return nil
	}
	arcs := make([]string, 0, len(t.episodes))
	for arc := range t.episodes {
		arcs = append(arcs, arc)
	}
	sort.Strings(arcs)
	return arcs
}

// Sources returns the file paths the tables were loaded from.
func (t *Tables) Sources() Sources {
	if t == nil {
		return Sources{}
	}
	return t.sources
}

// Stats summarizes table sizes for logging.
type Stats struct {
	Arcs       int
	Episodes   int
	Chapters   int
	CoverPages int
}

// Stats returns the number of entries in each table.
func (t *Tables) Stats() Stats {
	if t == nil {
		return Stats{}
	}
	s := Stats{Arcs: len(t.episodes), Chapters: len(t.chapters), CoverPages: len(t.coverPages)}
	for _, eps := range t.episodes {
		s.Episodes += len(eps)
	}
	return s
}
