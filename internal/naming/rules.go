package naming

import "regexp"

// Kind tags which rule produced a Match.
type Kind int

const (
	KindDirectArc Kind = iota + 1
	KindChapterRange
	KindCoverPage
)

func (k Kind) String() string {
	switch k {
	case KindDirectArc:
		return "direct_arc"
	case KindChapterRange:
		return "chapter_range"
	case KindCoverPage:
		return "cover_page"
	default:
		return "unknown"
	}
}

// Match is the tagged result of a rule. Only the fields relevant to Kind are
// set: Arc and ArcEpisode for direct arc matches, Chapters for chapter ranges,
// Title for cover pages. Resolution is always set.
type Match struct {
	Kind       Kind
	Rule       string
	Arc        string
	ArcEpisode string
	Chapters   string
	Title      string
	Resolution string
}

// Rule pairs a compiled regex with an extraction function. Rules are
// evaluated in order by [Parse]; first match wins.
type Rule struct {
	Name    string
	Kind    Kind
	Pattern *regexp.Regexp
	Extract func(m []string) Match
}

// ChapterArc is the arc every chapter-range release belongs to.
const ChapterArc = "Dressrosa"

var (
	reDirectArc = regexp.MustCompile(
		`\[One Pace\]\[.*\] (.*?) (\d\d?) \[(\d+p)\].*\.mkv`)

	reChapterRange = regexp.MustCompile(
		`\[One Pace\] Chapter (\d+-\d+) \[(\d+p)\].*\.mkv`)

	reCoverPage = regexp.MustCompile(
		`\[One Pace\]\[.*\] (.*?) \[(\d+p)\].*\.mkv`)
)

// Rules is the ordered rule list. A release that carries an explicit episode
// number must hit the direct rule before the cover-page rule, whose title
// group would otherwise swallow the number.
var Rules = []Rule{
	{
		Name:    "direct-arc",
		Kind:    KindDirectArc,
		Pattern: reDirectArc,
		Extract: func(m []string) Match {
			return Match{Arc: m[1], ArcEpisode: m[2], Resolution: m[3]}
		},
	},
	{
		Name:    "chapter-range",
		Kind:    KindChapterRange,
		Pattern: reChapterRange,
		Extract: func(m []string) Match {
			return Match{Arc: ChapterArc, Chapters: m[1], Resolution: m[2]}
		},
	},
	{
		Name:    "cover-page",
		Kind:    KindCoverPage,
		Pattern: reCoverPage,
		Extract: func(m []string) Match {
			return Match{Title: m[1], Resolution: m[2]}
		},
	},
}

// Parse runs the rules in order against name and returns the first match.
func Parse(name string) (Match, bool) {
	return parseWith(Rules, name)
}

func parseWith(rules []Rule, name string) (Match, bool) {
	for _, rule := range rules {
		m := rule.Pattern.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		match := rule.Extract(m)
		match.Kind = rule.Kind
		match.Rule = rule.Name
		return match, true
	}
	return Match{}, false
}
