package naming_test

import (
	"errors"
	"strings"
	"testing"

	"pacerename/internal/naming"
	"pacerename/internal/reference"
	"pacerename/internal/services"
)

func testTables() *reference.Tables {
	return reference.NewTables(
		map[string]map[string]string{
			"Alabasta":    {"05": "0130", "06": ""},
			"Dressrosa":   {"45": "0700"},
			"Orange Town": {"03": "0008"},
			"Arlong Park": {"01": "0031"},
		},
		map[string]string{"123-124": "45", "125-126": "99"},
		map[string]reference.CoverPage{
			"Buggy's Crew Adventure": {Arc: "Orange Town", Episodes: "03"},
			"Lost Arc Special":       {Arc: "Skypeia", Episodes: "01"},
			"Missing Episode":        {Arc: "Alabasta", Episodes: "42"},
		},
		reference.Sources{Episodes: "/ref/episodes-reference.json", Chapters: "/ref/chapters-reference.json", CoverPages: "/ref/coverpage-reference.json"},
	)
}

func TestResolve(t *testing.T) {
	resolver := naming.NewResolver(testTables())

	cases := []struct {
		name     string
		input    string
		wantArc  string
		wantFile string
		wantKind naming.Kind
	}{
		{
			name: "direct arc", input: "[One Pace][1080p] Alabasta 05 [1080p][ABCD1234].mkv",
			wantArc: "Alabasta", wantFile: "One.Piece.0130.1080p.mkv", wantKind: naming.KindDirectArc,
		},
		{
			name: "direct arc with multi-word arc and path", input: "/downloads/[One Pace][31-33] Arlong Park 01 [480p][FFFF0000].mkv",
			wantArc: "Arlong Park", wantFile: "One.Piece.0031.480p.mkv", wantKind: naming.KindDirectArc,
		},
		{
			name: "chapter range", input: "[One Pace] Chapter 123-124 [720p][ABCD1234].mkv",
			wantArc: "Dressrosa", wantFile: "One.Piece.0700.720p.mkv", wantKind: naming.KindChapterRange,
		},
		{
			name: "cover page", input: "[One Pace][1080p] Buggy's Crew Adventure [1080p][0F0F0F0F].mkv",
			wantArc: "Orange Town", wantFile: "One.Piece.0008.1080p.mkv", wantKind: naming.KindCoverPage,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := resolver.Resolve(tc.input)
			if err != nil {
				t.Fatalf("Resolve(%q) returned error: %v", tc.input, err)
			}
			if got.Arc != tc.wantArc || got.FileName != tc.wantFile || got.Kind != tc.wantKind {
				t.Fatalf("Resolve(%q) = %+v, want arc=%q file=%q kind=%v", tc.input, got, tc.wantArc, tc.wantFile, tc.wantKind)
			}
		})
	}
}

func TestResolveFailures(t *testing.T) {
	resolver := naming.NewResolver(testTables())

	cases := []struct {
		name     string
		input    string
		sentinel error
		marker   error
	}{
		{"no pattern", "Some.Other.Show.S01E01.mkv", naming.ErrUnrecognizedFilename, services.ErrUnrecognized},
		{"wrong extension", "[One Pace][1080p] Alabasta 05 [1080p][ABCD1234].mp4", naming.ErrUnrecognizedFilename, services.ErrUnrecognized},
		{"arc missing", "[One Pace][1080p] Skypeia 01 [1080p][ABCD1234].mkv", naming.ErrArcNotFound, services.ErrMissingReference},
		{"arc case differs", "[One Pace][1080p] alabasta 05 [1080p][ABCD1234].mkv", naming.ErrArcNotFound, services.ErrMissingReference},
		{"episode missing", "[One Pace][1080p] Alabasta 07 [1080p][ABCD1234].mkv", naming.ErrEpisodeNotFound, services.ErrMissingReference},
		{"episode empty", "[One Pace][1080p] Alabasta 06 [1080p][ABCD1234].mkv", naming.ErrEpisodeNotFound, services.ErrMissingReference},
		{"episode not zero padded", "[One Pace][1080p] Alabasta 5 [1080p][ABCD1234].mkv", naming.ErrEpisodeNotFound, services.ErrMissingReference},
		{"chapter missing", "[One Pace] Chapter 1-2 [720p][ABCD1234].mkv", naming.ErrChapterNotFound, services.ErrMissingReference},
		{"chapter resolves to unknown episode", "[One Pace] Chapter 125-126 [720p][ABCD1234].mkv", naming.ErrEpisodeNotFound, services.ErrMissingReference},
		{"cover page missing", "[One Pace][1080p] Unknown Special [1080p][ABCD1234].mkv", naming.ErrCoverPageNotFound, services.ErrMissingReference},
		{"cover page arc missing", "[One Pace][1080p] Lost Arc Special [1080p][ABCD1234].mkv", naming.ErrArcNotFound, services.ErrMissingReference},
		{"cover page episode missing", "[One Pace][1080p] Missing Episode [1080p][ABCD1234].mkv", naming.ErrEpisodeNotFound, services.ErrMissingReference},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := resolver.Resolve(tc.input)
			if err == nil {
				t.Fatalf("expected error for %q", tc.input)
			}
			if !errors.Is(err, tc.sentinel) {
				t.Fatalf("expected %v, got %v", tc.sentinel, err)
			}
			if !errors.Is(err, tc.marker) {
				t.Fatalf("expected marker %v, got %v", tc.marker, err)
			}
		})
	}
}

func TestCoverPageMissDistinctFromArcMiss(t *testing.T) {
	resolver := naming.NewResolver(testTables())
	_, coverErr := resolver.Resolve("[One Pace][1080p] Unknown Special [1080p][ABCD1234].mkv")
	_, arcErr := resolver.Resolve("[One Pace][1080p] Lost Arc Special [1080p][ABCD1234].mkv")
	if errors.Is(coverErr, naming.ErrArcNotFound) {
		t.Fatalf("cover page miss must not report arc miss: %v", coverErr)
	}
	if errors.Is(arcErr, naming.ErrCoverPageNotFound) {
		t.Fatalf("arc miss must not report cover page miss: %v", arcErr)
	}
}

func TestArcMissSuggestsClosestArc(t *testing.T) {
	resolver := naming.NewResolver(testTables())
	_, err := resolver.Resolve("[One Pace][1080p] Alabsta 05 [1080p][ABCD1234].mkv")
	if !errors.Is(err, naming.ErrArcNotFound) {
		t.Fatalf("expected arc miss, got %v", err)
	}
	if !strings.Contains(err.Error(), `did you mean "Alabasta"`) {
		t.Fatalf("expected suggestion in %q", err.Error())
	}
	if !strings.Contains(err.Error(), "episodes-reference.json") {
		t.Fatalf("expected reference file name in %q", err.Error())
	}
}

func TestResolveNormalizesDecomposedNames(t *testing.T) {
	tables := reference.NewTables(
		map[string]map[string]string{"Café": {"01": "0001"}},
		nil, nil, reference.Sources{},
	)
	resolver := naming.NewResolver(tables)
	got, err := resolver.Resolve("[One Pace][1080p] Cafe\u0301 01 [1080p][ABCD1234].mkv")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.FileName != "One.Piece.0001.1080p.mkv" {
		t.Fatalf("unexpected file name %q", got.FileName)
	}
}

func TestParseRulePriority(t *testing.T) {
	cases := []struct {
		input string
		kind  naming.Kind
		rule  string
	}{
		{"[One Pace][1080p] Alabasta 05 [1080p][ABCD1234].mkv", naming.KindDirectArc, "direct-arc"},
		{"[One Pace] Chapter 123-124 [720p][ABCD1234].mkv", naming.KindChapterRange, "chapter-range"},
		{"[One Pace][1080p] Buggy's Crew Adventure [1080p][ABCD1234].mkv", naming.KindCoverPage, "cover-page"},
	}
	for _, tc := range cases {
		m, ok := naming.Parse(tc.input)
		if !ok {
			t.Fatalf("Parse(%q) did not match", tc.input)
		}
		if m.Kind != tc.kind || m.Rule != tc.rule {
			t.Fatalf("Parse(%q) = %+v, want kind %v rule %s", tc.input, m, tc.kind, tc.rule)
		}
	}
	if _, ok := naming.Parse("[One Pace] Alabasta.mkv"); ok {
		t.Fatal("expected no match for release without resolution")
	}
}

func TestParseExtractsFields(t *testing.T) {
	m, ok := naming.Parse("[One Pace][1080p] Alabasta 05 [1080p][ABCD1234].mkv")
	if !ok || m.Arc != "Alabasta" || m.ArcEpisode != "05" || m.Resolution != "1080p" {
		t.Fatalf("unexpected direct match %+v", m)
	}
	m, ok = naming.Parse("[One Pace] Chapter 123-124 [720p][ABCD1234].mkv")
	if !ok || m.Arc != naming.ChapterArc || m.Chapters != "123-124" || m.Resolution != "720p" {
		t.Fatalf("unexpected chapter match %+v", m)
	}
}

func TestKindString(t *testing.T) {
	if naming.KindCoverPage.String() != "cover_page" || naming.Kind(0).String() != "unknown" {
		t.Fatal("unexpected kind labels")
	}
}

func TestCanonicalName(t *testing.T) {
	if got := naming.CanonicalName("0130", "1080p"); got != "One.Piece.0130.1080p.mkv" {
		t.Fatalf("unexpected canonical name %q", got)
	}
}
