package main

import (
	"bytes"
	"strings"
	"testing"

	"pacerename/internal/preflight"
)

func TestCheckReportLines(t *testing.T) {
	results := []preflight.Result{
		{Name: "Episode reference", Passed: true, Detail: "/refs/episodes.json"},
		{Name: "Arc coverage", Optional: true, Detail: "missing: Skypeia"},
		{Name: "Plex", Detail: "unreachable"},
	}
	report := newCheckReport([][2]string{{"Mode", "move"}}, results, false)

	if got := report.info("Mode", "move"); got != "  Mode:              [INFO] move" {
		t.Fatalf("unexpected info line %q", got)
	}
	lines := []string{report.result(results[0]), report.result(results[1]), report.result(results[2])}
	for i, suffix := range []string{"[OK] /refs/episodes.json", "[WARN] missing: Skypeia", "[ERROR] unreachable"} {
		if !strings.HasSuffix(lines[i], suffix) {
			t.Fatalf("line %d = %q, want suffix %q", i, lines[i], suffix)
		}
	}
	if got := report.summary(results); got != "3 checks, 1 warnings, 1 errors" {
		t.Fatalf("unexpected summary %q", got)
	}
}

func TestCheckReportColorizes(t *testing.T) {
	result := preflight.Result{Name: "Plex", Detail: "unreachable"}
	line := newCheckReport(nil, []preflight.Result{result}, true).result(result)
	if !strings.HasPrefix(line, statusColors["ERROR"]) || !strings.HasSuffix(line, ansiReset) {
		t.Fatalf("expected red line, got %q", line)
	}
}

func TestShouldColorizeNonTerminal(t *testing.T) {
	if shouldColorize(&bytes.Buffer{}) {
		t.Fatal("buffers are never colorized")
	}
}
