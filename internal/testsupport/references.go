package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"pacerename/internal/config"
	"pacerename/internal/reference"
)

// Fixture is the content of the three reference tables.
type Fixture struct {
	Episodes   map[string]map[string]string
	Chapters   map[string]string
	CoverPages map[string]reference.CoverPage
}

// SampleFixture returns a small set of tables covering every release pattern.
func SampleFixture() Fixture {
	return Fixture{
		Episodes: map[string]map[string]string{
			"Alabasta":    {"05": "0130", "06": "0131"},
			"Dressrosa":   {"45": "0700"},
			"Orange Town": {"03": "0008"},
		},
		Chapters: map[string]string{"123-124": "45"},
		CoverPages: map[string]reference.CoverPage{
			"Buggy's Crew Adventure": {Arc: "Orange Town", Episodes: "03"},
		},
	}
}

// WriteReferences writes fixture as JSON to the config's reference paths.
// Nil tables are skipped so callers can exercise missing optional files.
func WriteReferences(t testing.TB, cfg *config.Config, fixture Fixture) {
	t.Helper()
	if fixture.Episodes != nil {
		WriteJSON(t, cfg.References.Episodes, fixture.Episodes)
	}
	if fixture.Chapters != nil {
		WriteJSON(t, cfg.References.Chapters, fixture.Chapters)
	}
	if fixture.CoverPages != nil {
		WriteJSON(t, cfg.References.CoverPages, fixture.CoverPages)
	}
}

// LoadTables writes fixture and returns the tables built from it.
func LoadTables(t testing.TB, cfg *config.Config, fixture Fixture) *reference.Tables {
	t.Helper()
	WriteReferences(t, cfg, fixture)
	tables, err := reference.Load(reference.Paths{
		Episodes:   cfg.References.Episodes,
		Chapters:   cfg.References.Chapters,
		CoverPages: cfg.References.CoverPages,
	})
	if err != nil {
		t.Fatalf("load reference tables: %v", err)
	}
	return tables
}

// WriteJSON marshals value into path, creating parent directories.
func WriteJSON(t testing.TB, path string, value any) {
	t.Helper()
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal %s: %v", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
