package reference

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"pacerename/internal/services"
)

// ErrMissingFile reports a reference file that does not exist.
var ErrMissingFile = errors.New("reference file not found")

// Paths names the reference files to load. CoverPages may be empty, in which
// case cover-page lookups always miss.
type Paths struct {
	Episodes   string
	Chapters   string
	CoverPages string
}

// Load reads and decodes every reference table. The episode table is required;
// a missing chapter or cover-page file yields an empty table so releases that
// do not need it keep resolving.
func Load(paths Paths) (*Tables, error) {
	var episodes map[string]map[string]string
	if err := decodeFile(paths.Episodes, &episodes); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "reference", "load episodes", paths.Episodes, err)
	}

	chapters := map[string]string{}
	if err := decodeOptional(paths.Chapters, &chapters); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "reference", "load chapters", paths.Chapters, err)
	}

	coverPages := map[string]CoverPage{}
	if err := decodeOptional(paths.CoverPages, &coverPages); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "reference", "load cover pages", paths.CoverPages, err)
	}

	return NewTables(episodes, chapters, coverPages, Sources{
		Episodes:   paths.Episodes,
		Chapters:   paths.Chapters,
		CoverPages: paths.CoverPages,
	}), nil
}

// Check decodes a single reference file into a generic structure to verify it
// is readable and well-formed.
func Check(path string) error {
	var doc any
	return decodeFile(path, &doc)
}

func decodeOptional(path string, dst any) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	err := decodeFile(path, dst)
	if errors.Is(err, ErrMissingFile) {
		return nil
	}
	return err
}

func decodeFile(path string, dst any) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: empty path", ErrMissingFile)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrMissingFile, path)
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, dst); err != nil {
			return fmt.Errorf("decode yaml %s: %w", path, err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(dst); err != nil {
			return fmt.Errorf("decode json %s: %w", path, err)
		}
	}
	return nil
}
