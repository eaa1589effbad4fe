package organizer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"pacerename/internal/services"
)

// Discover returns the files under dir whose extension matches one of
// extensions, case-insensitively. Hidden entries are skipped. With recursive
// set, subdirectories (except hidden ones) are walked too.
func Discover(dir string, recursive bool, extensions []string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, stageDiscover, "stat source",
			fmt.Sprintf("source directory %q", dir), err)
	}
	if !info.IsDir() {
		return nil, services.Wrap(services.ErrConfiguration, stageDiscover, "stat source",
			fmt.Sprintf("source %q is not a directory", dir), nil)
	}

	exts := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = struct{}{}
	}

	var files []string
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path == dir {
			return nil
		}
		hidden := strings.HasPrefix(d.Name(), ".")
		if d.IsDir() {
			if !recursive || hidden {
				return fs.SkipDir
			}
			return nil
		}
		if hidden || !d.Type().IsRegular() {
			return nil
		}
		if _, ok := exts[strings.ToLower(filepath.Ext(d.Name()))]; ok {
			files = append(files, path)
		}
		return nil
	})
	if walkErr != nil && !errors.Is(walkErr, fs.SkipAll) {
		return nil, services.Wrap(services.ErrFilesystem, stageDiscover, "walk source",
			fmt.Sprintf("scan %q", dir), walkErr)
	}

	sort.Strings(files)
	return files, nil
}
