package placement

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"pacerename/internal/services"
)

const stagePlacement = "placement"

// Index is a listing of the immediate subdirectories of a target root.
type Index struct {
	root string
	dirs []string
}

// NewIndex lists root once.
func NewIndex(root string) (*Index, error) {
	idx := &Index{root: root}
	if err := idx.Refresh(); err != nil {
		return nil, err
	}
	return idx, nil
}

// Root returns the indexed target root.
func (i *Index) Root() string {
	return i.root
}

// Dirs returns the indexed subdirectory names in sorted order.
func (i *Index) Dirs() []string {
	return append([]string(nil), i.dirs...)
}

// Refresh re-lists the target root.
func (i *Index) Refresh() error {
	entries, err := os.ReadDir(i.root)
	if err != nil {
		return services.Wrap(services.ErrFilesystem, stagePlacement, "list target",
			fmt.Sprintf("read target root %q", i.root), err)
	}
	dirs := make([]string, 0, len(entries))
	for _, entry := range entries {
		if isDir(i.root, entry) {
			dirs = append(dirs, entry.Name())
		}
	}
	sort.Strings(dirs)
	i.dirs = dirs
	return nil
}

// Matches returns the subdirectories whose name contains arc.
func (i *Index) Matches(arc string) []string {
	var out []string
	for _, dir := range i.dirs {
		if strings.Contains(dir, arc) {
			out = append(out, dir)
		}
	}
	return out
}

// Resolve returns <root>/<subdir>/<fileName> for the unique subdirectory
// containing arc.
func (i *Index) Resolve(arc, fileName string) (string, error) {
	matches := i.Matches(arc)
	switch len(matches) {
	case 0:
		return "", services.Wrap(services.ErrPlacement, stagePlacement, "match directory",
			fmt.Sprintf("no directory under %q contains %q", i.root, arc), ErrDirectoryNotFound)
	case 1:
		return filepath.Join(i.root, matches[0], fileName), nil
	default:
		return "", services.Wrap(services.ErrPlacement, stagePlacement, "match directory",
			fmt.Sprintf("%d directories under %q contain %q: %s", len(matches), i.root, arc, quoteJoin(matches)),
			ErrAmbiguousDirectory)
	}
}

// Coverage reports the number of matching subdirectories for each arc.
func (i *Index) Coverage(arcs []string) map[string]int {
	out := make(map[string]int, len(arcs))
	for _, arc := range arcs {
		out[arc] = len(i.Matches(arc))
	}
	return out
}

// Resolve lists targetRoot and places fileName under the arc's directory.
func Resolve(targetRoot, arc, fileName string) (string, error) {
	idx, err := NewIndex(targetRoot)
	if err != nil {
		return "", err
	}
	return idx.Resolve(arc, fileName)
}

// isDir follows symlinks so a linked arc directory still counts.
func isDir(root string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(root, entry.Name()))
	return err == nil && info.IsDir()
}

func quoteJoin(items []string) string {
	quoted := make([]string, len(items))
	for idx, item := range items {
		quoted[idx] = fmt.Sprintf("%q", item)
	}
	return strings.Join(quoted, ", ")
}
