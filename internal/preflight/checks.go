package preflight

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"pacerename/internal/placement"
	"pacerename/internal/reference"
	"pacerename/internal/services/plex"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

func checkStateDir(path string) Result {
	const name = "State directory"
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Result{Name: name, Optional: true, Detail: fmt.Sprintf("%s (created on first run)", path)}
	}
	return CheckDirectoryAccess(name, path)
}

// CheckReferenceFile verifies that a reference table exists and decodes.
func CheckReferenceFile(name, path string) Result {
	return checkReference(name, path, false)
}

func checkReference(name, path string, optional bool) Result {
	if err := reference.Check(path); err != nil {
		if errors.Is(err, reference.ErrMissingFile) && optional {
			return Result{Name: name, Optional: true, Detail: fmt.Sprintf("%s (missing; matching releases will fail)", path)}
		}
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: path}
}

// CheckArcCoverage reports arcs that have no directory, or more than one,
// under targetRoot.
func CheckArcCoverage(tables *reference.Tables, targetRoot string) Result {
	const name = "Arc coverage"

	idx, err := placement.NewIndex(targetRoot)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	arcs := tables.Arcs()
	coverage := idx.Coverage(arcs)

	var missing, ambiguous []string
	for _, arc := range arcs {
		switch coverage[arc] {
		case 0:
			missing = append(missing, arc)
		case 1:
		default:
			ambiguous = append(ambiguous, arc)
		}
	}
	if len(missing) == 0 && len(ambiguous) == 0 {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d arcs mapped", len(arcs))}
	}

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing: "+strings.Join(missing, ", "))
	}
	if len(ambiguous) > 0 {
		parts = append(parts, "ambiguous: "+strings.Join(ambiguous, ", "))
	}
	return Result{Name: name, Optional: true, Detail: strings.Join(parts, "; ")}
}

// CheckJellyfin verifies Jellyfin connectivity and authentication.
func CheckJellyfin(ctx context.Context, baseURL, apiKey string) Result {
	const name = "Jellyfin"

	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return Result{Name: name, Detail: "missing url"}
	}
	if strings.TrimSpace(apiKey) == "" {
		return Result{Name: name, Detail: "missing api key"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client := &http.Client{Timeout: 5 * time.Second}
	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, base+"/Users", nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("auth check failed (%v)", err)}
	}
	req.Header.Set("X-Emby-Token", strings.TrimSpace(apiKey))

	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("auth check failed (%v)", err)}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return Result{Name: name, Passed: true, Detail: "Reachable"}
	case http.StatusUnauthorized, http.StatusForbidden:
		return Result{Name: name, Detail: "auth failed (invalid api key)"}
	default:
		return Result{Name: name, Detail: fmt.Sprintf("auth check failed (%d)", resp.StatusCode)}
	}
}

// CheckPlex verifies that Plex accepts the token and exposes the library.
func CheckPlex(ctx context.Context, baseURL, token, library string) Result {
	const name = "Plex"

	if strings.TrimSpace(baseURL) == "" {
		return Result{Name: name, Detail: "missing url"}
	}
	if strings.TrimSpace(token) == "" {
		return Result{Name: name, Detail: "missing token"}
	}
	if strings.TrimSpace(library) == "" {
		return Result{Name: name, Detail: "missing library"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	svc := plex.NewService(baseURL, token, library, &http.Client{Timeout: 5 * time.Second})
	key, err := svc.SectionKey(checkCtx)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("library check failed (%v)", err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("library %q is section %s", library, key)}
}
