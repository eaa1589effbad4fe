package organizer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"pacerename/internal/services"
)

// ErrLocked is returned when another run holds the lock.
var ErrLocked = errors.New("another pacerename run is in progress")

// acquireLock takes the exclusive run lock at path without blocking.
func acquireLock(path string) (*flock.Flock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, stageLock, "create state dir", path, err)
	}
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, stageLock, "acquire lock", path, err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrConfiguration, stageLock, "acquire lock",
			fmt.Sprintf("lock %s is held", path), ErrLocked)
	}
	return lock, nil
}
