package placement

import "errors"

var (
	ErrDirectoryNotFound  = errors.New("directory not found for arc")
	ErrAmbiguousDirectory = errors.New("ambiguous arc directory")
)
