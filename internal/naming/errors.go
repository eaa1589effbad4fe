package naming

import "errors"

var (
	ErrUnrecognizedFilename = errors.New("unrecognized filename")
	ErrArcNotFound          = errors.New("arc not found")
	ErrEpisodeNotFound      = errors.New("episode not found")
	ErrChapterNotFound      = errors.New("chapter range not found")
	ErrCoverPageNotFound    = errors.New("cover page not found")
)
