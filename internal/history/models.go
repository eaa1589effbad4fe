package history

import "time"

// Placement is one applied file operation.
type Placement struct {
	ID          int64
	RunID       string
	Mode        string
	Source      string
	Destination string
	Arc         string
	Kind        string
	// Replaced is set when an existing destination was overwritten.
	Replaced  bool
	CreatedAt time.Time
	UndoneAt  *time.Time
}

// Undone reports whether the placement has been reversed.
func (p Placement) Undone() bool {
	return p.UndoneAt != nil
}
