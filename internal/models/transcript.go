package models

import "time"

// Transcript is a flushed debug transcript of a failed command.
type Transcript struct {
	ID        int64
	SessionID string
	Text      string
	CreatedAt time.Time
}
