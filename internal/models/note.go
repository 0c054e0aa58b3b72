package models

import "time"

// Note is a free-form text note. Viewing by id requires ownership: a note id
// alone never grants access to another user's note.
type Note struct {
	ID     int64
	UserID int64

	Title   string
	Content string

	CreatedAt time.Time
}
