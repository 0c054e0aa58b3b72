package models

import "time"

// User is a person talking to the bot. The ID is assigned by the messaging
// platform, so users are created with INSERT OR IGNORE on first contact and
// never deleted.
type User struct {
	// ID is the platform-assigned user identifier.
	ID int64

	// Username is the platform handle (may be empty).
	Username string

	// FirstName is the display name used in greetings.
	FirstName string

	// RegisteredAt is when the user first contacted the bot.
	RegisteredAt time.Time
}
