package entities

import "time"

// User represents a tracked identity.
type User struct {
	ID          int64  // identity key, telegram user ID for users onboarded through the bot
	DisplayName string
	ChatID      *int64 // linked telegram chat, nil when the user never talked to the bot
	CreatedAt   time.Time
}

func NewUser(id int64, displayName string) *User {
	return &User{
		ID:          id,
		DisplayName: displayName,
		CreatedAt:   time.Now().UTC(),
	}
}
