package domain

import "time"

// Registration records that a user claimed a (server, character) pair.
type Registration struct {
	ID                     string `json:"id"`
	UserID                 string `json:"userId"`
	RegisteredCharacterRef `bson:",inline"`
	CreatedAt              time.Time `json:"createdAt"`
}
