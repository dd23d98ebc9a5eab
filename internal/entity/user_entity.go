package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the read view over the account subsystem. This service never
// writes users; profile fields are projected into chat payloads only.
type User struct {
	Id              uuid.UUID
	Username        string
	Nickname        string
	Email           string
	ProfileImageURL *string
	CreatedAt       time.Time
}
