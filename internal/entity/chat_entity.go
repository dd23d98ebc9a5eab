package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatRoom is the unique channel for one unordered pair of users.
// ParticipantAId always sorts below ParticipantBId (byte order of the
// UUID value), so (A,B) and (B,A) resolve to the same row.
type ChatRoom struct {
	Id             uuid.UUID
	ParticipantAId uuid.UUID
	ParticipantBId uuid.UUID
	ParticipantA   *User
	ParticipantB   *User
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsParticipant reports whether the user belongs to this room.
func (r *ChatRoom) IsParticipant(userID uuid.UUID) bool {
	return r.ParticipantAId == userID || r.ParticipantBId == userID
}

// OtherParticipant returns the peer of the given user, nil if the user
// is not a participant or participants were not loaded.
func (r *ChatRoom) OtherParticipant(userID uuid.UUID) *User {
	switch userID {
	case r.ParticipantAId:
		return r.ParticipantB
	case r.ParticipantBId:
		return r.ParticipantA
	}
	return nil
}

type Message struct {
	Id        uuid.UUID
	RoomId    uuid.UUID
	SenderId  uuid.UUID
	Sender    *User
	Content   string
	Timestamp time.Time
	IsRead    bool
}
