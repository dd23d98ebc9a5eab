package model

import (
	"time"

	"github.com/google/uuid"
)

// ChatRoom holds exactly one unordered participant pair. The composite
// unique index is what makes get-or-create idempotent under races.
type ChatRoom struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ParticipantAId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_chat_rooms_pair"`
	ParticipantBId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_chat_rooms_pair"`
	ParticipantA   *User     `gorm:"foreignKey:ParticipantAId;constraint:OnDelete:CASCADE"`
	ParticipantB   *User     `gorm:"foreignKey:ParticipantBId;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime;index"`
}

func (ChatRoom) TableName() string {
	return "chat_rooms"
}

type Message struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RoomId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Room      *ChatRoom `gorm:"foreignKey:RoomId;constraint:OnDelete:CASCADE"`
	SenderId  uuid.UUID `gorm:"type:uuid;not null;index"`
	Sender    *User     `gorm:"foreignKey:SenderId;constraint:OnDelete:CASCADE"`
	Content   string    `gorm:"type:text;not null"`
	Timestamp time.Time `gorm:"autoCreateTime;index"`
	IsRead    bool      `gorm:"default:false"`
}

func (Message) TableName() string {
	return "messages"
}
