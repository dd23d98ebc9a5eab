package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username        string    `gorm:"type:varchar(150);uniqueIndex;not null"`
	Nickname        string    `gorm:"type:varchar(100)"`
	Email           string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	ProfileImageURL *string   `gorm:"type:text"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
