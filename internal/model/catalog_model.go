package model

import (
	"time"

	"github.com/google/uuid"
)

type Genre struct {
	Id     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TmdbId int       `gorm:"uniqueIndex;not null"`
	Name   string    `gorm:"type:varchar(50);not null"`
}

func (Genre) TableName() string {
	return "genres"
}

type Movie struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TmdbId        int       `gorm:"uniqueIndex;not null"`
	Title         string    `gorm:"type:varchar(100);not null"`
	OriginalTitle string    `gorm:"type:varchar(100)"`
	Overview      string    `gorm:"type:text"`
	Adult         bool      `gorm:"default:false"`
	Budget        int       `gorm:"default:0"`
	OriginCountry string    `gorm:"type:varchar(50)"`
	Runtime       int       `gorm:"default:0"`
	ReleaseDate   time.Time
	Tagline       string  `gorm:"type:varchar(100)"`
	VoteAverage   float64 `gorm:"default:0"`
	PosterPath    string  `gorm:"type:varchar(100)"`
	Genres        []Genre `gorm:"many2many:movie_genres;"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (Movie) TableName() string {
	return "movies"
}

type Review struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_movie"`
	MovieId   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_movie"`
	Movie     *Movie    `gorm:"foreignKey:MovieId;constraint:OnDelete:CASCADE"`
	Rating    float64   `gorm:"not null"`
	Comment   string    `gorm:"type:varchar(50)"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Review) TableName() string {
	return "reviews"
}
